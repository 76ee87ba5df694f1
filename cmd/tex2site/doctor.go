package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sort"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/texpub/tex2site"
	"github.com/texpub/tex2site/internal/assets"
	"github.com/texpub/tex2site/internal/config"
	"github.com/texpub/tex2site/internal/fileutil"
	"github.com/texpub/tex2site/internal/process"
)

// versionProbeTimeout bounds the engine --VERSION call.
const versionProbeTimeout = 10 * time.Second

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status    string        `json:"status"` // "ready", "warnings", "errors"
	Engine    engineInfo    `json:"engine"`
	Site      siteInfo      `json:"site"`
	Templates templatesInfo `json:"templates"`
	Env       envInfo       `json:"environment"`
	Warnings  []string      `json:"warnings,omitempty"`
	Errors    []string      `json:"errors,omitempty"`
}

// engineInfo holds conversion engine detection results.
type engineInfo struct {
	Command string `json:"command"`
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
}

// siteInfo holds website layout checks.
type siteInfo struct {
	Root           string            `json:"root"`
	RootWritable   bool              `json:"root_writable"`
	PapersWritable bool              `json:"papers_writable"`
	Listing        bool              `json:"listing"`
	Sections       map[string]string `json:"sections,omitempty"` // category -> "ok" or reason
	Graph          bool              `json:"graph"`
	Stylesheet     bool              `json:"stylesheet"`
}

// templatesInfo holds template override detection results.
type templatesInfo struct {
	BasePath   string   `json:"base_path,omitempty"`
	Overridden []string `json:"overridden,omitempty"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
}

// doctorFlags holds flags for the doctor command.
type doctorFlags struct {
	json     bool
	config   string
	siteRoot string
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func newDoctorFlagSet(f *doctorFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.BoolVar(&f.json, "json", false, "output JSON")
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVar(&f.siteRoot, "site-root", "", "website root directory")
	return fs
}

func runDoctorCmd(args []string, env *Environment) int {
	var f doctorFlags
	fs := newDoctorFlagSet(&f)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			runHelp([]string{"doctor"}, env)
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "%v: %v\n", ErrUsage, err)
		return ExitUsage
	}

	cfg, err := loadConfiguration(f.config, env)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}
	if f.siteRoot != "" {
		cfg.Site.Root = f.siteRoot
	}

	result := runDoctor(cfg, env)

	if f.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(cfg *config.Config, env *Environment) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:   runtime.GOOS,
			Arch: runtime.GOARCH,
		},
	}

	checkEngine(result, cfg, env)
	checkSite(result, cfg, env)
	checkEnvironment(result, env)

	// Determine final status
	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkEngine locates the engine binary and asks it for its version.
func checkEngine(result *doctorResult, cfg *config.Config, env *Environment) {
	command := cfg.Engine.Command
	if command == "" {
		command = tex2site.DefaultEngineCommand
	}
	result.Engine.Command = command

	path, err := env.lookPath(command)
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("%s not found. Install LaTeXML or set TEX2SITE_ENGINE", command))
		return
	}
	result.Engine.Found = true
	result.Engine.Path = path

	ctx, cancel := context.WithTimeout(context.Background(), versionProbeTimeout)
	defer cancel()
	// #nosec G204 -- path comes from LookPath on the configured engine
	out, err := process.CommandContext(ctx, path, "--VERSION").CombinedOutput()
	if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get %s version: %v", command, err))
		return
	}
	result.Engine.Version = firstLine(string(out))
}

// checkSite verifies the website layout the convert command relies on.
func checkSite(result *doctorResult, cfg *config.Config, env *Environment) {
	site, err := buildSite(cfg, env)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return
	}
	result.Site.Root = site.Root

	if !fileutil.DirExists(site.Root) {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Site root %s does not exist", site.Root))
		return
	}
	result.Site.RootWritable = fileutil.IsWritableDir(site.Root)

	switch papers := site.PapersPath(); {
	case fileutil.DirExists(papers):
		result.Site.PapersWritable = fileutil.IsWritableDir(papers)
		if !result.Site.PapersWritable {
			result.Errors = append(result.Errors,
				fmt.Sprintf("Papers directory %s is not writable", papers))
		}
	case result.Site.RootWritable:
		result.Site.PapersWritable = true
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Papers directory %s does not exist yet, it will be created", papers))
	default:
		result.Errors = append(result.Errors,
			fmt.Sprintf("Site root %s is not writable", site.Root))
	}

	result.Site.Stylesheet = fileutil.FileExists(site.StylesheetPath())
	if !result.Site.Stylesheet {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Stylesheet %s not found, pages will render unstyled", site.StylesheetPath()))
	}

	result.Site.Graph = fileutil.FileExists(site.GraphPath())
	if !result.Site.Graph {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Graph data %s not found, duplicate node ids cannot be checked", site.GraphPath()))
	}

	loader, err := assets.NewAssetResolver(cfg.Assets.BasePath)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Template overrides: %v", err))
		return
	}
	result.Templates.BasePath = cfg.Assets.BasePath
	overridden, err := loader.Overridden()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Template overrides: %v", err))
	}
	result.Templates.Overridden = overridden
	if err := assets.Check(loader); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Templates: %v", err))
	}

	checkListing(result, site)
}

// checkListing reports which category sections of the listing can take
// new entries. Template problems are reported by checkSite, so the embedded
// entry template is used here.
func checkListing(result *doctorResult, site tex2site.Site) {
	integrator, err := tex2site.NewSiteIntegrator(site, nil)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Listing templates: %v", err))
		return
	}

	status, err := integrator.ListingStatus()
	if err != nil {
		if errors.Is(err, tex2site.ErrListingNotFound) {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Listing %s not found, entries will be printed instead", site.IndexPath()))
			return
		}
		result.Errors = append(result.Errors, err.Error())
		return
	}

	result.Site.Listing = true
	result.Site.Sections = make(map[string]string, len(status))
	for _, c := range tex2site.Categories {
		reason := status[c]
		if reason == "" {
			result.Site.Sections[string(c)] = "ok"
			continue
		}
		result.Site.Sections[string(c)] = reason
		result.Warnings = append(result.Warnings, fmt.Sprintf("Listing: %s", reason))
	}
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult, env *Environment) {
	result.Env.Container, result.Env.ContainerHint = isContainer(env)

	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}
	for _, v := range ciVars {
		if env.getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer(env *Environment) (bool, string) {
	if env.getenv("TEX2SITE_CONTAINER") == "1" {
		return true, "TEX2SITE_CONTAINER=1"
	}
	if fileutil.FileExists("/.dockerenv") {
		return true, "/.dockerenv"
	}
	if v := env.getenv("container"); v != "" {
		return true, "container=" + v
	}
	if env.getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "tex2site doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Engine")
	if r.Engine.Found {
		fmt.Fprintf(w, "  [OK] %s found at %s\n", r.Engine.Command, r.Engine.Path)
		if r.Engine.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Engine.Version)
		}
	} else {
		fmt.Fprintf(w, "  [ERROR] %s not found\n", r.Engine.Command)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Site")
	if r.Site.Root != "" {
		fmt.Fprintf(w, "  %s Root: %s\n", mark(r.Site.RootWritable, "[ERROR]"), r.Site.Root)
	}
	fmt.Fprintf(w, "  %s Papers directory: %s\n", mark(r.Site.PapersWritable, "[ERROR]"), writable(r.Site.PapersWritable))
	fmt.Fprintf(w, "  %s Listing: %s\n", mark(r.Site.Listing, "[WARN]"), found(r.Site.Listing))
	for _, key := range sortedSectionKeys(r.Site.Sections) {
		reason := r.Site.Sections[key]
		fmt.Fprintf(w, "       %-10s %s\n", key, reason)
	}
	fmt.Fprintf(w, "  %s Graph data: %s\n", mark(r.Site.Graph, "[WARN]"), found(r.Site.Graph))
	fmt.Fprintf(w, "  %s Stylesheet: %s\n", mark(r.Site.Stylesheet, "[WARN]"), found(r.Site.Stylesheet))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Templates")
	if r.Templates.BasePath == "" {
		fmt.Fprintln(w, "  [OK] Embedded")
	} else {
		fmt.Fprintf(w, "  [OK] Overrides from %s: %s\n", r.Templates.BasePath, orNone(r.Templates.Overridden))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to publish")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}

func mark(ok bool, failure string) string {
	if ok {
		return "[OK]"
	}
	return failure
}

func found(ok bool) string {
	if ok {
		return "found"
	}
	return "missing"
}

func writable(ok bool) string {
	if ok {
		return "writable"
	}
	return "not writable"
}

func orNone(names []string) string {
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}

func sortedSectionKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
