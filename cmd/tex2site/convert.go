package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/texpub/tex2site"
	"github.com/texpub/tex2site/internal/assets"
	"github.com/texpub/tex2site/internal/config"
	"github.com/texpub/tex2site/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage            = errors.New("invalid usage")
	ErrNoInput          = errors.New("no input specified")
	ErrInvalidExtension = errors.New("input must have a .tex extension")
)

// runConvert publishes one LaTeX source into the site.
func runConvert(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	input, err := resolveInput(positional)
	if err != nil {
		return err
	}

	cfg, err := loadConfiguration(flags.common.config, env)
	if err != nil {
		return err
	}
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	site, err := buildSite(cfg, env)
	if err != nil {
		return err
	}

	meta, slug, err := buildMetadata(flags, cfg, input)
	if err != nil {
		return fmt.Errorf("%w%s", err, errorHint(err, cfg))
	}

	svc, err := newService(site, cfg, env)
	if err != nil {
		return err
	}

	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Converting %s as %s (%s, %s)\n", input, slug, meta.Category, resolveMode(flags))
	}

	start := time.Now()
	result, err := svc.Publish(ctx, tex2site.Job{
		Source: input,
		Slug:   slug,
		Meta:   meta,
		Mode:   resolveMode(flags),
	})
	if err != nil {
		return fmt.Errorf("publishing %s: %w%s", input, err, errorHint(err, cfg))
	}

	return printResult(env, flags, cfg, site, result, time.Since(start))
}

// resolveInput checks there is exactly one .tex input.
func resolveInput(positional []string) (string, error) {
	switch len(positional) {
	case 0:
		return "", ErrNoInput
	case 1:
	default:
		return "", fmt.Errorf("%w: expected one input file, got %d", ErrUsage, len(positional))
	}

	input := positional[0]
	if !isTeXFile(input) {
		return "", fmt.Errorf("%w: %s", ErrInvalidExtension, input)
	}
	return input, nil
}

// isTeXFile reports whether path has a .tex extension (case-insensitive).
func isTeXFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".tex")
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.site.root != "" {
		cfg.Site.Root = flags.site.root
	}
	if flags.timeout != "" {
		cfg.Engine.Timeout = flags.timeout
	}
	if flags.common.verbose {
		cfg.Engine.Verbose = true
	}
	if flags.meta.category != "" {
		cfg.Defaults.Category = flags.meta.category
	}
	if flags.meta.docType != "" {
		cfg.Defaults.Type = flags.meta.docType
	}
	if flags.output.graphFormat != "" {
		cfg.Graph.Format = flags.output.graphFormat
	}
}

// buildSite applies config over the default site layout.
// An empty root means the current directory.
func buildSite(cfg *config.Config, env *Environment) (tex2site.Site, error) {
	root := cfg.Site.Root
	if root == "" {
		wd, err := env.getwd()
		if err != nil {
			return tex2site.Site{}, fmt.Errorf("resolving site root: %w", err)
		}
		root = wd
	}

	site := tex2site.DefaultSite(root)
	if cfg.Site.PapersDir != "" {
		site.PapersDir = cfg.Site.PapersDir
	}
	if cfg.Site.IndexFile != "" {
		site.IndexFile = cfg.Site.IndexFile
	}
	if cfg.Site.GraphFile != "" {
		site.GraphFile = cfg.Site.GraphFile
	}
	if cfg.Site.Stylesheet != "" {
		site.Stylesheet = cfg.Site.Stylesheet
	}
	site.Author = cfg.Site.Author
	return site, nil
}

// buildMetadata resolves title, slug, category, date, and type.
// The title falls back to the source's \title, then the file name.
func buildMetadata(flags *convertFlags, cfg *config.Config, input string) (*tex2site.Metadata, string, error) {
	title, err := tex2site.ResolveTitle(flags.meta.title, input)
	if err != nil {
		return nil, "", err
	}

	slug, err := tex2site.ResolveSlug(flags.meta.slug, title)
	if err != nil {
		return nil, "", err
	}

	category := tex2site.DefaultCategory
	if cfg.Defaults.Category != "" {
		category, err = tex2site.ParseCategory(cfg.Defaults.Category)
		if err != nil {
			return nil, "", err
		}
	}

	date := flags.meta.date
	if date == "" {
		date = "auto"
	}

	docType := cfg.Defaults.Type
	if docType == "" {
		docType = tex2site.DefaultType
	}

	meta := &tex2site.Metadata{
		Title:       title,
		Date:        date,
		Type:        docType,
		Category:    category,
		Tags:        tex2site.ParseTags(flags.meta.tags),
		Subtitle:    flags.meta.subtitle,
		Description: flags.meta.description,
	}
	if err := meta.Validate(); err != nil {
		return nil, "", err
	}
	return meta, slug, nil
}

// resolveMode maps the mode flags. --output-only wins over --no-integrate.
func resolveMode(flags *convertFlags) tex2site.Mode {
	switch {
	case flags.output.outputOnly:
		return tex2site.ModeOutputOnly
	case flags.output.noIntegrate:
		return tex2site.ModeNoIntegrate
	default:
		return tex2site.ModeFull
	}
}

// newService wires the engine, timeout, and template overrides.
func newService(site tex2site.Site, cfg *config.Config, env *Environment) (*tex2site.Service, error) {
	timeout, err := cfg.Engine.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	if timeout == 0 {
		timeout = tex2site.DefaultEngineTimeout
	}

	loader, err := assets.NewAssetResolver(cfg.Assets.BasePath)
	if err != nil {
		return nil, fmt.Errorf("template overrides: %w", err)
	}

	engine := env.Engine
	if engine == nil {
		latexml := tex2site.NewLaTeXML(site.StylesheetPath())
		if cfg.Engine.Command != "" {
			latexml.Command = cfg.Engine.Command
		}
		latexml.Timeout = timeout
		latexml.Verbose = cfg.Engine.Verbose
		engine = latexml
	}

	return tex2site.New(site,
		tex2site.WithEngine(engine),
		tex2site.WithTimeout(timeout),
		tex2site.WithVerbose(cfg.Engine.Verbose),
		tex2site.WithAssetLoader(loader),
		tex2site.WithNow(env.now),
	), nil
}

// printResult reports the published page, warnings, and follow-ups.
func printResult(env *Environment, flags *convertFlags, cfg *config.Config, site tex2site.Site, result *tex2site.Result, elapsed time.Duration) error {
	if flags.common.verbose && result.EngineLog != "" {
		fmt.Fprint(env.Stderr, result.EngineLog)
		if !strings.HasSuffix(result.EngineLog, "\n") {
			fmt.Fprintln(env.Stderr)
		}
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(env.Stderr, "warning: %s\n", w)
	}
	if l := result.Listing; l != nil && !l.Inserted {
		fmt.Fprintf(env.Stderr, "%s\n", strings.TrimPrefix(hints.ForListingSection(string(categoryOf(l.Label))), "\n"))
	}

	if flags.common.quiet {
		// The entry is the only way to finish the listing by hand.
		if l := result.Listing; l != nil && !l.Inserted && l.Entry != "" {
			printEntry(env.Stderr, l)
		}
		return nil
	}

	if flags.common.verbose {
		fmt.Fprintf(env.Stdout, "Created %s (%v)\n", result.OutputPath, elapsed.Round(time.Millisecond))
	} else {
		fmt.Fprintf(env.Stdout, "Created %s\n", result.OutputPath)
	}

	if result.Figures != nil && len(result.Figures.Copied) > 0 {
		fmt.Fprintf(env.Stdout, "Copied %d figure(s) to %s\n", len(result.Figures.Copied), filepath.Dir(result.Figures.Copied[0]))
	}

	if l := result.Listing; l != nil {
		if l.Inserted {
			fmt.Fprintf(env.Stdout, "Added entry to %s under %s\n", site.IndexFile, l.Label)
		} else {
			printEntry(env.Stdout, l)
		}
	}

	if result.GraphNode != nil {
		rendered, err := result.GraphNode.Render(cfg.Graph.Format)
		if err != nil {
			return err
		}
		fmt.Fprintf(env.Stdout, "\nGraph node for %s:\n", site.GraphFile)
		color := !flags.output.noColor && env.isTerminal(env.Stdout)
		if err := highlight(env.Stdout, rendered, cfg.Graph.Format, color); err != nil {
			return err
		}
		if !result.GraphNodeExists {
			fmt.Fprintf(env.Stdout, "%s\n", strings.TrimPrefix(hints.ForGraphNode(site.GraphFile), "\n"))
		}
	}

	return nil
}

func printEntry(w io.Writer, l *tex2site.ListingResult) {
	fmt.Fprintf(w, "Entry to add under %s:\n%s\n", l.Label, strings.Trim(l.Entry, "\n"))
}

// categoryOf maps a listing label back to its category.
func categoryOf(label string) tex2site.Category {
	for _, c := range tex2site.Categories {
		if c.Label() == label {
			return c
		}
	}
	return ""
}

// errorHint returns an actionable hint for fatal errors, or "".
func errorHint(err error, cfg *config.Config) string {
	switch {
	case errors.Is(err, tex2site.ErrEngineNotFound):
		command := cfg.Engine.Command
		if command == "" {
			command = tex2site.DefaultEngineCommand
		}
		return hints.ForEngineNotFound(command)
	case errors.Is(err, tex2site.ErrEngineTimeout):
		return hints.ForTimeout()
	case errors.Is(err, tex2site.ErrWriteOutput):
		return hints.ForOutputDirectory()
	case errors.Is(err, tex2site.ErrInvalidCategory):
		return hints.ForCategory(categoryNames())
	}
	return ""
}

// configHint returns the config-not-found hint for name, or "".
func configHint(name string, err error) string {
	if !errors.Is(err, config.ErrConfigNotFound) {
		return ""
	}
	return hints.ForConfigNotFound(config.SearchPaths(name))
}

func categoryNames() []string {
	names := make([]string, len(tex2site.Categories))
	for i, c := range tex2site.Categories {
		names[i] = string(c)
	}
	return names
}
