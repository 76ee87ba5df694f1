// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/texpub/tex2site/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// GOOS is the target OS used to pick install instructions. Tests override it.
var GOOS = runtime.GOOS

// ForEngineNotFound returns install instructions for the conversion engine.
func ForEngineNotFound(command string) string {
	var hints []string

	switch {
	case IsInContainer():
		hints = append(hints, "add the latexml package to the container image")
	case GOOS == "darwin":
		hints = append(hints, "install with: brew install latexml")
	case GOOS == "windows":
		hints = append(hints, "install LaTeXML via Strawberry Perl: cpanm LaTeXML")
	default:
		hints = append(hints, "install with: sudo apt-get install latexml (or cpanm LaTeXML)")
	}

	if command != "" && os.Getenv("TEX2SITE_ENGINE") == "" {
		hints = append(hints, "or point TEX2SITE_ENGINE at the "+filepath.Base(command)+" binary")
	}

	return hint(hints...)
}

// ForTimeout returns a hint about increasing the engine timeout.
func ForTimeout() string {
	return hint("long documents may need more time, use --timeout 10m")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	create := ""
	for _, p := range searchedPaths {
		if filepath.Base(filepath.Dir(p)) == "tex2site" {
			create = "create " + p
			break
		}
	}
	return hint("use --config /path/to/file.yaml", create)
}

// ForOutputDirectory returns hints for page or figure write errors.
func ForOutputDirectory() string {
	return hint("check the site root exists and is writable, or use --site-root")
}

// ForListingSection returns a hint for a listing section that could not be
// located. key is the category key, e.g. "THEORY".
func ForListingSection(key string) string {
	if key == "" {
		return ""
	}
	return hint(`mark the section element with data-category="` + key + `"`)
}

// ForCategory lists the valid category names.
func ForCategory(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return hint("available: " + strings.Join(available, ", "))
}

// ForGraphNode returns the follow-up for a printed graph node.
func ForGraphNode(graphFile string) string {
	return hint("paste the node into the nodes array of " + graphFile + " and add its edges")
}

// hint renders alternatives as one "\n  hint: a; b" line. Empty parts are
// dropped and no parts yields "".
func hint(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return ""
	}
	return "\n  hint: " + strings.Join(kept, "; ")
}
