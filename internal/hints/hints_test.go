package hints

// Notes:
// - ForEngineNotFound tests cannot use t.Parallel() because they:
//   1. Use t.Setenv() which modifies process environment
//   2. Modify the package-level IsInContainer and GOOS variables

import (
	"path/filepath"
	"strings"
	"testing"
)

// stubPlatform replaces the container check and OS for one test.
func stubPlatform(t *testing.T, inContainer bool, goos string) {
	t.Helper()

	origContainer, origGOOS := IsInContainer, GOOS
	t.Cleanup(func() {
		IsInContainer = origContainer
		GOOS = origGOOS
	})
	IsInContainer = func() bool { return inContainer }
	GOOS = goos
}

// ---------------------------------------------------------------------------
// TestForEngineNotFound - Platform-specific install instructions
// ---------------------------------------------------------------------------

func TestForEngineNotFound(t *testing.T) {
	tests := []struct {
		name        string
		inContainer bool
		goos        string
		engineEnv   string
		contains    []string
		excludes    []string
	}{
		{
			name:     "linux suggests apt",
			goos:     "linux",
			contains: []string{"apt-get install latexml", "TEX2SITE_ENGINE"},
		},
		{
			name:     "darwin suggests brew",
			goos:     "darwin",
			contains: []string{"brew install latexml"},
		},
		{
			name:     "windows suggests cpanm",
			goos:     "windows",
			contains: []string{"cpanm LaTeXML"},
		},
		{
			name:        "container wins over OS",
			inContainer: true,
			goos:        "darwin",
			contains:    []string{"container image"},
			excludes:    []string{"brew"},
		},
		{
			name:      "engine env already set",
			goos:      "linux",
			engineEnv: "/opt/latexml/bin/latexmlc",
			excludes:  []string{"TEX2SITE_ENGINE"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubPlatform(t, tt.inContainer, tt.goos)
			t.Setenv("TEX2SITE_ENGINE", tt.engineEnv)

			hint := ForEngineNotFound("latexmlc")

			if !strings.HasPrefix(hint, "\n  hint: ") {
				t.Errorf("hint format inconsistent: %q", hint)
			}
			for _, want := range tt.contains {
				if !strings.Contains(hint, want) {
					t.Errorf("hint %q should contain %q", hint, want)
				}
			}
			for _, bad := range tt.excludes {
				if strings.Contains(hint, bad) {
					t.Errorf("hint %q should not contain %q", hint, bad)
				}
			}
		})
	}
}

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	userPath := filepath.Join("home", "u", ".config", "tex2site", "site.yaml")

	tests := []struct {
		name     string
		paths    []string
		contains string
	}{
		{"empty paths", nil, "--config"},
		{"suggests user config path", []string{"site.yaml", "site.yml", userPath}, "; create " + userPath},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hint := ForConfigNotFound(tt.paths)
			if !strings.Contains(hint, tt.contains) {
				t.Errorf("expected hint to contain %q, got %q", tt.contains, hint)
			}
		})
	}
}

func TestForListingSection(t *testing.T) {
	t.Parallel()

	if got := ForListingSection(""); got != "" {
		t.Errorf("ForListingSection(\"\") = %q, want empty", got)
	}
	if got := ForListingSection("BIO"); !strings.Contains(got, `data-category="BIO"`) {
		t.Errorf("ForListingSection(BIO) = %q, want marker suggestion", got)
	}
}

func TestForCategory(t *testing.T) {
	t.Parallel()

	if got := ForCategory(nil); got != "" {
		t.Errorf("ForCategory(nil) = %q, want empty", got)
	}
	if got := ForCategory([]string{"AI", "BIO"}); !strings.Contains(got, "available: AI, BIO") {
		t.Errorf("ForCategory() = %q", got)
	}
}

func TestFormat_Consistency(t *testing.T) {
	t.Parallel()

	hints := []string{
		ForTimeout(),
		ForOutputDirectory(),
		ForListingSection("AI"),
		ForGraphNode("graph-data.js"),
		ForConfigNotFound(nil),
	}

	for _, h := range hints {
		if !strings.HasPrefix(h, "\n  hint: ") {
			t.Errorf("hint format inconsistent: %q", h)
		}
	}
}
