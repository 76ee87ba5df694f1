package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// writeConfig writes content to dir/name and returns the path.
func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

// chdir switches to dir for the rest of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()

	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(originalWd) })
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Site.Root != "" {
		t.Errorf("Site.Root = %q, want empty", cfg.Site.Root)
	}
	if cfg.Engine.Command != "" {
		t.Errorf("Engine.Command = %q, want empty", cfg.Engine.Command)
	}
	if cfg.Assets.BasePath != "" {
		t.Errorf("Assets.BasePath = %q, want empty", cfg.Assets.BasePath)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error = %v", err)
	}
}

func TestValidateFieldLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		value     string
		maxLength int
		wantErr   bool
	}{
		{"empty value is valid", "", 10, false},
		{"value at limit is valid", "1234567890", 10, false},
		{"value under limit is valid", "12345", 10, false},
		{"value over limit returns error", "12345678901", 10, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateFieldLength("test.field", tt.value, tt.maxLength)
			if tt.wantErr {
				if !errors.Is(err, ErrFieldTooLong) {
					t.Errorf("error = %v, want ErrFieldTooLong", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	long := func(n int) string { return strings.Repeat("x", n+1) }

	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{
			name: "valid config passes validation",
			cfg: Config{
				Site:     SiteConfig{Root: "/srv/site", Author: "Jane Doe"},
				Engine:   EngineConfig{Command: "latexmlc", Timeout: "90s"},
				Defaults: DefaultsConfig{Category: "THEORY", Type: "RESEARCH PAPER"},
				Graph:    GraphConfig{Format: "json"},
			},
		},
		{
			name: "graph format is case-insensitive",
			cfg:  Config{Graph: GraphConfig{Format: "JS"}},
		},
		{
			name:    "site.author too long",
			cfg:     Config{Site: SiteConfig{Author: long(MaxAuthorLength)}},
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "site.root too long",
			cfg:     Config{Site: SiteConfig{Root: long(MaxPathLength)}},
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "assets.basePath too long",
			cfg:     Config{Assets: AssetsConfig{BasePath: long(MaxPathLength)}},
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "defaults.type too long",
			cfg:     Config{Defaults: DefaultsConfig{Type: long(MaxTypeLength)}},
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "engine.timeout too long",
			cfg:     Config{Engine: EngineConfig{Timeout: long(MaxDurationLength)}},
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "engine.timeout invalid",
			cfg:     Config{Engine: EngineConfig{Timeout: "soon"}},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "engine.timeout negative",
			cfg:     Config{Engine: EngineConfig{Timeout: "-1m"}},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "graph.format unknown",
			cfg:     Config{Graph: GraphConfig{Format: "yaml"}},
			wantErr: ErrInvalidValue,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestEngineConfig_TimeoutDuration(t *testing.T) {
	t.Parallel()

	got, err := EngineConfig{}.TimeoutDuration()
	if err != nil || got != 0 {
		t.Errorf("empty timeout = %v, %v; want 0, nil", got, err)
	}

	got, err = EngineConfig{Timeout: "1m30s"}.TimeoutDuration()
	if err != nil {
		t.Fatalf("TimeoutDuration() error = %v", err)
	}
	if got != 90*time.Second {
		t.Errorf("TimeoutDuration() = %v, want 1m30s", got)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("valid file path loads config", func(t *testing.T) {
		content := `site:
  root: "/srv/www"
  papersDir: "research"
  author: "Jane Doe"
engine:
  command: "/opt/latexml/bin/latexmlc"
  timeout: "10m"
  verbose: true
defaults:
  category: "BIO"
  type: "PREPRINT"
graph:
  format: "json"
assets:
  basePath: "./site-templates"
`
		configPath := writeConfig(t, t.TempDir(), "site.yaml", content)

		cfg, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Site.Root != "/srv/www" {
			t.Errorf("Site.Root = %q, want %q", cfg.Site.Root, "/srv/www")
		}
		if cfg.Site.PapersDir != "research" {
			t.Errorf("Site.PapersDir = %q, want %q", cfg.Site.PapersDir, "research")
		}
		if cfg.Site.Author != "Jane Doe" {
			t.Errorf("Site.Author = %q, want %q", cfg.Site.Author, "Jane Doe")
		}
		if cfg.Engine.Command != "/opt/latexml/bin/latexmlc" {
			t.Errorf("Engine.Command = %q", cfg.Engine.Command)
		}
		if !cfg.Engine.Verbose {
			t.Error("Engine.Verbose = false, want true")
		}
		if cfg.Defaults.Category != "BIO" || cfg.Defaults.Type != "PREPRINT" {
			t.Errorf("Defaults = %+v", cfg.Defaults)
		}
		if cfg.Graph.Format != "json" {
			t.Errorf("Graph.Format = %q, want json", cfg.Graph.Format)
		}
		if cfg.Assets.BasePath != "./site-templates" {
			t.Errorf("Assets.BasePath = %q", cfg.Assets.BasePath)
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		_, err := LoadConfig("/nonexistent/path/config.yaml")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("invalid YAML returns ErrConfigParse", func(t *testing.T) {
		configPath := writeConfig(t, t.TempDir(), "invalid.yaml", "site: [unclosed")

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("unknown field returns ErrConfigParse in strict mode", func(t *testing.T) {
		content := `site:
  root: "."
unknownField: "should fail"
`
		configPath := writeConfig(t, t.TempDir(), "unknown.yaml", content)

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("field too long returns ErrFieldTooLong", func(t *testing.T) {
		content := "site:\n  author: \"" + strings.Repeat("a", MaxAuthorLength+1) + "\"\n"
		configPath := writeConfig(t, t.TempDir(), "toolong.yaml", content)

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrFieldTooLong) {
			t.Errorf("error = %v, want ErrFieldTooLong", err)
		}
	})

	t.Run("invalid timeout returns ErrInvalidValue", func(t *testing.T) {
		configPath := writeConfig(t, t.TempDir(), "timeout.yaml", "engine:\n  timeout: \"later\"\n")

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrInvalidValue) {
			t.Errorf("error = %v, want ErrInvalidValue", err)
		}
	})

	t.Run("unreadable file returns read error not ErrConfigNotFound", func(t *testing.T) {
		if os.Getuid() == 0 {
			t.Skip("root can read any file")
		}
		configPath := writeConfig(t, t.TempDir(), "unreadable.yaml", "site:\n  root: x\n")
		if err := os.Chmod(configPath, 0000); err != nil {
			t.Fatalf("setup chmod: %v", err)
		}
		defer os.Chmod(configPath, 0600)

		_, err := LoadConfig(configPath)
		if err == nil {
			t.Fatal("expected error for unreadable file")
		}
		if errors.Is(err, ErrConfigNotFound) {
			t.Error("error should not be ErrConfigNotFound for permission error")
		}
	})

	t.Run("config name resolves yaml in current directory", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "mysite.yaml", "site:\n  author: fromname\n")
		chdir(t, dir)

		cfg, err := LoadConfig("mysite")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Site.Author != "fromname" {
			t.Errorf("Site.Author = %q, want %q", cfg.Site.Author, "fromname")
		}
	})

	t.Run("config name resolves yml when yaml not found", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "mysite.yml", "site:\n  author: fromyml\n")
		chdir(t, dir)

		cfg, err := LoadConfig("mysite")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Site.Author != "fromyml" {
			t.Errorf("Site.Author = %q, want %q", cfg.Site.Author, "fromyml")
		}
	})

	t.Run("config name prefers yaml over yml", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "mysite.yaml", "site:\n  author: yaml\n")
		writeConfig(t, dir, "mysite.yml", "site:\n  author: yml\n")
		chdir(t, dir)

		cfg, err := LoadConfig("mysite")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Site.Author != "yaml" {
			t.Errorf("Site.Author = %q, want %q (should prefer .yaml)", cfg.Site.Author, "yaml")
		}
	})

	t.Run("config name resolves from user config directory", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", home)
		t.Setenv("HOME", home)
		userConfigDir, err := os.UserConfigDir()
		if err != nil {
			t.Skip("cannot get user config dir")
		}

		appConfigDir := filepath.Join(userConfigDir, AppName)
		if err := os.MkdirAll(appConfigDir, 0755); err != nil {
			t.Fatalf("setup mkdir: %v", err)
		}
		writeConfig(t, appConfigDir, "usersite.yaml", "site:\n  author: userdir\n")
		chdir(t, t.TempDir())

		cfg, err := LoadConfig("usersite")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Site.Author != "userdir" {
			t.Errorf("Site.Author = %q, want %q", cfg.Site.Author, "userdir")
		}
	})

	t.Run("config name not found returns ErrConfigNotFound", func(t *testing.T) {
		chdir(t, t.TempDir())

		_, err := LoadConfig("nonexistent")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})
}

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"site", false},
		{"./site", true},
		{"configs/site", true},
		{"site.yaml", true},
		{"site.yml", true},
		{`C:\site`, true},
	}
	for _, tt := range tests {
		if got := isFilePath(tt.input); got != tt.want {
			t.Errorf("isFilePath(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestSearchPaths(t *testing.T) {
	t.Parallel()

	paths := SearchPaths("mysite")
	if len(paths) < 2 {
		t.Fatalf("SearchPaths() = %v, want at least the two local candidates", paths)
	}
	if paths[0] != "mysite.yaml" || paths[1] != "mysite.yml" {
		t.Errorf("local candidates = %v, want [mysite.yaml mysite.yml]", paths[:2])
	}
	for _, p := range paths[2:] {
		if filepath.Base(filepath.Dir(p)) != AppName {
			t.Errorf("user candidate %q is not under a %s directory", p, AppName)
		}
	}
}

func TestLoadConfig_ParseErrorShowsSource(t *testing.T) {
	t.Parallel()

	configPath := writeConfig(t, t.TempDir(), "typo.yaml", "site:\n  root: /srv/www\n  papersdir: research\n")

	_, err := LoadConfig(configPath)
	if !errors.Is(err, ErrConfigParse) {
		t.Fatalf("error = %v, want ErrConfigParse", err)
	}
	if !strings.Contains(err.Error(), "papersdir") {
		t.Errorf("error should quote the unknown field, got %q", err)
	}
	if !strings.Contains(err.Error(), configPath) {
		t.Errorf("error should name the file, got %q", err)
	}
}
