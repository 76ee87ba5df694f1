package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/texpub/tex2site/internal/fileutil"
	"github.com/texpub/tex2site/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// AppName names the per-user config directory.
const AppName = "tex2site"

// Field length limits.
const (
	MaxPathLength     = 4096 // PATH_MAX on Linux
	MaxAuthorLength   = 100
	MaxCommandLength  = 4096
	MaxDurationLength = 20  // "5m", "90s", "1h30m"
	MaxTypeLength     = 50  // "RESEARCH PAPER"
	MaxCategoryLength = 20  // "PHILOSOPHY"
	MaxFormatLength   = 10  // "js", "json"
)

// Graph suggestion formats.
const (
	GraphFormatJS   = "js"
	GraphFormatJSON = "json"
)

// Config holds all configuration for publishing a paper.
type Config struct {
	Site     SiteConfig     `yaml:"site" json:"site"`
	Engine   EngineConfig   `yaml:"engine" json:"engine"`
	Defaults DefaultsConfig `yaml:"defaults" json:"defaults"`
	Graph    GraphConfig    `yaml:"graph" json:"graph"`
	Assets   AssetsConfig   `yaml:"assets" json:"assets"`
}

// SiteConfig locates the website. Paths other than Root are relative to Root.
type SiteConfig struct {
	Root       string `yaml:"root" json:"root"`             // Empty = current directory
	PapersDir  string `yaml:"papersDir" json:"papersDir"`   // Default "papers"
	IndexFile  string `yaml:"indexFile" json:"indexFile"`   // Default "index.html"
	GraphFile  string `yaml:"graphFile" json:"graphFile"`   // Default "graph-data.js"
	Stylesheet string `yaml:"stylesheet" json:"stylesheet"` // Default "scripts/latexml-terminal.css"
	Author     string `yaml:"author" json:"author"`         // Appended to page titles
}

// EngineConfig defines how the conversion engine is invoked.
type EngineConfig struct {
	Command string `yaml:"command" json:"command"` // Default "latexmlc"
	Timeout string `yaml:"timeout" json:"timeout"` // Go duration, default "5m"
	Verbose bool   `yaml:"verbose" json:"verbose"`
}

// DefaultsConfig provides metadata defaults for new papers.
type DefaultsConfig struct {
	Category string `yaml:"category" json:"category"` // AI, BIO, THEORY, PHILOSOPHY
	Type     string `yaml:"type" json:"type"`         // Default "RESEARCH PAPER"
}

// GraphConfig defines how the graph-node suggestion is printed.
type GraphConfig struct {
	Format string `yaml:"format" json:"format"` // "js" (default) or "json"
}

// AssetsConfig defines template override options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath" json:"basePath"` // Empty = use embedded templates
}

// TimeoutDuration parses Engine.Timeout. Returns 0 when unset.
func (e EngineConfig) TimeoutDuration() (time.Duration, error) {
	if e.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(e.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: engine.timeout %q: %v", ErrInvalidValue, e.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: engine.timeout must be positive, got %s", ErrInvalidValue, e.Timeout)
	}
	return d, nil
}

// Validate checks field lengths and enumerated values.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	paths := []struct {
		name  string
		value string
	}{
		{"site.root", c.Site.Root},
		{"site.papersDir", c.Site.PapersDir},
		{"site.indexFile", c.Site.IndexFile},
		{"site.graphFile", c.Site.GraphFile},
		{"site.stylesheet", c.Site.Stylesheet},
		{"assets.basePath", c.Assets.BasePath},
	}
	for _, p := range paths {
		if err := validateFieldLength(p.name, p.value, MaxPathLength); err != nil {
			return err
		}
	}

	if err := validateFieldLength("site.author", c.Site.Author, MaxAuthorLength); err != nil {
		return err
	}

	if err := validateFieldLength("engine.command", c.Engine.Command, MaxCommandLength); err != nil {
		return err
	}
	if err := validateFieldLength("engine.timeout", c.Engine.Timeout, MaxDurationLength); err != nil {
		return err
	}
	if _, err := c.Engine.TimeoutDuration(); err != nil {
		return err
	}

	if err := validateFieldLength("defaults.category", c.Defaults.Category, MaxCategoryLength); err != nil {
		return err
	}
	if err := validateFieldLength("defaults.type", c.Defaults.Type, MaxTypeLength); err != nil {
		return err
	}

	if err := validateFieldLength("graph.format", c.Graph.Format, MaxFormatLength); err != nil {
		return err
	}
	switch strings.ToLower(c.Graph.Format) {
	case "", GraphFormatJS, GraphFormatJSON:
	default:
		return fmt.Errorf("%w: graph.format %q (must be %s or %s)", ErrInvalidValue, c.Graph.Format, GraphFormatJS, GraphFormatJSON)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns an empty configuration. Empty fields mean
// "use the built-in default" to every consumer.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !isFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := yamlutil.DecodeFile(configPath, &cfg); err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		case errors.Is(err, yamlutil.ErrInvalidYAML), errors.Is(err, yamlutil.ErrInputTooLarge), errors.Is(err, yamlutil.ErrNilData):
			return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
		default:
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

var configExtensions = []string{".yaml", ".yml"}

// isFilePath reports whether s names a file directly rather than a config
// name to search for.
func isFilePath(s string) bool {
	return fileutil.IsFilePath(s) || fileutil.HasExtension(s, configExtensions)
}

// SearchPaths returns the candidate files for a config name, in lookup
// order: NAME.yaml and NAME.yml in the current directory, then the same
// names under {UserConfigDir}/tex2site/.
func SearchPaths(name string) []string {
	paths := make([]string, 0, len(configExtensions)*2)

	for _, ext := range configExtensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range configExtensions {
			paths = append(paths, filepath.Join(userConfigDir, AppName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file of SearchPaths(name).
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
