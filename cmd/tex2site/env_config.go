package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/texpub/tex2site/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // TEX2SITE_CONFIG: config file name or path
	SiteRoot   string        // TEX2SITE_SITE_ROOT: website root
	Engine     string        // TEX2SITE_ENGINE: latexmlc binary
	Timeout    time.Duration // TEX2SITE_TIMEOUT: conversion timeout
	Category   string        // TEX2SITE_CATEGORY: default category
	Author     string        // TEX2SITE_AUTHOR: page title suffix
}

// knownEnvVars lists valid TEX2SITE_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"TEX2SITE_CONFIG":    true,
	"TEX2SITE_SITE_ROOT": true,
	"TEX2SITE_ENGINE":    true,
	"TEX2SITE_TIMEOUT":   true,
	"TEX2SITE_CATEGORY":  true,
	"TEX2SITE_AUTHOR":    true,
}

// loadEnvConfig reads configuration from environment variables.
// An unparsable or non-positive TEX2SITE_TIMEOUT is ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("TEX2SITE_CONFIG"),
		SiteRoot:   getenv("TEX2SITE_SITE_ROOT"),
		Engine:     getenv("TEX2SITE_ENGINE"),
		Category:   getenv("TEX2SITE_CATEGORY"),
		Author:     getenv("TEX2SITE_AUTHOR"),
	}

	if timeout := getenv("TEX2SITE_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized TEX2SITE_* variables.
// Helps catch typos like TEX2SITE_ROOT instead of TEX2SITE_SITE_ROOT.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, env := range environ {
		if strings.HasPrefix(env, "TEX2SITE_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config, overriding
// config file values. Resulting order: CLI flags > env vars > config file >
// defaults (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.SiteRoot != "" {
		cfg.Site.Root = env.SiteRoot
	}
	if env.Engine != "" {
		cfg.Engine.Command = env.Engine
	}
	if env.Timeout > 0 {
		cfg.Engine.Timeout = env.Timeout.String()
	}
	if env.Category != "" {
		cfg.Defaults.Category = env.Category
	}
	if env.Author != "" {
		cfg.Site.Author = env.Author
	}
}

// loadConfiguration loads the config named by the flag, else TEX2SITE_CONFIG,
// else returns the empty default, then layers environment values on top.
func loadConfiguration(flagConfig string, env *Environment) (*config.Config, error) {
	envCfg := loadEnvConfig(env.getenv)
	warnUnknownEnvVars(env.Stderr, env.environ())

	name := flagConfig
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w%s", err, configHint(name, err))
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)
	return cfg, nil
}
