package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"github.com/texpub/tex2site"
	"github.com/texpub/tex2site/internal/config"
	"github.com/texpub/tex2site/internal/yamlutil"
)

type configFlags struct {
	json   bool
	config string
}

func newConfigFlagSet(f *configFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.BoolVar(&f.json, "json", false, "output JSON")
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	return fs
}

// runConfigCmd prints the effective configuration: config file, then
// environment, then built-in defaults for anything still empty.
func runConfigCmd(args []string, env *Environment) error {
	var f configFlags
	fs := newConfigFlagSet(&f)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			runHelp([]string{"config"}, env)
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: unexpected argument %q", ErrUsage, fs.Arg(0))
	}

	cfg, err := loadConfiguration(f.config, env)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := fillDefaults(cfg, env); err != nil {
		return err
	}

	var out []byte
	if f.json {
		out, err = json.MarshalIndent(cfg, "", "  ")
		out = append(out, '\n')
	} else {
		out, err = yamlutil.Marshal(cfg)
	}
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	_, err = env.Stdout.Write(out)
	return err
}

// fillDefaults replaces empty fields with the values convert would use.
func fillDefaults(cfg *config.Config, env *Environment) error {
	site, err := buildSite(cfg, env)
	if err != nil {
		return err
	}
	cfg.Site.Root = site.Root
	cfg.Site.PapersDir = site.PapersDir
	cfg.Site.IndexFile = site.IndexFile
	cfg.Site.GraphFile = site.GraphFile
	cfg.Site.Stylesheet = site.Stylesheet

	if cfg.Engine.Command == "" {
		cfg.Engine.Command = tex2site.DefaultEngineCommand
	}
	if cfg.Engine.Timeout == "" {
		cfg.Engine.Timeout = tex2site.DefaultEngineTimeout.String()
	}
	if cfg.Defaults.Category == "" {
		cfg.Defaults.Category = string(tex2site.DefaultCategory)
	}
	if cfg.Defaults.Type == "" {
		cfg.Defaults.Type = tex2site.DefaultType
	}
	if cfg.Graph.Format == "" {
		cfg.Graph.Format = config.GraphFormatJS
	}
	return nil
}
