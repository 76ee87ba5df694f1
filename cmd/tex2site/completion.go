package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"github.com/texpub/tex2site/internal/config"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

type flagType int

const (
	flagString flagType = iota
	flagBool
	flagEnum
	flagFile
	flagDir
)

// flagDef is one flag as the completion scripts see it.
type flagDef struct {
	Long     string
	Short    string
	Type     flagType
	Desc     string
	Values   []string // flagEnum
	FileGlob string   // flagFile, comma separated
}

type commandDef struct {
	Name        string
	Desc        string
	Flags       []flagDef
	FilePattern string // positional file glob, empty when none
}

// completionHint adds what a FlagSet cannot express: the values a flag
// accepts. At most one field is set.
type completionHint struct {
	Values   []string
	FileGlob string
	IsDir    bool
}

const configGlob = "*.yaml,*.yml"

// flagHints is keyed by long flag name and shared by every command.
var flagHints = map[string]completionHint{
	"category":     {Values: categoryNames()},
	"graph-format": {Values: []string{config.GraphFormatJS, config.GraphFormatJSON}},
	"date":         {Values: []string{"auto", "auto:iso", "auto:long", "auto:month", "auto:short"}},
	"config":       {FileGlob: configGlob},
	"site-root":    {IsDir: true},
}

// extractFlagsFromFlagSet lists fs in definition order, typed by flagHints
// and by whether the flag is a boolean switch.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef
	fs.SortFlags = false
	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{Long: f.Name, Short: f.Shorthand, Desc: f.Usage}
		if f.Value.Type() == "bool" {
			fd.Type = flagBool
		}
		hint := flagHints[f.Name]
		switch {
		case len(hint.Values) > 0:
			fd.Type, fd.Values = flagEnum, hint.Values
		case hint.FileGlob != "":
			fd.Type, fd.FileGlob = flagFile, hint.FileGlob
		case hint.IsDir:
			fd.Type = flagDir
		}
		flags = append(flags, fd)
	})
	return flags
}

// getCommands is the completion registry. Flags are read from the same
// FlagSets the commands parse with, so the scripts cannot drift.
func getCommands() []commandDef {
	return []commandDef{
		{
			Name:        "convert",
			Desc:        "Publish a LaTeX paper to the site",
			Flags:       extractFlagsFromFlagSet(newConvertFlagSet(&convertFlags{})),
			FilePattern: "*.tex",
		},
		{
			Name:  "doctor",
			Desc:  "Check the engine and the site layout",
			Flags: extractFlagsFromFlagSet(newDoctorFlagSet(&doctorFlags{})),
		},
		{
			Name:  "config",
			Desc:  "Show the effective configuration",
			Flags: extractFlagsFromFlagSet(newConfigFlagSet(&configFlags{})),
		},
		{Name: "completion", Desc: "Generate shell completion script"},
		{Name: "version", Desc: "Show version information"},
		{Name: "help", Desc: "Show help for a command"},
	}
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	switch shell {
	case ShellBash:
		return generateBash(w)
	case ShellZsh:
		return generateZsh(w)
	case ShellFish:
		return generateFish(w)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish)", ErrUnsupportedShell, shell)
	}
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}

	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: tex2site completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(tex2site completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (before compinit):")
	fmt.Fprintln(w, "    eval \"$(tex2site completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    tex2site completion fish > ~/.config/fish/completions/tex2site.fish")
}
