package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: tex2site <command> [flags] [args]")
	fmt.Fprintln(w, "       tex2site <input.tex> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert     Publish a LaTeX paper to the site (default)")
	fmt.Fprintln(w, "  doctor      Check the engine and the site layout")
	fmt.Fprintln(w, "  config      Show the effective configuration")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'tex2site help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: tex2site convert <input.tex> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert a LaTeX paper with LaTeXML, wrap it in the site's page template,")
	fmt.Fprintln(w, "copy its figures, and add it to the papers listing.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    LaTeX source file (.tex)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Paper:")
	fmt.Fprintln(w, "      --title <s>           Title (\"\" = \\title of the source, then file name)")
	fmt.Fprintln(w, "      --slug <s>            Output name: letters, digits, underscore")
	fmt.Fprintln(w, "      --category <s>        AI, BIO, THEORY (default), PHILOSOPHY")
	fmt.Fprintln(w, "      --date <s>            Date: \"auto\" (default), \"auto:FORMAT\", or YYYY-MM-DD")
	fmt.Fprintln(w, "                            Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D")
	fmt.Fprintln(w, "                            Presets (case-insensitive): iso, long, month, short")
	fmt.Fprintln(w, "      --type <s>            Paper type (default \"RESEARCH PAPER\")")
	fmt.Fprintln(w, "      --tags <s>            Comma-separated tags")
	fmt.Fprintln(w, "      --subtitle <s>        Subtitle")
	fmt.Fprintln(w, "      --description <s>     Abstract, Markdown allowed")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Site:")
	fmt.Fprintln(w, "      --site-root <path>    Website root (default: current directory)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -t, --timeout <d>         Conversion timeout (default 5m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Mode:")
	fmt.Fprintln(w, "      --no-integrate        Write page and figures, leave the listing alone")
	fmt.Fprintln(w, "      --output-only         Write the page only")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "      --graph-format <s>    Graph node format: js (default), json")
	fmt.Fprintln(w, "      --no-color            Disable syntax highlighting")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors and warnings")
	fmt.Fprintln(w, "  -v, --verbose             Show engine log and timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  TEX2SITE_CONFIG, TEX2SITE_SITE_ROOT, TEX2SITE_ENGINE, TEX2SITE_TIMEOUT,")
	fmt.Fprintln(w, "  TEX2SITE_CATEGORY, TEX2SITE_AUTHOR")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: tex2site doctor [--json] [--site-root <path>] [-c <config>]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check that latexmlc is installed and the site layout is usable.")
	case "config":
		fmt.Fprintln(env.Stdout, "Usage: tex2site config [--json] [-c <config>]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show the effective configuration after config file, environment,")
		fmt.Fprintln(env.Stdout, "and built-in defaults are applied.")
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: tex2site version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: tex2site help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
