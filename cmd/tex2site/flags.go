package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// metadataFlags holds paper metadata flags.
type metadataFlags struct {
	title       string
	slug        string
	category    string
	date        string
	docType     string
	tags        string
	subtitle    string
	description string
}

// siteFlags holds flags locating the website.
type siteFlags struct {
	root string
}

// outputFlags holds pipeline mode and console output flags.
type outputFlags struct {
	noIntegrate bool
	outputOnly  bool
	graphFormat string
	noColor     bool
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common  commonFlags
	meta    metadataFlags
	site    siteFlags
	output  outputFlags
	timeout string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors and warnings")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show engine log and timing")
}

// addMetadataFlags adds paper metadata flags to a FlagSet.
func addMetadataFlags(fs *flag.FlagSet, f *metadataFlags) {
	fs.StringVar(&f.title, "title", "", "paper title (\"\" = \\title of the source)")
	fs.StringVar(&f.slug, "slug", "", "output name (\"\" = derived from the title)")
	fs.StringVar(&f.category, "category", "", "category: AI, BIO, THEORY, PHILOSOPHY")
	fs.StringVar(&f.date, "date", "", "date: \"auto\", \"auto:FORMAT\", or YYYY-MM-DD")
	fs.StringVar(&f.docType, "type", "", "paper type shown on the page")
	fs.StringVar(&f.tags, "tags", "", "comma-separated tags")
	fs.StringVar(&f.subtitle, "subtitle", "", "paper subtitle")
	fs.StringVar(&f.description, "description", "", "abstract, Markdown allowed")
}

// addSiteFlags adds site location flags to a FlagSet.
func addSiteFlags(fs *flag.FlagSet, f *siteFlags) {
	fs.StringVar(&f.root, "site-root", "", "website root directory (\"\" = current directory)")
}

// addOutputFlags adds mode and console flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.BoolVar(&f.noIntegrate, "no-integrate", false, "do not touch the listing or suggest a graph node")
	fs.BoolVar(&f.outputOnly, "output-only", false, "write the page only, skip figures and integration")
	fs.StringVar(&f.graphFormat, "graph-format", "", "graph node format: js, json")
	fs.BoolVar(&f.noColor, "no-color", false, "disable syntax highlighting")
}

// newConvertFlagSet registers every convert flag on a new FlagSet bound to f.
// Shared by parsing and shell completion.
func newConvertFlagSet(f *convertFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)

	fs.StringVarP(&f.timeout, "timeout", "t", "", "conversion timeout (e.g., 90s, 10m)")

	addCommonFlags(fs, &f.common)
	addMetadataFlags(fs, &f.meta)
	addSiteFlags(fs, &f.site)
	addOutputFlags(fs, &f.output)

	return fs
}

// parseConvertFlags parses convert command flags and returns positional args.
// Usage goes to w on -h or a parse error.
func parseConvertFlags(args []string, w io.Writer) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := newConvertFlagSet(f)
	fs.SetOutput(io.Discard)
	fs.Usage = func() { printConvertUsage(w) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
