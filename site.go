package tex2site

import (
	"path/filepath"
	"strings"
)

// Default site layout, relative to the site root.
const (
	DefaultPapersDir  = "papers"
	DefaultIndexFile  = "index.html"
	DefaultGraphFile  = "graph-data.js"
	DefaultStylesheet = "scripts/latexml-terminal.css"
)

// Site locates the website files a run reads and writes.
// All paths except Root are relative to Root.
type Site struct {
	Root       string
	PapersDir  string
	IndexFile  string
	GraphFile  string
	Stylesheet string
	Author     string // appended to page titles, optional
}

// DefaultSite returns the default layout rooted at root.
func DefaultSite(root string) Site {
	return Site{
		Root:       root,
		PapersDir:  DefaultPapersDir,
		IndexFile:  DefaultIndexFile,
		GraphFile:  DefaultGraphFile,
		Stylesheet: DefaultStylesheet,
	}
}

// PapersPath returns the absolute-or-root-relative papers directory.
func (s Site) PapersPath() string {
	return filepath.Join(s.Root, s.PapersDir)
}

// OutputPath returns the page path for slug.
func (s Site) OutputPath(slug string) string {
	return filepath.Join(s.PapersPath(), slug+".html")
}

// FiguresDir returns the figures directory for slug.
func (s Site) FiguresDir(slug string) string {
	return filepath.Join(s.PapersPath(), slug+"_figures")
}

// IndexPath returns the listing file path.
func (s Site) IndexPath() string {
	return filepath.Join(s.Root, s.IndexFile)
}

// GraphPath returns the graph dataset path.
func (s Site) GraphPath() string {
	return filepath.Join(s.Root, s.GraphFile)
}

// StylesheetPath returns the stylesheet path handed to the engine.
func (s Site) StylesheetPath() string {
	return filepath.Join(s.Root, s.Stylesheet)
}

// PaperHref returns the link to slug's page as seen from the listing file.
func (s Site) PaperHref(slug string) string {
	return relHref(filepath.Dir(s.IndexPath()), s.OutputPath(slug))
}

// IndexHref returns the link to the listing file as seen from a paper page.
func (s Site) IndexHref() string {
	return relHref(s.PapersPath(), s.IndexPath())
}

// StylesheetHref returns the link to the stylesheet as seen from a paper page.
func (s Site) StylesheetHref() string {
	return relHref(s.PapersPath(), s.StylesheetPath())
}

// relHref returns target relative to base as a slash-separated URL path.
// Falls back to the slash form of target if no relative path exists.
func relHref(base, target string) string {
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return filepath.ToSlash(target)
	}
	return strings.TrimPrefix(filepath.ToSlash(rel), "./")
}
