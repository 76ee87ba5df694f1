package assets

import (
	"errors"
	"fmt"
	"html/template"
	"slices"
	"strings"
)

// Names of the templates used to build a site page and its listing entry.
const (
	PaperTemplate = "paper"
	EntryTemplate = "entry"
)

// TemplateNames lists every template a loader is expected to provide.
var TemplateNames = []string{PaperTemplate, EntryTemplate}

var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrUnknownTemplate  = errors.New("unknown template")
	ErrTemplateParse    = errors.New("template does not parse")
	ErrInvalidBasePath  = errors.New("invalid template directory")
	ErrTemplateRead     = errors.New("failed to read template")
	ErrPathTraversal    = errors.New("template path escapes template directory")
)

// AssetLoader returns the source of a template by name.
type AssetLoader interface {
	// LoadTemplate returns ErrUnknownTemplate for names outside
	// TemplateNames and ErrTemplateNotFound when the loader lacks the file.
	LoadTemplate(name string) (string, error)
}

// templateFile maps a template name to its file under templates/.
func templateFile(name string) (string, error) {
	if !slices.Contains(TemplateNames, name) {
		return "", fmt.Errorf("%w: %q (known: %s)", ErrUnknownTemplate, name, strings.Join(TemplateNames, ", "))
	}
	return name + ".html", nil
}

// Parse loads name from loader and parses it as an html/template.
func Parse(loader AssetLoader, name string) (*template.Template, error) {
	content, err := loader.LoadTemplate(name)
	if err != nil {
		return nil, err
	}
	tmpl, err := template.New(name).Parse(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateParse, name, err)
	}
	return tmpl, nil
}

// Check parses every template in TemplateNames and joins the failures.
func Check(loader AssetLoader) error {
	var errs []error
	for _, name := range TemplateNames {
		if _, err := Parse(loader, name); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
