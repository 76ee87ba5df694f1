package assets

import (
	"embed"
	"fmt"
	"path"
)

//go:embed templates/*.html
var templates embed.FS

// EmbeddedLoader serves the templates compiled into the binary.
type EmbeddedLoader struct{}

func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

func (e *EmbeddedLoader) LoadTemplate(name string) (string, error) {
	file, err := templateFile(name)
	if err != nil {
		return "", err
	}

	content, err := templates.ReadFile(path.Join("templates", file))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}
	return string(content), nil
}

var _ AssetLoader = (*EmbeddedLoader)(nil)
