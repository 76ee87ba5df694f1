package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrMarkdownRender indicates a description could not be rendered.
var ErrMarkdownRender = errors.New("markdown rendering failed")

// MarkdownRenderer renders short Markdown snippets (paper descriptions) to HTML.
type MarkdownRenderer struct {
	md goldmark.Markdown
}

// NewMarkdownRenderer creates a renderer with links, strikethrough and smart
// punctuation. Raw HTML in the input is dropped.
func NewMarkdownRenderer() *MarkdownRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Linkify,
			extension.Strikethrough,
			extension.Typographer,
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
			// Note: WithUnsafe() intentionally NOT used.
		),
	)
	return &MarkdownRenderer{md: md}
}

// Render converts src to an HTML fragment. Empty input renders to "".
func (r *MarkdownRenderer) Render(src string) (string, error) {
	if strings.TrimSpace(src) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMarkdownRender, err)
	}
	return strings.TrimSpace(buf.String()), nil
}
