package tex2site

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"strings"

	"github.com/texpub/tex2site/internal/assets"
	"github.com/texpub/tex2site/internal/fileutil"
	"github.com/texpub/tex2site/internal/pipeline"
)

// PageWrapper wraps converted documents in the site's page template.
type PageWrapper struct {
	site     Site
	tmpl     *template.Template
	markdown *pipeline.MarkdownRenderer
}

// pageData is the paper.html template input.
type pageData struct {
	PageTitle       string
	Title           string
	Subtitle        string
	Description     string // plain text for <meta name="description">
	DescriptionHTML template.HTML
	Date            string
	Type            string
	Tags            []string
	IndexHref       string
	StylesheetHref  string
	Content         template.HTML
}

// NewPageWrapper loads and parses the paper template from loader.
// A nil loader uses the embedded templates.
func NewPageWrapper(site Site, loader assets.AssetLoader) (*PageWrapper, error) {
	if loader == nil {
		loader = assets.NewEmbeddedLoader()
	}

	tmpl, err := assets.Parse(loader, assets.PaperTemplate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageRender, err)
	}

	return &PageWrapper{
		site:     site,
		tmpl:     tmpl,
		markdown: pipeline.NewMarkdownRenderer(),
	}, nil
}

// Render builds the page for a raw artifact. The body of the artifact is
// inserted verbatim; bodyFound is false when the artifact had no
// <body>...</body> pair and was inserted whole.
func (w *PageWrapper) Render(raw string, meta *Metadata) (page string, bodyFound bool, err error) {
	content, bodyFound := pipeline.ExtractBody(raw)

	description, err := w.markdown.Render(meta.Description)
	if err != nil {
		return "", bodyFound, fmt.Errorf("%w: %v", ErrPageRender, err)
	}

	data := pageData{
		PageTitle:       pageTitle(meta.Title, w.site.Author),
		Title:           meta.Title,
		Subtitle:        meta.Subtitle,
		Description:     strings.Join(strings.Fields(meta.Description), " "),
		DescriptionHTML: template.HTML(description), // #nosec G203 -- goldmark output, raw HTML disabled
		Date:            meta.Date,
		Type:            meta.Type,
		Tags:            meta.Tags,
		IndexHref:       w.site.IndexHref(),
		StylesheetHref:  w.site.StylesheetHref(),
		Content:         template.HTML(content), // #nosec G203 -- engine output is trusted and kept verbatim
	}

	var buf bytes.Buffer
	if err := w.tmpl.Execute(&buf, data); err != nil {
		return "", bodyFound, fmt.Errorf("%w: %v", ErrPageRender, err)
	}
	return buf.String(), bodyFound, nil
}

// WriteFile reads the artifact at artifactPath, renders it and writes the
// page to outPath, creating parent directories and overwriting any
// existing page.
func (w *PageWrapper) WriteFile(artifactPath, outPath string, meta *Metadata) (bodyFound bool, err error) {
	raw, err := os.ReadFile(artifactPath) // #nosec G304 -- artifact path is built by the pipeline
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrReadArtifact, err)
	}

	page, bodyFound, err := w.Render(string(raw), meta)
	if err != nil {
		return bodyFound, err
	}

	if err := fileutil.WriteFile(outPath, []byte(page)); err != nil {
		return bodyFound, fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return bodyFound, nil
}

func pageTitle(title, author string) string {
	if author == "" {
		return title
	}
	return title + " | " + author
}
