package tex2site

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"regexp"
	"strings"

	"github.com/texpub/tex2site/internal/assets"
	"github.com/texpub/tex2site/internal/pipeline"
)

// SiteIntegrator links a published page into the site's listing and
// suggests its graph node.
type SiteIntegrator struct {
	site  Site
	entry *template.Template
}

// ListingResult describes an AddToListing call.
// When Inserted is false, Reason says why and Entry holds the markup to add by hand.
type ListingResult struct {
	Inserted  bool
	Label     string
	Entry     string
	Duplicate bool
	Reason    string
}

// entryData is the entry.html template input.
type entryData struct {
	Title string
	Date  string
	Type  string
	Href  string
}

// NewSiteIntegrator loads and parses the listing entry template from loader.
// A nil loader uses the embedded templates.
func NewSiteIntegrator(site Site, loader assets.AssetLoader) (*SiteIntegrator, error) {
	if loader == nil {
		loader = assets.NewEmbeddedLoader()
	}

	tmpl, err := assets.Parse(loader, assets.EntryTemplate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageRender, err)
	}

	return &SiteIntegrator{site: site, entry: tmpl}, nil
}

// RenderEntry renders the listing entry for slug.
func (i *SiteIntegrator) RenderEntry(meta *Metadata, slug string) (string, error) {
	var buf bytes.Buffer
	err := i.entry.Execute(&buf, entryData{
		Title: meta.Title,
		Date:  meta.Date,
		Type:  meta.Type,
		Href:  i.site.PaperHref(slug),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPageRender, err)
	}
	return buf.String(), nil
}

// AddToListing inserts an entry for slug at the end of its category's list
// in the listing file. The file is only written when the section is found.
// Running twice inserts twice; Duplicate reports an existing link.
func (i *SiteIntegrator) AddToListing(meta *Metadata, slug string) (*ListingResult, error) {
	path := i.site.IndexPath()
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrListingNotFound, path)
		}
		return nil, fmt.Errorf("reading listing: %w", err)
	}
	data, err := os.ReadFile(path) // #nosec G304 -- listing path comes from site config
	if err != nil {
		return nil, fmt.Errorf("reading listing: %w", err)
	}

	entry, err := i.RenderEntry(meta, slug)
	if err != nil {
		return nil, err
	}

	doc := string(data)
	href := i.site.PaperHref(slug)
	result := &ListingResult{
		Label:     meta.Category.Label(),
		Entry:     entry,
		Duplicate: strings.Contains(doc, `href="`+href+`"`),
	}

	ins := pipeline.InsertIntoSection(doc, section(meta.Category), otherSections(meta.Category), entry)
	if !ins.Found {
		result.Reason = ins.Reason
		return result, nil
	}

	if err := os.WriteFile(path, []byte(ins.Document), info.Mode().Perm()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrListingWrite, err)
	}
	result.Inserted = true
	return result, nil
}

// ListingStatus reports, for every category, why its list container cannot
// be located in the listing file. An empty reason means the section is usable.
func (i *SiteIntegrator) ListingStatus() (map[Category]string, error) {
	data, err := os.ReadFile(i.site.IndexPath()) // #nosec G304 -- listing path comes from site config
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrListingNotFound, i.site.IndexPath())
		}
		return nil, fmt.Errorf("reading listing: %w", err)
	}

	doc := string(data)
	status := make(map[Category]string, len(Categories))
	for _, c := range Categories {
		_, reason := pipeline.LocateContainer(doc, section(c), otherSections(c))
		status[c] = reason
	}
	return status, nil
}

// SuggestGraphNode builds the graph node for a published paper.
func (i *SiteIntegrator) SuggestGraphNode(meta *Metadata, slug string) *GraphNode {
	return NewGraphNode(meta, slug)
}

// GraphHasNode reports whether the graph dataset already contains id.
// A missing dataset is not an error.
func (i *SiteIntegrator) GraphHasNode(id string) (bool, error) {
	data, err := os.ReadFile(i.site.GraphPath()) // #nosec G304 -- graph path comes from site config
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("reading graph data: %w", err)
	}

	pattern := regexp.MustCompile(`["']?\bid["']?\s*:\s*["']` + regexp.QuoteMeta(id) + `["']`)
	return pattern.Match(data), nil
}

func section(c Category) pipeline.Section {
	return pipeline.Section{Key: string(c), Label: c.Label()}
}

func otherSections(c Category) []pipeline.Section {
	others := make([]pipeline.Section, 0, len(Categories)-1)
	for _, o := range Categories {
		if o != c {
			others = append(others, section(o))
		}
	}
	return others
}
