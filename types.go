package tex2site

import (
	"fmt"
	"strings"
	"time"
)

// Category identifies the listing section a paper belongs to.
type Category string

// Category constants.
const (
	CategoryAI         Category = "AI"
	CategoryBio        Category = "BIO"
	CategoryTheory     Category = "THEORY"
	CategoryPhilosophy Category = "PHILOSOPHY"
)

// DefaultCategory is used when no category is given.
const DefaultCategory = CategoryTheory

// Categories lists every category in display order.
var Categories = []Category{CategoryAI, CategoryBio, CategoryTheory, CategoryPhilosophy}

// categoryLabels maps categories to the heading text used on the listing page.
var categoryLabels = map[Category]string{
	CategoryAI:         "AI VERIFICATION & SECURITY",
	CategoryBio:        "COMPUTATIONAL BIOLOGY & GENOMICS",
	CategoryTheory:     "THEORETICAL FOUNDATIONS",
	CategoryPhilosophy: "PHILOSOPHY & EPISTEMOLOGY",
}

// Graph tiers (vertical position bands).
const (
	TierFoundational = 100 // tier 1: philosophy
	TierTheory       = 300 // tier 2: foundational theory
	TierDomain       = 500 // tier 3: domain applications
)

// ParseCategory parses a category name (case-insensitive).
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := categoryLabels[c]; !ok {
		return "", fmt.Errorf("%w: %q (must be AI, BIO, THEORY, or PHILOSOPHY)", ErrInvalidCategory, s)
	}
	return c, nil
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label returns the listing section heading for the category.
// Unknown categories return their raw name.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// Tier returns the vertical graph position band for the category.
func (c Category) Tier() int {
	switch c {
	case CategoryPhilosophy:
		return TierFoundational
	case CategoryTheory:
		return TierTheory
	default:
		return TierDomain
	}
}

// NodeType returns the graph node type matching the category.
func (c Category) NodeType() string {
	switch c {
	case CategoryAI:
		return "ai-security"
	case CategoryBio:
		return "biology"
	default:
		return "theory"
	}
}

// DefaultType is the paper type shown when none is given.
const DefaultType = "RESEARCH PAPER"

// Metadata describes a paper. It is built once per run and not modified
// after validation.
type Metadata struct {
	Title       string
	Date        string // YYYY-MM-DD, "auto" or "auto:FORMAT"; Publish resolves it, see ResolveDate
	Type        string
	Category    Category
	Tags        []string
	Subtitle    string // optional
	Description string // optional, Markdown
}

// Validate checks that metadata is complete enough to publish.
func (m *Metadata) Validate() error {
	if strings.TrimSpace(m.Title) == "" {
		return ErrEmptyTitle
	}
	if !m.Category.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, m.Category)
	}
	if strings.TrimSpace(m.Date) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidDate)
	}
	// Only the form is checked here; the clock does not matter.
	if _, err := ResolveDate(m.Date, time.Time{}); err != nil {
		return err
	}
	return nil
}

// ParseTags splits a comma-separated tag list, trimming blanks and dropping
// empty entries. Order is preserved.
func ParseTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// Mode selects which pipeline stages run after conversion.
type Mode int

const (
	// ModeFull runs every stage.
	ModeFull Mode = iota
	// ModeNoIntegrate copies figures and writes the page, but leaves the site alone.
	ModeNoIntegrate
	// ModeOutputOnly writes the page only.
	ModeOutputOnly
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeFull:
		return "full"
	case ModeNoIntegrate:
		return "no-integrate"
	case ModeOutputOnly:
		return "output-only"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Job describes a single publish run.
type Job struct {
	Source string // path to the .tex file
	Slug   string
	Meta   *Metadata
	Mode   Mode
}

// Result holds the outcome of a publish run.
// Warnings collects degraded steps that did not stop the pipeline.
type Result struct {
	OutputPath      string
	EngineLog       string
	Figures         *FigureReport
	Listing         *ListingResult
	GraphNode       *GraphNode
	GraphNodeExists bool
	BodyFound       bool
	Warnings        []string
}

func (r *Result) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}
