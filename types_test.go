package tex2site

// Notes:
// - Category mappings (label, tier, node type) are what the listing and graph
//   rely on, so each category is checked explicitly.

import (
	"errors"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestCategory - Parsing and mappings
// ---------------------------------------------------------------------------

func TestParseCategory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Category
		wantErr error
	}{
		{input: "AI", want: CategoryAI},
		{input: "bio", want: CategoryBio},
		{input: " Theory ", want: CategoryTheory},
		{input: "philosophy", want: CategoryPhilosophy},
		{input: "MATH", wantErr: ErrInvalidCategory},
		{input: "", wantErr: ErrInvalidCategory},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := ParseCategory(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseCategory(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCategory(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseCategory(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCategory_Mappings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		category Category
		label    string
		tier     int
		nodeType string
	}{
		{CategoryAI, "AI VERIFICATION & SECURITY", 500, "ai-security"},
		{CategoryBio, "COMPUTATIONAL BIOLOGY & GENOMICS", 500, "biology"},
		{CategoryTheory, "THEORETICAL FOUNDATIONS", 300, "theory"},
		{CategoryPhilosophy, "PHILOSOPHY & EPISTEMOLOGY", 100, "theory"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(string(tt.category), func(t *testing.T) {
			t.Parallel()

			if !tt.category.Valid() {
				t.Errorf("Valid() = false")
			}
			if got := tt.category.Label(); got != tt.label {
				t.Errorf("Label() = %q, want %q", got, tt.label)
			}
			if got := tt.category.Tier(); got != tt.tier {
				t.Errorf("Tier() = %d, want %d", got, tt.tier)
			}
			if got := tt.category.NodeType(); got != tt.nodeType {
				t.Errorf("NodeType() = %q, want %q", got, tt.nodeType)
			}
		})
	}
}

func TestCategory_Unknown(t *testing.T) {
	t.Parallel()

	c := Category("MATH")
	if c.Valid() {
		t.Error("Valid() = true for unknown category")
	}
	if c.Label() != "MATH" {
		t.Errorf("Label() = %q, want raw name", c.Label())
	}
}

// ---------------------------------------------------------------------------
// TestMetadata_Validate
// ---------------------------------------------------------------------------

func TestMetadata_Validate(t *testing.T) {
	t.Parallel()

	valid := func() Metadata {
		return Metadata{Title: "T", Date: "2024-03-15", Type: DefaultType, Category: CategoryAI}
	}

	tests := []struct {
		name    string
		mutate  func(m *Metadata)
		wantErr error
	}{
		{name: "valid", mutate: func(m *Metadata) {}},
		{name: "auto date", mutate: func(m *Metadata) { m.Date = "auto" }},
		{name: "auto with format", mutate: func(m *Metadata) { m.Date = "auto:MMMM YYYY" }},
		{name: "free text date", mutate: func(m *Metadata) { m.Date = "garbage" }, wantErr: ErrInvalidDate},
		{name: "display text is not a date", mutate: func(m *Metadata) { m.Date = "March 2024" }, wantErr: ErrInvalidDate},
		{name: "impossible date", mutate: func(m *Metadata) { m.Date = "2024-02-30" }, wantErr: ErrInvalidDate},
		{name: "unclosed bracket in format", mutate: func(m *Metadata) { m.Date = "auto:[YYYY" }, wantErr: ErrInvalidDate},
		{name: "blank title", mutate: func(m *Metadata) { m.Title = "  " }, wantErr: ErrEmptyTitle},
		{name: "unknown category", mutate: func(m *Metadata) { m.Category = "MATH" }, wantErr: ErrInvalidCategory},
		{name: "empty category", mutate: func(m *Metadata) { m.Category = "" }, wantErr: ErrInvalidCategory},
		{name: "empty date", mutate: func(m *Metadata) { m.Date = "" }, wantErr: ErrInvalidDate},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := valid()
			tt.mutate(&m)
			err := m.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestParseTags
// ---------------------------------------------------------------------------

func TestParseTags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"   ", nil},
		{"quantum", []string{"quantum"}},
		{"quantum, codes ,holography", []string{"quantum", "codes", "holography"}},
		{"a,,b, ,", []string{"a", "b"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got := ParseTags(tt.input)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") || len(got) != len(tt.want) {
				t.Errorf("ParseTags(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMode_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mode Mode
		want string
	}{
		{ModeFull, "full"},
		{ModeNoIntegrate, "no-integrate"},
		{ModeOutputOnly, "output-only"},
		{Mode(9), "Mode(9)"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("Mode(%d).String() = %q, want %q", int(tt.mode), got, tt.want)
		}
	}
}
