package pipeline

import (
	"regexp"
	"sort"
	"strings"
)

// ListContainerClass is the class of the element holding a section's entries.
const ListContainerClass = "list-container"

// containerPattern matches the opening tag of a list container div.
var containerPattern = regexp.MustCompile(`(?is)<div\b[^>]*\bclass\s*=\s*["'][^"']*\b` +
	regexp.QuoteMeta(ListContainerClass) + `\b[^"']*["'][^>]*>`)

// Section identifies a listing section by its explicit marker key
// (data-category="KEY") and its heading label.
type Section struct {
	Key   string
	Label string
}

// Location is where a section's list container sits in a document.
// All offsets are byte offsets into the document.
type Location struct {
	SectionStart   int // start of the marker or label that matched
	ContainerOpen  int // start of the container's opening tag
	ContainerClose int // start of the container's matching </div>
}

// Insertion is the result of InsertIntoSection.
// When Found is false, Document is the unchanged input and Reason explains why.
type Insertion struct {
	Found    bool
	Document string
	Offset   int
	Reason   string
}

// LocateContainer finds target's list container in doc.
//
// Sections are located by an explicit data-category="KEY" marker when the
// document has one for target, otherwise by the label text (raw or with "&"
// written as "&amp;"). For each candidate, the first list container after it
// is used, unless the start of any section in others comes first: that
// container belongs to the other section and the candidate is rejected.
func LocateContainer(doc string, target Section, others []Section) (Location, string) {
	starts := sectionStarts(doc, target)
	if len(starts) == 0 {
		return Location{}, "section " + describe(target) + " not found"
	}

	var boundaries []int
	for _, o := range others {
		boundaries = append(boundaries, sectionStarts(doc, o)...)
	}
	sort.Ints(boundaries)

	reason := "no list container in section " + describe(target)
	for _, start := range starts {
		loc := containerPattern.FindStringIndex(doc[start:])
		if loc == nil {
			continue
		}
		open, openEnd := start+loc[0], start+loc[1]

		if b := nextBoundary(boundaries, start); b != -1 && b < open {
			reason = "list container after section " + describe(target) + " belongs to another section"
			continue
		}

		closeIdx := matchingDivClose(doc, openEnd)
		if closeIdx == -1 {
			reason = "unbalanced list container in section " + describe(target)
			continue
		}

		return Location{SectionStart: start, ContainerOpen: open, ContainerClose: closeIdx}, ""
	}

	return Location{}, reason
}

// InsertIntoSection inserts entry as the last child of target's list
// container. The entry goes before the whitespace preceding the container's
// closing tag so the closing tag keeps its indentation.
func InsertIntoSection(doc string, target Section, others []Section, entry string) Insertion {
	loc, reason := LocateContainer(doc, target, others)
	if reason != "" {
		return Insertion{Found: false, Document: doc, Offset: -1, Reason: reason}
	}

	at := loc.ContainerClose
	for at > loc.ContainerOpen && isSpace(doc[at-1]) {
		at--
	}

	return Insertion{
		Found:    true,
		Document: doc[:at] + entry + doc[at:],
		Offset:   at,
	}
}

// sectionStarts returns the sorted offsets where s begins in doc.
// Explicit markers win over label text.
func sectionStarts(doc string, s Section) []int {
	if s.Key != "" {
		marker := regexp.MustCompile(`(?i)data-category\s*=\s*["']` + regexp.QuoteMeta(s.Key) + `["']`)
		if locs := marker.FindAllStringIndex(doc, -1); len(locs) > 0 {
			return firstIndexes(locs)
		}
	}
	if s.Label == "" {
		return nil
	}

	seen := map[int]bool{}
	var starts []int
	forms := []string{s.Label}
	if strings.Contains(s.Label, "&") {
		forms = append(forms, strings.ReplaceAll(s.Label, "&", "&amp;"))
	}
	for _, form := range forms {
		for _, idx := range allIndexes(doc, form) {
			if !seen[idx] {
				seen[idx] = true
				starts = append(starts, idx)
			}
		}
	}
	sort.Ints(starts)
	return starts
}

// matchingDivClose returns the offset of the </div> that closes a div whose
// opening tag ends at from, counting nested divs. Returns -1 if unbalanced.
func matchingDivClose(doc string, from int) int {
	lower := lowerASCII(doc)
	depth := 1
	pos := from
	for {
		nextOpen := indexTag(lower, "<div", pos)
		nextClose := indexClose(lower, "</div", pos)
		if nextClose == -1 {
			return -1
		}
		if nextOpen != -1 && nextOpen < nextClose {
			depth++
			pos = nextOpen + len("<div")
			continue
		}
		depth--
		if depth == 0 {
			return nextClose
		}
		pos = nextClose + len("</div")
	}
}

// indexClose finds a closing tag prefix such as "</div" followed by
// optional whitespace and '>'.
func indexClose(lower, prefix string, from int) int {
	for from <= len(lower) {
		idx := strings.Index(lower[from:], prefix)
		if idx == -1 {
			return -1
		}
		idx += from
		rest := strings.TrimLeft(lower[idx+len(prefix):], " \t\r\n\f")
		if strings.HasPrefix(rest, ">") {
			return idx
		}
		from = idx + len(prefix)
	}
	return -1
}

func nextBoundary(sorted []int, after int) int {
	i := sort.SearchInts(sorted, after+1)
	if i < len(sorted) {
		return sorted[i]
	}
	return -1
}

func allIndexes(s, sub string) []int {
	var out []int
	for from := 0; ; {
		idx := strings.Index(s[from:], sub)
		if idx == -1 {
			return out
		}
		out = append(out, from+idx)
		from += idx + len(sub)
	}
}

func firstIndexes(locs [][]int) []int {
	out := make([]int, len(locs))
	for i, l := range locs {
		out[i] = l[0]
	}
	return out
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}

func describe(s Section) string {
	if s.Label != "" {
		return `"` + s.Label + `"`
	}
	return s.Key
}
