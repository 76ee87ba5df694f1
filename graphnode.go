package tex2site

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Graph node rendering formats.
const (
	GraphFormatJS   = "js"
	GraphFormatJSON = "json"
)

// GraphNodeX is the horizontal position given to every suggested node.
const GraphNodeX = 400

// GraphNodeStatus is the status of a freshly published paper.
const GraphNodeStatus = "published"

// GraphNode is an entry of the site's research graph dataset.
type GraphNode struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Subtitle    string   `json:"subtitle"`
	Description string   `json:"description"`
	Type        string   `json:"type"`
	Status      string   `json:"status"`
	Tags        []string `json:"tags"`
	Position    Position `json:"position"`
}

// Position places a node on the graph canvas.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// NodeID converts a slug to a graph node id: lower case, dashes for underscores.
func NodeID(slug string) string {
	return strings.ReplaceAll(strings.ToLower(slug), "_", "-")
}

// NewGraphNode builds the suggested node for a paper.
func NewGraphNode(meta *Metadata, slug string) *GraphNode {
	tags := make([]string, len(meta.Tags))
	copy(tags, meta.Tags)

	return &GraphNode{
		ID:          NodeID(slug),
		Title:       strings.ToUpper(meta.Title),
		Subtitle:    meta.Subtitle,
		Description: meta.Description,
		Type:        meta.Category.NodeType(),
		Status:      GraphNodeStatus,
		Tags:        tags,
		Position:    Position{X: GraphNodeX, Y: meta.Category.Tier()},
	}
}

// Render formats the node for pasting into the graph dataset.
// "js" (or "") gives an object literal matching graph-data.js;
// "json" gives indented JSON.
func (n *GraphNode) Render(format string) (string, error) {
	switch strings.ToLower(format) {
	case "", GraphFormatJS:
		return n.renderJS(), nil
	case GraphFormatJSON:
		data, err := json.MarshalIndent(n, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encoding graph node: %w", err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("%w: %q (must be js or json)", ErrInvalidGraphFmt, format)
	}
}

func (n *GraphNode) renderJS() string {
	var b strings.Builder
	field := func(name, value string) {
		fmt.Fprintf(&b, "  %s: %s,\n", name, jsString(value))
	}

	b.WriteString("{\n")
	field("id", n.ID)
	field("title", n.Title)
	field("subtitle", n.Subtitle)
	field("description", n.Description)
	field("type", n.Type)
	field("status", n.Status)

	quoted := make([]string, len(n.Tags))
	for i, t := range n.Tags {
		quoted[i] = jsString(t)
	}
	fmt.Fprintf(&b, "  tags: [%s],\n", strings.Join(quoted, ", "))
	fmt.Fprintf(&b, "  position: { x: %d, y: %d }\n", n.Position.X, n.Position.Y)
	b.WriteString("}")
	return b.String()
}

// jsString quotes s as a single-quoted JavaScript string literal.
func jsString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\'':
			b.WriteString(`\'`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\u2028', '\u2029':
			b.WriteString(`\u` + strconv.FormatInt(int64(r), 16))
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}
