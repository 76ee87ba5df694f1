package main

import (
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"

	"github.com/texpub/tex2site/internal/config"
)

// highlightStyle is the chroma style used for terminal output.
const highlightStyle = "monokai"

// highlight writes code followed by a newline, colored for a 256-color
// terminal when color is set. format is a graph format ("js" or "json").
// Falls back to plain text if highlighting fails.
func highlight(w io.Writer, code, format string, color bool) error {
	code = strings.TrimRight(code, "\n") + "\n"
	if !color {
		_, err := io.WriteString(w, code)
		return err
	}

	lexer := "javascript"
	if strings.EqualFold(format, config.GraphFormatJSON) {
		lexer = "json"
	}

	var b strings.Builder
	if err := quick.Highlight(&b, code, lexer, "terminal256", highlightStyle); err != nil {
		_, err := io.WriteString(w, code)
		return err
	}
	_, err := io.WriteString(w, b.String())
	return err
}
