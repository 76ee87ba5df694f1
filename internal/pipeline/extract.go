package pipeline

import "strings"

// ExtractBody returns the text between the first <body ...> opening tag and
// the last </body> closing tag. Tags are matched case-insensitively.
// If either marker is missing the whole document is returned with found=false;
// extraction never fails.
func ExtractBody(doc string) (content string, found bool) {
	lower := lowerASCII(doc)

	open := indexTag(lower, "<body", 0)
	if open == -1 {
		return doc, false
	}
	gt := strings.IndexByte(doc[open:], '>')
	if gt == -1 {
		return doc, false
	}
	start := open + gt + 1

	end := strings.LastIndex(lower, "</body>")
	if end < start {
		return doc, false
	}

	return doc[start:end], true
}

// indexTag finds the next occurrence of an opening tag prefix such as "<body"
// or "<div" in lower, starting at from. The prefix must be followed by '>',
// '/', or whitespace so that "<bodyx>" or "<divider>" do not match.
func indexTag(lower, prefix string, from int) int {
	for from <= len(lower) {
		idx := strings.Index(lower[from:], prefix)
		if idx == -1 {
			return -1
		}
		idx += from
		next := idx + len(prefix)
		if next >= len(lower) {
			return -1
		}
		switch lower[next] {
		case '>', '/', ' ', '\t', '\n', '\r', '\f':
			return idx
		}
		from = next
	}
	return -1
}

// lowerASCII folds A-Z only. Offsets into the result are valid offsets into
// s, which strings.ToLower does not guarantee for non-ASCII or invalid UTF-8.
func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
