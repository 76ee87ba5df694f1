// Package pipeline implements the text-level HTML stages of publishing.
//
// This package works on raw HTML text, never on a parsed DOM:
//   - body extraction from the conversion engine's artifact
//   - section lookup and entry insertion in the site's listing page
//   - Markdown rendering of short descriptions via Goldmark
//
// The listing page is hand-authored, so every splice reports whether an
// insertion point was found instead of guessing at structure.
package pipeline
