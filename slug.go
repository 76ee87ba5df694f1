package tex2site

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

// slugPattern is the set of valid slugs.
var slugPattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Slugify derives a slug from a title. Every run of characters outside
// [A-Za-z0-9] becomes a single underscore; leading and trailing underscores
// are trimmed. Case is preserved.
//
//	Slugify("Hello, World! 2024") == "Hello_World_2024"
func Slugify(title string) string {
	var b strings.Builder
	b.Grow(len(title))
	sep := false
	for _, r := range title {
		if isSlugRune(r) {
			if sep && b.Len() > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
			sep = false
			continue
		}
		sep = true
	}
	return b.String()
}

func isSlugRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// ValidateSlug checks that s only contains letters, digits, and underscores.
func ValidateSlug(s string) error {
	if !slugPattern.MatchString(s) {
		return fmt.Errorf("%w: %q (allowed: letters, digits, underscore)", ErrInvalidSlug, s)
	}
	return nil
}

// ResolveSlug returns the explicit slug if set (validated, never rewritten),
// otherwise a slug derived from the title.
func ResolveSlug(explicit, title string) (string, error) {
	if explicit != "" {
		if err := ValidateSlug(explicit); err != nil {
			return "", err
		}
		return explicit, nil
	}
	slug := Slugify(title)
	if slug == "" {
		return "", fmt.Errorf("%w: title %q has no letters or digits, use --slug", ErrInvalidSlug, title)
	}
	return slug, nil
}

// ExtractTitle returns the argument of the first \title{...} command in
// LaTeX source. Nested braces are balanced, \\ line breaks become spaces and
// whitespace is collapsed. Returns "" if there is no usable \title.
func ExtractTitle(latex string) string {
	const cmd = `\title`
	rest := latex
	for {
		idx := strings.Index(rest, cmd)
		if idx == -1 {
			return ""
		}
		rest = rest[idx+len(cmd):]

		// Skip \titlepage, \titleformat and friends.
		if rest != "" && unicode.IsLetter(rune(rest[0])) {
			continue
		}

		arg := strings.TrimLeft(rest, " \t")
		if strings.HasPrefix(arg, "[") {
			// Optional short title: \title[short]{long}
			end := strings.Index(arg, "]")
			if end == -1 {
				return ""
			}
			arg = strings.TrimLeft(arg[end+1:], " \t")
		}
		if !strings.HasPrefix(arg, "{") {
			continue
		}

		body, ok := balancedGroup(arg)
		if !ok {
			return ""
		}
		body = strings.ReplaceAll(body, `\\`, " ")
		return strings.Join(strings.Fields(body), " ")
	}
}

// balancedGroup returns the contents of the brace group s starts with.
func balancedGroup(s string) (string, bool) {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++ // skip escaped character, e.g. \{ or \}
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[1:i], true
			}
		}
	}
	return "", false
}

// TitleFromFilename builds a title from a file name stem:
// "my_paper.tex" -> "My Paper".
func TitleFromFilename(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	words := strings.FieldsFunc(stem, func(r rune) bool {
		return r == '_' || r == '-' || unicode.IsSpace(r)
	})
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// ResolveTitle returns the explicit title when set, otherwise the \title of
// the source document, otherwise a title built from the file name.
func ResolveTitle(explicit, sourcePath string) (string, error) {
	if strings.TrimSpace(explicit) != "" {
		return strings.TrimSpace(explicit), nil
	}

	content, err := os.ReadFile(sourcePath) // #nosec G304 -- user-provided source path
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrSourceNotFound, sourcePath)
		}
		return "", fmt.Errorf("reading source: %w", err)
	}

	if title := ExtractTitle(string(content)); title != "" {
		return title, nil
	}
	return TitleFromFilename(sourcePath), nil
}
