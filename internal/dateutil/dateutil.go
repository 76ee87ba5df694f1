// Package dateutil resolves publication dates given on the command line.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrInvalidDateFormat indicates an invalid "auto:FORMAT" format string.
	ErrInvalidDateFormat = errors.New("invalid date format")

	// ErrInvalidDate indicates a literal date that is not YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date")
)

// MaxDateFormatLength limits format string length.
const MaxDateFormatLength = 50

// ISOLayout is the Go layout of literal dates and of plain "auto".
const ISOLayout = "2006-01-02"

// dateTokens maps format tokens to Go layout components.
// Longer tokens come first so matching is greedy.
var dateTokens = []struct {
	token string
	goFmt string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"M", "1"},
	{"D", "2"},
}

// DatePresets provides named shortcuts for "auto:NAME".
var DatePresets = map[string]string{
	"iso":   "YYYY-MM-DD",
	"long":  "MMMM D, YYYY",
	"month": "MMMM YYYY",
	"short": "MMM YYYY",
}

// ParseDateFormat converts a format such as "MMMM D, YYYY" to a Go layout.
// Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D. Text inside brackets is kept
// literally ("[Rev.] YYYY"); other characters pass through unchanged.
func ParseDateFormat(format string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxDateFormatLength {
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	var b strings.Builder
	b.Grow(len(format) + 8)

	for i := 0; i < len(format); {
		if format[i] == '[' {
			end := strings.IndexByte(format[i+1:], ']')
			if end == -1 {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, i)
			}
			b.WriteString(format[i+1 : i+1+end])
			i += end + 2
			continue
		}

		token, goFmt := matchToken(format[i:])
		if token == "" {
			b.WriteByte(format[i])
			i++
			continue
		}
		b.WriteString(goFmt)
		i += len(token)
	}

	return b.String(), nil
}

func matchToken(s string) (token, goFmt string) {
	for _, t := range dateTokens {
		if strings.HasPrefix(s, t.token) {
			return t.token, t.goFmt
		}
	}
	return "", ""
}

// ResolveDate turns a --date value into the date shown on the page:
//   - "" or "auto"   → now as YYYY-MM-DD
//   - "auto:FORMAT"  → now in FORMAT, or a preset name (iso, long, month, short)
//   - anything else  → must be a valid YYYY-MM-DD date, returned unchanged
//
// The keyword is case-insensitive; FORMAT keeps its case.
func ResolveDate(value string, now time.Time) (string, error) {
	value = strings.TrimSpace(value)
	lower := strings.ToLower(value)

	switch {
	case value == "", lower == "auto":
		return now.Format(ISOLayout), nil
	case strings.HasPrefix(lower, "auto:"):
		return formatAuto(value[len("auto:"):], now)
	case strings.HasPrefix(lower, "auto"):
		return "", fmt.Errorf("%w: invalid auto syntax %q, use \"auto\" or \"auto:FORMAT\"", ErrInvalidDateFormat, value)
	}

	if _, err := time.Parse(ISOLayout, value); err != nil {
		return "", fmt.Errorf("%w: %q (must be YYYY-MM-DD)", ErrInvalidDate, value)
	}
	return value, nil
}

func formatAuto(format string, now time.Time) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty after \"auto:\"", ErrInvalidDateFormat)
	}
	if preset, ok := DatePresets[strings.ToLower(format)]; ok {
		format = preset
	}

	goFmt, err := ParseDateFormat(format)
	if err != nil {
		return "", err
	}
	return now.Format(goFmt), nil
}
