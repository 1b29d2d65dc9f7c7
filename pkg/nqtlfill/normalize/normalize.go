// Package normalize canonicalizes cell text for equivalence comparison.
package normalize

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Key folds text with NFKC, drops every byte that is not an ASCII letter or
// digit and lower-cases the rest. Two texts are equivalent iff their keys are
// equal.
func Key(text string) string {
	if text == "" {
		return ""
	}
	folded := norm.NFKC.String(text)
	var b strings.Builder
	b.Grow(len(folded))
	for i := 0; i < len(folded); i++ {
		c := folded[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			b.WriteByte(c)
		case c >= 'A' && c <= 'Z':
			b.WriteByte(c + 'a' - 'A')
		}
	}
	return b.String()
}

// absentMarkers are the textual forms a spreadsheet export uses for "no value".
var absentMarkers = map[string]struct{}{
	"":     {},
	"nan":  {},
	"<na>": {},
	"nat":  {},
	"none": {},
	"null": {},
	"#n/a": {},
}

// IsAbsent reports whether text is an absent-value marker.
func IsAbsent(text string) bool {
	_, ok := absentMarkers[strings.ToLower(strings.TrimSpace(text))]
	return ok
}

// Value returns the trimmed text, or "" when it is an absent marker.
func Value(text string) string {
	if IsAbsent(text) {
		return ""
	}
	return strings.TrimSpace(text)
}

// Header collapses line breaks so that multi-line cell text reads as one line.
func Header(text string) string {
	text = strings.ReplaceAll(text, "\r\n", " ")
	text = strings.ReplaceAll(text, "\n", " ")
	return strings.TrimSpace(text)
}
