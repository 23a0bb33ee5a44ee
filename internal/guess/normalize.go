package guess

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalize maps a raw input value to the guess that is tried.
//
// The value is lower-cased, surrounding whitespace is trimmed and a trailing
// "s" is dropped, so "Sesames " and "sesame" are the same guess. Trimming and
// dropping repeat until nothing changes, which keeps Normalize idempotent.
func Normalize(raw string) string {
	s := cases.Lower(language.Und).String(raw)
	for {
		next := strings.TrimSuffix(strings.TrimFunc(s, isSpace), "s")
		if next == s {
			return s
		}
		s = next
	}
}

// isSpace matches the characters String.prototype.trim removes
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}
