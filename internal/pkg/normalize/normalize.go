// Package normalize canonicalises user-entered text so enum values like
// turma and soft skill match regardless of case and accents.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold lowercases, trims and removes combining marks, so "Comunicação" and
// "comunicacao" fold to the same key.
func Fold(s string) string {
	folded, _, err := transform.String(stripAccents, strings.TrimSpace(s))
	if err != nil {
		// Fall back to the untransformed string; matching degrades to
		// case-insensitive only.
		folded = strings.TrimSpace(s)
	}
	return strings.ToLower(folded)
}

// Match reports whether candidate folds to the same key as canonical.
func Match(canonical, candidate string) bool {
	return Fold(canonical) == Fold(candidate)
}

// Canonical returns the vocabulary entry candidate matches, or "" when it
// matches none.
func Canonical(vocabulary []string, candidate string) string {
	key := Fold(candidate)
	for _, entry := range vocabulary {
		if Fold(entry) == key {
			return entry
		}
	}
	return ""
}
