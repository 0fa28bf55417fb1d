package resolve

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize folds a string for fuzzy comparison: lowercase, diacritics
// removed, whitespace and hyphens stripped. "Entre-Preneur" and
// "entrepreneur" normalize to the same value, as do "gründer" and "grunder".
func Normalize(s string) string {
	folded, _, err := transform.String(deaccent, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(folded)
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if unicode.IsSpace(r) || r == '-' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
