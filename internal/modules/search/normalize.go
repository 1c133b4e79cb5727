package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize lower-cases s and strips diacritical marks, so "Café" and "cafe"
// compare equal. Both sides of every match go through this; normalizing only
// one side silently breaks accented queries.
func Normalize(s string) string {
	// transform.Chain carries state, so build it per call rather than
	// sharing one across goroutines.
	stripper := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(stripper, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}
