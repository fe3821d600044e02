package parser

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldDiacritics lower-cases s and strips combining marks, so "Nefondată",
// "nefondata" and the cedilla spelling all compare equal.
func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// cedillaToCommaBelow rewrites the cedilla letters of legacy Romanian
// charsets to the comma-below forms used by the marker tables. Every pair
// has the same UTF-8 length, so byte offsets into the result are valid in
// the input.
var cedillaToCommaBelow = strings.NewReplacer("ş", "ș", "ţ", "ț", "Ş", "Ș", "Ţ", "Ț")

func normalizeCommaBelow(s string) string {
	return cedillaToCommaBelow.Replace(s)
}

// collapseSpace trims s and reduces every whitespace run to one space.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncateRunes cuts s to at most n runes.
func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
