package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldText lowercases s and strips combining marks so that "Décor" and
// "decor" compare equal. Transformers are stateful, so one is built per call.
func foldText(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	return cases.Fold().String(stripped)
}

// containsFolded reports whether needle occurs in haystack ignoring case
// and accents.
func containsFolded(haystack, needle string) bool {
	return strings.Contains(foldText(haystack), foldText(needle))
}
