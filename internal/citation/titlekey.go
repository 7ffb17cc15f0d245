package citation

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// TitleKey normalizes a title or citation string for matching: Unicode
// decomposition with combining marks dropped, lowercase, every run of
// characters that are not letters or digits collapsed to one space, trimmed.
func TitleKey(s string) string {
	if s == "" {
		return ""
	}

	// Chains are stateful, so build one per call.
	fold := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	b.Grow(len(folded))
	pendingSpace := false
	for _, r := range strings.ToLower(folded) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
			continue
		}
		pendingSpace = true
	}
	return b.String()
}

// DOIKey normalizes a DOI for case-insensitive lookup.
func DOIKey(doi string) string {
	return strings.ToLower(strings.TrimSpace(doi))
}
