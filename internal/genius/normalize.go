package genius

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Titles on genius often differ from catalog titles only by typography:
// curly apostrophes, zero-width spaces, stray casing. Both sides are pushed
// through the same normalization before comparison.
var titleStripper = strings.NewReplacer(
	"\u2019", "", // right single quotation mark
	"\u200b", "", // zero width space
)

// NormalizeTitle canonicalizes a song title for equality comparison.
func NormalizeTitle(s string) string {
	s = titleStripper.Replace(s)
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return norm.NFKC.String(s)
}

// TitlesMatch reports whether two titles are equal after normalization.
func TitlesMatch(a, b string) bool {
	return NormalizeTitle(a) == NormalizeTitle(b)
}
