package match

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var diacriticStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// stripDiacritics removes combining marks so "JOÃO" compares equal to
// the "JOAO" an OCR pass frequently produces.
func stripDiacritics(s string) string {
	out, _, err := transform.String(diacriticStripper, s)
	if err != nil {
		return s
	}
	return out
}

// canonical uppercases and optionally folds accents. Roster names are
// already uppercase; page text is not.
func canonical(s string, fold bool) string {
	s = strings.ToUpper(s)
	if fold {
		s = stripDiacritics(s)
	}
	return s
}
