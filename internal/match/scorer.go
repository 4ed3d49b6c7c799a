package match

import fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

// Scorer rates how well a candidate name fits a page text, 0..100.
// It is a policy parameter: token-set ratio is the default because it
// is order-insensitive and tolerant of the extra tokens a full page
// carries around a short name, but callers may substitute another
// similarity measure.
type Scorer func(text, candidate string) int

// TokenSetRatio scores by word-set overlap between the page text and
// the candidate name.
func TokenSetRatio(text, candidate string) int {
	return fuzzy.TokenSetRatio(text, candidate)
}
