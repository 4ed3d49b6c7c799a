// Package match decides which roster name, if any, a page of text
// belongs to. The exact substring pass always runs first and wins
// outright; the fuzzy pass is an optional fallback whose threshold is
// the single knob trading recall for precision.
package match

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/payrollkit/slipsort/constants"
	"github.com/payrollkit/slipsort/internal/roster"
)

type Options struct {
	// UseFuzzy enables the fuzzy fallback pass. Off by default: fuzzy
	// matching risks misrouting confidential pages on noisy OCR text.
	UseFuzzy bool
	// ScoreThreshold is the minimum fuzzy score (0..100, inclusive)
	// for a match.
	ScoreThreshold int
	// CandidateLimit caps how many top-scoring candidates the fuzzy
	// pass retains before picking the winner.
	CandidateLimit int
	// StripDiacritics folds accents on both text and names before
	// comparing.
	StripDiacritics bool
}

// Match is the outcome of identifying one page.
type Match struct {
	Identity string                // roster name or constants.UnknownIdentity
	Method   constants.MatchMethod // exact | fuzzy | none
	Score    int                   // set only for fuzzy matches
}

// Unknown reports whether no roster entry met the criteria.
func (m Match) Unknown() bool { return m.Method == constants.MatchNone }

type Matcher struct {
	opts   Options
	scorer Scorer
	logger *slog.Logger
}

func NewMatcher(opts Options, scorer Scorer, logger *slog.Logger) *Matcher {
	if logger == nil {
		logger = slog.Default()
	}
	if scorer == nil {
		scorer = TokenSetRatio
	}
	if opts.ScoreThreshold <= 0 {
		opts.ScoreThreshold = 75
	}
	if opts.CandidateLimit <= 0 {
		opts.CandidateLimit = 5
	}
	return &Matcher{opts: opts, scorer: scorer, logger: logger}
}

// Identify runs the exact pass, then the fuzzy pass if enabled.
// First hit wins; there is no scoring across strategies. Empty text
// short-circuits to UNKNOWN without invoking either pass.
func (m *Matcher) Identify(text string, r *roster.Roster) Match {
	if strings.TrimSpace(text) == "" {
		return Match{Identity: constants.UnknownIdentity, Method: constants.MatchNone}
	}

	haystack := canonical(text, m.opts.StripDiacritics)
	for _, name := range r.Names() {
		needle := name
		if m.opts.StripDiacritics {
			needle = stripDiacritics(name)
		}
		if strings.Contains(haystack, needle) {
			m.logger.Debug("match.exact", "identity", name)
			return Match{Identity: name, Method: constants.MatchExact}
		}
	}

	if m.opts.UseFuzzy {
		if hit, ok := m.fuzzyPass(haystack, r); ok {
			return hit
		}
	}

	return Match{Identity: constants.UnknownIdentity, Method: constants.MatchNone}
}

type candidate struct {
	name  string
	score int
	order int
}

// fuzzyPass scores the whole page text against every roster name,
// keeps the top CandidateLimit candidates, and accepts the best one at
// or above the threshold. Ties break by roster order; the stable sort
// keeps the outcome deterministic for a deterministic scorer.
func (m *Matcher) fuzzyPass(haystack string, r *roster.Roster) (Match, bool) {
	names := r.Names()
	cands := make([]candidate, 0, len(names))
	for i, name := range names {
		needle := name
		if m.opts.StripDiacritics {
			needle = stripDiacritics(name)
		}
		cands = append(cands, candidate{name: name, score: m.scorer(haystack, needle), order: i})
	}

	sort.SliceStable(cands, func(a, b int) bool { return cands[a].score > cands[b].score })
	if len(cands) > m.opts.CandidateLimit {
		cands = cands[:m.opts.CandidateLimit]
	}
	if len(cands) == 0 {
		return Match{}, false
	}

	best := cands[0]
	if best.score < m.opts.ScoreThreshold {
		m.logger.Debug("match.fuzzy.below_threshold", "best", best.name, "score", best.score, "threshold", m.opts.ScoreThreshold)
		return Match{}, false
	}
	m.logger.Debug("match.fuzzy", "identity", best.name, "score", best.score)
	return Match{Identity: best.name, Method: constants.MatchFuzzy, Score: best.score}, true
}
