package catalog

import (
	"key-redeemer/internal/model"

	"github.com/rs/zerolog"
)

const (
	// DefaultCandidateThreshold is the set score an entry must exceed to be
	// considered at all.
	DefaultCandidateThreshold = 70

	// DefaultMinMatchScore is the sort score below which the best candidate
	// is discarded.
	DefaultMinMatchScore = 35
)

// Matcher decides whether a free-text title names an owned catalog entry.
type Matcher struct {
	scorer             Scorer
	candidateThreshold int
	minMatchScore      int
	logger             zerolog.Logger
}

// NewMatcher creates a matcher using the default thresholds.
func NewMatcher(scorer Scorer, logger zerolog.Logger) *Matcher {
	return &Matcher{
		scorer:             scorer,
		candidateThreshold: DefaultCandidateThreshold,
		minMatchScore:      DefaultMinMatchScore,
		logger:             logger.With().Str("component", "catalog-matcher").Logger(),
	}
}

// Match returns the best catalog entry for title. Entries are first
// filtered by set score, the survivors ranked by sort score, and a best
// sort score under the minimum is reported as no match. Ties keep the
// lowest catalog id.
func (m *Matcher) Match(catalog model.Catalog, title string) model.MatchResult {
	bestScore := -1
	bestID := 0

	for _, id := range catalog.IDs() {
		name := catalog[id]
		if m.scorer.SetScore(name, title) <= m.candidateThreshold {
			continue
		}

		score := m.scorer.SortScore(name, title)
		if score > bestScore {
			bestScore = score
			bestID = id
		}
	}

	if bestScore < m.minMatchScore {
		return model.MatchResult{}
	}

	m.logger.Debug().
		Str("title", title).
		Int("catalog_id", bestID).
		Str("catalog_name", catalog[bestID]).
		Int("score", bestScore).
		Msg("title matched owned entry")

	return model.MatchResult{Score: bestScore, CatalogID: &bestID}
}

// Owned reports whether title matches an entry in catalog.
func (m *Matcher) Owned(catalog model.Catalog, title string) bool {
	return m.Match(catalog, title).Matched()
}
