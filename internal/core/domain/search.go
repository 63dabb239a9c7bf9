package domain

import "time"

// SearchMode determines the retrieval strategy
type SearchMode string

const (
	SearchModeHybrid   SearchMode = "hybrid"   // lexical + semantic (default)
	SearchModeLexical  SearchMode = "lexical"  // inverted index only
	SearchModeSemantic SearchMode = "semantic" // vector similarity only
)

// RequiresEmbedding reports whether the mode needs a query embedding.
func (m SearchMode) RequiresEmbedding() bool {
	return m == SearchModeHybrid || m == SearchModeSemantic
}

// MatchMode selects how lexical query tokens match indexed tokens
type MatchMode string

const (
	// MatchExact intersects the posting sets of the exact query tokens.
	MatchExact MatchMode = "exact"

	// MatchPrefix lets each query token match any indexed token sharing it
	// as a prefix; per-term posting sets are unioned before intersecting.
	MatchPrefix MatchMode = "prefix"
)

// Relevance scoring constants. The distance-to-percentage mapping and the
// floor are preserved verbatim for compatibility with the original engine.
const (
	// RelevanceFloor is the minimum score a semantic match must exceed
	// (strictly) to be returned at all.
	RelevanceFloor = 60.0

	// LexicalMatchScore is the percentage-equivalent score a lexical AND
	// match proposes: every query term matched, so it is a full match.
	LexicalMatchScore = 100.0
)

// ScoreFromDistance converts a raw cosine distance to a 0-100 relevance
// percentage: distance 0 -> 100, distance >= 2 -> 0, linear in between.
func ScoreFromDistance(d float64) float64 {
	score := 100 - d*50
	if score < 0 {
		return 0
	}
	return score
}

// SearchOptions configures a search request
type SearchOptions struct {
	Mode  SearchMode `json:"mode"`
	Match MatchMode  `json:"match"`

	// Type filters results to an exact (case-insensitive) type tag.
	Type string `json:"type,omitempty"`

	// Limit is the maximum number of results (default 10, max 100).
	Limit int `json:"limit"`
}

// DefaultSearchOptions returns sensible defaults
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		Mode:  SearchModeHybrid,
		Match: MatchExact,
		Limit: 10,
	}
}

// RankedDocument is one search hit with its normalized relevance score.
type RankedDocument struct {
	ID      int64   `json:"id"`
	Title   string  `json:"title"`
	Type    string  `json:"type"`
	Summary string  `json:"summary"`
	Score   float64 `json:"score"`
}

// SearchResult represents the result of a search query
type SearchResult struct {
	Query   string            `json:"query"`
	Mode    SearchMode        `json:"mode"`
	Results []*RankedDocument `json:"results"`
	Total   int               `json:"total"`
	Took    time.Duration     `json:"took"`
}
