package driving

import (
	"context"

	"github.com/docteca/docteca-core/internal/core/domain"
)

// SearchService answers queries against the configured indices.
type SearchService interface {
	// Search runs the query against the lexical and/or semantic index,
	// merges candidates by document id keeping the highest score, applies
	// the optional type filter and returns a ranked, deduplicated list.
	// A whitespace-only query returns an empty result, not an error.
	Search(ctx context.Context, query string, opts domain.SearchOptions) (*domain.SearchResult, error)
}
