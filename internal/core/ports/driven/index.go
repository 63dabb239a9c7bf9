package driven

import (
	"context"

	"github.com/docteca/docteca-core/internal/core/domain"
)

// LexicalIndex is an inverted token -> document-id mapping supporting
// exact and prefix AND queries.
type LexicalIndex interface {
	// Insert indexes a document under the given token set.
	// Idempotent: inserting the same (id, tokens) twice yields the same
	// index state as once, and re-inserting with a different token set
	// replaces the previous one.
	Insert(ctx context.Context, docID int64, tokens []string) error

	// Remove purges the document id from every posting set it appears in.
	Remove(ctx context.Context, docID int64) error

	// Query intersects the posting sets of the supplied tokens.
	// In prefix mode each query token first expands to the union of the
	// posting sets of every indexed token sharing it as a prefix.
	// An empty token list matches nothing. Result ids are sorted ascending.
	Query(ctx context.Context, tokens []string, match domain.MatchMode) ([]int64, error)

	// Contains reports whether the document id is indexed.
	Contains(ctx context.Context, docID int64) (bool, error)

	// DocIDs returns every indexed document id (for consistency checks).
	DocIDs(ctx context.Context) ([]int64, error)
}

// SemanticHit is one nearest-neighbor match from the semantic index.
type SemanticHit struct {
	DocID int64

	// Distance is the raw cosine distance (smaller = more similar).
	Distance float64

	// Excerpt is the cached text excerpt stored with the vector.
	Excerpt string

	// Type is the document type tag, used for metadata filtering.
	Type string
}

// SemanticIndex stores one fixed-dimension vector per live document and
// answers nearest-neighbor queries by cosine distance. It does not compute
// embeddings; vectors come from an EmbeddingService.
type SemanticIndex interface {
	// Upsert stores or replaces the vector and metadata for a document.
	// All vectors in one index instance share the same dimensionality;
	// a mismatch returns domain.ErrDimensionMismatch.
	Upsert(ctx context.Context, docID int64, vector []float32, excerpt, typeTag string) error

	// Remove deletes the entry. Returns domain.ErrNotFound if absent.
	Remove(ctx context.Context, docID int64) error

	// Query returns up to limit entries closest to the vector, ordered by
	// ascending distance (ties by ascending id). A non-empty typeFilter
	// restricts the candidate set before ranking, so a small filtered
	// subset still yields up to limit filtered matches.
	Query(ctx context.Context, vector []float32, limit int, typeFilter string) ([]SemanticHit, error)

	// Contains reports whether the document id has a stored vector.
	Contains(ctx context.Context, docID int64) (bool, error)

	// DocIDs returns every document id with a stored vector (for
	// consistency checks).
	DocIDs(ctx context.Context) ([]int64, error)
}
