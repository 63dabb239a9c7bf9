package driven

import (
	"context"

	"github.com/docteca/docteca-core/internal/core/domain"
)

// DocumentStore handles document persistence (PostgreSQL)
type DocumentStore interface {
	// Save inserts a document and returns its assigned id.
	// Ids increase monotonically and are never reused. If a record with
	// the same fingerprint already exists, its id is returned instead.
	Save(ctx context.Context, doc *domain.Document) (int64, error)

	// Get retrieves a document by id. Returns domain.ErrNotFound if absent.
	Get(ctx context.Context, id int64) (*domain.Document, error)

	// GetByFingerprint retrieves a document by content fingerprint.
	// Returns domain.ErrNotFound if no live record carries it.
	GetByFingerprint(ctx context.Context, fingerprint string) (*domain.Document, error)

	// List returns all documents ordered by id descending.
	List(ctx context.Context) ([]*domain.Document, error)

	// IDs returns the ids of all live documents (for consistency checks).
	IDs(ctx context.Context) ([]int64, error)

	// Delete removes a document. Returns domain.ErrNotFound if absent.
	Delete(ctx context.Context, id int64) error

	// Count returns total document count
	Count(ctx context.Context) (int, error)
}
