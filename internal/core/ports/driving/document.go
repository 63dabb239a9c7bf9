package driving

import (
	"context"

	"github.com/docteca/docteca-core/internal/core/domain"
)

// DocumentService manages the lifecycle of stored documents.
type DocumentService interface {
	// Get retrieves a document by ID
	Get(ctx context.Context, id int64) (*domain.Document, error)

	// List returns all live documents, most recent first
	List(ctx context.Context) ([]*domain.Document, error)

	// Count returns the total number of live documents
	Count(ctx context.Context) (int, error)

	// Delete removes a document from the store and from every index.
	// Returns domain.ErrNotFound when the id is unknown.
	Delete(ctx context.Context, id int64) error
}
