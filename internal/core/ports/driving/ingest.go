package driving

import (
	"context"

	"github.com/docteca/docteca-core/internal/core/domain"
)

// IngestService runs the ingestion pipeline for uploaded documents.
type IngestService interface {
	// Ingest processes one upload through the pipeline:
	// dedup check -> extraction -> cleanup -> store + index.
	// Duplicate content resolves to the existing document id without
	// touching the indices; content yielding no usable text is skipped.
	Ingest(ctx context.Context, raw []byte, filename, typeTag string) (*domain.IngestResult, error)

	// Reindex re-derives index state for a stored document from its
	// canonical text. Safe to call repeatedly: indexing is idempotent.
	Reindex(ctx context.Context, id int64) error

	// VerifyConsistency detects store/index drift and heals it by
	// re-running the indexing step for affected documents.
	VerifyConsistency(ctx context.Context) (*domain.ConsistencyReport, error)
}
