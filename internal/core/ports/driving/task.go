package driving

import (
	"context"

	"github.com/docteca/docteca-core/internal/core/domain"
)

// TaskService queues background ingestion work for files on disk.
type TaskService interface {
	// EnqueuePath queues ingestion of a file, or of every regular file
	// in a directory (non-recursive). Returns the created tasks.
	EnqueuePath(ctx context.Context, path string) ([]*domain.Task, error)

	// Status retrieves a queued task by id.
	Status(ctx context.Context, taskID string) (*domain.Task, error)
}
