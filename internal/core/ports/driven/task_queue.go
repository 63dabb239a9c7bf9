package driven

import (
	"context"

	"github.com/docteca/docteca-core/internal/core/domain"
)

// TaskQueue handles background ingestion task queuing.
// Implementations can use Redis (preferred) or Postgres (fallback).
type TaskQueue interface {
	// Enqueue adds a task to the queue for processing.
	Enqueue(ctx context.Context, task *domain.Task) error

	// EnqueueBatch adds multiple tasks to the queue atomically.
	EnqueueBatch(ctx context.Context, tasks []*domain.Task) error

	// DequeueWithTimeout retrieves the next available task, waiting up to
	// timeout seconds. Returns nil, nil when no task became available.
	// The task is marked processing and not handed to other workers.
	DequeueWithTimeout(ctx context.Context, timeout int) (*domain.Task, error)

	// Ack acknowledges successful completion of a task.
	Ack(ctx context.Context, taskID string) error

	// Nack reports a failed attempt. The task is retried until its
	// MaxAttempts is exhausted, then marked failed.
	Nack(ctx context.Context, taskID string, reason string) error

	// GetTask retrieves a task by id (for status checking).
	// Returns domain.ErrTaskNotFound if unknown.
	GetTask(ctx context.Context, taskID string) (*domain.Task, error)

	// Ping checks that the queue backend is healthy.
	Ping(ctx context.Context) error

	// Close cleans up resources.
	Close() error
}
