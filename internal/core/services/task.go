package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/docteca/docteca-core/internal/core/domain"
	"github.com/docteca/docteca-core/internal/core/ports/driven"
	"github.com/docteca/docteca-core/internal/core/ports/driving"
)

// Ensure taskService implements TaskService
var _ driving.TaskService = (*taskService)(nil)

// taskService queues background ingestion work for files on disk.
type taskService struct {
	queue  driven.TaskQueue
	logger *slog.Logger
}

// NewTaskService creates a new TaskService
func NewTaskService(queue driven.TaskQueue, logger *slog.Logger) driving.TaskService {
	if logger == nil {
		logger = slog.Default()
	}
	return &taskService{queue: queue, logger: logger}
}

// EnqueuePath queues ingestion of a file, or of every regular file in a
// directory (non-recursive), one task per file.
func (s *taskService) EnqueuePath(ctx context.Context, path string) ([]*domain.Task, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, path)
	}

	if !info.IsDir() {
		task := domain.NewIngestFileTask(path)
		if err := s.queue.Enqueue(ctx, task); err != nil {
			return nil, fmt.Errorf("enqueue %s: %w", path, err)
		}
		return []*domain.Task{task}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", path, err)
	}

	var tasks []*domain.Task
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		tasks = append(tasks, domain.NewIngestFileTask(filepath.Join(path, entry.Name())))
	}
	if len(tasks) == 0 {
		return nil, nil
	}

	if err := s.queue.EnqueueBatch(ctx, tasks); err != nil {
		return nil, fmt.Errorf("enqueue batch: %w", err)
	}

	s.logger.Info("ingestion tasks queued", "dir", path, "count", len(tasks))
	return tasks, nil
}

// Status retrieves a queued task by id.
func (s *taskService) Status(ctx context.Context, taskID string) (*domain.Task, error) {
	return s.queue.GetTask(ctx, taskID)
}
