package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/docteca/docteca-core/internal/core/domain"
	"github.com/docteca/docteca-core/internal/core/ports/driven"
	"github.com/docteca/docteca-core/internal/core/ports/driving"
)

// consistencyLockName is the distributed lock guarding the periodic
// consistency check, so only one instance runs it at a time.
const consistencyLockName = "consistency-check"

// Worker processes ingestion tasks from the task queue and periodically
// verifies index consistency.
type Worker struct {
	taskQueue driven.TaskQueue
	ingest    driving.IngestService
	lock      driven.DistributedLock
	logger    *slog.Logger

	// Configuration
	concurrency         int
	dequeueTimeout      int // seconds
	consistencyInterval time.Duration

	// Internal state
	mu      sync.RWMutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// Config holds configuration for the worker.
type Config struct {
	TaskQueue      driven.TaskQueue
	Ingest         driving.IngestService
	Lock           driven.DistributedLock // optional, single-instance setups run unlocked
	Logger         *slog.Logger
	Concurrency    int // Number of concurrent task processors
	DequeueTimeout int // Seconds to wait for a task before checking again

	// ConsistencyInterval is how often the index consistency check runs.
	// Zero disables it.
	ConsistencyInterval time.Duration
}

// New creates a new task worker.
func New(cfg Config) *Worker {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	dequeueTimeout := cfg.DequeueTimeout
	if dequeueTimeout <= 0 {
		dequeueTimeout = 5
	}

	return &Worker{
		taskQueue:           cfg.TaskQueue,
		ingest:              cfg.Ingest,
		lock:                cfg.Lock,
		logger:              logger,
		concurrency:         concurrency,
		dequeueTimeout:      dequeueTimeout,
		consistencyInterval: cfg.ConsistencyInterval,
	}
}

// Start begins the worker loop.
// It runs until Stop is called or context is cancelled.
func (w *Worker) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.mu.Unlock()

	w.logger.Info("worker starting",
		"concurrency", w.concurrency,
		"dequeue_timeout", w.dequeueTimeout,
	)

	var wg sync.WaitGroup
	for i := 0; i < w.concurrency; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			w.processLoop(ctx, workerID)
		}(i)
	}

	if w.consistencyInterval > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.consistencyLoop(ctx)
		}()
	}

	go func() {
		wg.Wait()
		close(w.doneCh)
	}()

	return nil
}

// Stop gracefully stops the worker.
func (w *Worker) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	close(w.stopCh)
	w.mu.Unlock()

	<-w.doneCh

	w.mu.Lock()
	w.running = false
	w.mu.Unlock()

	w.logger.Info("worker stopped")
}

// Wait blocks until the worker stops.
func (w *Worker) Wait() {
	<-w.doneCh
}

// processLoop is the main processing loop for a worker goroutine.
func (w *Worker) processLoop(ctx context.Context, workerID int) {
	logger := w.logger.With("worker_id", workerID)
	logger.Info("worker goroutine started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("worker context cancelled")
			return
		case <-w.stopCh:
			logger.Info("worker stop signal received")
			return
		default:
		}

		task, err := w.taskQueue.DequeueWithTimeout(ctx, w.dequeueTimeout)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				continue
			}
			logger.Error("failed to dequeue task", "error", err)
			time.Sleep(time.Second) // Back off on error
			continue
		}

		if task == nil {
			continue
		}

		w.processTask(ctx, task, logger)
	}
}

// processTask processes a single task.
func (w *Worker) processTask(ctx context.Context, task *domain.Task, logger *slog.Logger) {
	logger = logger.With("task_id", task.ID, "task_type", task.Type)
	logger.Info("processing task")

	startTime := time.Now()
	var err error

	switch task.Type {
	case domain.TaskTypeIngestFile:
		err = w.handleIngestFile(ctx, task, logger)
	default:
		err = fmt.Errorf("unknown task type: %s", task.Type)
	}

	duration := time.Since(startTime)

	if err != nil {
		logger.Error("task failed",
			"duration", duration,
			"error", err,
		)

		if nackErr := w.taskQueue.Nack(ctx, task.ID, err.Error()); nackErr != nil {
			logger.Error("failed to nack task", "nack_error", nackErr)
		}
		return
	}

	logger.Info("task completed", "duration", duration)

	if ackErr := w.taskQueue.Ack(ctx, task.ID); ackErr != nil {
		logger.Error("failed to ack task", "ack_error", ackErr)
	}
}

// handleIngestFile reads a file from disk and runs it through ingestion.
func (w *Worker) handleIngestFile(ctx context.Context, task *domain.Task, logger *slog.Logger) error {
	path := task.Path()
	if path == "" {
		return fmt.Errorf("path not found in task payload")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	result, err := w.ingest.Ingest(ctx, raw, filepath.Base(path), "")
	if err != nil {
		return err
	}

	switch {
	case result.Duplicate:
		logger.Info("file already indexed", "path", path, "id", result.ID)
	case result.Skipped:
		logger.Info("file skipped, no usable text", "path", path)
	default:
		logger.Info("file indexed", "path", path, "id", result.ID)
	}

	return nil
}

// consistencyLoop periodically verifies store and index agreement.
// With a distributed lock configured, only one instance runs each round.
func (w *Worker) consistencyLoop(ctx context.Context) {
	ticker := time.NewTicker(w.consistencyInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.runConsistencyCheck(ctx)
		}
	}
}

func (w *Worker) runConsistencyCheck(ctx context.Context) {
	if w.lock != nil {
		acquired, err := w.lock.Acquire(ctx, consistencyLockName, w.consistencyInterval)
		if err != nil {
			w.logger.Error("consistency lock error", "error", err)
			return
		}
		if !acquired {
			return
		}
		defer func() {
			_ = w.lock.Release(ctx, consistencyLockName)
		}()
	}

	report, err := w.ingest.VerifyConsistency(ctx)
	if err != nil {
		w.logger.Error("consistency check failed", "error", err)
		return
	}

	if len(report.Missing) > 0 || len(report.Orphans) > 0 {
		w.logger.Warn("index drift detected and healed",
			"checked", report.Checked,
			"missing", len(report.Missing),
			"orphans", len(report.Orphans),
			"healed", report.Healed,
		)
	}
}

// Health returns health status of the worker.
type Health struct {
	Running     bool   `json:"running"`
	QueueHealth bool   `json:"queue_health"`
	Error       string `json:"error,omitempty"`
}

// Health returns the health status of the worker.
func (w *Worker) Health(ctx context.Context) Health {
	w.mu.RLock()
	running := w.running
	w.mu.RUnlock()

	health := Health{
		Running: running,
	}

	if err := w.taskQueue.Ping(ctx); err != nil {
		health.QueueHealth = false
		health.Error = err.Error()
	} else {
		health.QueueHealth = true
	}

	return health
}
