package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docteca/docteca-core/internal/core/domain"
	"github.com/docteca/docteca-core/internal/core/ports/driven/mocks"
)

func TestEnqueuePath_SingleFile(t *testing.T) {
	queue := mocks.NewMockTaskQueue()
	svc := NewTaskService(queue, nil)

	path := filepath.Join(t.TempDir(), "manual.txt")
	require.NoError(t, os.WriteFile(path, []byte("contenido"), 0o644))

	tasks, err := svc.EnqueuePath(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, domain.TaskTypeIngestFile, tasks[0].Type)
	assert.Equal(t, path, tasks[0].Path())

	queued, err := svc.Status(context.Background(), tasks[0].ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusPending, queued.Status)
}

func TestEnqueuePath_Directory(t *testing.T) {
	queue := mocks.NewMockTaskQueue()
	svc := NewTaskService(queue, nil)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("uno"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.csv"), []byte("dos"), 0o644))
	// Subdirectories are not descended into.
	require.NoError(t, os.Mkdir(filepath.Join(dir, "anidado"), 0o755))

	tasks, err := svc.EnqueuePath(context.Background(), dir)
	require.NoError(t, err)
	assert.Len(t, tasks, 2)
}

func TestEnqueuePath_EmptyDirectory(t *testing.T) {
	queue := mocks.NewMockTaskQueue()
	svc := NewTaskService(queue, nil)

	tasks, err := svc.EnqueuePath(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestEnqueuePath_MissingPath(t *testing.T) {
	queue := mocks.NewMockTaskQueue()
	svc := NewTaskService(queue, nil)

	_, err := svc.EnqueuePath(context.Background(), "/no/existe")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStatus_UnknownTask(t *testing.T) {
	queue := mocks.NewMockTaskQueue()
	svc := NewTaskService(queue, nil)

	_, err := svc.Status(context.Background(), "desconocida")
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}
