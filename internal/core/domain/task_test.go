package domain

import (
	"testing"
)

func TestGenerateID(t *testing.T) {
	id1 := GenerateID()
	id2 := GenerateID()

	if id1 == "" {
		t.Error("expected non-empty ID")
	}
	if id1 == id2 {
		t.Error("expected unique IDs")
	}
	// Base64 URL encoding of 16 bytes = 22 chars
	if len(id1) != 22 {
		t.Errorf("expected ID length 22, got %d", len(id1))
	}
}

func TestNewIngestFileTask(t *testing.T) {
	task := NewIngestFileTask("/data/manual.pdf")

	if task.ID == "" {
		t.Error("expected non-empty ID")
	}
	if task.Type != TaskTypeIngestFile {
		t.Errorf("expected type %s, got %s", TaskTypeIngestFile, task.Type)
	}
	if task.Path() != "/data/manual.pdf" {
		t.Errorf("expected path /data/manual.pdf, got %s", task.Path())
	}
	if task.Status != TaskStatusPending {
		t.Errorf("expected status %s, got %s", TaskStatusPending, task.Status)
	}
	if task.Attempts != 0 {
		t.Errorf("expected attempts 0, got %d", task.Attempts)
	}
	if task.MaxAttempts != 3 {
		t.Errorf("expected max attempts 3, got %d", task.MaxAttempts)
	}
	if task.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestTask_Path(t *testing.T) {
	tests := []struct {
		name     string
		payload  map[string]string
		expected string
	}{
		{
			name:     "with path",
			payload:  map[string]string{"path": "/data/notes.txt"},
			expected: "/data/notes.txt",
		},
		{
			name:     "without path",
			payload:  map[string]string{"other": "value"},
			expected: "",
		},
		{
			name:     "nil payload",
			payload:  nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := &Task{Payload: tt.payload}
			if got := task.Path(); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestTask_MarkProcessing(t *testing.T) {
	task := NewIngestFileTask("/data/manual.pdf")

	task.MarkProcessing()

	if task.Status != TaskStatusProcessing {
		t.Errorf("expected status %s, got %s", TaskStatusProcessing, task.Status)
	}
	if task.StartedAt == nil {
		t.Error("expected StartedAt to be set")
	}
}

func TestTask_MarkCompleted(t *testing.T) {
	task := NewIngestFileTask("/data/manual.pdf")
	task.Error = "some error"

	task.MarkCompleted()

	if task.Status != TaskStatusCompleted {
		t.Errorf("expected status %s, got %s", TaskStatusCompleted, task.Status)
	}
	if task.CompletedAt == nil {
		t.Error("expected CompletedAt to be set")
	}
	if task.Error != "" {
		t.Error("expected Error to be cleared")
	}
}

func TestTask_RecordFailure(t *testing.T) {
	task := NewIngestFileTask("/data/manual.pdf")
	task.MaxAttempts = 3

	task.RecordFailure("archivo ilegible")
	if task.Status != TaskStatusPending {
		t.Errorf("expected status %s after first failure, got %s", TaskStatusPending, task.Status)
	}
	if task.Attempts != 1 {
		t.Errorf("expected attempts 1, got %d", task.Attempts)
	}
	if task.Error != "archivo ilegible" {
		t.Errorf("expected error to be recorded, got %q", task.Error)
	}

	task.RecordFailure("archivo ilegible")
	if task.Status != TaskStatusPending {
		t.Errorf("expected status %s after second failure, got %s", TaskStatusPending, task.Status)
	}

	task.RecordFailure("archivo ilegible")
	if task.Status != TaskStatusFailed {
		t.Errorf("expected status %s once attempts are exhausted, got %s", TaskStatusFailed, task.Status)
	}
	if task.Attempts != 3 {
		t.Errorf("expected attempts 3, got %d", task.Attempts)
	}
}
