package runtime

import (
	"context"
	"testing"
)

// mockEmbeddingService is a mock implementation for testing
type mockEmbeddingService struct {
	closed bool
}

func (m *mockEmbeddingService) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	return nil, nil
}

func (m *mockEmbeddingService) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	return nil, nil
}

func (m *mockEmbeddingService) Dimensions() int {
	return 384
}

func (m *mockEmbeddingService) Model() string {
	return "test-model"
}

func (m *mockEmbeddingService) HealthCheck(ctx context.Context) error {
	return nil
}

func (m *mockEmbeddingService) Close() error {
	m.closed = true
	return nil
}

func TestNewServices(t *testing.T) {
	services := NewServices()

	if services == nil {
		t.Fatal("expected non-nil services")
	}
	if services.EmbeddingService() != nil {
		t.Error("expected nil embedding service initially")
	}
	if services.SemanticAvailable() {
		t.Error("expected semantic search to be unavailable initially")
	}
}

func TestServices_SetEmbeddingService(t *testing.T) {
	services := NewServices()

	mock := &mockEmbeddingService{}
	services.SetEmbeddingService(mock)

	if services.EmbeddingService() == nil {
		t.Error("expected non-nil embedding service after set")
	}
	if !services.SemanticAvailable() {
		t.Error("expected semantic search to be available")
	}

	// Set to nil
	services.SetEmbeddingService(nil)
	if services.EmbeddingService() != nil {
		t.Error("expected nil embedding service after clearing")
	}
	if services.SemanticAvailable() {
		t.Error("expected semantic search to be unavailable")
	}
	if !mock.closed {
		t.Error("expected old service to be closed")
	}
}

func TestServices_ReplaceService_ClosesOld(t *testing.T) {
	services := NewServices()

	old := &mockEmbeddingService{}
	replacement := &mockEmbeddingService{}

	services.SetEmbeddingService(old)
	services.SetEmbeddingService(replacement)

	if !old.closed {
		t.Error("expected old service to be closed when replaced")
	}
	if replacement.closed {
		t.Error("expected new service to remain open")
	}
}

func TestServices_Close(t *testing.T) {
	services := NewServices()

	mock := &mockEmbeddingService{}
	services.SetEmbeddingService(mock)

	if err := services.Close(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if !mock.closed {
		t.Error("expected embedding service to be closed")
	}
	if services.EmbeddingService() != nil {
		t.Error("expected embedding service to be cleared")
	}
}
