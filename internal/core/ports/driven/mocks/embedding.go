package mocks

import (
	"context"
	"errors"
	"sync"
)

// MockEmbeddingService returns canned vectors for testing.
// Vectors are looked up by exact text; unknown texts get the default
// vector so ingestion never stalls on a missing fixture.
type MockEmbeddingService struct {
	mu      sync.RWMutex
	vectors map[string][]float32
	defVec  []float32

	// EmbedErr, when set, is returned by Embed and EmbedQuery
	EmbedErr error

	closed bool
}

// NewMockEmbeddingService creates a mock with 3-dimensional vectors.
func NewMockEmbeddingService() *MockEmbeddingService {
	return &MockEmbeddingService{
		vectors: make(map[string][]float32),
		defVec:  []float32{1, 0, 0},
	}
}

// SetVector registers the vector returned for an exact text.
func (m *MockEmbeddingService) SetVector(text string, vector []float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vectors[text] = vector
}

func (m *MockEmbeddingService) lookup(text string) []float32 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.vectors[text]; ok {
		return v
	}
	return m.defVec
}

func (m *MockEmbeddingService) Embed(_ context.Context, texts []string) ([][]float32, error) {
	if m.EmbedErr != nil {
		return nil, m.EmbedErr
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = m.lookup(t)
	}
	return out, nil
}

func (m *MockEmbeddingService) EmbedQuery(_ context.Context, query string) ([]float32, error) {
	if m.EmbedErr != nil {
		return nil, m.EmbedErr
	}
	return m.lookup(query), nil
}

func (m *MockEmbeddingService) Dimensions() int { return len(m.defVec) }

func (m *MockEmbeddingService) Model() string { return "mock-embedding" }

func (m *MockEmbeddingService) HealthCheck(_ context.Context) error {
	if m.closed {
		return errors.New("closed")
	}
	return nil
}

func (m *MockEmbeddingService) Close() error {
	m.closed = true
	return nil
}
