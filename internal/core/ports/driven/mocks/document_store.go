package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/docteca/docteca-core/internal/core/domain"
)

// MockDocumentStore is an in-memory DocumentStore for testing
type MockDocumentStore struct {
	mu     sync.RWMutex
	nextID int64
	docs   map[int64]*domain.Document
	byFP   map[string]int64

	// SaveErr, when set, is returned by Save to simulate store failures
	SaveErr error
}

// NewMockDocumentStore creates a new MockDocumentStore
func NewMockDocumentStore() *MockDocumentStore {
	return &MockDocumentStore{
		docs: make(map[int64]*domain.Document),
		byFP: make(map[string]int64),
	}
}

func (m *MockDocumentStore) Save(_ context.Context, doc *domain.Document) (int64, error) {
	if m.SaveErr != nil {
		return 0, m.SaveErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if id, ok := m.byFP[doc.Fingerprint]; ok {
		return id, nil
	}

	m.nextID++
	stored := *doc
	stored.ID = m.nextID
	m.docs[stored.ID] = &stored
	m.byFP[stored.Fingerprint] = stored.ID
	return stored.ID, nil
}

func (m *MockDocumentStore) Get(_ context.Context, id int64) (*domain.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *doc
	return &copied, nil
}

func (m *MockDocumentStore) GetByFingerprint(_ context.Context, fingerprint string) (*domain.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byFP[fingerprint]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *m.docs[id]
	return &copied, nil
}

func (m *MockDocumentStore) List(_ context.Context) ([]*domain.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	docs := make([]*domain.Document, 0, len(m.docs))
	for _, doc := range m.docs {
		copied := *doc
		docs = append(docs, &copied)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID > docs[j].ID })
	return docs, nil
}

func (m *MockDocumentStore) IDs(_ context.Context) ([]int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]int64, 0, len(m.docs))
	for id := range m.docs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (m *MockDocumentStore) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.docs[id]
	if !ok {
		return domain.ErrNotFound
	}
	delete(m.byFP, doc.Fingerprint)
	delete(m.docs, id)
	return nil
}

func (m *MockDocumentStore) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.docs), nil
}
