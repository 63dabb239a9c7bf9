package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/docteca/docteca-core/internal/core/domain"
	"github.com/docteca/docteca-core/internal/core/ports/driven"
	"github.com/docteca/docteca-core/internal/core/ports/driving"
)

// Ensure documentService implements DocumentService
var _ driving.DocumentService = (*documentService)(nil)

// documentService implements the DocumentService interface
type documentService struct {
	store    driven.DocumentStore
	lexical  driven.LexicalIndex
	semantic driven.SemanticIndex
	guard    *Guard
	logger   *slog.Logger
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(
	store driven.DocumentStore,
	lexical driven.LexicalIndex,
	semantic driven.SemanticIndex,
	guard *Guard,
	logger *slog.Logger,
) driving.DocumentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &documentService{
		store:    store,
		lexical:  lexical,
		semantic: semantic,
		guard:    guard,
		logger:   logger,
	}
}

// Get retrieves a document by ID
func (s *documentService) Get(ctx context.Context, id int64) (*domain.Document, error) {
	s.guard.RLock()
	defer s.guard.RUnlock()
	return s.store.Get(ctx, id)
}

// List returns all live documents, most recent first
func (s *documentService) List(ctx context.Context) ([]*domain.Document, error) {
	s.guard.RLock()
	defer s.guard.RUnlock()
	return s.store.List(ctx)
}

// Count returns the total number of live documents
func (s *documentService) Count(ctx context.Context) (int, error) {
	return s.store.Count(ctx)
}

// Delete removes a document from the store and from every index.
// Deletion succeeds once the store and lexical removals succeed; a failed
// semantic removal (e.g. the id never had a vector) is logged and tolerated.
func (s *documentService) Delete(ctx context.Context, id int64) error {
	s.guard.Lock()
	defer s.guard.Unlock()

	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.lexical.Remove(ctx, id); err != nil {
		// The record is already gone from the store, so a surviving posting
		// entry leaves the indexes out of step with it.
		return fmt.Errorf("%w: document %d deleted but lexical removal failed: %v",
			domain.ErrIndexInconsistency, id, err)
	}

	if err := s.semantic.Remove(ctx, id); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("semantic removal failed", "id", id, "error", err)
		}
	}

	s.logger.Info("document deleted", "id", id)
	return nil
}
