package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/docteca/docteca-core/internal/core/domain"
	"github.com/docteca/docteca-core/internal/core/ports/driven"
	"github.com/docteca/docteca-core/internal/core/ports/driving"
	"github.com/docteca/docteca-core/internal/runtime"
	"github.com/docteca/docteca-core/internal/textproc"
)

// excerptLength is the number of runes cached alongside a vector and used
// for display summaries when no precomputed summary exists.
const excerptLength = 150

// Ensure ingestService implements IngestService
var _ driving.IngestService = (*ingestService)(nil)

// ingestService implements the ingestion pipeline:
// RECEIVED -> DEDUP_CHECKED -> {DUPLICATE | EXTRACTED -> CLEANED ->
// {DISCARDED | INDEXED}}.
type ingestService struct {
	store      driven.DocumentStore
	lexical    driven.LexicalIndex
	semantic   driven.SemanticIndex
	extractors driven.ExtractorRegistry
	services   *runtime.Services
	guard      *Guard
	logger     *slog.Logger
}

// NewIngestService creates a new IngestService.
// The embedding provider is accessed dynamically via runtime.Services,
// so semantic indexing switches on the moment one is configured.
func NewIngestService(
	store driven.DocumentStore,
	lexical driven.LexicalIndex,
	semantic driven.SemanticIndex,
	extractors driven.ExtractorRegistry,
	services *runtime.Services,
	guard *Guard,
	logger *slog.Logger,
) driving.IngestService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ingestService{
		store:      store,
		lexical:    lexical,
		semantic:   semantic,
		extractors: extractors,
		services:   services,
		guard:      guard,
		logger:     logger,
	}
}

// Ingest processes one upload end to end.
func (s *ingestService) Ingest(ctx context.Context, raw []byte, filename, typeTag string) (*domain.IngestResult, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty upload", domain.ErrInvalidInput)
	}

	typeTag = normalizeTypeTag(typeTag, filename)

	// Dedup runs before any extraction or embedding work; this ordering is
	// part of the contract, not an optimization.
	fingerprint := textproc.Fingerprint(raw)
	existing, err := s.store.GetByFingerprint(ctx, fingerprint)
	if err == nil {
		s.logger.Info("duplicate upload", "id", existing.ID, "title", filename)
		return &domain.IngestResult{ID: existing.ID, Duplicate: true}, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("fingerprint lookup: %w", err)
	}

	var text string
	if extractor := s.extractors.Get(typeTag); extractor != nil {
		text = extractor.Extract(raw)
	}

	canonical := textproc.Clean(text)
	if tooShort(canonical) {
		s.logger.Info("upload skipped, no usable text", "title", filename, "type", typeTag)
		return &domain.IngestResult{Skipped: true}, nil
	}

	// Embedding happens before the guarded section: it is external I/O and
	// must not hold up readers. Failures degrade to lexical-only indexing.
	var vector []float32
	if embedder := s.services.EmbeddingService(); embedder != nil {
		vectors, embedErr := embedder.Embed(ctx, []string{canonical})
		if embedErr != nil || len(vectors) == 0 {
			s.logger.Warn("embedding failed, indexing without vector",
				"title", filename, "error", embedErr)
		} else {
			vector = vectors[0]
		}
	}

	doc := &domain.Document{
		Title:       filename,
		Type:        typeTag,
		Fingerprint: fingerprint,
		Content:     canonical,
		Summary:     textproc.Summarize(canonical, textproc.SummarySentences),
		Size:        int64(len(raw)),
		CreatedAt:   time.Now(),
	}

	s.guard.Lock()
	defer s.guard.Unlock()

	id, err := s.store.Save(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}

	if err := s.indexLocked(ctx, id, doc, vector); err != nil {
		// The record exists but indexing is incomplete; a re-run of
		// ingestion or a consistency check re-derives the same state.
		return nil, fmt.Errorf("index document %d: %w", id, err)
	}

	s.logger.Info("document indexed", "id", id, "title", filename, "type", typeTag,
		"semantic", vector != nil)
	return &domain.IngestResult{ID: id}, nil
}

// Reindex re-derives index state for a stored document.
func (s *ingestService) Reindex(ctx context.Context, id int64) error {
	doc, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}

	var vector []float32
	if embedder := s.services.EmbeddingService(); embedder != nil && doc.Content != "" {
		vectors, embedErr := embedder.Embed(ctx, []string{doc.Content})
		if embedErr != nil || len(vectors) == 0 {
			s.logger.Warn("embedding failed during reindex", "id", id, "error", embedErr)
		} else {
			vector = vectors[0]
		}
	}

	s.guard.Lock()
	defer s.guard.Unlock()
	return s.indexLocked(ctx, id, doc, vector)
}

// VerifyConsistency compares store and index membership and heals drift by
// re-running indexing for missing ids and purging orphaned index entries.
// Both indices are audited: a store record missing its postings or (when an
// embedding provider is configured) its vector is re-indexed, and an id left
// behind in either index after a store delete is purged from both.
func (s *ingestService) VerifyConsistency(ctx context.Context) (*domain.ConsistencyReport, error) {
	storeIDs, err := s.store.IDs(ctx)
	if err != nil {
		return nil, err
	}

	report := &domain.ConsistencyReport{Checked: len(storeIDs)}

	// A document without a vector is only drift when an embedder is
	// available; lexical-only deployments index no vectors at all.
	wantVectors := s.services.SemanticAvailable()

	live := make(map[int64]struct{}, len(storeIDs))
	for _, id := range storeIDs {
		live[id] = struct{}{}
		indexed, err := s.lexical.Contains(ctx, id)
		if err != nil {
			return nil, err
		}
		if !indexed {
			report.Missing = append(report.Missing, id)
			continue
		}
		if wantVectors {
			hasVector, err := s.semantic.Contains(ctx, id)
			if err != nil {
				return nil, err
			}
			if !hasVector {
				report.Missing = append(report.Missing, id)
			}
		}
	}

	lexicalIDs, err := s.lexical.DocIDs(ctx)
	if err != nil {
		return nil, err
	}
	semanticIDs, err := s.semantic.DocIDs(ctx)
	if err != nil {
		return nil, err
	}
	orphans := make(map[int64]struct{})
	for _, id := range append(lexicalIDs, semanticIDs...) {
		if _, ok := live[id]; !ok {
			orphans[id] = struct{}{}
		}
	}
	for id := range orphans {
		report.Orphans = append(report.Orphans, id)
	}
	sort.Slice(report.Orphans, func(i, j int) bool { return report.Orphans[i] < report.Orphans[j] })

	for _, id := range report.Missing {
		if err := s.Reindex(ctx, id); err != nil {
			s.logger.Error("failed to heal document", "id", id, "error", err)
			continue
		}
		report.Healed++
	}

	if len(report.Orphans) > 0 {
		s.guard.Lock()
		for _, id := range report.Orphans {
			_ = s.lexical.Remove(ctx, id)
			if err := s.semantic.Remove(ctx, id); err != nil && !errors.Is(err, domain.ErrNotFound) {
				s.logger.Warn("semantic orphan removal failed", "id", id, "error", err)
			}
		}
		s.guard.Unlock()
		report.Healed += len(report.Orphans)
	}

	return report, nil
}

// indexLocked updates both indices for one document. Caller holds the guard.
func (s *ingestService) indexLocked(ctx context.Context, id int64, doc *domain.Document, vector []float32) error {
	tokens := textproc.Tokenize(doc.Content)
	if err := s.lexical.Insert(ctx, id, tokens); err != nil {
		return fmt.Errorf("lexical insert: %w", err)
	}

	if vector == nil {
		return nil
	}
	excerpt := textproc.Excerpt(doc.Content, excerptLength)
	if err := s.semantic.Upsert(ctx, id, vector, excerpt, doc.Type); err != nil {
		return fmt.Errorf("semantic upsert: %w", err)
	}
	return nil
}

// normalizeTypeTag lowercases the tag, falling back to the filename
// extension when no tag was supplied.
func normalizeTypeTag(typeTag, filename string) string {
	tag := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(typeTag), "."))
	if tag == "" {
		tag = strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	}
	return tag
}

// tooShort applies the minimum-signal policy to canonical text.
func tooShort(canonical string) bool {
	if canonical == "" {
		return true
	}
	n := 0
	for range canonical {
		n++
		if n >= textproc.MinDocumentLength {
			return false
		}
	}
	return true
}
