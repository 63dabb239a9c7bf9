package services

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/docteca/docteca-core/internal/core/domain"
	"github.com/docteca/docteca-core/internal/core/ports/driven"
	"github.com/docteca/docteca-core/internal/core/ports/driving"
	"github.com/docteca/docteca-core/internal/runtime"
	"github.com/docteca/docteca-core/internal/textproc"
)

// Ensure searchService implements SearchService
var _ driving.SearchService = (*searchService)(nil)

// searchService is the retrieval orchestrator: it fans the query out to the
// configured indices, merges candidates by document id keeping the highest
// score, filters, ranks and attaches display summaries.
type searchService struct {
	store    driven.DocumentStore
	lexical  driven.LexicalIndex
	semantic driven.SemanticIndex
	services *runtime.Services
	guard    *Guard
	logger   *slog.Logger
}

// NewSearchService creates a new SearchService
func NewSearchService(
	store driven.DocumentStore,
	lexical driven.LexicalIndex,
	semantic driven.SemanticIndex,
	services *runtime.Services,
	guard *Guard,
	logger *slog.Logger,
) driving.SearchService {
	if logger == nil {
		logger = slog.Default()
	}
	return &searchService{
		store:    store,
		lexical:  lexical,
		semantic: semantic,
		services: services,
		guard:    guard,
		logger:   logger,
	}
}

// Search runs the query against the selected indices.
func (s *searchService) Search(ctx context.Context, query string, opts domain.SearchOptions) (*domain.SearchResult, error) {
	start := time.Now()

	// Apply defaults
	if opts.Limit <= 0 {
		opts.Limit = 10
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Match == "" {
		opts.Match = domain.MatchExact
	}
	opts.Mode = s.effectiveMode(opts.Mode)

	empty := &domain.SearchResult{
		Query:   query,
		Mode:    opts.Mode,
		Results: []*domain.RankedDocument{},
		Took:    time.Since(start),
	}

	// A whitespace-only query is a distinct, always-empty case.
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return empty, nil
	}

	tokens := textproc.Tokenize(textproc.Clean(trimmed))

	// The query embedding is external I/O; compute it before taking the
	// read lock. Failure degrades the search to lexical-only.
	var queryVector []float32
	if opts.Mode.RequiresEmbedding() {
		if embedder := s.services.EmbeddingService(); embedder != nil {
			vector, err := embedder.EmbedQuery(ctx, trimmed)
			if err != nil {
				s.logger.Warn("query embedding failed, lexical only", "error", err)
				opts.Mode = domain.SearchModeLexical
			} else {
				queryVector = vector
			}
		} else {
			opts.Mode = domain.SearchModeLexical
		}
	}

	s.guard.RLock()
	defer s.guard.RUnlock()

	// Each strategy proposes candidates with its own percentage-equivalent
	// score; merging keeps the highest score per id, never a sum or average.
	candidates := make(map[int64]float64)

	if opts.Mode != domain.SearchModeSemantic && len(tokens) > 0 {
		ids, err := s.lexical.Query(ctx, tokens, opts.Match)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			candidates[id] = domain.LexicalMatchScore
		}
	}

	if opts.Mode != domain.SearchModeLexical && queryVector != nil {
		hits, err := s.semantic.Query(ctx, queryVector, opts.Limit, opts.Type)
		if err != nil {
			return nil, err
		}
		for _, hit := range hits {
			score := domain.ScoreFromDistance(hit.Distance)
			// Hard relevance floor: at or below it the hit is dropped
			// entirely, even when the result list is not full.
			if score <= domain.RelevanceFloor {
				continue
			}
			if score > candidates[hit.DocID] {
				candidates[hit.DocID] = score
			}
		}
	}

	results := make([]*domain.RankedDocument, 0, len(candidates))
	for id, score := range candidates {
		doc, err := s.store.Get(ctx, id)
		if err != nil {
			// A candidate without a store record is index drift; skip it
			// rather than failing the read path.
			s.logger.Warn("candidate missing from store", "id", id)
			continue
		}
		if opts.Type != "" && !strings.EqualFold(doc.Type, opts.Type) {
			continue
		}
		results = append(results, &domain.RankedDocument{
			ID:      doc.ID,
			Title:   doc.Title,
			Type:    doc.Type,
			Summary: displaySummary(doc),
			Score:   score,
		})
	}

	// Deterministic order: score descending, ties by ascending id.
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].ID < results[j].ID
	})
	if len(results) > opts.Limit {
		results = results[:opts.Limit]
	}

	return &domain.SearchResult{
		Query:   query,
		Mode:    opts.Mode,
		Results: results,
		Total:   len(results),
		Took:    time.Since(start),
	}, nil
}

// effectiveMode degrades the requested mode to what is possible right now.
func (s *searchService) effectiveMode(requested domain.SearchMode) domain.SearchMode {
	if requested == "" {
		requested = domain.SearchModeHybrid
	}
	if requested.RequiresEmbedding() && !s.services.SemanticAvailable() {
		return domain.SearchModeLexical
	}
	return requested
}

// displaySummary picks the precomputed summary, falls back to a content
// excerpt, and finally to the no-content placeholder.
func displaySummary(doc *domain.Document) string {
	if doc.Summary != "" && doc.Summary != textproc.NoSummary {
		return doc.Summary
	}
	if doc.Content != "" {
		return textproc.Excerpt(doc.Content, excerptLength)
	}
	return textproc.NoSummary
}
