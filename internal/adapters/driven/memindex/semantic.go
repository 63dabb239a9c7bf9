package memindex

import (
	"context"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/docteca/docteca-core/internal/core/domain"
	"github.com/docteca/docteca-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.SemanticIndex = (*Semantic)(nil)

type semanticEntry struct {
	vector  []float32
	norm    float64
	excerpt string
	typeTag string
}

// Semantic implements driven.SemanticIndex with brute-force cosine distance
// over per-document vectors. The dimensionality is fixed by the first
// upserted vector.
type Semantic struct {
	mu        sync.RWMutex
	dimension int
	entries   map[int64]semanticEntry
}

// NewSemantic creates an empty semantic index.
func NewSemantic() *Semantic {
	return &Semantic{entries: make(map[int64]semanticEntry)}
}

// Upsert stores or replaces the vector and metadata for a document.
func (s *Semantic) Upsert(_ context.Context, docID int64, vector []float32, excerpt, typeTag string) error {
	if len(vector) == 0 {
		return domain.ErrDimensionMismatch
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dimension == 0 {
		s.dimension = len(vector)
	} else if len(vector) != s.dimension {
		return domain.ErrDimensionMismatch
	}

	stored := make([]float32, len(vector))
	copy(stored, vector)

	s.entries[docID] = semanticEntry{
		vector:  stored,
		norm:    vectorNorm(stored),
		excerpt: excerpt,
		typeTag: strings.ToLower(typeTag),
	}
	return nil
}

// Remove deletes the vector and metadata entry for a document.
func (s *Semantic) Remove(_ context.Context, docID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[docID]; !ok {
		return domain.ErrNotFound
	}
	delete(s.entries, docID)
	return nil
}

// Query returns up to limit entries closest to the vector by cosine
// distance. The type filter restricts the candidate set before ranking,
// never after: a small filtered subset still yields up to limit matches.
func (s *Semantic) Query(_ context.Context, vector []float32, limit int, typeFilter string) ([]driven.SemanticHit, error) {
	if limit <= 0 || len(vector) == 0 {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.dimension != 0 && len(vector) != s.dimension {
		return nil, domain.ErrDimensionMismatch
	}

	typeFilter = strings.ToLower(typeFilter)
	queryNorm := vectorNorm(vector)

	hits := make([]driven.SemanticHit, 0, len(s.entries))
	for id, entry := range s.entries {
		if typeFilter != "" && entry.typeTag != typeFilter {
			continue
		}
		hits = append(hits, driven.SemanticHit{
			DocID:    id,
			Distance: cosineDistance(vector, queryNorm, entry.vector, entry.norm),
			Excerpt:  entry.excerpt,
			Type:     entry.typeTag,
		})
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Distance != hits[j].Distance {
			return hits[i].Distance < hits[j].Distance
		}
		return hits[i].DocID < hits[j].DocID
	})

	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

// Contains reports whether the document id has a stored vector.
func (s *Semantic) Contains(_ context.Context, docID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.entries[docID]
	return ok, nil
}

// DocIDs returns every document id with a stored vector, sorted ascending.
func (s *Semantic) DocIDs(_ context.Context) ([]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int64, 0, len(s.entries))
	for id := range s.entries {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// Len returns the number of stored vectors.
func (s *Semantic) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// cosineDistance is 1 - cosine similarity, so 0 means identical direction
// and 2 means opposite. Zero-magnitude vectors are maximally distant.
func cosineDistance(a []float32, normA float64, b []float32, normB float64) float64 {
	if normA == 0 || normB == 0 {
		return 2
	}
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	return 1 - dot/(normA*normB)
}

func vectorNorm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}
