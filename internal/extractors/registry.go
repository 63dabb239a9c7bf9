// Package extractors turns raw uploaded bytes into plain text.
// Formats without a registered extractor yield no text, which the
// ingestion pipeline records as a skipped upload rather than an error.
package extractors

import (
	"sort"
	"strings"
	"sync"

	"github.com/docteca/docteca-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry implements ExtractorRegistry with priority-based selection.
type Registry struct {
	mu         sync.RWMutex
	extractors []driven.Extractor
}

// NewRegistry creates a new extractor registry.
func NewRegistry() *Registry {
	return &Registry{
		extractors: make([]driven.Extractor, 0),
	}
}

// Register registers an extractor.
func (r *Registry) Register(extractor driven.Extractor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.extractors = append(r.extractors, extractor)
}

// Get retrieves the best-matching extractor for a type tag.
// Returns nil if no extractor handles the type.
func (r *Registry) Get(typeTag string) driven.Extractor {
	matches := r.GetAll(typeTag)
	if len(matches) == 0 {
		return nil
	}
	return matches[0] // Already sorted by priority (highest first)
}

// GetAll retrieves all extractors matching a type tag, sorted by priority
// (highest first).
func (r *Registry) GetAll(typeTag string) []driven.Extractor {
	typeTag = strings.ToLower(strings.TrimPrefix(typeTag, "."))

	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []driven.Extractor
	for _, e := range r.extractors {
		for _, t := range e.SupportedTypes() {
			if t == typeTag {
				matches = append(matches, e)
				break
			}
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Priority() > matches[j].Priority()
	})

	return matches
}

// List returns all registered type tags, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	typeSet := make(map[string]struct{})
	for _, e := range r.extractors {
		for _, t := range e.SupportedTypes() {
			typeSet[t] = struct{}{}
		}
	}

	types := make([]string, 0, len(typeSet))
	for t := range typeSet {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
