// Package memindex provides the in-process index adapters: a hand-rolled
// lexical inverted index and a brute-force semantic vector index. Both are
// safe for concurrent use and keep no state outside the process.
package memindex

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/docteca/docteca-core/internal/core/domain"
	"github.com/docteca/docteca-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.LexicalIndex = (*Lexical)(nil)

// Lexical implements driven.LexicalIndex with an inverted
// token -> posting-set mapping.
type Lexical struct {
	mu sync.RWMutex

	// postings maps a token to the set of document ids containing it.
	postings map[string]map[int64]struct{}

	// docTokens remembers which tokens each id was inserted under,
	// so Remove can visit exactly those posting sets.
	docTokens map[int64][]string
}

// NewLexical creates an empty lexical index.
func NewLexical() *Lexical {
	return &Lexical{
		postings:  make(map[string]map[int64]struct{}),
		docTokens: make(map[int64][]string),
	}
}

// Insert indexes docID under the given token set. Re-inserting replaces the
// previous token set, which makes update-by-reindex idempotent.
func (l *Lexical) Insert(_ context.Context, docID int64, tokens []string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.docTokens[docID]; ok {
		l.removeLocked(docID)
	}

	kept := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if token == "" {
			continue
		}
		set, ok := l.postings[token]
		if !ok {
			set = make(map[int64]struct{})
			l.postings[token] = set
		}
		if _, dup := set[docID]; dup {
			continue
		}
		set[docID] = struct{}{}
		kept = append(kept, token)
	}
	l.docTokens[docID] = kept

	return nil
}

// Remove purges docID from every posting set it was inserted under.
// Emptied posting sets are pruned.
func (l *Lexical) Remove(_ context.Context, docID int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.removeLocked(docID)
	return nil
}

func (l *Lexical) removeLocked(docID int64) {
	for _, token := range l.docTokens[docID] {
		set, ok := l.postings[token]
		if !ok {
			continue
		}
		delete(set, docID)
		if len(set) == 0 {
			delete(l.postings, token)
		}
	}
	delete(l.docTokens, docID)
}

// Query intersects the posting sets of all supplied tokens. A document must
// contain every query token; there is no partial-match fallback here.
func (l *Lexical) Query(_ context.Context, tokens []string, match domain.MatchMode) ([]int64, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	var result map[int64]struct{}
	for _, token := range tokens {
		var termSet map[int64]struct{}
		if match == domain.MatchPrefix {
			termSet = l.prefixSetLocked(token)
		} else {
			termSet = l.postings[token]
		}
		if len(termSet) == 0 {
			return nil, nil
		}

		if result == nil {
			result = make(map[int64]struct{}, len(termSet))
			for id := range termSet {
				result[id] = struct{}{}
			}
			continue
		}
		for id := range result {
			if _, ok := termSet[id]; !ok {
				delete(result, id)
			}
		}
		if len(result) == 0 {
			return nil, nil
		}
	}

	ids := make([]int64, 0, len(result))
	for id := range result {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// prefixSetLocked unions the posting sets of every indexed token that has
// term as a prefix.
func (l *Lexical) prefixSetLocked(term string) map[int64]struct{} {
	union := make(map[int64]struct{})
	for token, set := range l.postings {
		if !strings.HasPrefix(token, term) {
			continue
		}
		for id := range set {
			union[id] = struct{}{}
		}
	}
	return union
}

// Contains reports whether docID is indexed.
func (l *Lexical) Contains(_ context.Context, docID int64) (bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.docTokens[docID]
	return ok, nil
}

// DocIDs returns every indexed document id, sorted ascending.
func (l *Lexical) DocIDs(_ context.Context) ([]int64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	ids := make([]int64, 0, len(l.docTokens))
	for id := range l.docTokens {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// Tokens returns the number of distinct indexed tokens.
func (l *Lexical) Tokens() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.postings)
}
