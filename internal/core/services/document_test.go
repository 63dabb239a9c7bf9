package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docteca/docteca-core/internal/core/domain"
	"github.com/docteca/docteca-core/internal/core/ports/driven"
	"github.com/docteca/docteca-core/internal/core/ports/driven/mocks"
)

func TestDocuments_ListMostRecentFirst(t *testing.T) {
	core := newTestCore(nil)
	ctx := context.Background()

	first := mustIngest(t, core, "Solaris configuration guide for operators", "solaris.txt")
	second := mustIngest(t, core, "Kubernetes networking deep dive material", "k8s.txt")

	docs, err := core.docs.List(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, second, docs[0].ID)
	assert.Equal(t, first, docs[1].ID)

	count, err := core.docs.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestDocuments_GetUnknown(t *testing.T) {
	core := newTestCore(nil)
	_, err := core.docs.Get(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_PurgesEveryIndex(t *testing.T) {
	embedding := mocks.NewMockEmbeddingService()
	core := newTestCore(embedding)
	ctx := context.Background()

	id := mustIngest(t, core, "Solaris configuration guide for operators", "solaris.txt")

	require.NoError(t, core.docs.Delete(ctx, id))

	_, err := core.docs.Get(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	indexed, _ := core.lexical.Contains(ctx, id)
	assert.False(t, indexed)
	hasVector, _ := core.semantic.Contains(ctx, id)
	assert.False(t, hasVector)

	// The deleted document is unreachable through search.
	result, err := core.search.Search(ctx, "solaris", domain.DefaultSearchOptions())
	require.NoError(t, err)
	assert.Empty(t, result.Results)
}

func TestDelete_Unknown(t *testing.T) {
	core := newTestCore(nil)
	err := core.docs.Delete(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_ToleratesMissingVector(t *testing.T) {
	// Ingested without an embedder, so only the lexical index holds the id.
	core := newTestCore(nil)
	ctx := context.Background()

	id := mustIngest(t, core, "Solaris configuration guide for operators", "solaris.txt")

	require.NoError(t, core.docs.Delete(ctx, id), "absent vector must not fail deletion")

	count, _ := core.docs.Count(ctx)
	assert.Zero(t, count)
}

// failingLexical wraps a real lexical index and fails every Remove.
type failingLexical struct {
	driven.LexicalIndex
	removeErr error
}

func (f *failingLexical) Remove(context.Context, int64) error {
	return f.removeErr
}

func TestDelete_ReportsIndexInconsistency(t *testing.T) {
	core := newTestCore(nil)
	ctx := context.Background()

	id := mustIngest(t, core, "Solaris configuration guide for operators", "solaris.txt")

	broken := &failingLexical{LexicalIndex: core.lexical, removeErr: assert.AnError}
	docs := NewDocumentService(core.store, broken, core.semantic, core.guard, nil)

	// The store record is gone but the postings survived: the caller must
	// learn that the indexes no longer agree with the store.
	err := docs.Delete(ctx, id)
	assert.ErrorIs(t, err, domain.ErrIndexInconsistency)
}

func TestDelete_ThenReingestGetsNewID(t *testing.T) {
	core := newTestCore(nil)
	ctx := context.Background()
	raw := "Solaris configuration guide for operators"

	first := mustIngest(t, core, raw, "solaris.txt")
	require.NoError(t, core.docs.Delete(ctx, first))

	// The fingerprint died with the record, so the same bytes ingest fresh.
	second, err := core.ingest.Ingest(ctx, []byte(raw), "solaris.txt", "txt")
	require.NoError(t, err)
	assert.False(t, second.Duplicate)
	assert.NotEqual(t, first, second.ID)
}
