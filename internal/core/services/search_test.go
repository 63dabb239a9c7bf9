package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docteca/docteca-core/internal/core/domain"
	"github.com/docteca/docteca-core/internal/core/ports/driven/mocks"
)

func mustIngest(t *testing.T, core *testCore, content, filename string) int64 {
	t.Helper()
	result, err := core.ingest.Ingest(context.Background(), []byte(content), filename, "txt")
	require.NoError(t, err)
	require.False(t, result.Skipped)
	return result.ID
}

func TestSearch_ExactMatchRequiresAllTerms(t *testing.T) {
	core := newTestCore(nil)
	ctx := context.Background()

	solaris := mustIngest(t, core, "Solaris configuration guide for operators", "solaris.txt")
	mustIngest(t, core, "Kubernetes networking deep dive material", "k8s.txt")

	result, err := core.search.Search(ctx, "solaris guide", domain.DefaultSearchOptions())
	require.NoError(t, err)
	require.Len(t, result.Results, 1)
	assert.Equal(t, solaris, result.Results[0].ID)
	assert.Equal(t, domain.LexicalMatchScore, result.Results[0].Score)

	// One term absent from the document drops it, even if the other matches.
	result, err = core.search.Search(ctx, "solaris networking", domain.DefaultSearchOptions())
	require.NoError(t, err)
	assert.Empty(t, result.Results)
}

func TestSearch_PrefixMatch(t *testing.T) {
	core := newTestCore(nil)
	ctx := context.Background()

	id := mustIngest(t, core, "Solaris configuration guide for operators", "solaris.txt")

	opts := domain.DefaultSearchOptions()
	opts.Match = domain.MatchPrefix
	result, err := core.search.Search(ctx, "solar conf", opts)
	require.NoError(t, err)
	require.Len(t, result.Results, 1)
	assert.Equal(t, id, result.Results[0].ID)

	// Exact mode does not match on prefixes.
	result, err = core.search.Search(ctx, "solar conf", domain.DefaultSearchOptions())
	require.NoError(t, err)
	assert.Empty(t, result.Results)
}

func TestSearch_EmptyQuery(t *testing.T) {
	core := newTestCore(nil)

	for _, query := range []string{"", "   ", "\t\n"} {
		result, err := core.search.Search(context.Background(), query, domain.DefaultSearchOptions())
		require.NoError(t, err)
		assert.Empty(t, result.Results)
		assert.Zero(t, result.Total)
	}
}

func TestSearch_ShortTokensIgnored(t *testing.T) {
	core := newTestCore(nil)
	ctx := context.Background()

	id := mustIngest(t, core, "Solaris configuration guide for operators", "solaris.txt")

	// "el" and "de" are below the token length cutoff and must not
	// constrain the intersection.
	result, err := core.search.Search(ctx, "el solaris de", domain.DefaultSearchOptions())
	require.NoError(t, err)
	require.Len(t, result.Results, 1)
	assert.Equal(t, id, result.Results[0].ID)
}

func TestSearch_TypeFilter(t *testing.T) {
	core := newTestCore(nil)
	ctx := context.Background()

	txtID := mustIngest(t, core, "Solaris configuration guide for operators", "solaris.txt")

	other, err := core.ingest.Ingest(ctx, []byte("Solaris installation checklist and notes"), "solaris.md", "md")
	require.NoError(t, err)

	opts := domain.DefaultSearchOptions()
	opts.Type = "txt"
	result, err := core.search.Search(ctx, "solaris", opts)
	require.NoError(t, err)
	require.Len(t, result.Results, 1)
	assert.Equal(t, txtID, result.Results[0].ID)

	opts.Type = "MD"
	result, err = core.search.Search(ctx, "solaris", opts)
	require.NoError(t, err)
	require.Len(t, result.Results, 1, "type filter is case-insensitive")
	assert.Equal(t, other.ID, result.Results[0].ID)
}

func TestSearch_LimitAndTieBreak(t *testing.T) {
	core := newTestCore(nil)
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		mustIngest(t, core, fmt.Sprintf("Solaris configuration guide volume number %d", i), fmt.Sprintf("vol%d.txt", i))
	}

	result, err := core.search.Search(ctx, "solaris", domain.SearchOptions{})
	require.NoError(t, err)
	require.Len(t, result.Results, 10, "default limit is 10")

	// All scores equal, so order falls back to ascending id.
	for i := 1; i < len(result.Results); i++ {
		assert.Less(t, result.Results[i-1].ID, result.Results[i].ID)
	}

	opts := domain.DefaultSearchOptions()
	opts.Limit = 3
	result, err = core.search.Search(ctx, "solaris", opts)
	require.NoError(t, err)
	assert.Len(t, result.Results, 3)
}

func TestSearch_SemanticFloor(t *testing.T) {
	embedding := mocks.NewMockEmbeddingService()
	core := newTestCore(embedding)
	ctx := context.Background()

	// Cosine similarity 0.5 against the query gives distance 0.5 and
	// score 75, above the floor. Similarity 0 gives distance 1.0 and
	// score 50, below it.
	embedding.SetVector("relevante", []float32{1, 0, 0, 0})
	embedding.SetVector("cerca del tema principal de consulta", []float32{1, 1, 1, 1})
	embedding.SetVector("tema completamente ajeno a la consulta", []float32{0, 1, 0, 0})

	nearID := mustIngest(t, core, "cerca del tema principal de consulta", "cerca.txt")
	mustIngest(t, core, "tema completamente ajeno a la consulta", "lejos.txt")

	opts := domain.DefaultSearchOptions()
	opts.Mode = domain.SearchModeSemantic
	result, err := core.search.Search(ctx, "relevante", opts)
	require.NoError(t, err)
	require.Len(t, result.Results, 1, "below-floor hits are dropped even with room in the list")
	assert.Equal(t, nearID, result.Results[0].ID)
	assert.InDelta(t, 75.0, result.Results[0].Score, 1e-9)
}

func TestSearch_SemanticFloorBoundary(t *testing.T) {
	embedding := mocks.NewMockEmbeddingService()
	core := newTestCore(embedding)
	ctx := context.Background()

	// Against the query (3,4,0,0) the vector (-1,2,4,2) has dot 5 and both
	// norms are exactly 5, so cosine similarity is 5/25 and the distance
	// computes to the float closest to 0.8, scoring exactly 60. That sits
	// on the floor and must be dropped. (7,1,7,1) has dot 25 with norms 5
	// and 10, distance 0.5, score 75, and stays.
	embedding.SetVector("consulta", []float32{3, 4, 0, 0})
	embedding.SetVector("documento justo en el umbral de relevancia", []float32{-1, 2, 4, 2})
	embedding.SetVector("documento claramente dentro del umbral aqui", []float32{7, 1, 7, 1})

	mustIngest(t, core, "documento justo en el umbral de relevancia", "umbral.txt")
	keptID := mustIngest(t, core, "documento claramente dentro del umbral aqui", "dentro.txt")

	opts := domain.DefaultSearchOptions()
	opts.Mode = domain.SearchModeSemantic
	result, err := core.search.Search(ctx, "consulta", opts)
	require.NoError(t, err)
	require.Len(t, result.Results, 1, "a hit scoring exactly 60 is dropped even with room in the list")
	assert.Equal(t, keptID, result.Results[0].ID)
	assert.InDelta(t, 75.0, result.Results[0].Score, 1e-9)
}

func TestSearch_HybridKeepsHighestScore(t *testing.T) {
	embedding := mocks.NewMockEmbeddingService()
	core := newTestCore(embedding)
	ctx := context.Background()

	embedding.SetVector("solaris", []float32{1, 0, 0, 0})
	embedding.SetVector("solaris configuration guide for operators", []float32{1, 1, 1, 1})

	id := mustIngest(t, core, "Solaris configuration guide for operators", "solaris.txt")

	result, err := core.search.Search(ctx, "solaris", domain.DefaultSearchOptions())
	require.NoError(t, err)
	require.Len(t, result.Results, 1)
	// The document matches both ways; the lexical 100 beats the semantic 75.
	assert.Equal(t, id, result.Results[0].ID)
	assert.Equal(t, domain.LexicalMatchScore, result.Results[0].Score)
}

func TestSearch_SemanticModeSkipsLexicalOnlyMatches(t *testing.T) {
	embedding := mocks.NewMockEmbeddingService()
	core := newTestCore(embedding)
	ctx := context.Background()

	embedding.SetVector("consulta", []float32{1, 0, 0, 0})
	embedding.SetVector("consulta frecuente sobre facturas", []float32{0, 1, 0, 0})

	mustIngest(t, core, "consulta frecuente sobre facturas", "faq.txt")

	opts := domain.DefaultSearchOptions()
	opts.Mode = domain.SearchModeSemantic
	result, err := core.search.Search(ctx, "consulta", opts)
	require.NoError(t, err)
	assert.Empty(t, result.Results, "orthogonal vector scores 50, below the floor")
}

func TestSearch_DegradesWithoutEmbedder(t *testing.T) {
	core := newTestCore(nil)
	ctx := context.Background()

	id := mustIngest(t, core, "Solaris configuration guide for operators", "solaris.txt")

	opts := domain.DefaultSearchOptions()
	opts.Mode = domain.SearchModeHybrid
	result, err := core.search.Search(ctx, "solaris", opts)
	require.NoError(t, err)
	assert.Equal(t, domain.SearchModeLexical, result.Mode)
	require.Len(t, result.Results, 1)
	assert.Equal(t, id, result.Results[0].ID)
}

func TestSearch_QueryEmbeddingFailureFallsBackToLexical(t *testing.T) {
	embedding := mocks.NewMockEmbeddingService()
	core := newTestCore(embedding)
	ctx := context.Background()

	id := mustIngest(t, core, "Solaris configuration guide for operators", "solaris.txt")

	embedding.EmbedErr = assert.AnError
	result, err := core.search.Search(ctx, "solaris", domain.DefaultSearchOptions())
	require.NoError(t, err)
	assert.Equal(t, domain.SearchModeLexical, result.Mode)
	require.Len(t, result.Results, 1)
	assert.Equal(t, id, result.Results[0].ID)
}

func TestSearch_SkipsCandidatesMissingFromStore(t *testing.T) {
	core := newTestCore(nil)
	ctx := context.Background()

	id := mustIngest(t, core, "Solaris configuration guide for operators", "solaris.txt")

	// Index drift: an id present in the postings but gone from the store.
	require.NoError(t, core.lexical.Insert(ctx, 999, []string{"solaris"}))

	result, err := core.search.Search(ctx, "solaris", domain.DefaultSearchOptions())
	require.NoError(t, err)
	require.Len(t, result.Results, 1)
	assert.Equal(t, id, result.Results[0].ID)
}

func TestSearch_SummaryFallsBackToExcerpt(t *testing.T) {
	core := newTestCore(nil)
	ctx := context.Background()

	// Sentences under the summary cutoff produce no summary, so the
	// result falls back to a content excerpt.
	mustIngest(t, core, "notas solaris hoy", "notas.txt")

	result, err := core.search.Search(ctx, "notas", domain.DefaultSearchOptions())
	require.NoError(t, err)
	require.Len(t, result.Results, 1)
	assert.Equal(t, "notas solaris hoy", result.Results[0].Summary)
}
