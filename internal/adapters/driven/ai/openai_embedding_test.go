package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEmbeddingServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *OpenAIEmbedding) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc, err := NewOpenAIEmbedding("test-key", "text-embedding-3-small", server.URL)
	require.NoError(t, err)
	return server, svc
}

func TestOpenAIEmbedding_Embed(t *testing.T) {
	var gotAuth string
	_, svc := newEmbeddingServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")

		var req embeddingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		// Respond out of order to verify index-based placement.
		resp := map[string]any{
			"data": []map[string]any{
				{"index": 1, "embedding": []float32{0, 1}},
				{"index": 0, "embedding": []float32{1, 0}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	})

	vectors, err := svc.Embed(context.Background(), []string{"primero", "segundo"})
	require.NoError(t, err)
	require.Len(t, vectors, 2)
	assert.Equal(t, []float32{1, 0}, vectors[0])
	assert.Equal(t, []float32{0, 1}, vectors[1])
	assert.Equal(t, "Bearer test-key", gotAuth)
}

func TestOpenAIEmbedding_BatchesLargeInputs(t *testing.T) {
	var requests int
	_, svc := newEmbeddingServer(t, func(w http.ResponseWriter, r *http.Request) {
		requests++

		var req embeddingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.LessOrEqual(t, len(req.Input), maxBatchSize)

		data := make([]map[string]any, len(req.Input))
		for i := range req.Input {
			data[i] = map[string]any{"index": i, "embedding": []float32{1}}
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"data": data})
	})

	texts := make([]string, maxBatchSize+5)
	for i := range texts {
		texts[i] = "texto"
	}

	vectors, err := svc.Embed(context.Background(), texts)
	require.NoError(t, err)
	assert.Len(t, vectors, maxBatchSize+5)
	assert.Equal(t, 2, requests)
}

func TestOpenAIEmbedding_TruncatesOversizedInput(t *testing.T) {
	_, svc := newEmbeddingServer(t, func(w http.ResponseWriter, r *http.Request) {
		var req embeddingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Input, 1)
		assert.Len(t, []rune(req.Input[0]), maxInputRunes)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"index": 0, "embedding": []float32{1}}},
		})
	})

	_, err := svc.Embed(context.Background(), []string{strings.Repeat("a", maxInputRunes*2)})
	require.NoError(t, err)
}

func TestOpenAIEmbedding_APIError(t *testing.T) {
	_, svc := newEmbeddingServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"message": "invalid api key",
				"type":    "invalid_request_error",
				"code":    "invalid_api_key",
			},
		})
	})

	_, err := svc.EmbedQuery(context.Background(), "consulta")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid api key")
}

func TestNewOpenAIEmbedding_Validation(t *testing.T) {
	_, err := NewOpenAIEmbedding("", "", "")
	assert.Error(t, err, "API key is mandatory")

	svc, err := NewOpenAIEmbedding("key", "", "")
	require.NoError(t, err)
	assert.Equal(t, "text-embedding-3-small", svc.Model())
	assert.Equal(t, 1536, svc.Dimensions())

	svc, err = NewOpenAIEmbedding("key", "text-embedding-3-large", "")
	require.NoError(t, err)
	assert.Equal(t, 3072, svc.Dimensions())
}
