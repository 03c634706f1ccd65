package embedding

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/futig/rag-backend/internal/config"
	"github.com/futig/rag-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig(url string, dimension int) config.EmbeddingConnectorConfig {
	return config.EmbeddingConnectorConfig{
		HTTPClientConfig: config.HTTPClientConfig{
			RequestTimeout: 5 * time.Second,
			ConnTimeout:    time.Second,
			Url:            url,
		},
		Provider:  config.ProviderOllama,
		Endpoint:  "/api/embed",
		Model:     "nomic-embed-text",
		Dimension: dimension,
	}
}

func embedServer(t *testing.T, vector []float32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/embed", r.URL.Path)

		var req embedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "nomic-embed-text", req.Model)
		assert.Equal(t, "hello world", req.Input)

		json.NewEncoder(w).Encode(embedResponse{Embeddings: [][]float32{vector}})
	}))
}

func TestConnector_Embed(t *testing.T) {
	srv := embedServer(t, []float32{0.1, 0.2, 0.3})
	defer srv.Close()

	c := NewConnector(testConfig(srv.URL, 3), zap.NewNop())

	vector, err := c.Embed(context.Background(), "hello world")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vector)
}

func TestConnector_DimensionMismatch(t *testing.T) {
	srv := embedServer(t, []float32{0.1, 0.2})
	defer srv.Close()

	c := NewConnector(testConfig(srv.URL, 3), zap.NewNop())

	_, err := c.Embed(context.Background(), "hello world")
	require.ErrorIs(t, err, entity.ErrEmbeddingService)
}

func TestConnector_EmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"embeddings":[]}`))
	}))
	defer srv.Close()

	_, err := NewConnector(testConfig(srv.URL, 3), zap.NewNop()).Embed(context.Background(), "x")
	require.ErrorIs(t, err, entity.ErrEmbeddingService)
}

func TestConnector_ServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewConnector(testConfig(srv.URL, 3), zap.NewNop()).Embed(context.Background(), "x")
	require.ErrorIs(t, err, entity.ErrEmbeddingService)
}

func TestOpenAIConnector_Embed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/embeddings", r.URL.Path)
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"object":"list","model":"m","data":[{"object":"embedding","index":0,"embedding":[0.5,0.25,0.125]}],"usage":{"prompt_tokens":1,"total_tokens":1}}`))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL, 3)
	cfg.Token = "key"

	vector, err := NewOpenAIConnector(cfg, zap.NewNop()).Embed(context.Background(), "hello world")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.5, 0.25, 0.125}, vector)
}

func TestOpenAIConnector_DimensionMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"object":"list","model":"m","data":[{"object":"embedding","index":0,"embedding":[0.5]}]}`))
	}))
	defer srv.Close()

	_, err := NewOpenAIConnector(testConfig(srv.URL, 3), zap.NewNop()).Embed(context.Background(), "x")
	require.ErrorIs(t, err, entity.ErrEmbeddingService)
}

func TestMockConnector_DeterministicAndNormalised(t *testing.T) {
	m := NewMockConnector(64, zap.NewNop())

	a, err := m.Embed(context.Background(), "Return policy: 30 days")
	require.NoError(t, err)
	b, err := m.Embed(context.Background(), "Return policy: 30 days")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Len(t, a, 64)

	var norm float64
	for _, v := range a {
		norm += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-5)
}

func TestMockConnector_EmptyText(t *testing.T) {
	vector, err := NewMockConnector(8, zap.NewNop()).Embed(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, vector, 8)
}

func TestValidateVector(t *testing.T) {
	require.ErrorIs(t, ValidateVector(nil, 3), entity.ErrEmbeddingService)
	require.ErrorIs(t, ValidateVector([]float32{1}, 3), entity.ErrEmbeddingService)
	require.NoError(t, ValidateVector([]float32{1, 2, 3}, 3))
}
