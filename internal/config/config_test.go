package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":8080")
	t.Setenv("ENABLE_MOCKS", "true")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, 500, cfg.ChunkerCfg.Size)
	assert.Equal(t, 50, cfg.ChunkerCfg.Overlap)
	assert.Equal(t, 1000, cfg.ChunkerCfg.MaxChunks)
	assert.Equal(t, 500000, cfg.ChunkerCfg.MaxTextLength)
	assert.Equal(t, 5, cfg.RetrievalCfg.DefaultLimit)
	assert.InDelta(t, 0.3, cfg.RetrievalCfg.DefaultThreshold, 1e-9)
	assert.Equal(t, 768, cfg.EmbeddingConnectorCfg.Dimension)
	assert.Equal(t, ProviderOllama, cfg.LLMConnectorCfg.Provider)
	assert.Equal(t, 60*time.Second, cfg.LLMConnectorCfg.RequestTimeout)
	assert.Equal(t, uint(5), cfg.DBConnectRetry.Attempts)
	assert.Equal(t, 100, cfg.EmbeddingConnectorCfg.MaxIdleConns)
	assert.Equal(t, 10, cfg.EmbeddingConnectorCfg.MaxIdleConnsPerHost)
	assert.Equal(t, 10*time.Second, cfg.EmbeddingConnectorCfg.TLSHandshakeTimeout)
}

func TestParse_ConnectorPoolOverrides(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":8080")
	t.Setenv("ENABLE_MOCKS", "true")
	t.Setenv("LLM_MAX_IDLE_CONNS", "7")
	t.Setenv("LLM_MAX_IDLE_CONNS_PER_HOST", "3")
	t.Setenv("LLM_TLS_HANDSHAKE_TIMEOUT", "2s")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.LLMConnectorCfg.MaxIdleConns)
	assert.Equal(t, 3, cfg.LLMConnectorCfg.MaxIdleConnsPerHost)
	assert.Equal(t, 2*time.Second, cfg.LLMConnectorCfg.TLSHandshakeTimeout)
	assert.Equal(t, 100, cfg.EmbeddingConnectorCfg.MaxIdleConns)
}

func TestParse_RejectsOverlapNotBelowSize(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":8080")
	t.Setenv("ENABLE_MOCKS", "true")
	t.Setenv("CHUNKER_SIZE", "100")
	t.Setenv("CHUNKER_OVERLAP", "100")

	_, err := Parse()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CHUNKER_OVERLAP")
}

func TestParse_RequiresServicesWithoutMocks(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":8080")
	t.Setenv("ENABLE_MOCKS", "false")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("EMBEDDING_SERVICE_URL", "")
	t.Setenv("LLM_SERVICE_URL", "")

	_, err := Parse()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
	assert.Contains(t, err.Error(), "EMBEDDING_SERVICE_URL")
	assert.Contains(t, err.Error(), "LLM_SERVICE_URL")
}

func TestParse_RejectsUnknownProvider(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":8080")
	t.Setenv("ENABLE_MOCKS", "false")
	t.Setenv("DATABASE_URL", "postgres://localhost/rag")
	t.Setenv("EMBEDDING_SERVICE_URL", "http://localhost:11434")
	t.Setenv("LLM_SERVICE_URL", "http://localhost:11434")
	t.Setenv("LLM_PROVIDER", "anthropic")

	_, err := Parse()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LLM_PROVIDER")
}

func TestGetEnvFile(t *testing.T) {
	assert.Equal(t, ".env.prod", getEnvFile("production"))
	assert.Equal(t, ".env.local", getEnvFile("dev"))
	assert.Equal(t, ".env.staging", getEnvFile("staging"))
}
