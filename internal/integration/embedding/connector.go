package embedding

import (
	"context"
	"fmt"
	"net/http"

	"github.com/futig/rag-backend/internal/config"
	"github.com/futig/rag-backend/internal/entity"
	"github.com/futig/rag-backend/internal/integration/common"
	pkghttp "github.com/futig/rag-backend/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type embedRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type embedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}

// Connector talks to an Ollama-compatible /api/embed endpoint.
type Connector struct {
	config    config.EmbeddingConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.EmbeddingConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// Embed returns the embedding of text. Exactly one request is made.
func (c *Connector) Embed(ctx context.Context, text string) ([]float32, error) {
	ctxzap.Debug(ctx, "generating embedding", zap.Int("text_length", len(text)))

	var resp embedResponse
	err := c.connector.DoRequest(ctx, http.MethodPost, c.config.Endpoint, &embedRequest{
		Model: c.config.Model,
		Input: text,
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrEmbeddingService, err)
	}

	if len(resp.Embeddings) == 0 {
		return nil, fmt.Errorf("%w: response contains no embeddings", entity.ErrEmbeddingService)
	}

	vector := resp.Embeddings[0]
	if err := ValidateVector(vector, c.config.Dimension); err != nil {
		return nil, err
	}

	return vector, nil
}

// ValidateVector checks that an embedding is present and has the expected dimension.
func ValidateVector(vector []float32, dimension int) error {
	if len(vector) == 0 {
		return fmt.Errorf("%w: missing embedding vector", entity.ErrEmbeddingService)
	}
	if len(vector) != dimension {
		return fmt.Errorf("%w: expected dimension %d, got %d", entity.ErrEmbeddingService, dimension, len(vector))
	}
	return nil
}
