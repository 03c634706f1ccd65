package embedding

import (
	"context"
	"fmt"

	"github.com/futig/rag-backend/internal/config"
	"github.com/futig/rag-backend/internal/entity"
	"github.com/futig/rag-backend/internal/integration/common"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.uber.org/zap"
)

// OpenAIConnector uses an OpenAI-compatible embeddings API
// (OpenAI itself or Gemini's OpenAI endpoint).
type OpenAIConnector struct {
	config config.EmbeddingConnectorConfig
	client openai.Client
	logger *zap.Logger
}

func NewOpenAIConnector(
	cfg config.EmbeddingConnectorConfig,
	logger *zap.Logger,
) *OpenAIConnector {
	return &OpenAIConnector{
		config: cfg,
		client: common.NewOpenAIClient(cfg.HTTPClientConfig),
		logger: logger,
	}
}

func (c *OpenAIConnector) Embed(ctx context.Context, text string) ([]float32, error) {
	ctxzap.Debug(ctx, "generating embedding via openai api",
		zap.String("model", c.config.Model),
		zap.Int("text_length", len(text)),
	)

	resp, err := c.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input:          openai.EmbeddingNewParamsInputUnion{OfString: openai.String(text)},
		Model:          openai.EmbeddingModel(c.config.Model),
		EncodingFormat: openai.EmbeddingNewParamsEncodingFormatFloat,
	}, option.WithRequestTimeout(c.config.RequestTimeout))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrEmbeddingService, err)
	}

	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("%w: response contains no embeddings", entity.ErrEmbeddingService)
	}

	values := resp.Data[0].Embedding
	vector := make([]float32, len(values))
	for i, v := range values {
		vector[i] = float32(v)
	}

	if err := ValidateVector(vector, c.config.Dimension); err != nil {
		return nil, err
	}

	return vector, nil
}
