package llm

import (
	"context"
	"fmt"

	"github.com/futig/rag-backend/internal/config"
	"github.com/futig/rag-backend/internal/entity"
	"github.com/futig/rag-backend/internal/integration/common"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/packages/ssestream"
	"go.uber.org/zap"
)

// OpenAIConnector streams completions from an OpenAI-compatible API.
type OpenAIConnector struct {
	config config.LLMConnectorConfig
	client openai.Client
	logger *zap.Logger
}

func NewOpenAIConnector(
	cfg config.LLMConnectorConfig,
	logger *zap.Logger,
) *OpenAIConnector {
	return &OpenAIConnector{
		config: cfg,
		client: common.NewOpenAIClient(cfg.HTTPClientConfig),
		logger: logger,
	}
}

func (c *OpenAIConnector) StreamChat(ctx context.Context, messages []entity.ChatMessage) (entity.TokenStream, error) {
	ctxzap.Info(ctx, "opening generation stream via openai api",
		zap.String("model", c.config.Model),
		zap.Int("message_count", len(messages)),
	)

	params := openai.ChatCompletionNewParams{
		Messages:    toOpenAIMessages(messages),
		Model:       openai.ChatModel(c.config.Model),
		Temperature: openai.Float(c.config.Temperature),
		TopP:        openai.Float(c.config.TopP),
	}
	if c.config.MaxOutputTokens > 0 {
		params.MaxTokens = openai.Int(int64(c.config.MaxOutputTokens))
	}

	stream := c.client.Chat.Completions.NewStreaming(ctx, params)
	// a failed connection surfaces as an error before the first event
	if err := stream.Err(); err != nil {
		stream.Close()
		return nil, fmt.Errorf("%w: %w", entity.ErrGenerationStream, err)
	}

	return &openAIStream{stream: stream}, nil
}

func toOpenAIMessages(messages []entity.ChatMessage) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case entity.ChatRoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		case entity.ChatRoleAssistant:
			out = append(out, openai.AssistantMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}

type openAIStream struct {
	stream  *ssestream.Stream[openai.ChatCompletionChunk]
	current string
}

func (s *openAIStream) Next() bool {
	for s.stream.Next() {
		chunk := s.stream.Current()
		if len(chunk.Choices) == 0 || chunk.Choices[0].Delta.Content == "" {
			continue
		}
		s.current = chunk.Choices[0].Delta.Content
		return true
	}
	return false
}

func (s *openAIStream) Current() string { return s.current }

func (s *openAIStream) Err() error {
	if err := s.stream.Err(); err != nil {
		return fmt.Errorf("%w: %w", entity.ErrGenerationStream, err)
	}
	return nil
}

func (s *openAIStream) Close() error { return s.stream.Close() }
