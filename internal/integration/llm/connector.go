package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/futig/rag-backend/internal/config"
	"github.com/futig/rag-backend/internal/entity"
	"github.com/futig/rag-backend/internal/integration/common"
	pkghttp "github.com/futig/rag-backend/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type chatOptions struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type chatRequest struct {
	Model    string               `json:"model"`
	Messages []entity.ChatMessage `json:"messages"`
	Stream   bool                 `json:"stream"`
	Options  chatOptions          `json:"options"`
}

type chatChunk struct {
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
	Done  bool   `json:"done"`
	Error string `json:"error"`
}

// Connector streams completions from an Ollama-compatible /api/chat endpoint.
type Connector struct {
	config    config.LLMConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.LLMConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// StreamChat opens a generation stream. The request stays bound to ctx for
// the lifetime of the stream.
func (c *Connector) StreamChat(ctx context.Context, messages []entity.ChatMessage) (entity.TokenStream, error) {
	ctxzap.Info(ctx, "opening generation stream",
		zap.String("model", c.config.Model),
		zap.Int("message_count", len(messages)),
	)

	body, err := c.connector.DoStreamRequest(ctx, http.MethodPost, c.config.ChatEndpoint, &chatRequest{
		Model:    c.config.Model,
		Messages: messages,
		Stream:   true,
		Options: chatOptions{
			Temperature: c.config.Temperature,
			TopP:        c.config.TopP,
			NumPredict:  c.config.MaxOutputTokens,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrGenerationStream, err)
	}

	return newNDJSONStream(body), nil
}

// ndjsonStream decodes one chat chunk per line until a chunk reports done.
type ndjsonStream struct {
	body    io.ReadCloser
	decoder *json.Decoder
	current string
	done    bool
	err     error
}

func newNDJSONStream(body io.ReadCloser) *ndjsonStream {
	return &ndjsonStream{
		body:    body,
		decoder: json.NewDecoder(body),
	}
}

func (s *ndjsonStream) Next() bool {
	for !s.done {
		var chunk chatChunk
		if err := s.decoder.Decode(&chunk); err != nil {
			s.done = true
			if errors.Is(err, io.EOF) {
				s.err = fmt.Errorf("%w: stream ended before completion", entity.ErrGenerationStream)
			} else {
				s.err = fmt.Errorf("%w: %w", entity.ErrGenerationStream, err)
			}
			return false
		}

		if chunk.Error != "" {
			s.done = true
			s.err = fmt.Errorf("%w: %s", entity.ErrGenerationStream, chunk.Error)
			return false
		}

		if chunk.Done {
			s.done = true
		}

		if chunk.Message.Content != "" {
			s.current = chunk.Message.Content
			return true
		}
	}

	return false
}

func (s *ndjsonStream) Current() string { return s.current }

func (s *ndjsonStream) Err() error { return s.err }

func (s *ndjsonStream) Close() error {
	s.done = true
	return s.body.Close()
}
