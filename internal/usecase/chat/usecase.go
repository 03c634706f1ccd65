package chat

import (
	"context"
	"errors"
	"fmt"

	"github.com/futig/rag-backend/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// ChatResponse is a streamed answer plus the sources it was grounded on.
// The caller must Close the stream.
type ChatResponse struct {
	Stream  *ResponseStream
	Sources []entity.SourceRef
}

// ChatUsecase answers a conversation grounded on the knowledge base
type ChatUsecase struct {
	retriever Retriever
	llm       LLMConnector
	logger    *zap.Logger
}

func NewUsecase(
	retriever Retriever,
	llm LLMConnector,
	logger *zap.Logger,
) *ChatUsecase {
	return &ChatUsecase{
		retriever: retriever,
		llm:       llm,
		logger:    logger,
	}
}

// Chat retrieves context for the last user message and opens the answer
// stream. Retrieval problems never fail the turn.
func (uc *ChatUsecase) Chat(ctx context.Context, req entity.ChatRequest) (*ChatResponse, error) {
	query, ok := req.LastUserQuery()
	if !ok {
		return nil, fmt.Errorf("%w: last message must be a non-empty user message", entity.ErrInvalidParameters)
	}

	for _, m := range req.Messages {
		if !m.Role.IsValid() {
			return nil, fmt.Errorf("%w: unknown role %q", entity.ErrInvalidParameters, m.Role)
		}
	}

	results := uc.retriever.RetrieveDefault(ctx, query)
	preamble, sources := Assemble(results)

	ctxzap.Info(ctx, "context assembled",
		zap.Int("source_count", len(sources)),
		zap.Int("history_length", len(req.Messages)),
	)

	tokens, err := uc.llm.StreamChat(ctx, BuildMessages(preamble, req.Messages))
	if err != nil {
		if !errors.Is(err, entity.ErrGenerationStream) {
			err = fmt.Errorf("%w: %w", entity.ErrGenerationStream, err)
		}
		return nil, fmt.Errorf("open generation stream: %w", err)
	}

	return &ChatResponse{
		Stream:  NewResponseStream(tokens, len(sources)),
		Sources: sources,
	}, nil
}
