package chat

import (
	"context"

	"github.com/futig/rag-backend/internal/entity"
)

type Retriever interface {
	RetrieveDefault(ctx context.Context, query string) []entity.SimilarityResult
}

type LLMConnector interface {
	StreamChat(ctx context.Context, messages []entity.ChatMessage) (entity.TokenStream, error)
}
