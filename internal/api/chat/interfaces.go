package chat

import (
	"context"

	"github.com/futig/rag-backend/internal/entity"
	chatusecase "github.com/futig/rag-backend/internal/usecase/chat"
)

type ChatUsecase interface {
	Chat(ctx context.Context, req entity.ChatRequest) (*chatusecase.ChatResponse, error)
}
