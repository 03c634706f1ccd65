package handlers

import (
	"context"

	"github.com/futig/rag-backend/internal/entity"
	chatusecase "github.com/futig/rag-backend/internal/usecase/chat"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender is the part of the Bot API the handlers talk to
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type ChatUsecase interface {
	Chat(ctx context.Context, req entity.ChatRequest) (*chatusecase.ChatResponse, error)
}

type IngestionUsecase interface {
	IngestDocument(ctx context.Context, req entity.IngestRequest) (*entity.Document, error)
	SeedKnowledge(ctx context.Context) (*entity.Document, error)
}

type TextExtractor interface {
	Extract(filename, contentType string, content []byte) (string, string, error)
}

type FileValidator interface {
	ValidateFile(filename string, size int64) error
}

// FileDownloader fetches the content of a file sent to the bot
type FileDownloader interface {
	Download(ctx context.Context, fileID string) ([]byte, error)
}
