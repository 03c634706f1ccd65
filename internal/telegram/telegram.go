package telegram

import (
	"context"
	"fmt"

	"github.com/futig/rag-backend/internal/config"
	"github.com/futig/rag-backend/internal/telegram/bot"
	"github.com/futig/rag-backend/internal/telegram/handlers"
	"github.com/futig/rag-backend/internal/telegram/middleware"
	pkghttp "github.com/futig/rag-backend/pkg/http"
	"go.uber.org/zap"
)

// Bot is the main telegram bot interface
type Bot interface {
	Start(ctx context.Context) error
	Stop() error
}

// Dependencies are the pipeline pieces the bot is a front end for
type Dependencies struct {
	Chat      handlers.ChatUsecase
	Ingestion handlers.IngestionUsecase
	Extractor handlers.TextExtractor
	Validator interface {
		handlers.FileValidator
		MaxFileSize() int64
	}
	Limiter middleware.Limiter
}

// NewBot initializes the telegram bot with all dependencies
func NewBot(cfg *config.TelegramConfig, deps Dependencies, logger *zap.Logger) (Bot, error) {
	b, err := bot.New(cfg, deps.Limiter, logger)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	registerHandlers(b, cfg, deps, logger)

	logger.Info("telegram bot initialized successfully")

	return b, nil
}

// registerHandlers registers all handlers with the bot
func registerHandlers(b *bot.Bot, cfg *config.TelegramConfig, deps Dependencies, logger *zap.Logger) {
	api := b.GetAPI()

	downloader := bot.NewFileDownloader(
		api,
		pkghttp.NewClient(pkghttp.WithRequestTimeout(cfg.HandlerTimeout)),
		deps.Validator.MaxFileSize(),
	)

	b.RegisterHandler(handlers.NewCommandHandler(api, deps.Ingestion, logger))
	b.RegisterHandler(handlers.NewChatHandler(api, deps.Chat, logger))
	b.RegisterHandler(handlers.NewDocumentHandler(api, downloader, deps.Validator, deps.Extractor, deps.Ingestion, logger))

	logger.Info("telegram handlers registered",
		zap.Int("handler_count", 3),
	)
}
