package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/futig/rag-backend/internal/entity"
	"github.com/futig/rag-backend/internal/pkg/logger"
	"github.com/futig/rag-backend/internal/pkg/validator"
	"github.com/futig/rag-backend/internal/telegram/render"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// DocumentHandler adds a document sent to the bot to the knowledge base
type DocumentHandler struct {
	BaseHandler
	bot        Sender
	downloader FileDownloader
	validator  FileValidator
	extractor  TextExtractor
	ingestion  IngestionUsecase
}

func NewDocumentHandler(
	bot Sender,
	downloader FileDownloader,
	validator FileValidator,
	extractor TextExtractor,
	ingestion IngestionUsecase,
	logger *zap.Logger,
) *DocumentHandler {
	return &DocumentHandler{
		BaseHandler: BaseHandler{
			kind:          HandlerKindDocument,
			messageSender: NewMessageSender(bot, logger),
		},
		bot:        bot,
		downloader: downloader,
		validator:  validator,
		extractor:  extractor,
		ingestion:  ingestion,
	}
}

func (h *DocumentHandler) Handle(ctx context.Context, msg *Message) error {
	doc := msg.Document
	if doc == nil {
		return fmt.Errorf("%w: document", entity.ErrMissingField)
	}

	filename := validator.SanitizeFilename(doc.FileName)
	ctx = logger.AddFields(ctx,
		zap.String("filename", filename),
		zap.Int("file_size", doc.FileSize),
	)

	// Telegram reports the size up front, so oversized files are never downloaded
	if err := h.validator.ValidateFile(filename, int64(doc.FileSize)); err != nil {
		return err
	}

	h.sendMessage(msg.ChatID, render.MsgDocumentReceived)

	stopTyping := ShowChatAction(ctx, h.bot, msg.ChatID, tgbotapi.ChatTyping)
	defer stopTyping()

	content, err := h.downloader.Download(ctx, doc.FileID)
	if err != nil {
		return fmt.Errorf("download document: %w", err)
	}

	text, fileType, err := h.extractor.Extract(filename, doc.MimeType, content)
	if err != nil {
		return err
	}

	stored, err := h.ingestion.IngestDocument(ctx, entity.IngestRequest{
		Text:       text,
		Filename:   filename,
		FileType:   fileType,
		UploadedAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	ctxzap.Info(ctx, "document ingested from telegram",
		zap.String("document_id", stored.ID),
		zap.Int("chunk_count", stored.ChunkCount),
	)

	stopTyping()
	h.sendMessage(msg.ChatID, render.RenderDocumentIngested(stored.Filename, stored.ChunkCount))
	return nil
}
