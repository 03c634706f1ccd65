package handlers

import (
	"context"

	"github.com/futig/rag-backend/internal/telegram/render"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// CommandHandler handles bot commands
type CommandHandler struct {
	BaseHandler
	ingestion IngestionUsecase
}

func NewCommandHandler(bot Sender, ingestion IngestionUsecase, logger *zap.Logger) *CommandHandler {
	return &CommandHandler{
		BaseHandler: BaseHandler{
			kind:          HandlerKindCommand,
			messageSender: NewMessageSender(bot, logger),
		},
		ingestion: ingestion,
	}
}

func (h *CommandHandler) Handle(ctx context.Context, msg *Message) error {
	ctxzap.Info(ctx, "command received", zap.String("command", msg.Command))

	switch msg.Command {
	case "start":
		h.sendMessage(msg.ChatID, render.MsgWelcome)
	case "help":
		h.sendMessage(msg.ChatID, render.MsgHelp)
	case "seed":
		return h.seed(ctx, msg)
	default:
		h.sendMessage(msg.ChatID, render.ErrUnknownCommand)
	}

	return nil
}

func (h *CommandHandler) seed(ctx context.Context, msg *Message) error {
	h.sendMessage(msg.ChatID, render.MsgSeedStarted)

	doc, err := h.ingestion.SeedKnowledge(ctx)
	if err != nil {
		return err
	}

	h.sendMessage(msg.ChatID, render.RenderSeedDone(doc.ChunkCount))
	return nil
}
