package handlers

import (
	"context"
	"strings"

	"github.com/futig/rag-backend/internal/entity"
	"github.com/futig/rag-backend/internal/telegram/render"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// ChatHandler answers a text message as a single-turn conversation
type ChatHandler struct {
	BaseHandler
	bot     Sender
	usecase ChatUsecase
}

func NewChatHandler(bot Sender, usecase ChatUsecase, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		BaseHandler: BaseHandler{
			kind:          HandlerKindText,
			messageSender: NewMessageSender(bot, logger),
		},
		bot:     bot,
		usecase: usecase,
	}
}

func (h *ChatHandler) Handle(ctx context.Context, msg *Message) error {
	query := strings.TrimSpace(msg.Text)
	if query == "" {
		h.sendMessage(msg.ChatID, render.MsgEmptyQuestion)
		return nil
	}

	stopTyping := ShowChatAction(ctx, h.bot, msg.ChatID, tgbotapi.ChatTyping)
	defer stopTyping()

	resp, err := h.usecase.Chat(ctx, entity.ChatRequest{
		Messages: []entity.ChatMessage{{Role: entity.ChatRoleUser, Content: query}},
	})
	if err != nil {
		return err
	}

	answer, err := CollectAnswer(resp.Stream)
	stopTyping()
	if err != nil {
		ctxzap.Warn(ctx, "answer stream failed",
			zap.Error(err),
			zap.Int("partial_length", len(answer)),
		)
		if strings.TrimSpace(answer) == "" {
			answer = render.ErrGeneration
		} else {
			answer += "\n\n" + render.ErrGeneration
		}
	}

	ctxzap.Info(ctx, "answer sent",
		zap.Int("answer_length", len(answer)),
		zap.Int("source_count", len(resp.Sources)),
	)

	return h.messageSender.Send(msg.ChatID, answer, nil)
}

// CollectAnswer drains the stream and closes it. On failure the fragments
// received so far are returned with the error.
func CollectAnswer(stream entity.TokenStream) (string, error) {
	defer stream.Close()

	var b strings.Builder
	for stream.Next() {
		b.WriteString(stream.Current())
	}

	return b.String(), stream.Err()
}
