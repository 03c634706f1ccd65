package middleware

import (
	"runtime/debug"

	"github.com/futig/rag-backend/internal/telegram/render"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// RecoveryMiddleware turns a panicking handler into a generic error reply
type RecoveryMiddleware struct {
	logger *zap.Logger
	bot    Sender
}

func NewRecoveryMiddleware(logger *zap.Logger, bot Sender) *RecoveryMiddleware {
	return &RecoveryMiddleware{
		logger: logger,
		bot:    bot,
	}
}

func (m *RecoveryMiddleware) Handle(update tgbotapi.Update, next func(tgbotapi.Update)) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}

		m.logger.Error("panic recovered in telegram handler",
			append(updateFields(update),
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()),
			)...,
		)

		if update.Message != nil && update.Message.Chat != nil {
			reply(m.bot, m.logger, update.Message.Chat.ID, render.ErrGeneric)
		}
	}()

	next(update)
}
