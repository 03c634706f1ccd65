package handlers

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// A chat action is shown for 5 seconds, so it is refreshed a bit sooner
const chatActionInterval = 4 * time.Second

// ShowChatAction keeps a chat action such as "typing" visible until the returned
// stop function is called or ctx ends. stop is safe to call more than once.
func ShowChatAction(ctx context.Context, bot Sender, chatID int64, action string) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	send := func() {
		if _, err := bot.Request(tgbotapi.NewChatAction(chatID, action)); err != nil {
			ctxzap.Debug(ctx, "failed to send chat action",
				zap.String("action", action),
				zap.Error(err),
			)
		}
	}

	send()

	go func() {
		defer close(done)

		ticker := time.NewTicker(chatActionInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				send()
			}
		}
	}()

	return func() {
		cancel()
		<-done
	}
}
