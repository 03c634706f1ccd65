package builder

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/futig/rag-backend/internal/telegram"
	"go.uber.org/zap"
)

// BotApp is the Telegram front end of the pipeline
type BotApp struct {
	bot     telegram.Bot
	logger  *zap.Logger
	release func()
}

// Run polls until SIGINT/SIGTERM, then stops the bot and releases the pipeline.
func (a *BotApp) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return a.run(ctx)
}

func (a *BotApp) run(ctx context.Context) error {
	defer a.release()

	if err := a.bot.Start(ctx); err != nil {
		return fmt.Errorf("start telegram bot: %w", err)
	}

	<-ctx.Done()
	a.logger.Info("Received shutdown signal")

	if err := a.bot.Stop(); err != nil {
		return fmt.Errorf("stop telegram bot: %w", err)
	}

	a.logger.Info("Telegram bot stopped gracefully")
	return nil
}
