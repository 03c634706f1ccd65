package middleware

import (
	"strconv"
	"time"

	"github.com/futig/rag-backend/internal/telegram/render"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const warningInterval = 30 * time.Second

// Limiter is the token bucket shared with the HTTP API
type Limiter interface {
	Allow(key string) bool
}

// RateLimiterMiddleware drops updates from users over their budget
type RateLimiterMiddleware struct {
	limiter Limiter
	warned  *cache.Cache
	logger  *zap.Logger
	bot     Sender
}

// NewRateLimiterMiddleware creates a new rate limiter middleware
func NewRateLimiterMiddleware(limiter Limiter, logger *zap.Logger, bot Sender) *RateLimiterMiddleware {
	return &RateLimiterMiddleware{
		limiter: limiter,
		warned:  cache.New(warningInterval, 2*warningInterval),
		logger:  logger,
		bot:     bot,
	}
}

// Handle processes the update through rate limiting
func (rl *RateLimiterMiddleware) Handle(update tgbotapi.Update, next func(tgbotapi.Update)) {
	if update.Message == nil || update.Message.From == nil || update.Message.Chat == nil {
		next(update)
		return
	}

	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	key := "tg:" + strconv.FormatInt(userID, 10)

	if !rl.limiter.Allow(key) {
		rl.logger.Warn("rate limit exceeded", updateFields(update)...)
		rl.warn(key, chatID)
		return
	}

	next(update)
}

// warn tells the user about the limit at most once per warningInterval
func (rl *RateLimiterMiddleware) warn(key string, chatID int64) {
	if rl.warned.Add(key, struct{}{}, cache.DefaultExpiration) != nil {
		return
	}

	reply(rl.bot, rl.logger, chatID, render.ErrQuotaExceeded)
}
