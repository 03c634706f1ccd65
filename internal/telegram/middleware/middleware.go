package middleware

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Sender sends service messages to a chat
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// MessageType classifies a message the way the bot routes it
func MessageType(msg *tgbotapi.Message) string {
	switch {
	case msg.IsCommand():
		return "command"
	case msg.Document != nil:
		return "document"
	case msg.Text != "":
		return "text"
	default:
		return "other"
	}
}

// updateFields describes who sent an update and what kind it is
func updateFields(update tgbotapi.Update) []zap.Field {
	fields := []zap.Field{zap.Int("update_id", update.UpdateID)}

	msg := update.Message
	if msg == nil {
		return append(fields, zap.String("type", "other"))
	}
	if msg.From != nil {
		fields = append(fields, zap.Int64("user_id", msg.From.ID))
	}
	if msg.Chat != nil {
		fields = append(fields, zap.Int64("chat_id", msg.Chat.ID))
	}

	return append(fields, zap.String("type", MessageType(msg)))
}

func reply(bot Sender, logger *zap.Logger, chatID int64, text string) {
	if _, err := bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		logger.Error("failed to send service message",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
	}
}
