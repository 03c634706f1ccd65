package handlers

import (
	"context"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
)

func TestShowChatAction_SendsImmediately(t *testing.T) {
	sender := &recordingSender{}

	stop := ShowChatAction(context.Background(), sender, 5, tgbotapi.ChatTyping)
	stop()
	stop()

	assert.Equal(t, []string{tgbotapi.ChatTyping}, sender.sentActions())
}

func TestShowChatAction_StopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	stop := ShowChatAction(ctx, &recordingSender{}, 5, tgbotapi.ChatTyping)

	cancel()
	stop()
}
