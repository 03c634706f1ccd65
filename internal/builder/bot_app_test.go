package builder

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeBot struct {
	startErr error
	stopErr  error
	started  bool
	stopped  bool
}

func (b *fakeBot) Start(context.Context) error {
	b.started = true
	return b.startErr
}

func (b *fakeBot) Stop() error {
	b.stopped = true
	return b.stopErr
}

func newBotApp(bot *fakeBot, released *int) *BotApp {
	return &BotApp{
		bot:     bot,
		logger:  zap.NewNop(),
		release: func() { *released++ },
	}
}

func TestBotApp_StopsAndReleasesOnShutdown(t *testing.T) {
	var released int
	bot := &fakeBot{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, newBotApp(bot, &released).run(ctx))
	assert.True(t, bot.started)
	assert.True(t, bot.stopped)
	assert.Equal(t, 1, released)
}

func TestBotApp_ReleasesWhenStartFails(t *testing.T) {
	var released int
	bot := &fakeBot{startErr: errors.New("unauthorized")}

	err := newBotApp(bot, &released).run(context.Background())
	require.Error(t, err)
	assert.False(t, bot.stopped)
	assert.Equal(t, 1, released)
}

func TestBotApp_ReleasesWhenStopTimesOut(t *testing.T) {
	var released int
	bot := &fakeBot{stopErr: errors.New("shutdown timeout exceeded")}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.Error(t, newBotApp(bot, &released).run(ctx))
	assert.Equal(t, 1, released)
}
