package ratelimit

import (
	"testing"
	"time"

	"github.com/futig/rag-backend/internal/config"
	"github.com/stretchr/testify/assert"
)

func newTestLimiter(cfg config.RateLimitConfig) (*Limiter, *time.Time) {
	l := New(cfg)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	return l, &now
}

func TestLimiter_BurstThenRefill(t *testing.T) {
	l, now := newTestLimiter(config.RateLimitConfig{Enabled: true, RequestsPerMinute: 60, Burst: 3})

	for range 3 {
		assert.True(t, l.Allow("client"))
	}
	assert.False(t, l.Allow("client"))

	*now = now.Add(time.Second)
	assert.True(t, l.Allow("client"))
	assert.False(t, l.Allow("client"))
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(config.RateLimitConfig{Enabled: true, RequestsPerMinute: 1, Burst: 1})

	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))
	assert.True(t, l.Allow("b"))
}

func TestLimiter_Disabled(t *testing.T) {
	l, _ := newTestLimiter(config.RateLimitConfig{Enabled: false, RequestsPerMinute: 1, Burst: 1})

	for range 10 {
		assert.True(t, l.Allow("client"))
	}
}
