package ratelimit

import (
	"sync"
	"time"

	"github.com/futig/rag-backend/internal/config"
	"github.com/patrickmn/go-cache"
)

type bucket struct {
	mu       sync.Mutex
	tokens   float64
	lastSeen time.Time
}

// Limiter is a per-key token bucket. Idle buckets expire from the cache, so
// a key that has been quiet long enough starts over with a full bucket.
type Limiter struct {
	buckets *cache.Cache
	rate    float64 // tokens per second
	burst   float64
	enabled bool
	now     func() time.Time
}

func New(cfg config.RateLimitConfig) *Limiter {
	rate := float64(cfg.RequestsPerMinute) / 60
	burst := float64(max(cfg.Burst, 1))

	// a bucket refills completely within this window
	idle := time.Minute
	if rate > 0 {
		idle = max(idle, time.Duration(burst/rate*float64(time.Second)))
	}

	return &Limiter{
		buckets: cache.New(idle, 2*idle),
		rate:    rate,
		burst:   burst,
		enabled: cfg.Enabled,
		now:     time.Now,
	}
}

// Allow takes one token from key's bucket and reports whether one was available.
func (l *Limiter) Allow(key string) bool {
	if !l.enabled {
		return true
	}

	now := l.now()
	fresh := &bucket{tokens: l.burst, lastSeen: now}
	if err := l.buckets.Add(key, fresh, cache.DefaultExpiration); err == nil {
		return l.take(fresh, now, key)
	}

	cached, ok := l.buckets.Get(key)
	if !ok {
		// expired between Add and Get
		l.buckets.Set(key, fresh, cache.DefaultExpiration)
		return l.take(fresh, now, key)
	}

	return l.take(cached.(*bucket), now, key)
}

func (l *Limiter) take(b *bucket, now time.Time, key string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	elapsed := now.Sub(b.lastSeen).Seconds()
	if elapsed > 0 {
		b.tokens = min(l.burst, b.tokens+elapsed*l.rate)
	}
	b.lastSeen = now
	l.buckets.Set(key, b, cache.DefaultExpiration)

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}
