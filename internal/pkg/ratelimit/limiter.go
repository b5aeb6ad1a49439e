package ratelimit

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// KeyedLimiter keeps one token bucket per key (client address, email).
// Idle buckets are evicted after ten minutes.
type KeyedLimiter struct {
	buckets *cache.Cache
	limit   rate.Limit
	burst   int
	mu      sync.Mutex
}

// NewKeyedLimiter allows perMinute events per key with the given burst.
func NewKeyedLimiter(perMinute, burst int) *KeyedLimiter {
	if perMinute <= 0 {
		perMinute = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return &KeyedLimiter{
		buckets: cache.New(10*time.Minute, 5*time.Minute),
		limit:   rate.Every(time.Minute / time.Duration(perMinute)),
		burst:   burst,
	}
}

func (l *KeyedLimiter) Allow(key string) bool {
	return l.bucket(key).Allow()
}

func (l *KeyedLimiter) bucket(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if x, found := l.buckets.Get(key); found {
		// Touch so active keys are not evicted
		l.buckets.SetDefault(key, x)
		return x.(*rate.Limiter)
	}
	limiter := rate.NewLimiter(l.limit, l.burst)
	l.buckets.SetDefault(key, limiter)
	return limiter
}
