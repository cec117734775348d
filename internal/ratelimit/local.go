package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// LocalBucket keeps one x/time/rate limiter per key in process memory.
// Used when no redis endpoint is configured.
type LocalBucket struct {
	mu    sync.Mutex
	m     map[string]*rate.Limiter
	rate  float64
	burst int
}

func NewLocalBucket(reqPerSec float64, burst int) *LocalBucket {
	return &LocalBucket{
		m:     make(map[string]*rate.Limiter),
		rate:  reqPerSec,
		burst: burst,
	}
}

func (l *LocalBucket) limiterFor(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if lim, ok := l.m[key]; ok {
		return lim
	}
	lim := rate.NewLimiter(rate.Limit(l.rate), l.burst)
	l.m[key] = lim
	return lim
}

func (l *LocalBucket) Allow(_ context.Context, key string) (*Result, error) {
	if err := validate(key, l.rate, l.burst); err != nil {
		return &Result{Allowed: false}, err
	}

	lim := l.limiterFor(key)
	now := time.Now()
	allowed := lim.AllowN(now, 1)
	remaining := lim.TokensAt(now)
	if remaining < 0 {
		remaining = 0
	}

	return &Result{
		Allowed:    allowed,
		Limit:      l.burst,
		Remaining:  int(remaining),
		RetryAfter: retryAfter(allowed, remaining, l.rate),
	}, nil
}
