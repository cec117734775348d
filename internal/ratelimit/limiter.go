package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/ratrace/internal/config"
	"go.uber.org/zap"
)

var ErrLimited = errors.New("rate_limited")

const keyWriteAccount = "ratrace:write:%s:account:%d"

type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Bucket grants one token per call for the given key.
type Bucket interface {
	Allow(ctx context.Context, key string) (*Result, error)
}

// WriteLimiter limits write endpoints per account.
type WriteLimiter struct {
	bucket Bucket
	log    *zap.Logger
}

func NewWriteLimiter(cfg config.Config, log *zap.Logger) (*WriteLimiter, error) {
	if cfg.WriteRatePerSecond <= 0 || cfg.WriteRateBurst <= 0 {
		return nil, errors.New("write rate limit must be positive")
	}

	log = log.Named("ratelimit")
	if !cfg.Redis.Enabled() {
		log.Info("using in-process write limiter")
		return NewWriteLimiterWithBucket(NewLocalBucket(cfg.WriteRatePerSecond, cfg.WriteRateBurst), log), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: strings.TrimSpace(cfg.Redis.Password),
		DB:       cfg.Redis.DB,
	})
	log.Info("using redis write limiter", zap.String("addr", cfg.Redis.Addr))
	return NewWriteLimiterWithBucket(NewTokenBucket(client, cfg.WriteRatePerSecond, cfg.WriteRateBurst), log), nil
}

func NewWriteLimiterWithBucket(bucket Bucket, log *zap.Logger) *WriteLimiter {
	if log == nil {
		log = zap.NewNop()
	}
	return &WriteLimiter{bucket: bucket, log: log}
}

// AllowAccount consumes one write token for accountID on endpoint.
// Backend failures fail open.
func (l *WriteLimiter) AllowAccount(ctx context.Context, endpoint string, accountID int64) (*Result, error) {
	if l == nil || l.bucket == nil {
		return &Result{Allowed: true}, nil
	}

	key := fmt.Sprintf(keyWriteAccount, strings.TrimSpace(endpoint), accountID)
	res, err := l.bucket.Allow(ctx, key)
	if err != nil {
		l.log.Warn("rate limiter unavailable", zap.String("endpoint", endpoint), zap.Error(err))
		return &Result{Allowed: true}, nil
	}
	if !res.Allowed {
		return res, ErrLimited
	}
	return res, nil
}

func validate(key string, rate float64, burst int) error {
	if key == "" {
		return errors.New("rate limiter key is empty")
	}
	if rate <= 0 {
		return errors.New("rate limiter rate must be positive")
	}
	if burst <= 0 {
		return errors.New("rate limiter burst must be positive")
	}
	return nil
}
