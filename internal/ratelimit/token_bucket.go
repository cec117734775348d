package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// KEYS[1] bucket hash; ARGV rate per second, burst, ttl in ms.
// Timestamps come from redis TIME so replicas with skewed clocks agree.
// The token count is returned as a string to keep its fraction.
var allowScript = redis.NewScript(`
local rate, burst, ttl = tonumber(ARGV[1]), tonumber(ARGV[2]), tonumber(ARGV[3])
local t = redis.call("TIME")
local now = t[1] * 1000 + math.floor(t[2] / 1000)

local state = redis.call("HMGET", KEYS[1], "tokens", "ts")
local tokens, last = tonumber(state[1]), tonumber(state[2])
if tokens == nil then
  tokens = burst
else
  tokens = math.min(burst, tokens + math.max(0, now - last) * rate / 1000)
end

local granted = 0
if tokens >= 1 then
  granted = 1
  tokens = tokens - 1
end

redis.call("HSET", KEYS[1], "tokens", tokens, "ts", now)
redis.call("PEXPIRE", KEYS[1], ttl)
return {granted, tostring(tokens)}
`)

var errScriptReply = errors.New("unexpected rate limit script reply")

// TokenBucket keeps bucket state in redis so every replica shares one limit.
type TokenBucket struct {
	client redis.UniversalClient
	rate   float64
	burst  int
}

func NewTokenBucket(client redis.UniversalClient, rate float64, burst int) *TokenBucket {
	if client == nil {
		return nil
	}
	return &TokenBucket{client: client, rate: rate, burst: burst}
}

func (t *TokenBucket) Allow(ctx context.Context, key string) (*Result, error) {
	denied := &Result{Allowed: false}
	if t == nil || t.client == nil {
		return denied, errors.New("rate limiter not configured")
	}
	if err := validate(key, t.rate, t.burst); err != nil {
		return denied, err
	}

	ttl := bucketTTL(t.rate, t.burst)
	reply, err := allowScript.Run(ctx, t.client, []string{key}, t.rate, t.burst, ttl.Milliseconds()).Slice()
	if err != nil {
		return denied, fmt.Errorf("token bucket %s: %w", key, err)
	}
	if len(reply) != 2 {
		return denied, errScriptReply
	}
	granted, err := replyNumber(reply[0])
	if err != nil {
		return denied, err
	}
	remaining, err := replyNumber(reply[1])
	if err != nil {
		return denied, err
	}

	allowed := granted == 1
	return &Result{
		Allowed:    allowed,
		Limit:      t.burst,
		Remaining:  int(remaining),
		RetryAfter: retryAfter(allowed, remaining, t.rate),
	}, nil
}

// bucketTTL keeps an idle bucket around for twice its full refill time.
func bucketTTL(rate float64, burst int) time.Duration {
	if rate <= 0 || burst <= 0 {
		return time.Second
	}
	return time.Duration(math.Max(1, math.Ceil(2*float64(burst)/rate))) * time.Second
}

func retryAfter(allowed bool, remaining float64, rate float64) time.Duration {
	if allowed || rate <= 0 || remaining >= 1 {
		return 0
	}
	return time.Duration((1 - remaining) / rate * float64(time.Second))
}

func replyNumber(v interface{}) (float64, error) {
	switch n := v.(type) {
	case int64:
		return float64(n), nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", errScriptReply, err)
		}
		return f, nil
	}
	return 0, fmt.Errorf("%w: %T", errScriptReply, v)
}
