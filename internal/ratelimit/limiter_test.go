package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/smallbiznis/ratrace/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type failingBucket struct{}

func (failingBucket) Allow(context.Context, string) (*Result, error) {
	return nil, errors.New("connection refused")
}

func TestLocalBucketExhaustsBurst(t *testing.T) {
	bucket := NewLocalBucket(0.001, 2)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		res, err := bucket.Allow(ctx, "k")
		require.NoError(t, err)
		assert.True(t, res.Allowed)
	}

	res, err := bucket.Allow(ctx, "k")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Greater(t, res.RetryAfter, time.Duration(0))

	other, err := bucket.Allow(ctx, "other")
	require.NoError(t, err)
	assert.True(t, other.Allowed)
}

func TestLocalBucketRejectsEmptyKey(t *testing.T) {
	_, err := NewLocalBucket(1, 1).Allow(context.Background(), "")
	assert.Error(t, err)
}

func TestWriteLimiterPerAccount(t *testing.T) {
	limiter := NewWriteLimiterWithBucket(NewLocalBucket(0.001, 1), zap.NewNop())
	ctx := context.Background()

	_, err := limiter.AllowAccount(ctx, "vote", 1)
	require.NoError(t, err)

	_, err = limiter.AllowAccount(ctx, "vote", 1)
	assert.ErrorIs(t, err, ErrLimited)

	_, err = limiter.AllowAccount(ctx, "vote", 2)
	assert.NoError(t, err)

	_, err = limiter.AllowAccount(ctx, "post-review", 1)
	assert.NoError(t, err)
}

func TestWriteLimiterFailsOpen(t *testing.T) {
	limiter := NewWriteLimiterWithBucket(failingBucket{}, zap.NewNop())

	res, err := limiter.AllowAccount(context.Background(), "vote", 1)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestNilWriteLimiterAllows(t *testing.T) {
	var limiter *WriteLimiter

	res, err := limiter.AllowAccount(context.Background(), "vote", 1)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestNewWriteLimiterValidatesConfig(t *testing.T) {
	_, err := NewWriteLimiter(config.Config{WriteRatePerSecond: 0, WriteRateBurst: 1}, zap.NewNop())
	assert.Error(t, err)

	limiter, err := NewWriteLimiter(config.Config{WriteRatePerSecond: 1, WriteRateBurst: 1}, zap.NewNop())
	require.NoError(t, err)
	_, ok := limiter.bucket.(*LocalBucket)
	assert.True(t, ok)
}

func TestTokenBucketHelpers(t *testing.T) {
	assert.Equal(t, 20*time.Second, bucketTTL(1, 10))
	assert.Equal(t, time.Second, bucketTTL(0, 10))
	assert.Equal(t, time.Second, bucketTTL(100, 1))
	assert.Equal(t, 500*time.Millisecond, retryAfter(false, 0.5, 1))
	assert.Equal(t, time.Duration(0), retryAfter(true, 0, 1))

	n, err := replyNumber(int64(1))
	require.NoError(t, err)
	assert.Equal(t, 1.0, n)

	n, err = replyNumber("0.5")
	require.NoError(t, err)
	assert.Equal(t, 0.5, n)

	_, err = replyNumber([]byte("x"))
	assert.ErrorIs(t, err, errScriptReply)
}
