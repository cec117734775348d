package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("DATABASE_TYPE", "")
	t.Setenv("HTTP_REQUEST_TIMEOUT", "")

	cfg := Load()

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "sqlite", cfg.DBType)
	assert.Equal(t, 10*time.Second, cfg.HTTPRequestTimeout)
	assert.False(t, cfg.IsProduction())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("AUTH_COOKIE_SECURE", "false")
	t.Setenv("DATABASE_TYPE", "Postgres")
	t.Setenv("WRITE_RATE_BURST", "3")
	t.Setenv("REDIS_ADDR", " localhost:6379 ")
	t.Setenv("HTTP_REQUEST_TIMEOUT", "2s")

	cfg := Load()

	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.AuthCookieSecure)
	assert.Equal(t, "postgres", cfg.DBType)
	assert.Equal(t, 3, cfg.WriteRateBurst)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 2*time.Second, cfg.HTTPRequestTimeout)
}
