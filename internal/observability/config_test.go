package observability

import (
	"testing"

	"github.com/smallbiznis/ratrace/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("OTEL_ENABLED", "")

	cfg := LoadConfig(config.Config{AppName: "", Environment: "production", AppVersion: "1.2.3"})

	assert.Equal(t, "ratrace", cfg.ServiceName)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.OtelEnabled)
	assert.False(t, cfg.Debug())
}

func TestDebugInDevelopment(t *testing.T) {
	cfg := Config{Environment: "development", LogLevel: "info"}
	assert.True(t, cfg.Debug())

	cfg = Config{Environment: "production", LogLevel: "debug"}
	assert.True(t, cfg.Debug())
}
