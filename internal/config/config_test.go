package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladimiradmaev/tech-breaks/internal/logger"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"HTTP_HOST", "HTTP_PORT", "SCORER", "TELEGRAM_BOT_TOKEN",
		"REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_DB",
		"LOG_LEVEL", "LOG_OUTPUT", "LOG_FORMAT", "METRICS_ENABLED",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:5001", cfg.HTTP.Address())
	assert.Equal(t, "rules", cfg.Scorer)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, logger.LevelInfo, cfg.Logger.Level)
	assert.Equal(t, "stdout", cfg.Logger.OutputPath)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.True(t, cfg.MetricsEnabled)
	assert.Error(t, cfg.ValidateBot())
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "TEXT")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, "cache:6379", cfg.Redis.Addr())
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, logger.LevelDebug, cfg.Logger.Level)
	assert.Equal(t, "text", cfg.Logger.Format)
	assert.False(t, cfg.MetricsEnabled)
	assert.NoError(t, cfg.ValidateBot())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name, key, value, want string
	}{
		{"non-numeric port", "HTTP_PORT", "http", "HTTP_PORT must be an integer"},
		{"port out of range", "HTTP_PORT", "70000", "HTTP_PORT out of range"},
		{"unknown scorer", "SCORER", "forest", "unknown SCORER"},
		{"bad log format", "LOG_FORMAT", "xml", "LOG_FORMAT must be json or text"},
		{"bad bool", "METRICS_ENABLED", "maybe", "METRICS_ENABLED must be a boolean"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
