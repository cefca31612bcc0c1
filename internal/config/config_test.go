package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENVIRONMENT", "LOG_LEVEL", "PASSCODE", "STAGE1_TICK", "HINT_PERIOD", "REDIS_URL"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "PHC-CYBER-2025", cfg.Passcode)
	assert.Equal(t, 35*time.Millisecond, cfg.Stage1Tick)
	assert.Equal(t, 30*time.Millisecond, cfg.Stage2Tick)
	assert.Equal(t, 20*time.Second, cfg.HintPeriod)
	assert.Equal(t, 10*time.Second, cfg.NagPeriod)
	assert.Empty(t, cfg.RedisURL)
	require.NoError(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("STAGE2_TICK", "5ms")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, 5*time.Millisecond, cfg.Stage2Tick)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
}

func TestValidate(t *testing.T) {
	t.Setenv("HINT_PERIOD", "soon")
	t.Setenv("PASSCODE", "   ")

	err := Load().Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PASSCODE")
	assert.Contains(t, err.Error(), "HINT_PERIOD")
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLogLevel(in), in)
	}
}
