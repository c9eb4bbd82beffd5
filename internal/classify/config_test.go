package classify

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFromEnvDefaults(t *testing.T) {
	t.Setenv("MINERALIZ_WORKERS", "")
	t.Setenv("MINERALIZ_LOG_LEVEL", "")
	t.Setenv("MINERALIZ_NO_RECORD", "")

	cfg, err := ConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("MINERALIZ_WORKERS", "4")
	t.Setenv("MINERALIZ_LOG_LEVEL", "debug")
	t.Setenv("MINERALIZ_NO_RECORD", "true")

	cfg, err := ConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.False(t, cfg.Record)
}

func TestConfigFromEnvErrors(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"bad workers", "MINERALIZ_WORKERS", "many"},
		{"negative workers", "MINERALIZ_WORKERS", "-1"},
		{"bad level", "MINERALIZ_LOG_LEVEL", "loud"},
		{"bad bool", "MINERALIZ_NO_RECORD", "maybe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("MINERALIZ_WORKERS", "")
			t.Setenv("MINERALIZ_LOG_LEVEL", "")
			t.Setenv("MINERALIZ_NO_RECORD", "")
			t.Setenv(tt.key, tt.value)
			_, err := ConfigFromEnv()
			assert.Error(t, err)
		})
	}
}

func TestNewLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.LogLevel = slog.LevelWarn
	l := cfg.NewLogger(&buf)
	l.Info("hidden")
	l.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
