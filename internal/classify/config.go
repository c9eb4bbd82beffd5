package classify

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Config holds classification service configuration.
type Config struct {
	// Workers is the number of goroutines a flat rule pass may use.
	// 0 means GOMAXPROCS. Default: 0.
	Workers int

	// LogLevel is the minimum level written by the service logger.
	// Default: info.
	LogLevel slog.Level

	// Record enables writing every run to the history store.
	// Default: true.
	Record bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Workers:  0,
		LogLevel: slog.LevelInfo,
		Record:   true,
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if w := os.Getenv("MINERALIZ_WORKERS"); w != "" {
		n, err := strconv.Atoi(w)
		if err != nil {
			return cfg, fmt.Errorf("MINERALIZ_WORKERS: %w", err)
		}
		cfg.Workers = n
	}

	if l := os.Getenv("MINERALIZ_LOG_LEVEL"); l != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(strings.ToUpper(l))); err != nil {
			return cfg, fmt.Errorf("MINERALIZ_LOG_LEVEL: %w", err)
		}
	}

	if v := os.Getenv("MINERALIZ_NO_RECORD"); v != "" {
		off, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("MINERALIZ_NO_RECORD: %w", err)
		}
		cfg.Record = !off
	}

	return cfg, cfg.Validate()
}

// Validate checks the configuration values.
func (c Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	return nil
}

// NewLogger returns a text logger on w at the configured level.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: c.LogLevel}))
}
