// Package log configures structured logging for the whole process and
// provides component-scoped loggers on top of slog.
package log

import (
	"log/slog"
	"os"
	"strings"
)

// Config controls handler construction.
type Config struct {
	Level   slog.Level
	Format  string // "text" or "json"
	Handler slog.Handler
}

// ConfigFromEnv builds a Config from LOG_LEVEL and LOG_FORMAT.
func ConfigFromEnv() Config {
	cfg := Config{Level: slog.LevelInfo, Format: "text"}

	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		cfg.Level = slog.LevelDebug
	case "warn":
		cfg.Level = slog.LevelWarn
	case "error":
		cfg.Level = slog.LevelError
	}

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		cfg.Format = "json"
	}

	return cfg
}

// New builds a slog.Logger from the config.
func New(cfg Config) *slog.Logger {
	handler := cfg.Handler
	if handler == nil {
		opts := &slog.HandlerOptions{Level: cfg.Level}
		if cfg.Format == "json" {
			handler = slog.NewJSONHandler(os.Stdout, opts)
		} else {
			handler = slog.NewTextHandler(os.Stdout, opts)
		}
	}
	return slog.New(handler)
}

// Setup installs a logger built from the environment as the process default
// and returns it.
func Setup() *slog.Logger {
	logger := New(ConfigFromEnv())
	slog.SetDefault(logger)
	return logger
}

// ForComponent returns the default logger tagged with a component name.
func ForComponent(component string) *slog.Logger {
	return slog.Default().With(FieldComponent, component)
}
