// Package logger configures slog for chatwrap and carries request-scoped loggers.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Format selects the slog handler.
type Format int

const (
	// Text is used by interactive commands.
	Text Format = iota
	// JSON is used by the server.
	JSON
)

// Level parses LOG_LEVEL. Supports debug, info, warn, error (case-insensitive).
func Level() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Setup installs a default logger writing to w and returns it.
func Setup(w io.Writer, format Format) *slog.Logger {
	opts := &slog.HandlerOptions{Level: Level()}

	var handler slog.Handler
	if format == JSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	log := slog.New(handler)
	slog.SetDefault(log)
	return log
}

// Discard installs a logger that drops everything. Used by --quiet and the TUI,
// where log lines would corrupt the screen.
func Discard() *slog.Logger {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	slog.SetDefault(log)
	return log
}
