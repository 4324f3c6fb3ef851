// Package logging provides structured logging setup for homefinder.
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Setup initializes the default slog logger. Dev mode uses human-readable
// text on stderr; prod uses JSON. Unknown level strings fall back to info.
func Setup(level string, devMode bool) {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler
	if devMode {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
