package logger

import (
	"log/slog"
	"os"
	"strings"
)

// New returns a JSON slog logger writing to stdout. LOG_LEVEL selects the
// minimum level (debug, info, warn, error).
func New() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: levelFromEnv(os.Getenv("LOG_LEVEL")),
	}))
}

func levelFromEnv(v string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
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
