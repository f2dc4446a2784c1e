package logger

import (
	"log/slog"
	"os"
)

// New returns the process logger: JSON to stdout, debug level in dev so the
// per-request logging is visible locally without drowning production logs.
func New(env string) *slog.Logger {
	level := slog.LevelInfo
	if env == "dev" {
		level = slog.LevelDebug
	}
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(h).With("service", "chemtrack-backend")
}
