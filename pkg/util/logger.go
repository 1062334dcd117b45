package util

import (
	"log/slog"
	"os"
)

// NewLogger builds the process logger. Development gets human-readable
// output at debug level with source locations; everything else gets JSON
// at info level for log aggregation. Every line carries the service name
// so hostel logs are distinguishable once shipped.
func NewLogger(env string) *slog.Logger {
	var handler slog.Handler

	if env == "development" {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level:     slog.LevelDebug,
			AddSource: true,
		})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}

	return slog.New(handler).With("service", "hostel-backend")
}
