// Package logging provides structured logging helpers built on log/slog.
// All binaries log JSON to stdout; the text variant exists for local runs.
package logging

import (
	"context"
	"log/slog"
	"os"

	"subsidy-finder/internal/handler/http/requestid"
)

// NewLogger creates a structured logger with JSON output.
// The level is controlled via the LOG_LEVEL environment variable
// ("debug" enables debug logging, anything else means info).
func NewLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, handlerOptions()))
}

// NewTextLogger creates a logger with human-readable text output for local
// development.
func NewTextLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, handlerOptions()))
}

func handlerOptions() *slog.HandlerOptions {
	logLevel := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		logLevel = slog.LevelDebug
	}
	return &slog.HandlerOptions{
		Level: logLevel,
		// ソース位置はエラー調査用。info レベル時も付く
		AddSource: logLevel <= slog.LevelWarn,
	}
}

// WithRequestID returns a logger carrying the request ID from the context,
// so every log line of one request can be correlated.
func WithRequestID(ctx context.Context, logger *slog.Logger) *slog.Logger {
	reqID := requestid.FromContext(ctx)
	if reqID == "" {
		return logger
	}
	return logger.With("request_id", reqID)
}
