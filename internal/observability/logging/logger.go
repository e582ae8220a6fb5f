// Package logging provides structured logging utilities using the standard library's log/slog package.
// It offers helper functions for creating loggers with consistent configuration and context propagation.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lmittmann/tint"
)

// New creates a logger whose output format follows the LOG_FORMAT environment
// variable ("json" or "text"). Logs go to stderr so they never interleave with
// the explorer's own stdout rendering.
func New() *slog.Logger {
	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "text") {
		return NewTextLogger()
	}
	return NewLogger()
}

// NewLogger creates a new structured logger with JSON output.
// The log level can be controlled via the LOG_LEVEL environment variable.
// Supported levels: debug, info, warn, error
// Default level: info
func NewLogger() *slog.Logger {
	return NewJSONLoggerTo(os.Stderr)
}

// NewJSONLoggerTo creates a JSON logger writing to w.
func NewJSONLoggerTo(w io.Writer) *slog.Logger {
	logLevel := levelFromEnv()

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: logLevel,
		// Add source code location for error and warn levels
		AddSource: logLevel <= slog.LevelWarn,
	})

	return slog.New(handler)
}

// NewTextLogger creates a new structured logger with colored, human-readable output.
// This is useful for local development and debugging.
func NewTextLogger() *slog.Logger {
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      levelFromEnv(),
		TimeFormat: time.Kitchen,
	}))
}

func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
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

// NewChainID returns a context carrying a fresh correlation id for one fetch chain.
func NewChainID(ctx context.Context) (context.Context, string) {
	id := uuid.NewString()
	return context.WithValue(ctx, chainIDContextKey, id), id
}

// ChainIDFromContext returns the correlation id stored by NewChainID, or "".
func ChainIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(chainIDContextKey).(string); ok {
		return id
	}
	return ""
}

// WithChainID returns a new logger that includes the chain id from the context.
// This ties together every log line produced by one fetch chain.
func WithChainID(ctx context.Context, logger *slog.Logger) *slog.Logger {
	id := ChainIDFromContext(ctx)
	if id == "" {
		return logger
	}
	return logger.With("chain_id", id)
}

// WithFields returns a new logger with additional structured fields.
// Fields are provided as key-value pairs.
func WithFields(logger *slog.Logger, fields map[string]interface{}) *slog.Logger {
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return logger.With(args...)
}

// FromContext retrieves the logger from the context, or returns the default logger if not found.
// This enables passing loggers through the application via context.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerContextKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey, logger)
}

type contextKey string

const (
	loggerContextKey  contextKey = "logger"
	chainIDContextKey contextKey = "chain_id"
)
