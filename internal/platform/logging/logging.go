package logging

import (
	"context"
	"log/slog"
)

// contextKey is a private type so logger context keys cannot collide.
type contextKey string

const loggerKey = contextKey("logger")

// NewContext stores a scoped logger in the context, typically enriched with
// the operation and caller identity by the entrypoint.
func NewContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// GetLoggerFromCtx retrieves the scoped logger from the context, falling back
// to the default logger when none was injected.
func GetLoggerFromCtx(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(loggerKey).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return logger
}
