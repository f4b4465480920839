package logger

import (
	"context"
	"log/slog"
)

type loggerCtxKey struct{}

// With stores a child logger carrying the extra fields on the context.
// Handlers pick it up via From so request-scoped fields like the trace
// id follow the request.
func With(ctx context.Context, fields ...any) context.Context {
	return context.WithValue(ctx, loggerCtxKey{}, From(ctx).With(fields...))
}

// From returns the request-scoped logger, falling back to the process
// logger when the context carries none.
func From(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerCtxKey{}).(*slog.Logger); ok {
		return l
	}
	return LoggerWrapper()
}
