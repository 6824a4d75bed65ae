package logging

import (
	"context"

	"go.uber.org/zap"
)

// loggerKey carries the request-scoped logger through the handler chain.
type loggerKey struct{}

// ContextWithLogger returns a context carrying logger. A nil logger leaves
// the context untouched.
func ContextWithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	if logger == nil {
		return ctx
	}
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the logger carried by ctx. When none was attached, for
// example inside the event dispatch loop, it falls back to the process-wide
// zap.L().
func FromContext(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return zap.L()
	}
	if logger, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok && logger != nil {
		return logger
	}
	return zap.L()
}
