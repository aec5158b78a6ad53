package xlog

import (
	"context"
)

// C is a short alias of FromContext for call sites that log a lot.
var C = FromContext

type contextKey struct{}

// FromContext returns the Logger carried by ctx, falling back to the
// default logger.
func FromContext(ctx context.Context) *Logger {
	if ctx == nil {
		ctx = context.Background()
	}
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		logger = Default()
	}
	return logger
}

// WithContext derives a context carrying the current logger extended with
// the given attributes.
func WithContext(ctx context.Context, args ...any) context.Context {
	logger := FromContext(ctx)
	return context.WithValue(ctx, contextKey{}, logger.With(args...))
}
