// Package xcontext provides small helpers around context.Context.
package xcontext

import (
	"context"
	"fmt"
	"strings"
)

// NonBlockingCheck checks context as non-blocking select and returns error if context is done.
func NonBlockingCheck(ctx context.Context, msgs ...string) error {
	select {
	case <-ctx.Done():
		if len(msgs) == 0 {
			return ctx.Err()
		}
		return fmt.Errorf("%s: %w", strings.Join(msgs, ":"), ctx.Err())
	default:
	}
	return nil
}

type valueKey[T any] struct{}

// WithValue returns a new context with the value injected, keyed by the type
// of the value. Setting another value of the same type overwrites the former.
func WithValue[T any](ctx context.Context, value T) context.Context {
	return context.WithValue(ctx, valueKey[T]{}, value)
}

// GetValue extracts the value of type T injected by WithValue.
func GetValue[T any](ctx context.Context) (T, bool) {
	value, ok := ctx.Value(valueKey[T]{}).(T)
	return value, ok
}
