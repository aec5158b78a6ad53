package xlog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/samber/lo"
)

// HandlerCreator builds a slog.Handler writing to w.
type HandlerCreator func(w io.Writer, opts *slog.HandlerOptions) slog.Handler

var (
	// JSONHandlerCreator wraps slog.NewJSONHandler as HandlerCreator.
	JSONHandlerCreator HandlerCreator = func(w io.Writer, opts *slog.HandlerOptions) slog.Handler {
		return slog.NewJSONHandler(w, opts)
	}
	// TextHandlerCreator wraps slog.NewTextHandler as HandlerCreator.
	TextHandlerCreator HandlerCreator = func(w io.Writer, opts *slog.HandlerOptions) slog.Handler {
		return slog.NewTextHandler(w, opts)
	}
)

// LeveledHandler is a slog.Handler whose level can change at runtime.
type LeveledHandler interface {
	slog.Handler
	// SetLevel changes the minimum level the handler emits.
	SetLevel(lvl slog.Level)
}

// SetHandlerLevel changes the level of h when it is a LeveledHandler and
// does nothing otherwise.
func SetHandlerLevel(h slog.Handler, lvl slog.Level) {
	if leveled, ok := h.(LeveledHandler); ok {
		leveled.SetLevel(lvl)
	}
}

// NewLeveledHandlerCreator decorates create so that the handlers it builds
// carry a mutable level.
func NewLeveledHandlerCreator(create HandlerCreator) HandlerCreator {
	return func(w io.Writer, o *slog.HandlerOptions) slog.Handler {
		opts := slog.HandlerOptions{}
		if o != nil {
			opts = *o
		}
		lvl := slog.LevelInfo
		if opts.Level != nil {
			lvl = opts.Level.Level()
		}
		lvlVar := NewLevelVar(lvl)
		opts.Level = lvlVar
		return &leveledHandler{handler: create(w, &opts), level: lvlVar}
	}
}

type leveledHandler struct {
	handler slog.Handler
	level   *slog.LevelVar
}

func (h *leveledHandler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return h.handler.Enabled(ctx, lvl)
}

func (h *leveledHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.handler.WithAttrs(attrs)
}

func (h *leveledHandler) WithGroup(name string) slog.Handler {
	return h.handler.WithGroup(name)
}

func (h *leveledHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.handler.Handle(ctx, r)
}

// SetLevel implements LeveledHandler.
func (h *leveledHandler) SetLevel(lvl slog.Level) {
	h.level.Set(lvl)
}

// MultiHandler fans records out to every handler in the list.
func MultiHandler(handlers ...slog.Handler) slog.Handler {
	return &multiHandler{handlers: handlers}
}

type multiHandler struct {
	handlers []slog.Handler
}

// Enabled reports whether any of the handlers accepts the level.
func (h *multiHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return lo.SomeBy(h.handlers, func(item slog.Handler) bool {
		return item.Enabled(ctx, l)
	})
}

// Handle hands the record to every enabled handler. One failing handler
// does not stop the fan-out, the errors are joined afterwards.
func (h *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for i := range h.handlers {
		if !h.handlers[i].Enabled(ctx, r.Level) {
			continue
		}
		err := try(func() error {
			return h.handlers[i].Handle(ctx, r.Clone())
		})
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// WithAttrs implements slog.Handler.
func (h *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := lo.Map(h.handlers, func(item slog.Handler, _ int) slog.Handler {
		return item.WithAttrs(attrs)
	})
	return MultiHandler(handlers...)
}

// WithGroup implements slog.Handler.
func (h *multiHandler) WithGroup(name string) slog.Handler {
	handlers := lo.Map(h.handlers, func(item slog.Handler, _ int) slog.Handler {
		return item.WithGroup(name)
	})
	return MultiHandler(handlers...)
}

// SetLevel implements LeveledHandler.
func (h *multiHandler) SetLevel(lvl slog.Level) {
	lo.ForEach(h.handlers, func(item slog.Handler, _ int) {
		SetHandlerLevel(item, lvl)
	})
}

// try runs fn and converts a panic into an error so that one broken
// handler cannot take down the others.
func try(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return fn()
}
