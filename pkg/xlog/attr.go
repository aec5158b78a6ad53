package xlog

import (
	"log/slog"
	"path/filepath"
)

// Attr is an alias of slog.Attr.
type Attr = slog.Attr

// AttrReplacer rewrites an attribute before it is handed to the handler.
type AttrReplacer func(groups []string, attr slog.Attr) Attr

// ChainReplacer applies the replacers in order.
func ChainReplacer(replacers ...AttrReplacer) AttrReplacer {
	return func(groups []string, attr slog.Attr) Attr {
		for _, repl := range replacers {
			attr = repl(groups, attr)
		}
		return attr
	}
}

// NormalizeSourceAttrReplacer shortens the source file attribute of a
// record to its basename.
func NormalizeSourceAttrReplacer() AttrReplacer {
	return func(groups []string, attr slog.Attr) Attr {
		if attr.Key != slog.SourceKey {
			return attr
		}
		if source, ok := attr.Value.Any().(*slog.Source); ok {
			source.File = filepath.Base(source.File)
		}
		return attr
	}
}

// SuppressTimeAttrReplacer drops the top-level time attribute, which keeps
// log output comparable in tests.
func SuppressTimeAttrReplacer() AttrReplacer {
	return func(groups []string, attr slog.Attr) Attr {
		if attr.Key == slog.TimeKey && len(groups) == 0 {
			return slog.Attr{}
		}
		return attr
	}
}
