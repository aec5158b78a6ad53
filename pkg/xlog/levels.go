package xlog

import "log/slog"

// Level aliases re-exported for callers that only import xlog.
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// NewLevelVar returns a new *slog.LevelVar initialized to lvl.
func NewLevelVar(lvl slog.Level) *slog.LevelVar {
	v := &slog.LevelVar{}
	v.Set(lvl)
	return v
}
