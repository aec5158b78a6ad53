// Package xlog extends log/slog with dynamic levels, context plumbing and
// a process-wide default logger.
package xlog

import (
	"log/slog"
	"sync/atomic"
)

var defaultLogger atomic.Value

func init() {
	defaultLogger.Store(New(NewConfig()))
}

// Default returns the default Logger.
func Default() *Logger { return defaultLogger.Load().(*Logger) }

// SetDefault makes l the default Logger.
func SetDefault(l *Logger) {
	defaultLogger.Store(l)
}

// SetLevel changes the level of the default logger.
func SetLevel(lvl slog.Level) {
	Default().SetLevel(lvl)
}

// std returns the default logger adjusted so that caller annotations
// point at the caller of the package-level functions below.
func std() *Logger {
	return Default().AddCallerSkip(1)
}

// Debug logs at LevelDebug on the default logger.
func Debug(msg string, args ...any) {
	std().Debug(msg, args...)
}

// Debugf logs a formatted message at LevelDebug on the default logger.
func Debugf(format string, args ...any) {
	std().Debugf(format, args...)
}

// Info logs at LevelInfo on the default logger.
func Info(msg string, args ...any) {
	std().Info(msg, args...)
}

// Infof logs a formatted message at LevelInfo on the default logger.
func Infof(format string, args ...any) {
	std().Infof(format, args...)
}

// Warn logs at LevelWarn on the default logger.
func Warn(msg string, args ...any) {
	std().Warn(msg, args...)
}

// Warnf logs a formatted message at LevelWarn on the default logger.
func Warnf(format string, args ...any) {
	std().Warnf(format, args...)
}

// Error logs at LevelError on the default logger.
func Error(msg string, args ...any) {
	std().Error(msg, args...)
}

// Errorf logs a formatted message at LevelError on the default logger.
func Errorf(format string, args ...any) {
	std().Errorf(format, args...)
}
