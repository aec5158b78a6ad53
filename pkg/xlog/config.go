package xlog

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// NewConfig returns the default logging config: info-level text output on
// stdout with source annotations, no file output.
func NewConfig() Config {
	return Config{
		Level:        slog.LevelInfo,
		AddSource:    true,
		AttrReplacer: NormalizeSourceAttrReplacer(),
		StdFormat:    "text",
		StdWriter:    os.Stdout,
		MaxSize:      30,
	}
}

// Config configures the handlers built by BuildHandler.
type Config struct {
	// Level is the minimum level to log, defaults to LevelInfo.
	Level slog.Level
	// AddSource records the file and line of the logging call.
	AddSource bool
	// AttrReplacer rewrites attributes before output, defaults to
	// NormalizeSourceAttrReplacer.
	AttrReplacer AttrReplacer

	// StdFormat is the console output format, one of ["text", "json"].
	StdFormat string
	// StdWriter is the console output writer, defaults to os.Stdout.
	StdWriter io.Writer

	// Path is the log file path. Empty disables file output.
	Path string
	// MaxSize is the maximum size in MB of a log file before it is
	// rotated, defaults to 30 MB.
	MaxSize int
	// MaxAge is the maximum number of days to retain old log files.
	// Zero keeps them forever.
	MaxAge int
	// MaxBackups is the maximum number of old log files to retain.
	// Zero keeps them all.
	MaxBackups int
	// Compress enables gzip compression of rotated log files.
	Compress bool
}

// BuildHandler assembles the slog.Handler described by the config. With a
// file path set, records additionally go to the rotated file as JSON.
func (c *Config) BuildHandler() slog.Handler {
	opts := &slog.HandlerOptions{
		AddSource:   c.AddSource,
		Level:       c.Level,
		ReplaceAttr: c.AttrReplacer,
	}

	if c.StdFormat == "json" {
		writer := c.StdWriter
		if fw := c.fileWriter(); fw != nil {
			writer = io.MultiWriter(writer, fw)
		}
		return NewLeveledHandlerCreator(JSONHandlerCreator)(writer, opts)
	}

	handlers := []slog.Handler{
		NewLeveledHandlerCreator(TextHandlerCreator)(c.StdWriter, opts),
	}
	if fw := c.fileWriter(); fw != nil {
		handlers = append(handlers, NewLeveledHandlerCreator(JSONHandlerCreator)(fw, opts))
	}
	return MultiHandler(handlers...)
}

func (c *Config) fileWriter() io.Writer {
	if c.Path == "" {
		return nil
	}
	return &lumberjack.Logger{
		Filename:   c.Path,
		MaxSize:    c.MaxSize,
		MaxAge:     c.MaxAge,
		MaxBackups: c.MaxBackups,
		Compress:   c.Compress,
	}
}
