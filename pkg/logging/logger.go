package logging

import (
	"context"
	"io"
)

// Level represents log severity
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

// Fields represents structured log fields
type Fields map[string]interface{}

// Logger defines the interface for logging
type Logger interface {
	// Debug logs a debug message
	Debug(ctx context.Context, msg string, fields Fields)

	// Info logs an info message
	Info(ctx context.Context, msg string, fields Fields)

	// Warn logs a warning message
	Warn(ctx context.Context, msg string, fields Fields)

	// Error logs an error message
	Error(ctx context.Context, msg string, err error, fields Fields)

	// WithFields returns a logger with additional fields
	WithFields(fields Fields) Logger

	// Close flushes and closes the logger
	Close() error
}

// Config selects and tunes a logger
type Config struct {
	// File is the log file path; empty logs to the fallback writer, if any
	File string
	// Format is "text" or "json"
	Format string
	// Level is the minimum level name
	Level string
	// MaxSize is the file size in bytes that triggers rotation (0 = never)
	MaxSize int64
	// MaxBackups is the number of rotated files kept
	MaxBackups int
}

// New builds a logger from cfg. Without a file it writes to fallback, and
// without a fallback it discards everything.
func New(cfg Config, fallback io.Writer) (Logger, error) {
	format := ParseFormat(cfg.Format)
	level := ParseLevel(cfg.Level)

	if cfg.File != "" {
		return NewFileLogger(FileLoggerConfig{
			Path:       cfg.File,
			Format:     format,
			Level:      level,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
		})
	}
	if fallback != nil {
		return NewStreamLogger(fallback, format, level), nil
	}
	return NewNullLogger(), nil
}

// NullLogger discards everything. It is the default of every component that
// takes a logger.
type NullLogger struct{}

var _ Logger = (*NullLogger)(nil)

// NewNullLogger returns a logger that writes nothing
func NewNullLogger() *NullLogger { return &NullLogger{} }

func (*NullLogger) Debug(context.Context, string, Fields) {}
func (*NullLogger) Info(context.Context, string, Fields) {}
func (*NullLogger) Warn(context.Context, string, Fields) {}
func (*NullLogger) Error(context.Context, string, error, Fields) {}
func (l *NullLogger) WithFields(Fields) Logger { return l }
func (*NullLogger) Close() error { return nil }

// levelString returns the string representation of a log level
func levelString(level Level) string {
	switch level {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a log level string, defaulting to info
func ParseLevel(s string) Level {
	switch s {
	case "debug", "DEBUG":
		return DebugLevel
	case "info", "INFO":
		return InfoLevel
	case "warn", "WARN", "warning", "WARNING":
		return WarnLevel
	case "error", "ERROR":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// LevelString returns level as string (exported version)
func LevelString(level Level) string {
	return levelString(level)
}
