// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// Field names for structured logging.
const (
	FieldError    = "error"
	FieldInput    = "input"
	FieldOutput   = "output"
	FieldFiles    = "files"
	FieldWorkers  = "workers"
	FieldFailed   = "failed"
	FieldDuration = "duration"
	FieldWords    = "words"
	FieldHeadings = "headings"
	FieldConfig   = "config"
	FieldVar      = "var"
	FieldVersion  = "version"
)

// New creates a logger writing to w at the given level.
// Valid levels: "debug", "info", "warn", "error". Unknown levels mean info.
func New(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
		Prefix:          "richtext",
	})
	logger.SetLevel(ParseLevel(level))
	return logger
}

// Discard returns a logger that drops every record.
func Discard() *log.Logger {
	return New(io.Discard, "error")
}

// ParseLevel maps a level name to a log.Level, case-insensitively.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

type contextKey struct{}

// WithLogger returns a context carrying logger.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext returns the context's logger, or a discarding one.
func FromContext(ctx context.Context) *log.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(contextKey{}).(*log.Logger); ok && logger != nil {
			return logger
		}
	}
	return Discard()
}
