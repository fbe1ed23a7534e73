// Package logger wraps log/slog behind the minimal surface the rest of the
// module calls into (repository.go and usecase.go in the reference
// implementation this was learned from take a logger.Logger by value).
package logger

import (
	"fmt"
	"log/slog"
	"os"
)

// LoggerMode mirrors config.LoggerMode without importing the config
// package, so logger has no dependency on the rest of the module.
type LoggerMode struct {
	Development bool
	Level       string
}

type Logger struct {
	slog *slog.Logger
	// silent is set when Level == "none": every method becomes a no-op,
	// per §6.3 — a log level of "none" disables all stdout/stderr writes.
	silent bool
}

func NewLogger(mode LoggerMode) (*Logger, error) {
	if mode.Level == "none" {
		return &Logger{silent: true}, nil
	}

	level := parseLevel(mode.Level)
	var handler slog.Handler
	opts := &slog.HandlerOptions{Level: level}
	if mode.Development {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}

	return &Logger{slog: slog.New(handler)}, nil
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *Logger) Debug(msg string, args ...any) {
	if l.silent {
		return
	}
	l.slog.Debug(msg, args...)
}

func (l *Logger) Info(msg string, args ...any) {
	if l.silent {
		return
	}
	l.slog.Info(msg, args...)
}

func (l *Logger) Warn(msg string, args ...any) {
	if l.silent {
		return
	}
	l.slog.Warn(msg, args...)
}

func (l *Logger) Error(msg string, args ...any) {
	if l.silent {
		return
	}
	l.slog.Error(msg, args...)
}

// Errorf matches the teacher's usecase.go call sites (uc.logger.Errorf(...))
// without pulling request-identifying data into the message — callers must
// only ever format the error itself, never a payload or account id.
func (l *Logger) Errorf(format string, args ...any) {
	if l.silent {
		return
	}
	l.slog.Error(fmt.Sprintf(format, args...))
}
