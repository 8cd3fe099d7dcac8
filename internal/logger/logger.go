package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger wraps slog with the component/file/function context every log
// line in this project carries.
type Logger struct {
	log      *slog.Logger
	name     string
	file     string
	function string
}

func New(name string) Logger {
	return Logger{name: name}
}

// Setup installs the process-wide slog handler. format is "json" or "text".
func Setup(level, format string) {
	SetupWriter(os.Stdout, level, format)
}

func SetupWriter(w io.Writer, level, format string) {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	slog.SetDefault(slog.New(handler))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l Logger) File(name string) Logger {
	l.file = name
	return l
}

func (l Logger) Function(name string) Logger {
	l.function = name
	return l
}

func (l Logger) with(args []any) *slog.Logger {
	base := l.log
	if base == nil {
		base = slog.Default()
	}

	attrs := []any{"component", l.name}
	if l.file != "" {
		attrs = append(attrs, "file", l.file)
	}
	if l.function != "" {
		attrs = append(attrs, "function", l.function)
	}

	return base.With(attrs...).With(args...)
}

func (l Logger) Debug(msg string, args ...any) {
	l.with(args).Debug(msg)
}

func (l Logger) Info(msg string, args ...any) {
	l.with(args).Info(msg)
}

func (l Logger) Warn(msg string, args ...any) {
	l.with(args).Warn(msg)
}

// Er logs err without returning it.
func (l Logger) Er(msg string, err error, args ...any) {
	l.with(append(args, "error", err)).Error(msg)
}

// Err logs err and returns it wrapped with msg.
func (l Logger) Err(msg string, err error, args ...any) error {
	l.Er(msg, err, args...)
	if err == nil {
		return errors.New(msg)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Error logs msg at error level and returns it as an error.
func (l Logger) Error(msg string, args ...any) error {
	l.with(args).Error(msg)
	return errors.New(msg)
}

func (l Logger) ErMsg(msg string, args ...any) {
	l.with(args).Error(msg)
}

func (l Logger) ErrMsg(msg string) error {
	return l.Error(msg)
}
