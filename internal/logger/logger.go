package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"
)

type Handler int

const (
	DevHandler Handler = iota
	TextHandler
	JSONHandler
)

type Option func(o *options)

type options struct {
	writer  io.Writer
	level   slog.Level
	handler Handler
}

func WithWriter(w io.Writer) Option {
	return func(o *options) {
		o.writer = w
	}
}

func WithLevel(lvl slog.Level) Option {
	return func(o *options) {
		o.level = lvl
	}
}

func WithHandler(h Handler) Option {
	return func(o *options) {
		o.handler = h
	}
}

// New builds a slog.Logger. Defaults to the coloured dev handler at info
// level on stderr.
func New(opts ...Option) *slog.Logger {
	o := &options{
		writer:  os.Stderr,
		level:   slog.LevelInfo,
		handler: DevHandler,
	}
	for _, apply := range opts {
		apply(o)
	}

	switch o.handler {
	case DevHandler:
		return slog.New(tint.NewHandler(o.writer, &tint.Options{
			Level:      o.level,
			TimeFormat: "[15:04:05.000]",
		}))
	case TextHandler:
		return slog.New(slog.NewTextHandler(o.writer, &slog.HandlerOptions{Level: o.level}))
	default:
		return slog.New(slog.NewJSONHandler(o.writer, &slog.HandlerOptions{Level: o.level}))
	}
}

// Discard returns a logger that drops everything. Handy in tests.
func Discard() *slog.Logger {
	return New(WithWriter(io.Discard))
}

// ParseLevel maps a config string to a slog level, falling back to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

// ParseHandler maps a config string to a Handler, falling back to dev.
func ParseHandler(s string) Handler {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return JSONHandler
	case "txt", "text":
		return TextHandler
	default:
		return DevHandler
	}
}
