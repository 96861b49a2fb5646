// Package slogx configures structured logging for taskhub services and
// carries request-scoped loggers through context.
package slogx

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Options describe how a service logger is built.
type Options struct {
	Service string
	Version string
	Env     string // "dev" enables source locations
	Level   string // slog level name, defaults to info
	Format  string // "text" or "json" (default)
	Output  io.Writer
}

// New builds a slog.Logger tagged with the service identity and installs it
// as the process default.
func New(opts Options) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	hopts := &slog.HandlerOptions{
		Level:     level(opts.Level),
		AddSource: opts.Env == "dev",
	}

	var h slog.Handler
	if strings.EqualFold(opts.Format, "text") {
		h = slog.NewTextHandler(out, hopts)
	} else {
		h = slog.NewJSONHandler(out, hopts)
	}

	logger := slog.New(h).With(
		"service", opts.Service,
		"version", opts.Version,
		"env", opts.Env,
	)
	slog.SetDefault(logger)
	return logger
}

func level(name string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelInfo
	}
	return l
}
