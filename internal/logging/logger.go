package logging

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/Melvins45/maferme237/internal/config"
)

// Setup installs the default slog logger from configuration and returns a
// close function that flushes the Loki buffer on shutdown.
func Setup(conf *config.Config) func() {
	level := ParseLevel(conf.Logging.Level)

	var console slog.Handler
	if strings.ToLower(conf.Logging.Format) == "json" {
		console = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level:     level,
			AddSource: conf.IsProduction(),
		})
	} else {
		console = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}

	if !conf.Logging.LokiEnabled {
		slog.SetDefault(slog.New(console))
		slog.Info("📊 Logging configured",
			"level", level.String(),
			"format", conf.Logging.Format,
			"loki_enabled", false,
		)
		return func() {}
	}

	loki := NewLokiHandler(
		conf.Logging.LokiURL,
		conf.Logging.LokiLabels,
		conf.Logging.LokiBatchSize,
		true,
		level,
	)
	slog.SetDefault(slog.New(Fanout(console, loki)))
	slog.Info("📊 Logging configured",
		"level", level.String(),
		"format", conf.Logging.Format,
		"loki_enabled", true,
		"loki_url", conf.Logging.LokiURL,
	)
	return func() { loki.Close() }
}

// ParseLevel maps the configured level name, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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

// fanout duplicates every record across its handlers. The first handler is
// the console; its error is the one that surfaces.
type fanout struct {
	handlers []slog.Handler
}

// Fanout combines handlers into one / Combine plusieurs handlers en un seul
func Fanout(handlers ...slog.Handler) slog.Handler {
	return &fanout{handlers: handlers}
}

func (f *fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f *fanout) Handle(ctx context.Context, r slog.Record) error {
	var first error
	for i, h := range f.handlers {
		if err := h.Handle(ctx, r.Clone()); err != nil && i == 0 {
			first = err
		}
	}
	return first
}

func (f *fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]slog.Handler, len(f.handlers))
	for i, h := range f.handlers {
		next[i] = h.WithAttrs(attrs)
	}
	return &fanout{handlers: next}
}

func (f *fanout) WithGroup(name string) slog.Handler {
	next := make([]slog.Handler, len(f.handlers))
	for i, h := range f.handlers {
		next[i] = h.WithGroup(name)
	}
	return &fanout{handlers: next}
}
