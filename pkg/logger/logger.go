// Package logger builds the storefront's slog logger.
//
// Records go to stdout as JSON (or text for local runs). Context extractors
// add request-scoped attributes such as the request ID on every call. When a
// Sentry DSN is configured, warnings are also shipped to Sentry as logs and
// errors as issues; without one the logger silently stays stdout-only.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// Config controls the logger. Embed it in the app config for env parsing.
type Config struct {
	Level  string       `env:"LOG_LEVEL" envDefault:"info"`
	Format string       `env:"LOG_FORMAT" envDefault:"json"`
	Sentry SentryConfig
}

// SentryConfig holds Sentry integration settings.
type SentryConfig struct {
	DSN         string `env:"SENTRY_DSN"`
	Environment string `env:"SENTRY_ENVIRONMENT" envDefault:"production"`
	// ErrorsOnly sends only error records; otherwise warnings are sent too.
	ErrorsOnly bool `env:"SENTRY_ERRORS_ONLY" envDefault:"false"`
}

// New creates a logger writing to stdout. The returned flush function waits
// for buffered Sentry events and should run during shutdown; it is a no-op
// when Sentry is disabled.
func New(cfg Config, extractors ...ContextExtractor) (*slog.Logger, func(context.Context) error) {
	return newLogger(os.Stdout, cfg, extractors...)
}

func newLogger(w io.Writer, cfg Config, extractors ...ContextExtractor) (*slog.Logger, func(context.Context) error) {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var out slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		out = slog.NewTextHandler(w, opts)
	} else {
		out = slog.NewJSONHandler(w, opts)
	}

	noFlush := func(context.Context) error { return nil }

	if cfg.Sentry.DSN == "" {
		return slog.New(NewLogHandlerDecorator(out, extractors...)), noFlush
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.Sentry.DSN,
		Environment: cfg.Sentry.Environment,
		EnableLogs:  true,
	}); err != nil {
		slog.New(out).Error("failed to initialize Sentry", slog.String("error", err.Error()))
		return slog.New(NewLogHandlerDecorator(out, extractors...)), noFlush
	}

	logLevel := []slog.Level{slog.LevelWarn, slog.LevelError}
	if cfg.Sentry.ErrorsOnly {
		logLevel = []slog.Level{slog.LevelError}
	}

	sentryHandler := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   logLevel,
	}.NewSentryHandler(context.Background())

	flush := func(ctx context.Context) error {
		timeout := 2 * time.Second
		if deadline, ok := ctx.Deadline(); ok {
			timeout = time.Until(deadline)
		}
		sentry.Flush(timeout)
		return nil
	}

	return slog.New(NewLogHandlerDecorator(newMultiHandler(out, sentryHandler), extractors...)), flush
}

// ParseLevel maps debug/info/warn/error to a slog level; anything else is info.
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

// NewNope creates a logger that discards all output.
func NewNope() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Component returns l tagged with a component attribute.
func Component(l *slog.Logger, name string) *slog.Logger {
	return l.With(slog.String("component", name))
}
