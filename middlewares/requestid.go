package middlewares

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/storefront/internal"
	"github.com/dmitrymomot/storefront/pkg/logger"
)

type requestIDKey struct{}

// RequestIDHeader is the response header carrying the request id.
const RequestIDHeader = "X-Request-ID"

type requestIDConfig struct {
	generator func() string
	extractor internal.Extractor
}

// RequestIDOption configures RequestID.
type RequestIDOption func(*requestIDConfig)

// WithRequestIDHeaders sets the headers checked, in order, for an upstream id.
func WithRequestIDHeaders(headers ...string) RequestIDOption {
	return func(cfg *requestIDConfig) {
		sources := make([]internal.ExtractorSource, 0, len(headers))
		for _, h := range headers {
			sources = append(sources, internal.FromHeader(h))
		}
		cfg.extractor = internal.NewExtractor(sources...)
	}
}

// WithRequestIDGenerator replaces the UUID generator.
func WithRequestIDGenerator(gen func() string) RequestIDOption {
	return func(cfg *requestIDConfig) {
		if gen != nil {
			cfg.generator = gen
		}
	}
}

// RequestID assigns an id to every request.
func RequestID(opts ...RequestIDOption) internal.Middleware {
	cfg := &requestIDConfig{
		generator: uuid.NewString,
		extractor: internal.NewExtractor(
			internal.FromHeader("X-Request-ID"),
			internal.FromHeader("X-Correlation-ID"),
		),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			id, ok := cfg.extractor.Extract(c)
			if !ok {
				id = cfg.generator()
			}

			c.Set(requestIDKey{}, id)
			c.SetHeader(RequestIDHeader, id)

			return next(c)
		}
	}
}

// GetRequestID returns the request id, or "".
func GetRequestID(c internal.Context) string {
	return internal.ContextValue[string](c, requestIDKey{})
}

// RequestIDExtractor adds request_id to log records.
func RequestIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if v, ok := ctx.Value(requestIDKey{}).(string); ok && v != "" {
			return slog.String("request_id", v), true
		}
		return slog.Attr{}, false
	}
}
