package middlewares

import (
	"log/slog"
	"runtime"

	"github.com/dmitrymomot/storefront/internal"
)

// DefaultStackSize caps the captured stack trace, in bytes.
const DefaultStackSize = 4096

type recoverConfig struct {
	stackSize int
	noStack   bool
}

// RecoverOption configures Recover.
type RecoverOption func(*recoverConfig)

// WithRecoverStackSize sets the stack capture size.
func WithRecoverStackSize(size int) RecoverOption {
	return func(cfg *recoverConfig) {
		if size > 0 {
			cfg.stackSize = size
		}
	}
}

// WithoutRecoverStack disables stack capture.
func WithoutRecoverStack() RecoverOption {
	return func(cfg *recoverConfig) {
		cfg.noStack = true
	}
}

// Recover converts panics into *PanicError. The panic is logged with the
// request's logger; rendering is left to the error handler.
func Recover(opts ...RecoverOption) internal.Middleware {
	cfg := &recoverConfig{stackSize: DefaultStackSize}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}

				pe := &PanicError{Value: r}
				attrs := []any{slog.Any("panic", r), slog.String("path", c.Request().URL.Path)}
				if !cfg.noStack {
					buf := make([]byte, cfg.stackSize)
					pe.Stack = buf[:runtime.Stack(buf, false)]
					attrs = append(attrs, slog.String("stack", string(pe.Stack)))
				}
				c.LogError("panic recovered", attrs...)
				err = pe
			}()

			return next(c)
		}
	}
}
