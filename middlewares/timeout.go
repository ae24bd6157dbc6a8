package middlewares

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrymomot/storefront/internal"
)

// DefaultTimeout applies when Timeout gets a non-positive duration.
const DefaultTimeout = 30 * time.Second

// Timeout puts a deadline on the request context. Outgoing API calls made
// with that context are cancelled when it fires. If the deadline passed and
// nothing was written yet, the handler result is replaced by *TimeoutError.
func Timeout(d time.Duration) internal.Middleware {
	if d <= 0 {
		d = DefaultTimeout
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			ctx, cancel := context.WithTimeout(c.Context(), d)
			defer cancel()
			c.SetContext(ctx)

			err := next(c)
			if errors.Is(ctx.Err(), context.DeadlineExceeded) && !c.Written() {
				c.LogWarn("request timeout", "timeout", d.String())
				return &TimeoutError{Err: err, Duration: d}
			}
			return err
		}
	}
}
