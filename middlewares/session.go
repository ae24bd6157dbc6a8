package middlewares

import (
	"context"
	"errors"

	"github.com/dmitrymomot/storefront/internal"
	"github.com/dmitrymomot/storefront/pkg/auth"
	"github.com/dmitrymomot/storefront/pkg/credential"
	"github.com/dmitrymomot/storefront/pkg/htmx"
	"github.com/dmitrymomot/storefront/pkg/session"
)

type sessionScopeConfig struct {
	onClear []func(ctx context.Context, sessionID string)
}

// SessionScopeOption configures SessionScope.
type SessionScopeOption func(*sessionScopeConfig)

// OnIdentityCleared registers fn to run with the server session id right
// before the session is destroyed on logout. Use it to drop per-session state.
func OnIdentityCleared(fn func(ctx context.Context, sessionID string)) SessionScopeOption {
	return func(cfg *sessionScopeConfig) {
		if fn != nil {
			cfg.onClear = append(cfg.onClear, fn)
		}
	}
}

// SessionScope attaches an *auth.Session to every request. The bearer token
// lives in the credentials cookie, the user email in the server-side
// session, and navigation is an htmx aware redirect. The app must be
// configured with a session store.
func SessionScope(credentials *credential.Store, client auth.Client, opts ...SessionScopeOption) internal.Middleware {
	cfg := &sessionScopeConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			s := auth.New(
				client,
				credentials.Bind(c.Response(), c.Request()),
				&sessionIdentity{c: c, onClear: cfg.onClear},
				auth.NavigatorFunc(func(path string) {
					htmx.Redirect(c.Response(), c.Request(), path)
				}),
			)
			c.SetContext(auth.WithSession(c.Context(), s))
			return next(c)
		}
	}
}

// sessionIdentity keeps the logged-in email on the server-side session.
type sessionIdentity struct {
	c       internal.Context
	onClear []func(ctx context.Context, sessionID string)
}

func (i *sessionIdentity) SetUser(_ context.Context, email string) error {
	return i.c.AuthenticateSession(email)
}

func (i *sessionIdentity) User() (string, bool) {
	sess, err := i.c.Session()
	if err != nil || sess == nil || sess.Email == "" {
		return "", false
	}
	return sess.Email, true
}

func (i *sessionIdentity) Clear(ctx context.Context) error {
	sess, err := i.c.Session()
	if err != nil && !errors.Is(err, session.ErrNotConfigured) {
		i.c.LogWarn("failed to load session on logout", "error", err)
	}
	if sess != nil {
		for _, fn := range i.onClear {
			fn(ctx, sess.ID)
		}
	}
	return i.c.DestroySession()
}
