package storefront

import (
	"context"
	"io/fs"
	"log/slog"
	"time"

	"github.com/dmitrymomot/storefront/internal"
	"github.com/dmitrymomot/storefront/pkg/cookie"
	"github.com/dmitrymomot/storefront/pkg/health"
	"github.com/dmitrymomot/storefront/pkg/logger"
	"github.com/dmitrymomot/storefront/pkg/session"
)

// Type aliases - public API
type (
	// App owns routing, middleware and the server lifecycle.
	App = internal.App

	// Router is the interface handlers use to declare routes.
	Router = internal.Router

	// Context provides request/response access and helper methods.
	Context = internal.Context

	// Handler declares routes on a router.
	Handler = internal.Handler

	// HandlerFunc is the signature for route handlers.
	HandlerFunc = internal.HandlerFunc

	// Middleware wraps a HandlerFunc to add cross-cutting concerns.
	Middleware = internal.Middleware

	// ErrorHandler handles errors returned from handlers.
	ErrorHandler = internal.ErrorHandler

	// Option configures the application.
	Option = internal.Option

	// RunOption configures App.Run.
	RunOption = internal.RunOption

	// Component is the interface for renderable templates.
	Component = internal.Component

	HealthOption  = internal.HealthOption
	SessionOption = internal.SessionOption

	// HTTPError is an error with a status code and a user facing message.
	HTTPError = internal.HTTPError

	// ContextExtractor extracts a slog attribute from context.
	ContextExtractor = logger.ContextExtractor

	// CookieOption configures the cookie manager.
	CookieOption = cookie.Option

	// Session is the server-side session.
	Session = session.Session

	// SessionStore persists sessions.
	SessionStore = session.Store
)

// New creates an application. The App is immutable after creation.
//
//	app := storefront.New(
//	    storefront.WithMiddleware(middlewares.Recover()),
//	    storefront.WithHandlers(handlers.NewCatalog(api), handlers.NewAuth()),
//	)
//
//	err := app.Run(":8080", storefront.ShutdownTimeout(30*time.Second))
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// App options

// WithMiddleware adds global middleware, applied in the order given.
func WithMiddleware(mw ...Middleware) Option {
	return internal.WithMiddleware(mw...)
}

// WithHandlers registers handlers that declare routes.
func WithHandlers(h ...Handler) Option {
	return internal.WithHandlers(h...)
}

// WithStaticFiles serves fsys under pattern, e.g. "/static/*".
func WithStaticFiles(pattern string, fsys fs.FS, subDir string) Option {
	return internal.WithStaticFiles(pattern, fsys, subDir)
}

// WithErrorHandler sets the handler for errors returned by handlers.
func WithErrorHandler(h ErrorHandler) Option {
	return internal.WithErrorHandler(h)
}

// WithNotFoundHandler sets the handler for unmatched routes.
func WithNotFoundHandler(h HandlerFunc) Option {
	return internal.WithNotFoundHandler(h)
}

// WithMethodNotAllowedHandler sets the handler for wrong methods.
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return internal.WithMethodNotAllowedHandler(h)
}

// WithHealthChecks enables the liveness and readiness endpoints.
func WithHealthChecks(opts ...HealthOption) Option {
	return internal.WithHealthChecks(opts...)
}

// WithLogger sets the application logger.
func WithLogger(l *slog.Logger) Option {
	return internal.WithLogger(l)
}

// WithCookieManager sets the cookie manager shared by handlers.
func WithCookieManager(m *cookie.Manager) Option {
	return internal.WithCookieManager(m)
}

// WithSession enables server-side sessions backed by store.
func WithSession(store SessionStore, opts ...SessionOption) Option {
	return internal.WithSession(store, opts...)
}

// Health options

// WithLivenessPath overrides /health/live.
func WithLivenessPath(path string) HealthOption {
	return internal.WithLivenessPath(path)
}

// WithReadinessPath overrides /health/ready.
func WithReadinessPath(path string) HealthOption {
	return internal.WithReadinessPath(path)
}

// WithReadinessCheck adds a named readiness check.
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return internal.WithReadinessCheck(name, fn)
}

// Session options

func WithSessionCookieName(name string) SessionOption {
	return internal.WithSessionCookieName(name)
}

func WithSessionMaxAge(d time.Duration) SessionOption {
	return internal.WithSessionMaxAge(d)
}

func WithSessionDomain(domain string) SessionOption {
	return internal.WithSessionDomain(domain)
}

func WithSessionSecure(secure bool) SessionOption {
	return internal.WithSessionSecure(secure)
}

// Run options

// ShutdownTimeout bounds graceful shutdown, hooks included.
func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// StartupHook runs fn before the listener accepts requests.
func StartupHook(fn func(context.Context) error) RunOption {
	return internal.StartupHook(fn)
}

// ShutdownHook runs fn after the server stops.
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

// Errors

// ErrBadRequest returns a 400 HTTPError.
func ErrBadRequest(message string) *HTTPError { return internal.ErrBadRequest(message) }

// ErrNotFound returns a 404 HTTPError.
func ErrNotFound(message string) *HTTPError { return internal.ErrNotFound(message) }

// ErrInternal returns a 500 HTTPError.
func ErrInternal(message string) *HTTPError { return internal.ErrInternal(message) }
