package internal

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/storefront/pkg/cookie"
	"github.com/dmitrymomot/storefront/pkg/htmx"
	"github.com/dmitrymomot/storefront/pkg/i18n"
	"github.com/dmitrymomot/storefront/pkg/session"
)

// TranslatorKey is the context key of the request's *i18n.Translator.
type TranslatorKey struct{}

// Component is anything that renders HTML; templ.Component satisfies it.
type Component interface {
	Render(ctx context.Context, w io.Writer) error
}

// Context gives handlers access to the request, the response and the
// per-request services. It is also a context.Context bound to the request.
type Context interface {
	context.Context

	Request() *http.Request
	Response() http.ResponseWriter
	Context() context.Context

	// Param returns a URL path parameter, or "".
	Param(name string) string
	// Query returns a query parameter, or "".
	Query(name string) string
	// Form returns a form value, parsing the body on first use.
	Form(name string) string
	Header(name string) string
	SetHeader(name, value string)

	String(code int, s string) error
	NoContent(code int) error

	// Redirect works for plain and htmx requests.
	Redirect(code int, url string) error

	// Error builds an HTTPError for the handler to return.
	Error(code int, message string, opts ...HTTPErrorOption) *HTTPError

	IsHTMX() bool
	// IsPartial reports whether a fragment should be rendered
	// (htmx request that is not boosted).
	IsPartial() bool

	// Render writes component with code. htmx requests always get 200,
	// since htmx ignores non-2xx bodies by default.
	Render(code int, component Component, opts ...htmx.RenderOption) error

	// RenderPartial renders partial for fragment requests and fullPage
	// otherwise. Render options apply to fragments only.
	RenderPartial(code int, fullPage, partial Component, opts ...htmx.RenderOption) error

	// Written reports whether the response header has been sent.
	Written() bool

	Logger() *slog.Logger
	LogDebug(msg string, attrs ...any)
	LogInfo(msg string, attrs ...any)
	LogWarn(msg string, attrs ...any)
	LogError(msg string, attrs ...any)

	// Set stores a value in the request context.
	Set(key any, value any)
	// Get reads a value from the request context.
	Get(key any) any
	// SetContext replaces the request context, e.g. with one carrying a
	// deadline. ctx must derive from Context().
	SetContext(ctx context.Context)

	// Cookies returns the app's cookie manager.
	Cookies() *cookie.Manager

	// Session returns the current server-side session, loading it lazily.
	// It returns nil, nil when the request carries no session.
	Session() (*session.Session, error)
	// InitSession starts a fresh session and sets its cookie.
	InitSession() error
	// AuthenticateSession stores email on the session (creating one if
	// needed) and rotates the session token.
	AuthenticateSession(email string) error
	// DestroySession deletes the session and its cookie.
	DestroySession() error

	// T translates key with the request translator; without one it
	// returns key.
	T(key string, placeholders ...i18n.M) string
	// Language returns the resolved request language, or "".
	Language() string
	// FormatCurrency formats with the request locale, "%.2f" without one.
	FormatCurrency(amount float64) string
}

type requestContextKey struct{}

type requestContext struct {
	response       http.ResponseWriter
	request        *http.Request
	responseWriter *ResponseWriter
	logger         *slog.Logger
	cookieManager  *cookie.Manager

	sessionManager *SessionManager
	session        *session.Session

	sessionLoaded         bool
	sessionHookRegistered bool

	// depth counts the app middleware layers currently running. Errors
	// below the outermost layer travel up through pending.
	depth   int
	pending error
}

// contextFor returns the Context already attached to r by an outer layer,
// or creates one. Middleware and the final handler share one Context.
func contextFor(w http.ResponseWriter, r *http.Request, app *App) *requestContext {
	if c, ok := r.Context().Value(requestContextKey{}).(*requestContext); ok {
		c.request = r
		return c
	}
	c := newContext(w, r, app)
	c.request = r.WithContext(context.WithValue(r.Context(), requestContextKey{}, c))
	return c
}

func newContext(w http.ResponseWriter, r *http.Request, app *App) *requestContext {
	rw := NewResponseWriter(w, htmx.IsHTMX(r))

	return &requestContext{
		request:        r,
		response:       rw,
		responseWriter: rw,
		logger:         app.logger,
		cookieManager:  app.cookieManager,
		sessionManager: app.sessionManager,
	}
}

func (c *requestContext) Request() *http.Request        { return c.request }
func (c *requestContext) Response() http.ResponseWriter { return c.response }
func (c *requestContext) Context() context.Context      { return c.request.Context() }

func (c *requestContext) Deadline() (time.Time, bool) { return c.request.Context().Deadline() }
func (c *requestContext) Done() <-chan struct{}       { return c.request.Context().Done() }
func (c *requestContext) Err() error                  { return c.request.Context().Err() }
func (c *requestContext) Value(key any) any           { return c.request.Context().Value(key) }

func (c *requestContext) Param(name string) string {
	return chi.URLParam(c.request, name)
}

func (c *requestContext) Query(name string) string {
	return c.request.URL.Query().Get(name)
}

func (c *requestContext) Form(name string) string {
	return c.request.FormValue(name)
}

func (c *requestContext) Header(name string) string {
	return c.request.Header.Get(name)
}

func (c *requestContext) SetHeader(name, value string) {
	c.response.Header().Set(name, value)
}

func (c *requestContext) String(code int, s string) error {
	c.response.Header().Set("Content-Type", "text/plain; charset=utf-8")
	c.response.WriteHeader(code)
	_, err := io.WriteString(c.response, s)
	return err
}

func (c *requestContext) NoContent(code int) error {
	c.response.WriteHeader(code)
	return nil
}

func (c *requestContext) Redirect(code int, url string) error {
	htmx.RedirectWithStatus(c.response, c.request, url, code)
	return nil
}

func (c *requestContext) Error(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	err := NewHTTPError(code, message)
	for _, opt := range opts {
		opt(err)
	}
	return err
}

func (c *requestContext) IsHTMX() bool    { return htmx.IsHTMX(c.request) }
func (c *requestContext) IsPartial() bool { return htmx.IsPartial(c.request) }

func (c *requestContext) Render(code int, component Component, opts ...htmx.RenderOption) error {
	c.response.Header().Set("Content-Type", "text/html; charset=utf-8")

	var cfg *htmx.Config
	if len(opts) > 0 && htmx.IsHTMX(c.request) {
		cfg = htmx.NewConfig(opts...)
		cfg.ApplyHeaders(c.response)
	}

	c.response.WriteHeader(code)

	if err := component.Render(c.request.Context(), c.response); err != nil {
		return err
	}

	if cfg != nil {
		for _, oob := range cfg.OOBComponents {
			if err := oob.Render(c.request.Context(), c.response); err != nil {
				return err
			}
		}
	}

	return nil
}

func (c *requestContext) RenderPartial(code int, fullPage, partial Component, opts ...htmx.RenderOption) error {
	if htmx.IsPartial(c.request) {
		return c.Render(code, partial, opts...)
	}
	return c.Render(code, fullPage)
}

func (c *requestContext) Written() bool {
	return c.responseWriter.Written()
}

func (c *requestContext) Logger() *slog.Logger { return c.logger }

func (c *requestContext) LogDebug(msg string, attrs ...any) {
	c.logger.DebugContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogInfo(msg string, attrs ...any) {
	c.logger.InfoContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogWarn(msg string, attrs ...any) {
	c.logger.WarnContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogError(msg string, attrs ...any) {
	c.logger.ErrorContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) Set(key, value any) {
	c.request = c.request.WithContext(context.WithValue(c.request.Context(), key, value))
}

func (c *requestContext) SetContext(ctx context.Context) {
	c.request = c.request.WithContext(ctx)
}

func (c *requestContext) Get(key any) any {
	return c.request.Context().Value(key)
}

func (c *requestContext) Cookies() *cookie.Manager {
	return c.cookieManager
}

// registerSessionHook persists a dirty session right before the response
// header goes out. Save errors are logged; the response still proceeds.
func (c *requestContext) registerSessionHook() {
	if c.sessionHookRegistered || c.sessionManager == nil {
		return
	}
	c.sessionHookRegistered = true
	c.responseWriter.OnBeforeWrite(func() {
		if c.session == nil || !c.session.IsDirty() {
			return
		}
		c.session.LastActiveAt = time.Now()
		if err := c.sessionManager.Store().Update(c.Context(), c.session); err != nil {
			c.LogError("failed to save session", slog.String("error", err.Error()))
			return
		}
		c.session.ClearDirty()
	})
}

func (c *requestContext) Session() (*session.Session, error) {
	if c.sessionManager == nil {
		return nil, session.ErrNotConfigured
	}

	c.registerSessionHook()

	if c.sessionLoaded {
		return c.session, nil
	}

	sess, err := c.sessionManager.LoadSession(c.Context(), c.request)
	if err != nil {
		return nil, err
	}

	c.session = sess
	c.sessionLoaded = true
	return c.session, nil
}

func (c *requestContext) InitSession() error {
	if c.sessionManager == nil {
		return session.ErrNotConfigured
	}

	c.registerSessionHook()

	sess, err := c.sessionManager.CreateSession(c.Context())
	if err != nil {
		return err
	}

	c.session = sess
	c.sessionLoaded = true
	c.sessionManager.SaveSession(c.response, sess)
	return nil
}

func (c *requestContext) AuthenticateSession(email string) error {
	if c.sessionManager == nil {
		return session.ErrNotConfigured
	}

	sess, err := c.Session()
	if err != nil {
		c.LogWarn("failed to load session", slog.String("error", err.Error()))
	}
	if sess == nil {
		if err := c.InitSession(); err != nil {
			return err
		}
		sess = c.session
	}

	sess.SetEmail(email)

	// New token on privilege change so a planted session id is useless.
	if err := c.sessionManager.RotateToken(c.Context(), sess); err != nil {
		return err
	}

	c.sessionManager.SaveSession(c.response, sess)
	return nil
}

func (c *requestContext) DestroySession() error {
	if c.sessionManager == nil {
		return session.ErrNotConfigured
	}

	if !c.sessionLoaded {
		// Best effort: an expired or unknown token still gets its cookie cleared.
		_, _ = c.Session()
	}

	if c.session != nil {
		if err := c.sessionManager.Store().Delete(c.Context(), c.session.ID); err != nil {
			return err
		}
	}

	c.sessionManager.DeleteSession(c.response)
	c.session = nil
	c.sessionLoaded = true
	return nil
}

func (c *requestContext) translator() *i18n.Translator {
	if tr, ok := c.Get(TranslatorKey{}).(*i18n.Translator); ok {
		return tr
	}
	return nil
}

func (c *requestContext) T(key string, placeholders ...i18n.M) string {
	if tr := c.translator(); tr != nil {
		return tr.T(key, placeholders...)
	}
	return key
}

func (c *requestContext) Language() string {
	if tr := c.translator(); tr != nil {
		return tr.Language()
	}
	return ""
}

func (c *requestContext) FormatCurrency(amount float64) string {
	if tr := c.translator(); tr != nil {
		return tr.FormatCurrency(amount)
	}
	return fmt.Sprintf("$%.2f", amount)
}
