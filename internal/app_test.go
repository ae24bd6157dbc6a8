package internal_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/internal"
	"github.com/dmitrymomot/storefront/pkg/htmx"
	"github.com/dmitrymomot/storefront/pkg/session"
)

type routes func(r internal.Router)

func (f routes) Routes(r internal.Router) { f(r) }

type text string

func (t text) Render(_ context.Context, w io.Writer) error {
	_, err := io.WriteString(w, string(t))
	return err
}

type markerKey struct{}

func TestApp_MiddlewareSharesContext(t *testing.T) {
	t.Parallel()

	var seen []string
	mw := func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			c.Set(markerKey{}, "from-middleware")
			return next(c)
		}
	}

	app := internal.New(
		internal.WithMiddleware(mw),
		internal.WithHandlers(routes(func(r internal.Router) {
			r.GET("/items/{id}", func(c internal.Context) error {
				seen = append(seen, internal.ContextValue[string](c, markerKey{}), c.Param("id"))
				return c.String(http.StatusOK, "ok")
			})
		})),
	)

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/42", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"from-middleware", "42"}, seen)
}

func TestApp_ErrorHandler(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	var handled error

	app := internal.New(
		internal.WithErrorHandler(func(c internal.Context, err error) error {
			handled = err
			code := http.StatusInternalServerError
			if he, ok := internal.AsHTTPError(err); ok {
				code = he.Code
			}
			return c.String(code, "handled")
		}),
		internal.WithHandlers(routes(func(r internal.Router) {
			r.GET("/fail", func(internal.Context) error { return boom })
			r.GET("/missing", func(c internal.Context) error {
				return c.Error(http.StatusNotFound, "not here", internal.WithError(boom))
			})
		})),
	)

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fail", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	require.ErrorIs(t, handled, boom)

	rec = httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.ErrorIs(t, handled, boom, "HTTPError unwraps to its cause")
}

func TestApp_MiddlewareSeesHandlerError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	var (
		seenByInner error
		handled     []error
	)

	outer := func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			if err := next(c); err != nil {
				return internal.ErrBadGateway("wrapped", internal.WithError(err))
			}
			return nil
		}
	}
	inner := func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			ctx, cancel := context.WithCancel(c.Context())
			defer cancel()
			c.SetContext(ctx)

			seenByInner = next(c)
			return seenByInner
		}
	}

	app := internal.New(
		internal.WithMiddleware(outer, inner),
		internal.WithErrorHandler(func(c internal.Context, err error) error {
			handled = append(handled, err)
			if c.Err() != nil {
				return c.Err()
			}
			he, _ := internal.AsHTTPError(err)
			return c.String(he.Code, he.Message)
		}),
		internal.WithHandlers(routes(func(r internal.Router) {
			r.GET("/fail", func(internal.Context) error { return boom })
			r.GET("/ok", func(c internal.Context) error { return c.String(http.StatusOK, "ok") })
		})),
	)

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fail", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "wrapped", rec.Body.String())
	require.ErrorIs(t, seenByInner, boom)
	require.Len(t, handled, 1)
	require.ErrorIs(t, handled[0], boom)

	handled = nil
	rec = httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, seenByInner)
	assert.Empty(t, handled)
}

func TestApp_NotFoundHandler(t *testing.T) {
	t.Parallel()

	app := internal.New(internal.WithNotFoundHandler(func(c internal.Context) error {
		return c.String(http.StatusNotFound, "nope")
	}))

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "nope", rec.Body.String())
}

func TestContext_RenderPartial(t *testing.T) {
	t.Parallel()

	app := internal.New(internal.WithHandlers(routes(func(r internal.Router) {
		r.GET("/crud", func(c internal.Context) error {
			return c.RenderPartial(http.StatusUnauthorized, text("<html>full</html>"), text("<div>part</div>"),
				htmx.WithTrigger("loaded"),
				htmx.WithOOB(text("<div id=\"flash\" hx-swap-oob=\"true\"></div>")),
			)
		})
	})))

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/crud", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "<html>full</html>", rec.Body.String())
	assert.Empty(t, rec.Header().Get("HX-Trigger"))

	req := httptest.NewRequest(http.MethodGet, "/crud", nil)
	req.Header.Set("HX-Request", "true")
	rec = httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "<div>part</div>"))
	assert.Contains(t, rec.Body.String(), `id="flash"`)
	assert.Equal(t, "loaded", rec.Header().Get("HX-Trigger"))
}

func TestContext_SessionLifecycle(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore()
	app := internal.New(
		internal.WithSession(store, internal.WithSessionSecure(false)),
		internal.WithHandlers(routes(func(r internal.Router) {
			r.POST("/login", func(c internal.Context) error {
				if err := c.AuthenticateSession("ana@example.com"); err != nil {
					return err
				}
				return c.NoContent(http.StatusNoContent)
			})
			r.GET("/me", func(c internal.Context) error {
				sess, err := c.Session()
				if err != nil {
					return err
				}
				if sess == nil {
					return c.String(http.StatusOK, "anonymous")
				}
				sess.SetValue("visits", 1)
				return c.String(http.StatusOK, sess.Email)
			})
			r.POST("/logout", func(c internal.Context) error {
				if err := c.DestroySession(); err != nil {
					return err
				}
				return c.NoContent(http.StatusNoContent)
			})
		})),
	)

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	sid := cookies[len(cookies)-1]
	assert.Equal(t, 1, store.Len())

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(sid)
	rec = httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	assert.Equal(t, "ana@example.com", rec.Body.String())

	stored, err := store.Get(context.Background(), sid.Value)
	require.NoError(t, err)
	visits, err := session.Value[int](stored, "visits")
	require.NoError(t, err)
	assert.Equal(t, 1, visits, "dirty session is flushed before the response")

	req = httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(sid)
	rec = httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	assert.Equal(t, 0, store.Len())

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(sid)
	rec = httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	assert.Equal(t, "anonymous", rec.Body.String())
}

func TestContext_SessionNotConfigured(t *testing.T) {
	t.Parallel()

	var err error
	app := internal.New(internal.WithHandlers(routes(func(r internal.Router) {
		r.GET("/", func(c internal.Context) error {
			_, err = c.Session()
			return c.NoContent(http.StatusOK)
		})
	})))

	app.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.ErrorIs(t, err, session.ErrNotConfigured)
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()

	app := internal.New(internal.WithHealthChecks(
		internal.WithReadinessCheck("api", func(context.Context) error { return errors.New("down") }),
	))

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
