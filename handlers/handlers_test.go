package handlers_test

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/handlers"
	"github.com/dmitrymomot/storefront/internal"
	"github.com/dmitrymomot/storefront/middlewares"
	"github.com/dmitrymomot/storefront/pkg/cache"
	"github.com/dmitrymomot/storefront/pkg/catalog"
	"github.com/dmitrymomot/storefront/pkg/catalogapi"
	"github.com/dmitrymomot/storefront/pkg/cookie"
	"github.com/dmitrymomot/storefront/pkg/credential"
	"github.com/dmitrymomot/storefront/pkg/i18n"
	"github.com/dmitrymomot/storefront/pkg/session"
	"github.com/dmitrymomot/storefront/views"
)

// browser drives a storefront server with a cookie jar and no automatic
// redirects.
type browser struct {
	t      *testing.T
	base   string
	client *http.Client
}

func newStorefront(t *testing.T, apiURL string, opts ...handlers.AdminOption) *browser {
	t.Helper()

	svc, err := i18n.New(
		i18n.WithDefaultLanguage("es"),
		i18n.WithLanguages("es", "en"),
		i18n.WithYAMLDir(views.Locales()),
	)
	require.NoError(t, err)

	cookies := cookie.New(cookie.WithSecure(false), cookie.WithSecret(strings.Repeat("s", 32)))
	api := catalogapi.New(apiURL)

	mem := cache.NewMemory[handlers.GridState](cache.WithCleanupInterval(0))
	t.Cleanup(func() { _ = mem.Close() })
	grid := handlers.NewAdmin(api, cache.NewLoader[handlers.GridState](mem, time.Minute), opts...)

	app := internal.New(
		internal.WithCookieManager(cookies),
		internal.WithSession(session.NewMemoryStore(), internal.WithSessionSecure(false)),
		internal.WithErrorHandler(handlers.ErrorHandler),
		internal.WithNotFoundHandler(handlers.NotFound),
		internal.WithMiddleware(
			middlewares.Recover(),
			middlewares.I18n(svc, middlewares.WithI18nNamespace(views.Namespace)),
			middlewares.SessionScope(credential.New(cookies), api, middlewares.OnIdentityCleared(grid.ForgetSession)),
		),
		internal.WithHandlers(handlers.NewCatalog(api), handlers.NewAuth(), grid),
	)

	srv := httptest.NewServer(app)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &browser{
		t:    t,
		base: srv.URL,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

type response struct {
	*http.Response
	body string
}

func (b *browser) do(method, path string, form url.Values, htmx bool) response {
	b.t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequest(method, b.base+path, body)
	require.NoError(b.t, err)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if htmx {
		req.Header.Set("HX-Request", "true")
	}

	resp, err := b.client.Do(req)
	require.NoError(b.t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(b.t, err)
	return response{Response: resp, body: string(data)}
}

func (b *browser) get(path string) response { return b.do(http.MethodGet, path, nil, false) }

func (b *browser) hx(method, path string, form url.Values) response {
	return b.do(method, path, form, true)
}

func (b *browser) login() {
	b.t.Helper()
	resp := b.do(http.MethodPost, "/login", url.Values{"email": {"ana@example.com"}, "password": {testPassword}}, false)
	require.Equal(b.t, http.StatusSeeOther, resp.StatusCode)
}

func (b *browser) cookie(name string) *http.Cookie {
	u, _ := url.Parse(b.base)
	for _, c := range b.client.Jar.Cookies(u) {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func pid(v int64) *int64 { return &v }

func seed() []catalog.Product {
	return []catalog.Product{
		{ID: pid(1), Name: "Taza", Price: 9, Description: "Taza de **cerámica** esmaltada."},
		{ID: pid(2), Name: "Plato", Price: 12.5, Description: "Plato llano"},
		{ID: pid(3), Name: "Vaso", Price: 4.25, Description: "Vaso"},
	}
}
