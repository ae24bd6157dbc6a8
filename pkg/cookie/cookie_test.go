package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/cookie"
)

const testSecret = "this-is-a-32-byte-or-longer-key!"

func roundTrip(t *testing.T, w *httptest.ResponseRecorder) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestDefaults(t *testing.T) {
	t.Parallel()

	m := cookie.New()
	w := httptest.NewRecorder()
	m.Set(w, "token", "abc", 3600)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, "/", c.Path)
	assert.True(t, c.Secure)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.Equal(t, 3600, c.MaxAge)
}

func TestPlainCookies(t *testing.T) {
	t.Parallel()

	m := cookie.New(cookie.WithSecure(false))

	t.Run("missing cookie", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		_, err := m.Get(r, "missing")
		assert.ErrorIs(t, err, cookie.ErrNotFound)
	})

	t.Run("set and get", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		m.Set(w, "name", "value", 60)

		val, err := m.Get(roundTrip(t, w), "name")
		require.NoError(t, err)
		assert.Equal(t, "value", val)
	})

	t.Run("delete expires cookie", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		m.Delete(w, "name")

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "", cookies[0].Value)
		assert.Less(t, cookies[0].MaxAge, 0)
	})
}

func TestEncryptedCookies(t *testing.T) {
	t.Parallel()

	t.Run("requires secret", func(t *testing.T) {
		t.Parallel()
		m := cookie.New(cookie.WithSecret("short"))
		assert.False(t, m.HasSecret())
		assert.ErrorIs(t, m.SetEncrypted(httptest.NewRecorder(), "a", "b", 0), cookie.ErrNoSecret)
	})

	t.Run("round trip hides value", func(t *testing.T) {
		t.Parallel()
		m := cookie.New(cookie.WithSecret(testSecret))
		w := httptest.NewRecorder()
		require.NoError(t, m.SetEncrypted(w, "token", "secret-token", 60))

		raw := w.Result().Cookies()[0].Value
		assert.NotContains(t, raw, "secret-token")

		val, err := m.GetEncrypted(roundTrip(t, w), "token")
		require.NoError(t, err)
		assert.Equal(t, "secret-token", val)
	})

	t.Run("tampered value fails", func(t *testing.T) {
		t.Parallel()
		m := cookie.New(cookie.WithSecret(testSecret))
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "token", Value: "bm90LWVuY3J5cHRlZA"})

		_, err := m.GetEncrypted(r, "token")
		assert.ErrorIs(t, err, cookie.ErrDecrypt)
	})

	t.Run("different secret fails", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		require.NoError(t, cookie.New(cookie.WithSecret(testSecret)).SetEncrypted(w, "token", "v", 60))

		other := cookie.New(cookie.WithSecret("another-32-byte-or-longer-secret-key"))
		_, err := other.GetEncrypted(roundTrip(t, w), "token")
		assert.ErrorIs(t, err, cookie.ErrDecrypt)
	})
}

func TestFlash(t *testing.T) {
	t.Parallel()

	type notice struct {
		Message string `json:"message"`
	}

	m := cookie.New(cookie.WithSecret(testSecret))
	w := httptest.NewRecorder()
	require.NoError(t, m.SetFlash(w, "notice", notice{Message: "Producto guardado"}))

	r := roundTrip(t, w)
	w2 := httptest.NewRecorder()
	var got notice
	require.NoError(t, m.Flash(w2, r, "notice", &got))
	assert.Equal(t, "Producto guardado", got.Message)

	deleted := w2.Result().Cookies()
	require.Len(t, deleted, 1)
	assert.Equal(t, "flash_notice", deleted[0].Name)
	assert.Less(t, deleted[0].MaxAge, 0)
}
