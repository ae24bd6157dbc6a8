package i18n_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/i18n"
)

func newTestI18n(t *testing.T, opts ...i18n.Option) *i18n.I18n {
	t.Helper()

	base := []i18n.Option{
		i18n.WithDefaultLanguage("es"),
		i18n.WithLanguages("es", "en"),
		i18n.WithTranslations("es", "ui", map[string]any{
			"login": map[string]any{
				"title": "Iniciar sesión",
				"hello": "Hola, {{email}}",
			},
			"only_es": "solo español",
		}),
		i18n.WithTranslations("en", "ui", map[string]any{
			"login": map[string]any{
				"title": "Sign in",
			},
		}),
	}
	i, err := i18n.New(append(base, opts...)...)
	require.NoError(t, err)
	return i
}

func TestT(t *testing.T) {
	t.Parallel()

	i := newTestI18n(t)

	tests := []struct {
		name string
		lang string
		key  string
		want string
	}{
		{name: "exact language", lang: "en", key: "login.title", want: "Sign in"},
		{name: "regional falls back to base", lang: "en-GB", key: "login.title", want: "Sign in"},
		{name: "missing key falls back to default", lang: "en", key: "only_es", want: "solo español"},
		{name: "unknown language uses default", lang: "fr", key: "login.title", want: "Iniciar sesión"},
		{name: "unknown key returns key", lang: "es", key: "nope.key", want: "nope.key"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, i.T(tt.lang, "ui", tt.key))
		})
	}

	t.Run("placeholders", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Hola, ana@example.com", i.T("es", "ui", "login.hello", i18n.M{"email": "ana@example.com"}))
	})
}

func TestMissingKeyHandler(t *testing.T) {
	t.Parallel()

	var missing []string
	i := newTestI18n(t, i18n.WithMissingKeyHandler(func(lang, namespace, key string) {
		missing = append(missing, lang+":"+namespace+":"+key)
	}))

	i.T("en", "ui", "ghost")
	assert.Equal(t, []string{"en:ui:ghost"}, missing)
	assert.False(t, i.Has("en", "ui", "ghost"))
	assert.True(t, i.Has("en", "ui", "only_es"))
}

func TestMatch(t *testing.T) {
	t.Parallel()

	i := newTestI18n(t)

	tests := map[string]string{
		"":                          "es",
		"en-US,en;q=0.9":            "en",
		"fr-FR,fr;q=0.9":            "es",
		"es-MX,es;q=0.9,en;q=0.5":   "es",
		"de;q=0.9,en;q=0.8":         "en",
		"this is not a header ;;;=": "es",
	}
	for header, want := range tests {
		assert.Equal(t, want, i.Match(header), "header %q", header)
	}
}

func TestLanguages(t *testing.T) {
	t.Parallel()

	i, err := i18n.New(i18n.WithLanguages("en"), i18n.WithDefaultLanguage("es"))
	require.NoError(t, err)
	assert.Equal(t, []string{"es", "en"}, i.Languages())
	assert.True(t, i.Supports("en"))
	assert.False(t, i.Supports("fr"))

	_, err = i18n.New(i18n.WithDefaultLanguage(""))
	assert.ErrorIs(t, err, i18n.ErrEmptyLanguage)
}

func TestWithYAMLDir(t *testing.T) {
	t.Parallel()

	t.Run("loads namespaces from language directories", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{
			"es/ui.yaml":     {Data: []byte("catalog:\n  title: Nuestros Productos\n")},
			"en/ui.yml":      {Data: []byte("catalog:\n  title: Our Products\n")},
			"es/errors.yaml": {Data: []byte("not_found: No encontrado\n")},
			"README.md":      {Data: []byte("ignored")},
		}
		i, err := i18n.New(i18n.WithLanguages("en"), i18n.WithYAMLDir(fsys))
		require.NoError(t, err)

		assert.Equal(t, "Nuestros Productos", i.T("es", "ui", "catalog.title"))
		assert.Equal(t, "Our Products", i.T("en", "ui", "catalog.title"))
		assert.Equal(t, "No encontrado", i.T("en", "errors", "not_found"))
	})

	t.Run("rejects files outside language directories", func(t *testing.T) {
		t.Parallel()

		_, err := i18n.New(i18n.WithYAMLDir(fstest.MapFS{"ui.yaml": {Data: []byte("a: b\n")}}))
		assert.ErrorIs(t, err, i18n.ErrInvalidFile)
	})

	t.Run("rejects invalid yaml", func(t *testing.T) {
		t.Parallel()

		_, err := i18n.New(i18n.WithYAMLDir(fstest.MapFS{"es/ui.yaml": {Data: []byte("a: [b\n")}}))
		assert.ErrorIs(t, err, i18n.ErrInvalidFile)
	})
}

func TestTranslator(t *testing.T) {
	t.Parallel()

	i := newTestI18n(t)
	tr := i18n.NewTranslator(i, "", "ui", nil)

	assert.Equal(t, "es", tr.Language())
	assert.Equal(t, "ui", tr.Namespace())
	assert.Equal(t, "Iniciar sesión", tr.T("login.title"))
	assert.Equal(t, "Hola, x", tr.TranslateMessage("login.hello", map[string]any{"email": "x"}))
	assert.Equal(t, "$9.00", tr.FormatCurrency(9))
	assert.True(t, tr.Has("login.title"))
	assert.False(t, tr.Has("login.missing"))

	assert.Panics(t, func() { i18n.NewTranslator(nil, "es", "ui", nil) })
}

func TestFormatCurrency(t *testing.T) {
	t.Parallel()

	plain := i18n.NewLocaleFormat()
	assert.Equal(t, "$9.00", plain.FormatCurrency(9))
	assert.Equal(t, "$1234.50", plain.FormatCurrency(1234.5))
	assert.Equal(t, "-$0.99", plain.FormatCurrency(-0.99))
	assert.Equal(t, "$0.10", plain.FormatCurrency(0.1))

	grouped := i18n.NewLocaleFormat(
		i18n.WithThousandSeparator("."),
		i18n.WithDecimalSeparator(","),
		i18n.WithCurrencySymbol("€"),
		i18n.WithCurrencyAfter(),
	)
	assert.Equal(t, "1.234.567,89 €", grouped.FormatCurrency(1234567.891))
	assert.Equal(t, "12,00 €", grouped.FormatCurrency(12))
}
