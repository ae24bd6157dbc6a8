// Package views renders the storefront pages as templ components.
//
// Components read the request translator from their context, so they must
// be rendered through internal.Context.Render (or with a context carrying
// internal.TranslatorKey). Without a translator, keys are printed as is.
package views

import (
	"context"
	"embed"
	"io"
	"io/fs"
	"strconv"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/storefront/internal"
	"github.com/dmitrymomot/storefront/pkg/catalog"
	"github.com/dmitrymomot/storefront/pkg/i18n"
)

// Namespace is the translation namespace of every view string.
const Namespace = "ui"

//go:embed locales
var locales embed.FS

// Locales returns the {lang}/ui.yaml catalogs for i18n.WithYAMLDir.
func Locales() fs.FS {
	sub, err := fs.Sub(locales, "locales")
	if err != nil {
		panic(err)
	}
	return sub
}

// writer accumulates the first write error so markup reads top to bottom.
type writer struct {
	ctx context.Context
	w   io.Writer
	err error
}

func component(fn func(h *writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &writer{ctx: ctx, w: w}
		fn(h)
		return h.err
	})
}

// raw writes trusted markup.
func (h *writer) raw(parts ...string) {
	for _, s := range parts {
		if h.err != nil {
			return
		}
		_, h.err = io.WriteString(h.w, s)
	}
}

// text writes escaped text; also safe inside quoted attributes.
func (h *writer) text(s string) {
	h.raw(templ.EscapeString(s))
}

// t writes an escaped translation.
func (h *writer) t(key string, m ...i18n.M) {
	h.text(tr(h.ctx, key, m...))
}

func (h *writer) url(u string) {
	h.text(string(templ.URL(u)))
}

func (h *writer) child(c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(h.ctx, h.w)
}

func translator(ctx context.Context) *i18n.Translator {
	t, _ := ctx.Value(internal.TranslatorKey{}).(*i18n.Translator)
	return t
}

func tr(ctx context.Context, key string, m ...i18n.M) string {
	if t := translator(ctx); t != nil {
		return t.T(key, m...)
	}
	return key
}

// price renders "$9.00" style amounts with the request locale.
func price(ctx context.Context, amount float64) string {
	if t := translator(ctx); t != nil {
		return t.FormatCurrency(amount)
	}
	return "$" + catalog.FormatPrice(amount)
}

func itoa(n int) string { return strconv.Itoa(n) }

func productURL(id int64) string {
	return "/productos/" + strconv.FormatInt(id, 10)
}

func adminProductURL(id int64, suffix string) string {
	return "/crud/products/" + strconv.FormatInt(id, 10) + suffix
}
