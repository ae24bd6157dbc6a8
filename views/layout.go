package views

import (
	"github.com/a-h/templ"

	"github.com/dmitrymomot/storefront/pkg/auth"
)

// HTMXScript is the htmx build the layout loads.
const HTMXScript = "https://unpkg.com/htmx.org@2.0.4"

// Layout wraps body in the HTML document with the navigation bar.
func Layout(title string, body templ.Component) templ.Component {
	return component(func(h *writer) {
		h.raw(`<!DOCTYPE html><html lang="`)
		h.text(language(h))
		h.raw(`"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		h.text(title)
		h.raw(` | `)
		h.t("app.name")
		h.raw(`</title><link rel="stylesheet" href="/static/app.css"><script src="`, HTMXScript, `"></script></head><body hx-boost="true">`)
		h.child(nav())
		h.raw(`<main id="content" class="container">`)
		h.child(body)
		h.raw(`</main><div id="dialog"></div></body></html>`)
	})
}

func language(h *writer) string {
	if t := translator(h.ctx); t != nil {
		return t.Language()
	}
	return "es"
}

func nav() templ.Component {
	return component(func(h *writer) {
		h.raw(`<nav class="navbar"><a class="brand" href="/productos">`)
		h.t("app.name")
		h.raw(`</a><a href="/productos">`)
		h.t("nav.catalog")
		h.raw(`</a><a href="/crud">`)
		h.t("nav.admin")
		h.raw(`</a>`)

		s, ok := auth.Lookup(h.ctx)
		if ok && s.IsAuthenticated() {
			h.raw(`<span class="user">`)
			h.text(s.UserEmail())
			h.raw(`</span><form method="post" action="/logout" class="inline"><button type="submit">`)
			h.t("nav.logout")
			h.raw(`</button></form>`)
		} else {
			h.raw(`<a href="/login">`)
			h.t("nav.login")
			h.raw(`</a>`)
		}
		h.raw(`</nav>`)
	})
}
