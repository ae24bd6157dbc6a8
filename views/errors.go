package views

import "github.com/a-h/templ"

// ErrorPage is the hard error page.
func ErrorPage(code int, title, message string) templ.Component {
	return component(func(h *writer) {
		h.child(Layout(title, ErrorPanel(code, title, message)))
	})
}

// ErrorPanel is the error message without the layout, for htmx swaps.
func ErrorPanel(code int, title, message string) templ.Component {
	return component(func(h *writer) {
		h.raw(`<section class="panel center error-page"><p class="code">`, itoa(code), `</p><h1>`)
		h.text(title)
		h.raw(`</h1><p>`)
		h.text(message)
		h.raw(`</p><a class="button" href="/productos">`)
		h.t("error.home")
		h.raw(`</a></section>`)
	})
}
