package views

import (
	"github.com/a-h/templ"

	"github.com/dmitrymomot/storefront/pkg/validator"
)

// LoginForm is the state of the login form between submissions.
type LoginForm struct {
	Email   string
	Errors  validator.ValidationErrors
	Failure string // form-level message, e.g. rejected credentials
}

// LoginPage is the full login page.
func LoginPage(form LoginForm) templ.Component {
	return component(func(h *writer) {
		h.child(Layout(tr(h.ctx, "login.title"), LoginPanel(form)))
	})
}

// LoginPanel is the form panel, swapped in place on htmx submissions.
func LoginPanel(form LoginForm) templ.Component {
	return component(func(h *writer) {
		h.raw(`<section id="login" class="panel narrow"><h1>`)
		h.t("login.title")
		h.raw(`</h1>`)
		if form.Failure != "" {
			h.raw(`<p class="error" role="alert">`)
			h.text(form.Failure)
			h.raw(`</p>`)
		}
		h.raw(`<form method="post" action="/login" hx-post="/login" hx-target="#login" hx-swap="outerHTML" novalidate>`)
		field(h, "email", "email", tr(h.ctx, "login.email"), form.Email, form.Errors, `autocomplete="email" autofocus`)
		field(h, "password", "password", tr(h.ctx, "login.password"), "", form.Errors, `autocomplete="current-password"`)
		h.raw(`<button type="submit" class="primary">`)
		h.t("login.submit")
		h.raw(`</button></form></section>`)
	})
}

// field renders a labelled input with its first validation message.
func field(h *writer, name, kind, label, value string, errs validator.ValidationErrors, extra string) {
	h.raw(`<label for="`, name, `">`)
	h.text(label)
	h.raw(`</label><input id="`, name, `" name="`, name, `" type="`, kind, `" value="`)
	h.text(value)
	h.raw(`"`)
	if extra != "" {
		h.raw(` `, extra)
	}
	if errs.Has(name) {
		h.raw(` aria-invalid="true"`)
	}
	h.raw(`>`)
	if msg := errs.First(name); msg != "" {
		h.raw(`<small class="error">`)
		h.text(msg)
		h.raw(`</small>`)
	}
}
