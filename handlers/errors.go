package handlers

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/storefront/internal"
	"github.com/dmitrymomot/storefront/middlewares"
	"github.com/dmitrymomot/storefront/pkg/catalogapi"
	"github.com/dmitrymomot/storefront/pkg/htmx"
	"github.com/dmitrymomot/storefront/views"
)

// ErrorHandler renders the hard error page for errors handlers return.
// htmx requests get the panel swapped into the page content.
func ErrorHandler(c internal.Context, err error) error {
	code, title, message := classify(c, err)

	attrs := []any{"status", code, "path", c.Request().URL.Path, "error", err}
	if code >= http.StatusInternalServerError {
		c.LogError("request failed", attrs...)
	} else {
		c.LogInfo("request rejected", attrs...)
	}

	if c.IsHTMX() {
		return c.Render(code, views.ErrorPanel(code, title, message),
			htmx.WithRetarget("#content"),
			htmx.WithReswap(htmx.SwapInnerHTML),
		)
	}
	return c.Render(code, views.ErrorPage(code, title, message))
}

// NotFound renders the 404 page for unknown routes.
func NotFound(c internal.Context) error {
	return ErrorHandler(c, internal.ErrNotFound(c.T("error.page_not_found"), internal.WithTitle(c.T("error.not_found_title"))))
}

func classify(c internal.Context, err error) (code int, title, message string) {
	// A passed deadline wins over whatever the handler returned.
	if _, ok := middlewares.AsTimeoutError(err); ok {
		return http.StatusGatewayTimeout, c.T("error.server_title"), c.T("error.timeout")
	}

	if he, ok := internal.AsHTTPError(err); ok {
		title = he.Title
		if title == "" {
			title = http.StatusText(he.Code)
		}
		return he.Code, title, he.Message
	}

	switch {
	case errors.Is(err, catalogapi.ErrNotFound):
		return http.StatusNotFound, c.T("error.not_found_title"), c.T("error.not_found")
	case errors.Is(err, catalogapi.ErrAuthentication), errors.Is(err, catalogapi.ErrFetch):
		return http.StatusBadGateway, c.T("error.server_title"), c.T("error.upstream")
	}

	return http.StatusInternalServerError, c.T("error.server_title"), c.T("error.server")
}
