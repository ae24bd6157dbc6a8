package middlewares_test

import (
	"net/http"
	"net/http/httptest"

	"github.com/dmitrymomot/storefront/internal"
)

type routes func(r internal.Router)

func (f routes) Routes(r internal.Router) { f(r) }

func serve(app *internal.App, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

func statusErrorHandler(c internal.Context, err error) error {
	code := http.StatusInternalServerError
	if he, ok := internal.AsHTTPError(err); ok {
		code = he.Code
	}
	return c.String(code, err.Error())
}
