// Package storefront is a server-rendered product catalog with an admin
// grid, backed by a remote product REST API.
//
// Browsers only ever talk to this service. It signs users in against the
// remote API, keeps the bearer token in a cookie, and renders the catalog,
// product pages and the CRUD grid by calling the API on the user's behalf.
// The grid's dialog, row mutations and paging are htmx partial swaps with
// plain form and redirect fallbacks.
//
// # Wiring
//
// The binary in cmd/storefront assembles the application from this package
// and the pieces under pkg/, middlewares/, handlers/ and views/:
//
//	app := storefront.New(
//	    storefront.WithLogger(log),
//	    storefront.WithCookieManager(cookies),
//	    storefront.WithSession(store),
//	    storefront.WithMiddleware(
//	        middlewares.RequestID(),
//	        middlewares.Recover(),
//	        middlewares.I18n(translations, middlewares.WithI18nNamespace(views.Namespace)),
//	        middlewares.SessionScope(credentials, remote),
//	    ),
//	    storefront.WithHandlers(
//	        handlers.NewCatalog(remote),
//	        handlers.NewAuth(),
//	        handlers.NewAdmin(admin, gridState),
//	    ),
//	    storefront.WithErrorHandler(handlers.ErrorHandler),
//	)
//
//	if err := app.Run(":8080"); err != nil {
//	    log.Error("server stopped", "error", err)
//	}
//
// # Handlers
//
// Handlers implement [Handler] and return errors instead of writing error
// responses; the [ErrorHandler] decides how an error is shown.
//
//	func (h *Catalog) Routes(r storefront.Router) {
//	    r.GET("/productos", h.list)
//	    r.GET("/productos/{id}", h.detail)
//	}
//
// # Context
//
// [Context] wraps the request and response: form and path values, the
// server-side session, cookies, the request translator and htmx-aware
// rendering through Render and RenderPartial.
//
// # Health
//
// [WithHealthChecks] mounts /health/live and /health/ready. Readiness runs
// every registered check concurrently.
package storefront
