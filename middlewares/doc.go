// Package middlewares provides the request middleware of the storefront.
//
// # Request ID
//
// RequestID reuses an upstream X-Request-ID or generates a UUID, stores it
// in the context and echoes it in the response. Pair it with
// RequestIDExtractor so every log line carries request_id:
//
//	log, flush := logger.New(cfg.Log, middlewares.RequestIDExtractor())
//
// # Recover and Timeout
//
// Recover turns panics into *PanicError; Timeout puts a deadline on the
// request context and reports *TimeoutError when it fires. Both are handled
// by the app's error handler.
//
// # I18n
//
// I18n resolves the language from the lang query parameter, the lang cookie
// or Accept-Language, and installs a translator used by Context.T.
//
// # Session scope
//
// SessionScope builds the per-request *auth.Session from the token cookie,
// the server-side session and an htmx aware redirect, and attaches it to
// the request context where auth.FromContext finds it.
//
// Order:
//
//	storefront.WithMiddleware(
//	    middlewares.RequestID(),
//	    middlewares.Recover(),
//	    middlewares.Timeout(30*time.Second),
//	    middlewares.I18n(translations),
//	    middlewares.SessionScope(credentials, authClient),
//	)
package middlewares
