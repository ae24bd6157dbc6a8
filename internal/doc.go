// Package internal is the storefront's HTTP runtime.
//
// It wraps chi with an error-returning handler signature: handlers and
// middleware receive a Context and return an error, and a single error
// handler turns those errors into pages. The root storefront package
// re-exports the public surface; application code should import that.
//
// Context embeds context.Context, so it can be passed straight to the
// catalog API client. It carries the cookie manager, the lazily loaded
// server-side session, the request translator, and htmx-aware render and
// redirect helpers.
//
// Sessions are flushed to the store by a hook that runs right before the
// response header is written, so handlers never save them explicitly.
package internal
