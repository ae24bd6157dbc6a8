// Package htmx reads htmx request headers and writes htmx response headers.
//
// The storefront serves every page both as a full document and as an htmx
// fragment. IsHTMX decides which; Redirect and the render options let a
// handler steer the client (navigate, retarget a swap, fire an event) with
// a plain-HTTP fallback for requests that did not come from htmx.
package htmx

import "net/http"

// Request headers.
const (
	HeaderHXRequest    = "HX-Request"
	HeaderHXBoosted    = "HX-Boosted"
	HeaderHXTarget     = "HX-Target"
	HeaderHXCurrentURL = "HX-Current-URL"
)

// Response headers.
const (
	HeaderHXRedirect = "HX-Redirect"
	HeaderHXPushURL  = "HX-Push-Url"
	HeaderHXReswap   = "HX-Reswap"
	HeaderHXRetarget = "HX-Retarget"
	HeaderHXTrigger  = "HX-Trigger"
)

// IsHTMX reports whether the request was issued by htmx.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get(HeaderHXRequest) == "true"
}

// IsBoosted reports whether the request came from an hx-boost link or form.
// Boosted requests expect a full page.
func IsBoosted(r *http.Request) bool {
	return r.Header.Get(HeaderHXBoosted) == "true"
}

// IsPartial reports whether the response should be a fragment.
func IsPartial(r *http.Request) bool {
	return IsHTMX(r) && !IsBoosted(r)
}

// Target returns the id of the element htmx will swap into, if any.
func Target(r *http.Request) string {
	return r.Header.Get(HeaderHXTarget)
}

// SwapStrategy is an hx-swap value.
type SwapStrategy string

const (
	SwapInnerHTML SwapStrategy = "innerHTML"
	SwapOuterHTML SwapStrategy = "outerHTML"
	SwapBeforeEnd SwapStrategy = "beforeend"
	SwapDelete    SwapStrategy = "delete"
	SwapNone      SwapStrategy = "none"
)

// Redirect sends the client to url: HX-Redirect for htmx requests (htmx
// only acts on it with a 2xx), a 303 See Other otherwise so form posts
// turn into GETs.
func Redirect(w http.ResponseWriter, r *http.Request, url string) {
	RedirectWithStatus(w, r, url, http.StatusSeeOther)
}

// RedirectWithStatus is Redirect with an explicit non-htmx status code.
func RedirectWithStatus(w http.ResponseWriter, r *http.Request, url string, status int) {
	if IsHTMX(r) {
		w.Header().Set(HeaderHXRedirect, url)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, url, status)
}
