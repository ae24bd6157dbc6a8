// Package credential persists the bearer token issued by the remote API in a
// browser cookie.
//
// The Store holds process-wide settings. Bind attaches it to one request and
// returns a Jar, which is what request handlers read and write:
//
//	jar := store.Bind(w, r)
//	if err := jar.Write(token, credential.DefaultTTLDays); err != nil {
//		return err
//	}
//	token, ok := jar.Read()
//	jar.Clear()
//
// Tokens are opaque. Nothing here inspects their shape or expiry.
package credential

import (
	"net/http"

	"github.com/dmitrymomot/storefront/pkg/cookie"
)

const (
	// DefaultCookieName is the cookie that carries the token.
	DefaultCookieName = "token"
	// DefaultTTLDays is how long a written token lives in the browser.
	DefaultTTLDays = 7

	secondsPerDay = 24 * 60 * 60
)

// Store writes tokens through a cookie.Manager.
// When the manager has a secret the value is encrypted.
type Store struct {
	cookies *cookie.Manager
	name    string
}

// Option configures the Store.
type Option func(*Store)

// WithCookieName overrides the cookie name.
func WithCookieName(name string) Option {
	return func(s *Store) {
		if name != "" {
			s.name = name
		}
	}
}

// New creates a token store on top of the given cookie manager.
func New(cookies *cookie.Manager, opts ...Option) *Store {
	s := &Store{
		cookies: cookies,
		name:    DefaultCookieName,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CookieName returns the name of the token cookie.
func (s *Store) CookieName() string {
	return s.name
}

// Bind returns the token jar for a single request.
func (s *Store) Bind(w http.ResponseWriter, r *http.Request) *Jar {
	return &Jar{store: s, w: w, r: r}
}

// Jar reads and writes the token of one request/response pair.
// A token written or cleared through the jar is visible to later Read calls
// in the same request, before the browser has echoed the cookie back.
type Jar struct {
	store   *Store
	w       http.ResponseWriter
	r       *http.Request
	pending *string
}

// Write stores the token for ttlDays days, replacing any previous one.
// A non-positive ttlDays falls back to DefaultTTLDays.
func (j *Jar) Write(token string, ttlDays int) error {
	if ttlDays <= 0 {
		ttlDays = DefaultTTLDays
	}
	maxAge := ttlDays * secondsPerDay

	if j.store.cookies.HasSecret() {
		if err := j.store.cookies.SetEncrypted(j.w, j.store.name, token, maxAge); err != nil {
			return err
		}
	} else {
		j.store.cookies.Set(j.w, j.store.name, token, maxAge)
	}

	j.pending = &token
	return nil
}

// Read returns the current token. It never fails: a missing, empty or
// undecryptable cookie reads as absent.
func (j *Jar) Read() (string, bool) {
	if j.pending != nil {
		return *j.pending, *j.pending != ""
	}

	var (
		token string
		err   error
	)
	if j.store.cookies.HasSecret() {
		token, err = j.store.cookies.GetEncrypted(j.r, j.store.name)
	} else {
		token, err = j.store.cookies.Get(j.r, j.store.name)
	}
	if err != nil || token == "" {
		return "", false
	}
	return token, true
}

// Clear removes the token. Clearing an absent token is a no-op for the caller.
func (j *Jar) Clear() {
	j.store.cookies.Delete(j.w, j.store.name)
	empty := ""
	j.pending = &empty
}
