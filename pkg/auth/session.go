// Package auth holds the per-request authentication state of a browser.
//
// A Session is created for every request by the SessionScope middleware and
// reached through FromContext. It owns nothing itself: the token lives in the
// credential cookie, the user's email in the server-side session, and
// navigation is whatever redirect mechanism the caller plugs in. That keeps
// the state machine testable with plain fakes.
//
//	Anonymous --Login ok--> Authenticated --Logout--> Anonymous
//	Anonymous --Login failed--> Anonymous
package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// State is the authentication state of a Session.
type State int

const (
	Anonymous State = iota
	Authenticated
)

func (s State) String() string {
	switch s {
	case Authenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

const (
	// ProtectedPath is where a successful login lands.
	ProtectedPath = "/crud"
	// PublicPath is where logout lands.
	PublicPath = "/"
	// TokenTTLDays is the lifetime of a freshly written token.
	TokenTTLDays = 7
)

// Client exchanges credentials for a bearer token.
type Client interface {
	Login(ctx context.Context, email, password string) (string, error)
}

// Credentials stores the bearer token on the client side.
type Credentials interface {
	Write(token string, ttlDays int) error
	Read() (string, bool)
	Clear()
}

// Identity persists who is logged in across requests.
type Identity interface {
	SetUser(ctx context.Context, email string) error
	User() (string, bool)
	Clear(ctx context.Context) error
}

// Navigator moves the browser to another page.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(path string)

// Navigate calls f(path).
func (f NavigatorFunc) Navigate(path string) { f(path) }

// Session is the authentication context of one request.
type Session struct {
	client      Client
	credentials Credentials
	identity    Identity
	navigator   Navigator

	mu    sync.Mutex
	state State
	email string
}

// New builds a Session. The initial state is Authenticated when a token is
// present; the email is restored from identity.
func New(client Client, credentials Credentials, identity Identity, navigator Navigator) *Session {
	s := &Session{
		client:      client,
		credentials: credentials,
		identity:    identity,
		navigator:   navigator,
	}
	if _, ok := credentials.Read(); ok {
		s.state = Authenticated
		s.email, _ = identity.User()
	}
	return s
}

// Login authenticates against the remote API. On success the token is
// stored for TokenTTLDays, the email is remembered and the browser is sent
// to ProtectedPath. On failure nothing is written and the state is unchanged;
// the returned error matches the client's authentication error.
func (s *Session) Login(ctx context.Context, email, password string) error {
	token, err := s.client.Login(ctx, email, password)
	if err != nil {
		return err
	}

	if err := s.credentials.Write(token, TokenTTLDays); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	if err := s.identity.SetUser(ctx, email); err != nil {
		s.credentials.Clear()
		return fmt.Errorf("store identity: %w", err)
	}

	s.mu.Lock()
	s.state = Authenticated
	s.email = email
	s.mu.Unlock()

	s.navigator.Navigate(ProtectedPath)
	return nil
}

// Logout forgets the token and the user and sends the browser to PublicPath.
// It works from any state and can be repeated. If the identity cannot be
// cleared the session still ends Anonymous, but the browser is not moved and
// the error is returned for the caller to render.
func (s *Session) Logout(ctx context.Context) error {
	s.credentials.Clear()
	err := s.identity.Clear(ctx)

	s.mu.Lock()
	s.state = Anonymous
	s.email = ""
	s.mu.Unlock()

	if err != nil {
		return fmt.Errorf("clear identity: %w", err)
	}
	s.navigator.Navigate(PublicPath)
	return nil
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// IsAuthenticated reports whether State is Authenticated.
func (s *Session) IsAuthenticated() bool {
	return s.State() == Authenticated
}

// UserEmail returns the logged-in email, empty when unknown.
func (s *Session) UserEmail() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.email
}

// Token returns the stored bearer token, empty when absent.
func (s *Session) Token() string {
	token, _ := s.credentials.Read()
	return token
}

type ctxKey struct{}

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// ErrNoSession is the panic value of FromContext outside a session scope.
var ErrNoSession = errors.New("auth: no session in context; route is not wrapped by the session scope middleware")

// Lookup returns the Session carried by ctx, if any.
func Lookup(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	return s, ok && s != nil
}

// FromContext returns the Session carried by ctx.
// It panics when called outside a session scope, which is a wiring bug.
func FromContext(ctx context.Context) *Session {
	s, ok := Lookup(ctx)
	if !ok {
		panic(ErrNoSession)
	}
	return s
}
