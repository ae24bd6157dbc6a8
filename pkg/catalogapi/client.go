// Package catalogapi talks to the remote product REST API.
//
// One Client serves one base URL. The storefront runs two of them: the
// public catalog reads from API_URL while the admin grid writes to
// ADMIN_API_URL. They are configured separately on purpose and must not be
// merged.
//
// Every call takes a context and is aborted when it is cancelled, so a
// browser that navigates away tears down the outgoing request too. Bearer
// tokens are attached by an [oauth2.Transport] with a static token source.
// Nothing is retried.
package catalogapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// Client is an HTTP client bound to one API base URL.
type Client struct {
	httpClient *http.Client
	baseURL    string
	timeout    time.Duration
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client. Its transport is wrapped
// when a bearer token has to be attached.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.httpClient = c
		}
	}
}

// WithTimeout bounds every call. Zero means no timeout besides the caller's context.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		cl.timeout = d
	}
}

// New creates a Client for baseURL, e.g. "http://localhost:3000/api".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// client returns an HTTP client that attaches token as a bearer credential.
func (c *Client) client(ctx context.Context, token string) *http.Client {
	if token == "" {
		return c.httpClient
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	return oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: token,
		TokenType:   "Bearer",
	}))
}

// do sends a JSON request and returns the response for a 2xx status.
// Failures are returned unclassified: transport errors as is, bad statuses
// as *StatusError. The caller must close the body.
func (c *Client) do(ctx context.Context, method, path, token string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client(ctx, token).Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		drain(resp)
		return nil, &StatusError{Method: method, Path: path, Code: resp.StatusCode}
	}

	return resp, nil
}

// withTimeout applies the configured per-call timeout, if any.
func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout > 0 {
		return context.WithTimeout(ctx, c.timeout)
	}
	return context.WithCancel(ctx)
}

func decode[T any](resp *http.Response) (T, error) {
	defer drain(resp)

	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		return v, fmt.Errorf("decode response: %w", err)
	}
	return v, nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	_ = resp.Body.Close()
}

// wrap classifies err from do under the package sentinels.
func wrap(err error, authenticated bool) error {
	var se *StatusError
	if errors.As(err, &se) {
		return classify(se, authenticated)
	}
	return errors.Join(ErrFetch, err)
}
