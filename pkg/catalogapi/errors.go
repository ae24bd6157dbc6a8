package catalogapi

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrAuthentication is returned when login fails for any reason, and when
	// the API answers 401 to a token-authenticated call.
	ErrAuthentication = errors.New("catalogapi: authentication failed")

	// ErrFetch is returned for every other failed call: transport errors,
	// unexpected statuses and undecodable bodies.
	ErrFetch = errors.New("catalogapi: request failed")

	// ErrNotFound is returned when a product does not exist. It always
	// travels together with ErrFetch.
	ErrNotFound = errors.New("catalogapi: product not found")
)

// StatusError carries the HTTP status of an unsuccessful response.
type StatusError struct {
	Method string
	Path   string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d %s", e.Method, e.Path, e.Code, http.StatusText(e.Code))
}

// StatusCode extracts the HTTP status from err, or 0 when there is none.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code
	}
	return 0
}

// classify maps an unsuccessful status to the package sentinels.
func classify(se *StatusError, authenticated bool) error {
	switch {
	case se.Code == http.StatusUnauthorized && authenticated:
		return errors.Join(ErrAuthentication, se)
	case se.Code == http.StatusNotFound:
		return errors.Join(ErrFetch, ErrNotFound, se)
	default:
		return errors.Join(ErrFetch, se)
	}
}
