package middlewares

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// PanicError is a recovered panic.
type PanicError struct {
	Value any
	Stack []byte // nil when stack capture is disabled
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap exposes the panic value when it was an error.
func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

// TimeoutError reports a request that ran past its deadline.
type TimeoutError struct {
	Err      error // what the handler returned, if anything
	Duration time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request timeout after %s", e.Duration)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// AsPanicError extracts a *PanicError from err.
func AsPanicError(err error) (*PanicError, bool) {
	var pe *PanicError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// AsTimeoutError extracts a *TimeoutError from err.
func AsTimeoutError(err error) (*TimeoutError, bool) {
	var te *TimeoutError
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}

// StatusCode maps middleware errors to an HTTP status: 500 for panics,
// 504 for timeouts and 0 for anything else.
func StatusCode(err error) int {
	if _, ok := AsTimeoutError(err); ok {
		return http.StatusGatewayTimeout
	}
	if _, ok := AsPanicError(err); ok {
		return http.StatusInternalServerError
	}
	return 0
}
