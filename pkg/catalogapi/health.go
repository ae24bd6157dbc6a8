package catalogapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrUnreachable is returned by Healthcheck when the API does not answer.
var ErrUnreachable = errors.New("catalogapi: api unreachable")

// Healthcheck returns a readiness check that sends HEAD /products.
// Any HTTP answer, including 401 or 405, counts as reachable.
func Healthcheck(c *Client) func(context.Context) error {
	return func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL+"/products", nil)
		if err != nil {
			return errors.Join(ErrUnreachable, err)
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return errors.Join(ErrUnreachable, fmt.Errorf("%s: %w", c.baseURL, err))
		}
		drain(resp)
		if resp.StatusCode >= http.StatusInternalServerError {
			return errors.Join(ErrUnreachable, &StatusError{Method: http.MethodHead, Path: "/products", Code: resp.StatusCode})
		}
		return nil
	}
}
