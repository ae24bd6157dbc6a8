package catalogapi

import (
	"context"
	"errors"
	"net/http"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

var errEmptyToken = errors.New("login response carries no access_token")

// Login exchanges credentials for an access token at POST /auth/login.
// Any failure is returned as ErrAuthentication wrapping the cause; the
// credentials are passed through unvalidated.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.do(ctx, http.MethodPost, "/auth/login", "", loginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return "", errors.Join(ErrAuthentication, err)
	}

	body, err := decode[loginResponse](resp)
	if err != nil {
		return "", errors.Join(ErrAuthentication, err)
	}
	if body.AccessToken == "" {
		return "", errors.Join(ErrAuthentication, errEmptyToken)
	}

	return body.AccessToken, nil
}
