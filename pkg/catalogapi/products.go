package catalogapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrymomot/storefront/pkg/catalog"
)

// ListProducts fetches the whole collection from GET /products.
// The token is attached when non-empty. A 401 yields ErrAuthentication.
func (c *Client) ListProducts(ctx context.Context, token string) ([]catalog.Product, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.do(ctx, http.MethodGet, "/products", token, nil)
	if err != nil {
		return nil, wrap(err, true)
	}

	products, err := decode[[]catalog.Product](resp)
	if err != nil {
		return nil, errors.Join(ErrFetch, err)
	}
	return products, nil
}

// GetProduct fetches one product from GET /products/{id}, without credentials.
// A 404 yields ErrNotFound together with ErrFetch.
func (c *Client) GetProduct(ctx context.Context, id string) (catalog.Product, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(id), "", nil)
	if err != nil {
		return catalog.Product{}, wrap(err, false)
	}

	p, err := decode[catalog.Product](resp)
	if err != nil {
		return catalog.Product{}, errors.Join(ErrFetch, err)
	}
	return p, nil
}

// CreateProduct sends a draft to POST /products and returns the stored
// record with its server-assigned id.
func (c *Client) CreateProduct(ctx context.Context, token string, draft catalog.Product) (catalog.Product, error) {
	draft.ID = nil
	return c.save(ctx, http.MethodPost, "/products", token, draft)
}

// UpdateProduct sends the edited product to PATCH /products/{id}.
// A response without an id is assumed to describe product id.
func (c *Client) UpdateProduct(ctx context.Context, token string, id int64, p catalog.Product) (catalog.Product, error) {
	saved, err := c.save(ctx, http.MethodPatch, productPath(id), token, p.WithID(id))
	if err != nil {
		return saved, err
	}
	if !saved.HasID() {
		saved = saved.WithID(id)
	}
	return saved, nil
}

// DeleteProduct calls DELETE /products/{id}. The response body is ignored.
func (c *Client) DeleteProduct(ctx context.Context, token string, id int64) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.do(ctx, http.MethodDelete, productPath(id), token, nil)
	if err != nil {
		return wrap(err, true)
	}
	drain(resp)
	return nil
}

func (c *Client) save(ctx context.Context, method, path, token string, p catalog.Product) (catalog.Product, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.do(ctx, method, path, token, p)
	if err != nil {
		return catalog.Product{}, wrap(err, true)
	}

	saved, err := decode[catalog.Product](resp)
	if err != nil {
		return catalog.Product{}, errors.Join(ErrFetch, fmt.Errorf("%s %s: %w", method, path, err))
	}
	return saved, nil
}

func productPath(id int64) string {
	return "/products/" + strconv.FormatInt(id, 10)
}
