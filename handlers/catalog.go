package handlers

import (
	"html"
	"net/http"

	"github.com/dmitrymomot/storefront/internal"
	"github.com/dmitrymomot/storefront/pkg/auth"
	"github.com/dmitrymomot/storefront/pkg/catalog"
	"github.com/dmitrymomot/storefront/pkg/catalogapi"
	"github.com/dmitrymomot/storefront/pkg/sanitizer"
	"github.com/dmitrymomot/storefront/views"
)

// Catalog serves the public product pages from the remote API.
type Catalog struct {
	api *catalogapi.Client
}

// NewCatalog creates the catalog handler.
func NewCatalog(api *catalogapi.Client) *Catalog {
	return &Catalog{api: api}
}

// Routes implements internal.Handler.
func (h *Catalog) Routes(r internal.Router) {
	r.GET("/", h.home)
	r.GET("/productos", h.list)
	r.GET("/productos/{id}", h.detail)
}

func (h *Catalog) home(c internal.Context) error {
	return c.Redirect(http.StatusFound, "/productos")
}

func (h *Catalog) list(c internal.Context) error {
	var token string
	if s, ok := auth.Lookup(c); ok {
		token = s.Token()
	}

	products, err := h.api.ListProducts(c, token)
	if err != nil {
		return err
	}

	cards := make([]views.ProductCard, len(products))
	for i, p := range products {
		cards[i] = views.ProductCard{
			Product: p,
			Excerpt: catalog.Excerpt(sanitizer.PlainText(p.Description), catalog.ExcerptLength),
		}
	}

	return c.RenderPartial(http.StatusOK, views.CatalogPage(cards), views.CatalogList(cards))
}

func (h *Catalog) detail(c internal.Context) error {
	p, err := h.api.GetProduct(c, c.Param("id"))
	if err != nil {
		return err
	}

	description, err := sanitizer.Markdown(p.Description)
	if err != nil {
		c.LogWarn("failed to render description", "product", p.IDValue(), "error", err)
		description = "<p>" + html.EscapeString(p.Description) + "</p>"
	}

	return c.RenderPartial(http.StatusOK, views.ProductPage(p, description), views.ProductDetail(p, description))
}
