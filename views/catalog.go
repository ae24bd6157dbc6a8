package views

import (
	"github.com/a-h/templ"

	"github.com/dmitrymomot/storefront/pkg/catalog"
)

// ProductCard is what the catalog grid shows per product.
type ProductCard struct {
	Product catalog.Product
	Excerpt string // plain text
}

// CatalogPage lists products as cards.
func CatalogPage(cards []ProductCard) templ.Component {
	return component(func(h *writer) {
		h.child(Layout(tr(h.ctx, "catalog.title"), CatalogList(cards)))
	})
}

// CatalogList is the card grid without the layout.
func CatalogList(cards []ProductCard) templ.Component {
	return component(func(h *writer) {
		h.raw(`<h1>`)
		h.t("catalog.title")
		h.raw(`</h1>`)
		if len(cards) == 0 {
			h.raw(`<p class="empty">`)
			h.t("catalog.empty")
			h.raw(`</p>`)
			return
		}
		h.raw(`<div class="cards">`)
		for _, c := range cards {
			h.raw(`<article class="card"><h2>`)
			h.text(c.Product.Name)
			h.raw(`</h2><p class="excerpt">`)
			h.text(c.Excerpt)
			h.raw(`</p><p class="price">`)
			h.text(price(h.ctx, c.Product.Price))
			h.raw(`</p>`)
			if c.Product.HasID() {
				h.raw(`<a class="button" href="`)
				h.url(productURL(c.Product.IDValue()))
				h.raw(`">`)
				h.t("catalog.view")
				h.raw(`</a>`)
			}
			h.raw(`</article>`)
		}
		h.raw(`</div>`)
	})
}

// ProductPage shows one product. description must already be sanitized HTML.
func ProductPage(p catalog.Product, description string) templ.Component {
	return component(func(h *writer) {
		h.child(Layout(p.Name, ProductDetail(p, description)))
	})
}

// ProductDetail is the detail panel without the layout.
func ProductDetail(p catalog.Product, description string) templ.Component {
	return component(func(h *writer) {
		h.raw(`<section class="panel"><h1>`)
		h.text(p.Name)
		h.raw(`</h1><p class="price">`)
		h.t("product.price", map[string]any{"price": price(h.ctx, p.Price)})
		h.raw(`</p><div class="description">`)
		h.raw(description)
		h.raw(`</div></section><a class="button" href="/productos">`)
		h.t("product.back")
		h.raw(`</a>`)
	})
}
