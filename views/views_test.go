package views_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/internal"
	"github.com/dmitrymomot/storefront/pkg/catalog"
	"github.com/dmitrymomot/storefront/pkg/i18n"
	"github.com/dmitrymomot/storefront/pkg/validator"
	"github.com/dmitrymomot/storefront/views"
)

func render(t *testing.T, lang string, c templ.Component) string {
	t.Helper()

	svc, err := i18n.New(
		i18n.WithDefaultLanguage("es"),
		i18n.WithLanguages("es", "en"),
		i18n.WithYAMLDir(views.Locales()),
	)
	require.NoError(t, err)

	ctx := context.WithValue(context.Background(), internal.TranslatorKey{},
		i18n.NewTranslator(svc, lang, views.Namespace, nil))

	var buf bytes.Buffer
	require.NoError(t, c.Render(ctx, &buf))
	return buf.String()
}

func id(v int64) *int64 { return &v }

func TestCatalogList(t *testing.T) {
	t.Parallel()

	html := render(t, "es", views.CatalogList([]views.ProductCard{
		{Product: catalog.Product{ID: id(3), Name: "<Taza>", Price: 9}, Excerpt: "Cerámica"},
	}))

	assert.Contains(t, html, "Nuestros Productos")
	assert.Contains(t, html, "&lt;Taza&gt;")
	assert.NotContains(t, html, "<Taza>")
	assert.Contains(t, html, "$9.00")
	assert.Contains(t, html, `href="/productos/3"`)
	assert.Contains(t, html, "Ver Producto")
}

func TestProductDetail(t *testing.T) {
	t.Parallel()

	html := render(t, "en", views.ProductDetail(catalog.Product{ID: id(1), Name: "Mug", Price: 12.5}, "<p><strong>big</strong></p>"))

	assert.Contains(t, html, "Price: $12.50")
	assert.Contains(t, html, "<p><strong>big</strong></p>")
	assert.Contains(t, html, "Back")
}

func TestGrid(t *testing.T) {
	t.Parallel()

	c := catalog.Load([]catalog.Product{
		{ID: id(10), Name: "saved", Price: 9},
		{Name: "draft", Price: 1},
	})
	html := render(t, "es", views.Grid(c.Page(1, 5)))

	assert.Contains(t, html, `id="grid"`)
	assert.Contains(t, html, `hx-get="/crud/products/10/edit"`)
	assert.Contains(t, html, `hx-delete="/crud/products/10"`)
	assert.Contains(t, html, `action="/crud/products/10/delete"`)
	assert.NotContains(t, html, "/crud/products/1/", "rows without server id get no actions")
	assert.Contains(t, html, `class="unsaved"`)
	assert.Contains(t, html, "9.00")
	assert.Contains(t, html, "1–2 de 2")
	assert.Contains(t, html, `<option value="5" selected>`)

	assert.Contains(t, render(t, "es", views.GridOOB(c.Page(1, 5))), `hx-swap-oob="true"`)
}

func TestGridPaging(t *testing.T) {
	t.Parallel()

	products := make([]catalog.Product, 12)
	for i := range products {
		products[i] = catalog.Product{ID: id(int64(i + 1)), Name: "p"}
	}
	html := render(t, "es", views.Grid(catalog.Load(products).Page(2, 5)))

	assert.Contains(t, html, "6–10 de 12")
	assert.Contains(t, html, `href="/crud/rows?page=1&amp;size=5"`)
	assert.Contains(t, html, `href="/crud/rows?page=3&amp;size=5"`)
}

func TestProductDialog(t *testing.T) {
	t.Parallel()

	add := render(t, "es", views.ProductDialog(views.ProductForm{}))
	assert.Contains(t, add, "Añadir Producto")
	assert.NotContains(t, add, `name="id"`)

	edit := render(t, "es", views.ProductDialog(views.ProductFormFrom(catalog.Product{ID: id(7), Name: "Mug", Price: 9.5})))
	assert.Contains(t, edit, "Editar Producto")
	assert.Contains(t, edit, "Guardar Cambios")
	assert.Contains(t, edit, `<input type="hidden" name="id" value="7">`)
	assert.Contains(t, edit, `value="9.5"`)

	failed := render(t, "es", views.ProductDialog(views.ProductForm{
		Name:    "x",
		Errors:  validator.ValidationErrors{{Field: "price", Message: "El precio debe ser un número"}},
		Failure: "Error al guardar el producto",
	}))
	assert.Contains(t, failed, "El precio debe ser un número")
	assert.Contains(t, failed, "Error al guardar el producto")
	assert.Contains(t, failed, `aria-invalid="true"`)
}

func TestLoginPanel(t *testing.T) {
	t.Parallel()

	html := render(t, "es", views.LoginPanel(views.LoginForm{
		Email:   "ana@example.com",
		Errors:  validator.ValidationErrors{{Field: "password", Message: "La contraseña debe tener al menos 6 caracteres"}},
		Failure: "Email o contraseña inválidos",
	}))

	assert.Contains(t, html, "Inicia sesión")
	assert.Contains(t, html, `value="ana@example.com"`)
	assert.Contains(t, html, "La contraseña debe tener al menos 6 caracteres")
	assert.Contains(t, html, "Email o contraseña inválidos")
}

func TestLayout(t *testing.T) {
	t.Parallel()

	html := render(t, "en", views.ErrorPage(404, "Not found", "gone"))

	assert.Contains(t, html, `<html lang="en">`)
	assert.Contains(t, html, "<title>Not found | Store</title>")
	assert.Contains(t, html, `href="/login"`)
	assert.Contains(t, html, "gone")
}

func TestAdminPage(t *testing.T) {
	t.Parallel()

	c := catalog.Load([]catalog.Product{{ID: id(1), Name: "Mug", Price: 9}})
	html := render(t, "es", views.AdminPage(c.Page(1, 5), "Error al eliminar el producto", views.ProductDialog(views.ProductForm{})))

	assert.Contains(t, html, "Lista de Productos")
	assert.Contains(t, html, `<div id="flash"><p class="error" role="alert">Error al eliminar el producto</p></div>`)
	assert.Contains(t, html, "<dialog open")

	assert.Equal(t, `<div id="flash" hx-swap-oob="true"></div>`, render(t, "es", views.FlashOOB("")))
}
