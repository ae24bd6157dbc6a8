package views

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/storefront/pkg/catalog"
	"github.com/dmitrymomot/storefront/pkg/validator"
)

// ProductForm is the state of the create/edit dialog. Price stays a string
// so a rejected value is shown back exactly as typed.
type ProductForm struct {
	ID          *int64
	Name        string
	Price       string
	Description string
	Errors      validator.ValidationErrors
	Failure     string
}

// ProductFormFrom fills the dialog from an existing product.
func ProductFormFrom(p catalog.Product) ProductForm {
	return ProductForm{
		ID:          p.ID,
		Name:        p.Name,
		Price:       strconv.FormatFloat(p.Price, 'f', -1, 64),
		Description: p.Description,
	}
}

// AdminPage is the CRUD grid page. dialog may be nil; when set it is
// rendered open inside the page, for browsers without JavaScript.
func AdminPage(page catalog.Page, flash string, dialog templ.Component) templ.Component {
	return component(func(h *writer) {
		h.child(Layout(tr(h.ctx, "admin.title"), component(func(h *writer) {
			adminHeader(h)
			flashBox(h, flash, false)
			h.child(Grid(page))
			h.child(dialog)
		})))
	})
}

// FlashOOB replaces the admin flash message out of band.
func FlashOOB(message string) templ.Component {
	return component(func(h *writer) {
		flashBox(h, message, true)
	})
}

func flashBox(h *writer, message string, oob bool) {
	h.raw(`<div id="flash"`)
	if oob {
		h.raw(` hx-swap-oob="true"`)
	}
	h.raw(`>`)
	if message != "" {
		h.raw(`<p class="error" role="alert">`)
		h.text(message)
		h.raw(`</p>`)
	}
	h.raw(`</div>`)
}

// AdminErrorPage replaces the grid with a load failure message.
func AdminErrorPage(message string) templ.Component {
	return component(func(h *writer) {
		h.child(Layout(tr(h.ctx, "admin.title"), AdminError(message)))
	})
}

// AdminError is the load failure message without the layout.
func AdminError(message string) templ.Component {
	return component(func(h *writer) {
		h.raw(`<section class="panel center"><p class="error" role="alert">`)
		h.text(message)
		h.raw(`</p></section>`)
	})
}

func adminHeader(h *writer) {
	h.raw(`<h1>`)
	h.t("admin.title")
	h.raw(`</h1><a class="button primary" href="/crud/products/new" hx-get="/crud/products/new" hx-target="#dialog" hx-swap="innerHTML">`)
	h.t("admin.add")
	h.raw(`</a>`)
}

// Grid is the product table with its pager.
func Grid(page catalog.Page) templ.Component {
	return grid(page, false)
}

// GridOOB is Grid marked for an out-of-band swap.
func GridOOB(page catalog.Page) templ.Component {
	return grid(page, true)
}

func grid(page catalog.Page, oob bool) templ.Component {
	return component(func(h *writer) {
		h.raw(`<div id="grid"`)
		if oob {
			h.raw(` hx-swap-oob="true"`)
		}
		h.raw(`><table class="grid"><thead><tr><th>`)
		h.t("admin.columns.id")
		h.raw(`</th><th>`)
		h.t("admin.columns.name")
		h.raw(`</th><th class="num">`)
		h.t("admin.columns.price")
		h.raw(`</th><th>`)
		h.t("admin.columns.description")
		h.raw(`</th><th>`)
		h.t("admin.columns.actions")
		h.raw(`</th></tr></thead><tbody>`)
		if len(page.Rows) == 0 {
			h.raw(`<tr><td colspan="5" class="empty">`)
			h.t("admin.empty")
			h.raw(`</td></tr>`)
		}
		for _, row := range page.Rows {
			gridRow(h, row)
		}
		h.raw(`</tbody></table>`)
		pager(h, page)
		h.raw(`</div>`)
	})
}

func gridRow(h *writer, row catalog.Row) {
	p := row.Product
	h.raw(`<tr`)
	if !row.Persisted() {
		h.raw(` class="unsaved"`)
	}
	h.raw(`><td>`)
	h.text(strconv.FormatInt(row.Key, 10))
	h.raw(`</td><td>`)
	h.text(p.Name)
	h.raw(`</td><td class="num">`)
	h.text(catalog.FormatPrice(p.Price))
	h.raw(`</td><td>`)
	h.text(p.Description)
	h.raw(`</td><td class="actions">`)

	// Rows without a server id cannot be edited or deleted.
	if row.Persisted() {
		id := p.IDValue()
		h.raw(`<a class="button small" href="`)
		h.url(adminProductURL(id, "/edit"))
		h.raw(`" hx-get="`)
		h.url(adminProductURL(id, "/edit"))
		h.raw(`" hx-target="#dialog" hx-swap="innerHTML">`)
		h.t("admin.edit")
		h.raw(`</a><form method="post" class="inline" action="`)
		h.url(adminProductURL(id, "/delete"))
		h.raw(`" hx-delete="`)
		h.url(adminProductURL(id, ""))
		h.raw(`" hx-target="#grid" hx-swap="outerHTML"><button type="submit" class="small secondary">`)
		h.t("admin.delete")
		h.raw(`</button></form>`)
	}
	h.raw(`</td></tr>`)
}

func pager(h *writer, page catalog.Page) {
	size := itoa(page.Size)
	h.raw(`<div class="pager"><form method="get" action="/crud/rows" hx-get="/crud/rows" hx-target="#grid" hx-swap="outerHTML" hx-trigger="change"><label>`)
	h.t("admin.page_size")
	h.raw(` <select name="size">`)
	for _, s := range catalog.PageSizes {
		v := itoa(s)
		h.raw(`<option value="`, v, `"`)
		if s == page.Size {
			h.raw(` selected`)
		}
		h.raw(`>`, v, `</option>`)
	}
	h.raw(`</select></label><noscript><button type="submit">OK</button></noscript></form><span class="range">`)
	h.t("admin.range", map[string]any{
		"first": page.First(),
		"last":  page.Last(),
		"total": page.Total,
	})
	h.raw(`</span>`)
	pageLink(h, page.HasPrev(), page.Number-1, size, "admin.prev")
	pageLink(h, page.HasNext(), page.Number+1, size, "admin.next")
	h.raw(`</div>`)
}

func pageLink(h *writer, enabled bool, number int, size, label string) {
	if !enabled {
		h.raw(`<span class="button small disabled">`)
		h.t(label)
		h.raw(`</span>`)
		return
	}
	href := "/crud/rows?page=" + itoa(number) + "&size=" + size
	h.raw(`<a class="button small" href="`)
	h.url(href)
	h.raw(`" hx-get="`)
	h.url(href)
	h.raw(`" hx-target="#grid" hx-swap="outerHTML">`)
	h.t(label)
	h.raw(`</a>`)
}

// ProductDialog is the create/edit dialog. An id present means edit.
func ProductDialog(form ProductForm) templ.Component {
	return component(func(h *writer) {
		title, submit := "admin.dialog.add_title", "admin.dialog.add_submit"
		if form.ID != nil {
			title, submit = "admin.dialog.edit_title", "admin.dialog.edit_submit"
		}

		h.raw(`<dialog open class="dialog"><form method="post" action="/crud/products" hx-post="/crud/products" hx-target="#dialog" hx-swap="innerHTML" novalidate><h2>`)
		h.t(title)
		h.raw(`</h2>`)
		if form.Failure != "" {
			h.raw(`<p class="error" role="alert">`)
			h.text(form.Failure)
			h.raw(`</p>`)
		}
		if form.ID != nil {
			h.raw(`<input type="hidden" name="id" value="`, strconv.FormatInt(*form.ID, 10), `">`)
		}
		field(h, "name", "text", tr(h.ctx, "admin.dialog.name"), form.Name, form.Errors, "")
		field(h, "price", "number", tr(h.ctx, "admin.dialog.price"), form.Price, form.Errors, `step="0.01" min="0"`)
		field(h, "description", "text", tr(h.ctx, "admin.dialog.description"), form.Description, form.Errors, "")
		h.raw(`<div class="dialog-actions"><a class="button" href="/crud/rows" onclick="event.preventDefault();document.getElementById('dialog').innerHTML='';">`)
		h.t("admin.dialog.cancel")
		h.raw(`</a><button type="submit" class="primary">`)
		h.t(submit)
		h.raw(`</button></div></form></dialog>`)
	})
}

// DialogClosed empties the dialog container.
func DialogClosed() templ.Component {
	return templ.NopComponent
}
