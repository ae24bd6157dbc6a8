package handlers

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitrymomot/storefront/internal"
	"github.com/dmitrymomot/storefront/pkg/auth"
	"github.com/dmitrymomot/storefront/pkg/cache"
	"github.com/dmitrymomot/storefront/pkg/catalog"
	"github.com/dmitrymomot/storefront/pkg/catalogapi"
	"github.com/dmitrymomot/storefront/pkg/htmx"
	"github.com/dmitrymomot/storefront/pkg/validator"
	"github.com/dmitrymomot/storefront/views"
)

const flashKey = "admin"

// GridState is the admin grid's view state: the collection fetched on
// activation plus the mutations made since, and the current page.
// It is cached per server session.
type GridState struct {
	Products *catalog.Collection `json:"products"`
	Page     int                 `json:"page"`
	Size     int                 `json:"size"`
}

func (s GridState) page() catalog.Page {
	return s.Products.Page(s.Page, s.Size)
}

// Admin serves the product grid against the admin API.
type Admin struct {
	api           *catalogapi.Client
	state         *cache.Loader[GridState]
	surfaceErrors bool
}

// AdminOption configures Admin.
type AdminOption func(*Admin)

// WithSurfacedMutationErrors shows failed saves and deletes to the user
// instead of only logging them.
func WithSurfacedMutationErrors(on bool) AdminOption {
	return func(h *Admin) {
		h.surfaceErrors = on
	}
}

// NewAdmin creates the grid handler. state holds GridState per session.
func NewAdmin(api *catalogapi.Client, state *cache.Loader[GridState], opts ...AdminOption) *Admin {
	h := &Admin{api: api, state: state}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes implements internal.Handler.
func (h *Admin) Routes(r internal.Router) {
	r.Route("/crud", func(r internal.Router) {
		r.GET("/", h.show)
		r.GET("/rows", h.rows)
		r.GET("/products/new", h.newDialog)
		r.GET("/products/{id}/edit", h.editDialog)
		r.POST("/products", h.save)
		r.DELETE("/products/{id}", h.delete)
		r.POST("/products/{id}/delete", h.delete)
	})
}

// ForgetSession drops the grid state of a session. It fits
// middlewares.OnIdentityCleared.
func (h *Admin) ForgetSession(ctx context.Context, sessionID string) {
	_ = h.state.Delete(ctx, sessionID)
}

// show fetches the whole collection on every activation.
func (h *Admin) show(c internal.Context) error {
	key, err := h.stateKey(c)
	if err != nil {
		return err
	}

	products, err := h.api.ListProducts(c, auth.FromContext(c).Token())
	if err != nil {
		return h.loadFailed(c, err)
	}

	state := GridState{Products: catalog.Load(products), Page: 1, Size: catalog.DefaultPageSize}
	h.store(c, key, state)

	return c.Render(http.StatusOK, views.AdminPage(state.page(), h.flash(c), nil))
}

func (h *Admin) rows(c internal.Context) error {
	key, state, err := h.load(c)
	if err != nil {
		return h.loadFailed(c, err)
	}

	state.Size = catalog.NormalizePageSize(internal.QueryInt(c, "size", state.Size))
	state.Page = internal.QueryInt(c, "page", 1)
	page := state.page()
	state.Page = page.Number
	h.store(c, key, state)

	return c.RenderPartial(http.StatusOK, views.AdminPage(page, h.flash(c), nil), views.Grid(page))
}

func (h *Admin) newDialog(c internal.Context) error {
	return h.dialog(c, http.StatusOK, views.ProductForm{})
}

func (h *Admin) editDialog(c internal.Context) error {
	id, ok := internal.ParamInt64(c, "id")
	if !ok {
		return internal.ErrBadRequest("invalid product id")
	}

	_, state, err := h.load(c)
	if err != nil {
		return h.loadFailed(c, err)
	}

	p, ok := state.Products.Find(id)
	if !ok {
		return internal.ErrNotFound(c.T("error.not_found"), internal.WithTitle(c.T("error.not_found_title")))
	}
	return h.dialog(c, http.StatusOK, views.ProductFormFrom(p))
}

// save is the single submit path of the dialog: an id means update,
// no id means create.
func (h *Admin) save(c internal.Context) error {
	form := views.ProductForm{
		Name:        strings.TrimSpace(c.Form("name")),
		Price:       strings.TrimSpace(c.Form("price")),
		Description: c.Form("description"),
	}
	if raw := c.Form("id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return internal.ErrBadRequest("invalid product id")
		}
		form.ID = &id
	}

	price, perr := strconv.ParseFloat(form.Price, 64)
	err := validator.Apply(
		validator.RequiredString("name", form.Name),
		validator.Valid("price", perr == nil && !math.IsNaN(price) && !math.IsInf(price, 0), "validation.number", "must be a number"),
		validator.MinNum("price", price, 0),
	)
	if ve := validator.ExtractValidationErrors(err); ve != nil {
		translate(c, "admin", ve)
		form.Errors = ve
		return h.dialog(c, http.StatusUnprocessableEntity, form)
	}

	key, state, err := h.load(c)
	if err != nil {
		return h.loadFailed(c, err)
	}

	draft := catalog.Product{Name: form.Name, Price: price, Description: form.Description}
	token := auth.FromContext(c).Token()

	var saved catalog.Product
	if form.ID != nil {
		saved, err = h.api.UpdateProduct(c, token, *form.ID, draft)
	} else {
		saved, err = h.api.CreateProduct(c, token, draft)
	}
	if err != nil {
		// The dialog stays open with what the user typed.
		c.LogError("failed to save product", "id", form.ID, "error", err)
		if h.surfaceErrors {
			form.Failure = c.T("admin.save_failed")
		}
		return h.dialog(c, http.StatusOK, form)
	}

	if form.ID != nil {
		if !state.Products.Replace(saved) {
			c.LogWarn("saved product is not in the grid", "id", saved.IDValue())
		}
	} else {
		state.Products.Append(saved)
	}
	h.store(c, key, state)

	if !c.IsPartial() {
		return c.Redirect(http.StatusSeeOther, "/crud/rows")
	}
	return c.Render(http.StatusOK, views.DialogClosed(),
		htmx.WithOOB(views.GridOOB(state.page()), views.FlashOOB("")),
	)
}

func (h *Admin) delete(c internal.Context) error {
	id, ok := internal.ParamInt64(c, "id")
	if !ok {
		return internal.ErrBadRequest("invalid product id")
	}

	key, state, err := h.load(c)
	if err != nil {
		return h.loadFailed(c, err)
	}

	var flash string
	if err := h.api.DeleteProduct(c, auth.FromContext(c).Token(), id); err != nil {
		c.LogError("failed to delete product", "id", id, "error", err)
		if h.surfaceErrors {
			flash = c.T("admin.delete_failed")
		}
	} else {
		state.Products.Remove(id)
		h.store(c, key, state)
	}

	if !c.IsPartial() {
		if flash != "" {
			if err := c.Cookies().SetFlash(c.Response(), flashKey, flash); err != nil {
				c.LogDebug("flash not set", "error", err)
			}
		}
		return c.Redirect(http.StatusSeeOther, "/crud/rows")
	}
	return c.Render(http.StatusOK, views.Grid(state.page()), htmx.WithOOB(views.FlashOOB(flash)))
}

// dialog renders the product dialog: alone for htmx, inside the grid page
// otherwise.
func (h *Admin) dialog(c internal.Context, code int, form views.ProductForm) error {
	if c.IsPartial() {
		return c.Render(code, views.ProductDialog(form))
	}

	_, state, err := h.load(c)
	if err != nil {
		return h.loadFailed(c, err)
	}
	return c.Render(code, views.AdminPage(state.page(), "", views.ProductDialog(form)))
}

// loadFailed replaces the grid with the authentication or generic fetch
// message. Both are terminal for this activation.
func (h *Admin) loadFailed(c internal.Context, err error) error {
	msg, code := c.T("admin.load_failed"), http.StatusBadGateway
	switch {
	case errors.Is(err, catalogapi.ErrAuthentication):
		msg, code = c.T("admin.unauthorized"), http.StatusUnauthorized
	case !errors.Is(err, catalogapi.ErrFetch):
		return err
	}
	c.LogError("failed to load products", "error", err)

	if c.IsPartial() {
		return c.Render(code, views.AdminError(msg), htmx.WithRetarget("#content"), htmx.WithReswap(htmx.SwapInnerHTML))
	}
	return c.Render(code, views.AdminErrorPage(msg))
}

// stateKey is the server session id, starting a session when there is none.
func (h *Admin) stateKey(c internal.Context) (string, error) {
	sess, err := c.Session()
	if err != nil {
		return "", err
	}
	if sess == nil {
		if err := c.InitSession(); err != nil {
			return "", err
		}
		if sess, err = c.Session(); err != nil {
			return "", err
		}
	}
	return sess.ID, nil
}

// load returns a private copy of the session's grid state, fetching the
// collection when the cache has none.
func (h *Admin) load(c internal.Context) (string, GridState, error) {
	key, err := h.stateKey(c)
	if err != nil {
		return "", GridState{}, err
	}

	token := auth.FromContext(c).Token()
	state, err := h.state.GetOrLoad(c, key, func(ctx context.Context) (GridState, error) {
		products, err := h.api.ListProducts(ctx, token)
		if err != nil {
			return GridState{}, err
		}
		return GridState{Products: catalog.Load(products), Page: 1, Size: catalog.DefaultPageSize}, nil
	})
	if err != nil {
		return "", GridState{}, err
	}

	state.Products = state.Products.Clone()
	return key, state, nil
}

func (h *Admin) store(c internal.Context, key string, state GridState) {
	if err := h.state.Set(c, key, state); err != nil {
		c.LogWarn("failed to store grid state", "error", err)
	}
}

func (h *Admin) flash(c internal.Context) string {
	var msg string
	if err := c.Cookies().Flash(c.Response(), c.Request(), flashKey, &msg); err != nil {
		return ""
	}
	return msg
}
