package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrymomot/storefront/internal"
	"github.com/dmitrymomot/storefront/pkg/auth"
	"github.com/dmitrymomot/storefront/pkg/catalogapi"
	"github.com/dmitrymomot/storefront/pkg/validator"
	"github.com/dmitrymomot/storefront/views"
)

// PasswordMinLength is the shortest password the login form accepts.
const PasswordMinLength = 6

// Auth serves login and logout.
type Auth struct{}

// NewAuth creates the auth handler.
func NewAuth() *Auth {
	return &Auth{}
}

// Routes implements internal.Handler.
func (h *Auth) Routes(r internal.Router) {
	r.GET("/login", h.form)
	r.POST("/login", h.login)
	r.POST("/logout", h.logout)
}

func (h *Auth) form(c internal.Context) error {
	return h.render(c, http.StatusOK, views.LoginForm{})
}

func (h *Auth) login(c internal.Context) error {
	email := strings.TrimSpace(c.Form("email"))
	password := c.Form("password")
	form := views.LoginForm{Email: email}

	// Nothing reaches the API until the form is valid.
	err := validator.Apply(
		validator.RequiredString("email", email),
		validator.MinLenString("password", password, PasswordMinLength),
	)
	if ve := validator.ExtractValidationErrors(err); ve != nil {
		translate(c, "login", ve)
		form.Errors = ve
		return h.render(c, http.StatusUnprocessableEntity, form)
	}

	if err := auth.FromContext(c).Login(c, email, password); err != nil {
		if !errors.Is(err, catalogapi.ErrAuthentication) {
			return err
		}
		c.LogWarn("login failed", "error", err)
		form.Failure = c.T("login.failed")
		return h.render(c, http.StatusUnauthorized, form)
	}

	// Login already redirected to the admin grid.
	return nil
}

func (h *Auth) logout(c internal.Context) error {
	return auth.FromContext(c).Logout(c)
}

func (h *Auth) render(c internal.Context, code int, form views.LoginForm) error {
	return c.RenderPartial(code, views.LoginPage(form), views.LoginPanel(form))
}
