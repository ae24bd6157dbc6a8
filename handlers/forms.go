package handlers

import (
	"strings"

	"github.com/dmitrymomot/storefront/internal"
	"github.com/dmitrymomot/storefront/pkg/i18n"
	"github.com/dmitrymomot/storefront/pkg/validator"
)

// translate localizes ve. A form specific key such as
// "login.errors.email.required" wins over the generic "validation.required".
func translate(c internal.Context, form string, ve validator.ValidationErrors) {
	tr := internal.ContextValue[*i18n.Translator](c, internal.TranslatorKey{})
	if tr == nil {
		return
	}
	ve.Translate(func(key string, values map[string]any) string {
		field, _ := values["field"].(string)
		specific := form + ".errors." + field + "." + strings.TrimPrefix(key, "validation.")
		if tr.Has(specific) {
			return tr.TranslateMessage(specific, values)
		}
		return tr.TranslateMessage(key, values)
	})
}
