package i18n

// Translator binds an I18n to one language and namespace.
type Translator struct {
	i18n      *I18n
	format    *LocaleFormat
	language  string
	namespace string
}

// NewTranslator creates a Translator. An empty language means the default
// language; a nil format means NewLocaleFormat().
func NewTranslator(i18n *I18n, language, namespace string, format *LocaleFormat) *Translator {
	if i18n == nil {
		panic("i18n: service is not provided")
	}
	if language == "" {
		language = i18n.DefaultLanguage()
	}
	if format == nil {
		format = NewLocaleFormat()
	}
	return &Translator{
		i18n:      i18n,
		language:  language,
		namespace: namespace,
		format:    format,
	}
}

// T translates key in the translator's language and namespace.
func (t *Translator) T(key string, placeholders ...M) string {
	return t.i18n.T(t.language, t.namespace, key, placeholders...)
}

// TranslateMessage has the shape validator.ValidationErrors.Translate expects:
//
//	ve.Translate(translator.TranslateMessage)
func (t *Translator) TranslateMessage(key string, values map[string]any) string {
	return t.i18n.T(t.language, t.namespace, key, values)
}

// FormatCurrency formats a price, e.g. "$9.00".
func (t *Translator) FormatCurrency(amount float64) string {
	return t.format.FormatCurrency(amount)
}

// Language returns the translator's language.
func (t *Translator) Language() string {
	return t.language
}

// Namespace returns the translator's namespace.
func (t *Translator) Namespace() string {
	return t.namespace
}

// Has reports whether key has a translation in the translator's language
// or one of its fallbacks.
func (t *Translator) Has(key string) bool {
	return t.i18n.Has(t.language, t.namespace, key)
}
