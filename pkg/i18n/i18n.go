// Package i18n serves the storefront's UI strings from YAML catalogs.
//
// Catalogs live in {lang}/{namespace}.yaml files and are flattened into
// dotted keys at load time. Lookups fall back from the requested language to
// its base language and then to the default language; a key with no
// translation anywhere is returned as is.
//
//	i, err := i18n.New(
//		i18n.WithDefaultLanguage("es"),
//		i18n.WithLanguages("es", "en"),
//		i18n.WithYAMLDir(locales),
//	)
//	tr := i18n.NewTranslator(i, i.Match(r.Header.Get("Accept-Language")), "ui", nil)
//	tr.T("login.title")
//
// An I18n is immutable after New and safe for concurrent use.
package i18n

import (
	"fmt"
	"maps"
	"strings"

	"golang.org/x/text/language"
)

// DefaultLang is the fallback language when none is configured.
const DefaultLang = "es"

// M holds placeholder values.
type M map[string]any

// I18n holds the loaded translations.
type I18n struct {
	// key format: "lang:namespace:key.path"
	translations map[string]string

	missingKeyHandler func(lang, namespace, key string)
	matcher           language.Matcher

	defaultLang string
	languages   []string
}

// Option configures the I18n instance during construction.
type Option func(*I18n) error

// New creates an I18n instance.
func New(opts ...Option) (*I18n, error) {
	i := &I18n{
		translations: make(map[string]string),
		defaultLang:  DefaultLang,
	}

	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if len(i.languages) == 0 {
		i.languages = []string{i.defaultLang}
	}
	if i.languages[0] != i.defaultLang {
		i.languages = append([]string{i.defaultLang}, withoutLang(i.languages, i.defaultLang)...)
	}

	tags := make([]language.Tag, 0, len(i.languages))
	for _, l := range i.languages {
		tag, err := language.Parse(l)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidLanguage, l)
		}
		tags = append(tags, tag)
	}
	i.matcher = language.NewMatcher(tags)

	return i, nil
}

// WithDefaultLanguage sets the default/fallback language.
func WithDefaultLanguage(lang string) Option {
	return func(i *I18n) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		i.defaultLang = lang
		return nil
	}
}

// WithLanguages sets the supported languages. The default language is
// always supported and listed first.
func WithLanguages(langs ...string) Option {
	return func(i *I18n) error {
		for _, l := range langs {
			if l != "" && !containsLang(i.languages, l) {
				i.languages = append(i.languages, l)
			}
		}
		return nil
	}
}

// WithTranslations loads a nested translation map for one language and namespace.
func WithTranslations(lang, namespace string, translations map[string]any) Option {
	return func(i *I18n) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		if namespace == "" {
			return ErrEmptyNamespace
		}
		i.add(lang, namespace, translations)
		return nil
	}
}

// WithMissingKeyHandler sets a callback for keys missing in every fallback language.
func WithMissingKeyHandler(handler func(lang, namespace, key string)) Option {
	return func(i *I18n) error {
		i.missingKeyHandler = handler
		return nil
	}
}

// T translates key, trying lang, its base language and the default language.
func (i *I18n) T(lang, namespace, key string, placeholders ...M) string {
	for _, l := range i.fallbacks(lang) {
		if translation, ok := i.translations[buildKey(l, namespace, key)]; ok {
			return replacePlaceholdersWithMerge(translation, placeholders...)
		}
	}

	if i.missingKeyHandler != nil {
		i.missingKeyHandler(lang, namespace, key)
	}
	return key
}

// Has reports whether key has a translation in lang or one of its fallbacks.
func (i *I18n) Has(lang, namespace, key string) bool {
	for _, l := range i.fallbacks(lang) {
		if _, ok := i.translations[buildKey(l, namespace, key)]; ok {
			return true
		}
	}
	return false
}

// Match picks the supported language that best fits an Accept-Language
// header, falling back to the default language.
func (i *I18n) Match(acceptLanguage string) string {
	if acceptLanguage == "" {
		return i.defaultLang
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return i.defaultLang
	}
	_, idx, conf := i.matcher.Match(tags...)
	if conf == language.No {
		return i.defaultLang
	}
	return i.languages[idx]
}

// Supports reports whether lang is one of the configured languages.
func (i *I18n) Supports(lang string) bool {
	return containsLang(i.languages, lang)
}

// Languages returns the supported languages, default first.
func (i *I18n) Languages() []string {
	return i.languages
}

// DefaultLanguage returns the default/fallback language.
func (i *I18n) DefaultLanguage() string {
	return i.defaultLang
}

func (i *I18n) add(lang, namespace string, translations map[string]any) {
	for key, value := range flattenTranslations(translations, "") {
		i.translations[buildKey(lang, namespace, key)] = value
	}
}

func (i *I18n) fallbacks(lang string) []string {
	out := []string{lang}
	if base := baseLanguage(lang); base != lang {
		out = append(out, base)
	}
	if !containsLang(out, i.defaultLang) {
		out = append(out, i.defaultLang)
	}
	return out
}

func buildKey(lang, namespace, key string) string {
	return lang + ":" + namespace + ":" + key
}

func flattenTranslations(data map[string]any, prefix string) map[string]string {
	result := make(map[string]string)

	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := value.(type) {
		case string:
			result[fullKey] = v
		case map[string]any:
			maps.Copy(result, flattenTranslations(v, fullKey))
		default:
			result[fullKey] = fmt.Sprintf("%v", v)
		}
	}

	return result
}

func replacePlaceholdersWithMerge(template string, placeholders ...M) string {
	if len(placeholders) == 0 {
		return template
	}

	merged := make(M)
	for _, p := range placeholders {
		maps.Copy(merged, p)
	}

	return ReplacePlaceholders(template, merged)
}

// ReplacePlaceholders substitutes {{name}} tokens with values from placeholders.
// Unknown tokens are left unchanged.
func ReplacePlaceholders(template string, placeholders M) string {
	result := template
	for key, value := range placeholders {
		result = strings.ReplaceAll(result, "{{"+key+"}}", fmt.Sprintf("%v", value))
	}
	return result
}

// baseLanguage strips the region from a language tag ("es-MX" -> "es").
func baseLanguage(lang string) string {
	if i := strings.IndexByte(lang, '-'); i > 0 {
		return lang[:i]
	}
	return lang
}

func containsLang(langs []string, lang string) bool {
	for _, l := range langs {
		if l == lang {
			return true
		}
	}
	return false
}

func withoutLang(langs []string, lang string) []string {
	out := make([]string, 0, len(langs))
	for _, l := range langs {
		if l != lang {
			out = append(out, l)
		}
	}
	return out
}
