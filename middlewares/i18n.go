package middlewares

import (
	"github.com/dmitrymomot/storefront/internal"
	"github.com/dmitrymomot/storefront/pkg/i18n"
)

// LanguageCookie holds an explicit language choice.
const LanguageCookie = "lang"

type i18nConfig struct {
	formats   map[string]*i18n.LocaleFormat
	format    *i18n.LocaleFormat
	namespace string
	extractor *internal.Extractor
}

// I18nOption configures I18n.
type I18nOption func(*i18nConfig)

// WithI18nNamespace sets the translator namespace.
func WithI18nNamespace(ns string) I18nOption {
	return func(cfg *i18nConfig) {
		cfg.namespace = ns
	}
}

// WithI18nExtractor replaces the lang query, lang cookie, Accept-Language chain.
// Extracted values are still checked against the supported languages.
func WithI18nExtractor(ext internal.Extractor) I18nOption {
	return func(cfg *i18nConfig) {
		cfg.extractor = &ext
	}
}

// WithI18nFormat sets the number format for one language.
func WithI18nFormat(lang string, f *i18n.LocaleFormat) I18nOption {
	return func(cfg *i18nConfig) {
		if cfg.formats == nil {
			cfg.formats = make(map[string]*i18n.LocaleFormat)
		}
		cfg.formats[lang] = f
	}
}

// FromAcceptLanguage matches the Accept-Language header against svc.
func FromAcceptLanguage(svc *i18n.I18n) internal.ExtractorSource {
	return func(c internal.Context) (string, bool) {
		header := c.Header("Accept-Language")
		if header == "" {
			return "", false
		}
		return svc.Match(header), true
	}
}

// I18n resolves the request language and installs its translator.
func I18n(svc *i18n.I18n, opts ...I18nOption) internal.Middleware {
	cfg := &i18nConfig{format: i18n.NewLocaleFormat()}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.extractor == nil {
		ext := internal.NewExtractor(
			internal.FromQuery(LanguageCookie),
			internal.FromCookie(LanguageCookie),
			FromAcceptLanguage(svc),
		)
		cfg.extractor = &ext
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			lang, ok := cfg.extractor.Extract(c)
			if !ok || !svc.Supports(lang) {
				lang = svc.DefaultLanguage()
			}

			format := cfg.format
			if f, ok := cfg.formats[lang]; ok {
				format = f
			}

			c.Set(internal.TranslatorKey{}, i18n.NewTranslator(svc, lang, cfg.namespace, format))
			return next(c)
		}
	}
}
