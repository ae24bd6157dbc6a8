package sanitizer

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.Linkify, extension.Strikethrough),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// Markdown renders src and sanitizes the result. Raw HTML embedded in the
// source is not passed through by goldmark and is filtered again by the
// allow-list policy.
func Markdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return SanitizeHTML(buf.String()), nil
}

// PlainText renders src as Markdown and strips the markup, for excerpts.
// If rendering fails the source is stripped as is.
func PlainText(src string) string {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return StripHTML(src)
	}
	return StripHTML(buf.String())
}
