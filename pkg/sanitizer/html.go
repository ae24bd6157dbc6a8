// Package sanitizer turns untrusted product descriptions into safe output.
//
// Descriptions come from the remote catalog API and are treated as Markdown.
// The detail page shows them rendered and filtered through a bluemonday
// allow-list; catalog cards show a plain-text excerpt.
package sanitizer

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy *bluemonday.Policy
	safePolicy   *bluemonday.Policy
	initOnce     sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()

		safePolicy = bluemonday.NewPolicy()
		safePolicy.AllowStandardURLs()
		safePolicy.AllowElements(
			"p", "br", "hr",
			"h3", "h4", "h5", "h6",
			"strong", "b", "em", "i", "del",
			"ul", "ol", "li",
			"code", "pre", "blockquote",
		)
		safePolicy.AllowAttrs("href").OnElements("a")
		safePolicy.RequireNoFollowOnLinks(true)
		safePolicy.AddTargetBlankToFullyQualifiedLinks(true)
	})
}

// SanitizeHTML keeps basic formatting (paragraphs, emphasis, lists, code,
// links) and drops everything else, including scripts, event handlers and
// javascript: URLs.
func SanitizeHTML(s string) string {
	initPolicies()
	return safePolicy.Sanitize(s)
}

// StripHTML removes all markup and returns unescaped text with runs of
// whitespace collapsed to single spaces.
func StripHTML(s string) string {
	initPolicies()
	return strings.Join(strings.Fields(html.UnescapeString(strictPolicy.Sanitize(s))), " ")
}
