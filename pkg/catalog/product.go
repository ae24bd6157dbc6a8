// Package catalog holds the product model and the in-memory collection the
// admin grid works on.
//
// The remote API is the source of truth. A Collection is a snapshot of one
// wholesale fetch plus the mutations the user made since; it is never
// reconciled with the server beyond that.
package catalog

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Product is a catalog item as exchanged with the remote API.
// A product without ID is an unsaved draft.
type Product struct {
	ID          *int64  `json:"id,omitempty"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// HasID reports whether the server assigned an id.
func (p Product) HasID() bool {
	return p.ID != nil
}

// IDValue returns the server id, or 0 for drafts.
func (p Product) IDValue() int64 {
	if p.ID == nil {
		return 0
	}
	return *p.ID
}

// WithID returns a copy of p carrying id.
func (p Product) WithID(id int64) Product {
	p.ID = &id
	return p
}

// FormatPrice renders a price with exactly two decimals, e.g. 9 -> "9.00".
func FormatPrice(price float64) string {
	return fmt.Sprintf("%.2f", price)
}

// Excerpt returns the first n runes of text with surrounding whitespace
// trimmed, followed by an ellipsis when something was cut.
func Excerpt(text string, n int) string {
	text = strings.TrimSpace(text)
	if n <= 0 || utf8.RuneCountInString(text) <= n {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:n])) + "..."
}
