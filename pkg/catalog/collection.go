package catalog

import "slices"

const (
	// DefaultPageSize is the grid's initial page size.
	DefaultPageSize = 5
	// ExcerptLength is how many runes of a description the catalog shows.
	ExcerptLength = 100
)

// PageSizes lists the page sizes the grid offers.
var PageSizes = []int{5, 10}

// Row is one grid row.
// Key identifies the row within this collection only. For persisted products
// it equals the server id; rows that arrived without an id get their position
// in the fetch response. Such fallback keys must never be sent to the server.
type Row struct {
	Product Product `json:"product"`
	Key     int64   `json:"key"`
}

// Persisted reports whether the row maps to a server record.
func (r Row) Persisted() bool {
	return r.Product.HasID()
}

// Collection is the ordered set of rows shown by the admin grid.
type Collection struct {
	Rows []Row `json:"rows"`
}

// Load builds a collection from a wholesale fetch, assigning positional
// fallback keys to records without an id.
func Load(records []Product) *Collection {
	c := &Collection{Rows: make([]Row, 0, len(records))}
	for i, p := range records {
		key := int64(i)
		if p.HasID() {
			key = *p.ID
		}
		c.Rows = append(c.Rows, Row{Key: key, Product: p})
	}
	return c
}

// Clone returns a copy whose rows can be changed without affecting c.
func (c *Collection) Clone() *Collection {
	return &Collection{Rows: slices.Clone(c.Rows)}
}

// Len returns the number of rows.
func (c *Collection) Len() int {
	return len(c.Rows)
}

// Products returns the products in order.
func (c *Collection) Products() []Product {
	out := make([]Product, len(c.Rows))
	for i, r := range c.Rows {
		out[i] = r.Product
	}
	return out
}

// Find returns the persisted product with the given server id.
func (c *Collection) Find(id int64) (Product, bool) {
	if i := c.index(id); i >= 0 {
		return c.Rows[i].Product, true
	}
	return Product{}, false
}

// Append adds a record returned by a create call to the end.
// A record without an id gets the next positional key.
func (c *Collection) Append(p Product) {
	key := int64(len(c.Rows))
	if p.HasID() {
		key = *p.ID
	}
	c.Rows = append(c.Rows, Row{Key: key, Product: p})
}

// Replace swaps the persisted row whose server id matches p's id.
// It reports false, changing nothing, when there is no such row.
func (c *Collection) Replace(p Product) bool {
	if !p.HasID() {
		return false
	}
	i := c.index(*p.ID)
	if i < 0 {
		return false
	}
	c.Rows[i].Product = p
	return true
}

// Remove drops the persisted row with the given server id, keeping the
// order of the rest.
func (c *Collection) Remove(id int64) bool {
	i := c.index(id)
	if i < 0 {
		return false
	}
	c.Rows = append(c.Rows[:i], c.Rows[i+1:]...)
	return true
}

// index matches on server ids only; fallback keys never match.
func (c *Collection) index(id int64) int {
	for i, r := range c.Rows {
		if r.Product.HasID() && *r.Product.ID == id {
			return i
		}
	}
	return -1
}

// Page is one slice of the collection.
type Page struct {
	Rows       []Row
	Number     int // 1-based
	Size       int
	Total      int
	TotalPages int
}

// HasPrev reports whether a previous page exists.
func (p Page) HasPrev() bool {
	return p.Number > 1
}

// HasNext reports whether a next page exists.
func (p Page) HasNext() bool {
	return p.Number < p.TotalPages
}

// First is the 1-based position of the first row on the page, 0 when empty.
func (p Page) First() int {
	if len(p.Rows) == 0 {
		return 0
	}
	return (p.Number-1)*p.Size + 1
}

// Last is the 1-based position of the last row on the page.
func (p Page) Last() int {
	if len(p.Rows) == 0 {
		return 0
	}
	return p.First() + len(p.Rows) - 1
}

// NormalizePageSize returns size when it is one of PageSizes, DefaultPageSize otherwise.
func NormalizePageSize(size int) int {
	for _, s := range PageSizes {
		if s == size {
			return size
		}
	}
	return DefaultPageSize
}

// Page slices the loaded collection. Out-of-range page numbers are clamped.
func (c *Collection) Page(number, size int) Page {
	size = NormalizePageSize(size)
	total := len(c.Rows)
	pages := max((total+size-1)/size, 1)
	number = min(max(number, 1), pages)

	start := (number - 1) * size
	end := min(start+size, total)

	return Page{
		Rows:       c.Rows[start:end],
		Number:     number,
		Size:       size,
		Total:      total,
		TotalPages: pages,
	}
}
