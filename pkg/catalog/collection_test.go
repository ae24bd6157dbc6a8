package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/catalog"
)

func product(id int64, name string) catalog.Product {
	return catalog.Product{Name: name, Price: 1}.WithID(id)
}

func names(c *catalog.Collection) []string {
	out := make([]string, 0, c.Len())
	for _, p := range c.Products() {
		out = append(out, p.Name)
	}
	return out
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("records without id get positional keys", func(t *testing.T) {
		t.Parallel()

		c := catalog.Load([]catalog.Product{{Name: "a"}, {Name: "b"}})
		require.Equal(t, 2, c.Len())
		assert.Equal(t, int64(0), c.Rows[0].Key)
		assert.Equal(t, int64(1), c.Rows[1].Key)
		assert.False(t, c.Rows[0].Persisted())
		assert.False(t, c.Rows[1].Persisted())
	})

	t.Run("server ids become keys", func(t *testing.T) {
		t.Parallel()

		c := catalog.Load([]catalog.Product{product(42, "a"), {Name: "b"}})
		assert.Equal(t, int64(42), c.Rows[0].Key)
		assert.True(t, c.Rows[0].Persisted())
		assert.Equal(t, int64(1), c.Rows[1].Key)
	})

	t.Run("empty response", func(t *testing.T) {
		t.Parallel()

		c := catalog.Load(nil)
		assert.Zero(t, c.Len())
		page := c.Page(1, 5)
		assert.Empty(t, page.Rows)
		assert.Equal(t, 1, page.TotalPages)
	})
}

func TestFallbackKeysNeverMatchServerIDs(t *testing.T) {
	t.Parallel()

	c := catalog.Load([]catalog.Product{{Name: "draft"}, product(7, "saved")})

	_, ok := c.Find(0)
	assert.False(t, ok)
	assert.False(t, c.Remove(0))
	assert.False(t, c.Replace(product(0, "x")))
	assert.Equal(t, []string{"draft", "saved"}, names(c))
}

func TestRemove(t *testing.T) {
	t.Parallel()

	c := catalog.Load([]catalog.Product{product(1, "a"), product(2, "b"), product(3, "c")})

	assert.True(t, c.Remove(2))
	assert.Equal(t, []string{"a", "c"}, names(c))

	assert.False(t, c.Remove(99))
	assert.Equal(t, []string{"a", "c"}, names(c))
}

func TestAppendAndReplace(t *testing.T) {
	t.Parallel()

	c := catalog.Load([]catalog.Product{product(1, "a"), product(2, "b")})

	c.Append(product(3, "c"))
	assert.Equal(t, []string{"a", "b", "c"}, names(c))
	assert.Equal(t, int64(3), c.Rows[2].Key)

	updated := product(2, "b2")
	updated.Price = 99
	assert.True(t, c.Replace(updated))
	assert.Equal(t, []string{"a", "b2", "c"}, names(c))

	got, ok := c.Find(2)
	require.True(t, ok)
	assert.InDelta(t, 99, got.Price, 0.001)

	first, _ := c.Find(1)
	assert.Equal(t, "a", first.Name)

	assert.False(t, c.Replace(catalog.Product{Name: "draft"}))
}

func TestAppendWithoutID(t *testing.T) {
	t.Parallel()

	c := catalog.Load([]catalog.Product{product(10, "a")})
	c.Append(catalog.Product{Name: "no id"})

	assert.Equal(t, int64(1), c.Rows[1].Key)
	assert.False(t, c.Rows[1].Persisted())
}

func TestClone(t *testing.T) {
	t.Parallel()

	c := catalog.Load([]catalog.Product{product(1, "a"), product(2, "b"), product(3, "c")})
	cp := c.Clone()
	cp.Remove(1)

	assert.Equal(t, []string{"a", "b", "c"}, names(c))
	assert.Equal(t, []string{"b", "c"}, names(cp))
}

func TestPage(t *testing.T) {
	t.Parallel()

	records := make([]catalog.Product, 0, 12)
	for i := range 12 {
		records = append(records, product(int64(i+1), string(rune('a'+i))))
	}
	c := catalog.Load(records)

	tests := []struct {
		name      string
		number    int
		size      int
		wantSize  int
		wantPage  int
		wantFirst int
		wantLast  int
		wantPages int
	}{
		{name: "first page default size", number: 1, size: 5, wantSize: 5, wantPage: 1, wantFirst: 1, wantLast: 5, wantPages: 3},
		{name: "last partial page", number: 3, size: 5, wantSize: 5, wantPage: 3, wantFirst: 11, wantLast: 12, wantPages: 3},
		{name: "size ten", number: 2, size: 10, wantSize: 10, wantPage: 2, wantFirst: 11, wantLast: 12, wantPages: 2},
		{name: "unsupported size falls back", number: 1, size: 25, wantSize: 5, wantPage: 1, wantFirst: 1, wantLast: 5, wantPages: 3},
		{name: "page past end is clamped", number: 9, size: 5, wantSize: 5, wantPage: 3, wantFirst: 11, wantLast: 12, wantPages: 3},
		{name: "page zero is clamped", number: 0, size: 10, wantSize: 10, wantPage: 1, wantFirst: 1, wantLast: 10, wantPages: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := c.Page(tt.number, tt.size)
			assert.Equal(t, tt.wantSize, p.Size)
			assert.Equal(t, tt.wantPage, p.Number)
			assert.Equal(t, tt.wantFirst, p.First())
			assert.Equal(t, tt.wantLast, p.Last())
			assert.Equal(t, tt.wantPages, p.TotalPages)
			assert.Equal(t, 12, p.Total)
		})
	}
}

func TestPageNavigation(t *testing.T) {
	t.Parallel()

	c := catalog.Load(make([]catalog.Product, 7))
	first := c.Page(1, 5)
	assert.False(t, first.HasPrev())
	assert.True(t, first.HasNext())

	second := c.Page(2, 5)
	assert.True(t, second.HasPrev())
	assert.False(t, second.HasNext())
}
