package filter

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/rcliao/promptmate/internal/catalog"
)

// DefaultCacheSize is the number of visible sets kept by NewCache when size
// is not positive.
const DefaultCacheSize = 128

// Cache memoizes ComputeVisible for one catalog, keyed by the
// (query, selection, custom options) triple. Returned values are shared and
// must not be modified.
type Cache struct {
	cat   *catalog.Catalog
	cache *lru.Cache[string, Visible]
}

// NewCache creates a visible-set cache bound to cat.
func NewCache(cat *catalog.Catalog, size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	c, err := lru.New[string, Visible](size)
	if err != nil {
		return nil, err
	}
	return &Cache{cat: cat, cache: c}, nil
}

// Visible returns the cached result for the triple, computing it on a miss.
func (c *Cache) Visible(custom, selection []string, query string) Visible {
	key := cacheKey(custom, selection, query)
	if v, ok := c.cache.Get(key); ok {
		return v
	}
	v := ComputeVisible(c.cat, custom, selection, query)
	c.cache.Add(key, v)
	return v
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	return c.cache.Len()
}

func cacheKey(custom, selection []string, query string) string {
	var sb strings.Builder
	sb.WriteString(Normalize(query))
	sb.WriteByte(0x1f)
	sb.WriteString(strings.Join(selection, "\x1e"))
	sb.WriteByte(0x1f)
	sb.WriteString(strings.Join(custom, "\x1e"))
	return sb.String()
}
