package fxrates

import (
	"sort"
	"strings"

	gocache "github.com/patrickmn/go-cache"
)

// Cache holds API rates keyed by (day, currency) for the life of the process.
// Entries never expire; Reset exists for test isolation.
type Cache struct {
	rates  *gocache.Cache
	misses *gocache.Cache
}

type CacheStats struct {
	Entries    int      `json:"cached_rates"`
	Currencies []string `json:"currencies"`
}

func NewCache() *Cache {
	return &Cache{
		rates:  gocache.New(gocache.NoExpiration, 0),
		misses: gocache.New(gocache.NoExpiration, 0),
	}
}

func cacheKey(day, currency string) string {
	return day + "|" + currency
}

func (c *Cache) Get(day, currency string) (float64, bool) {
	v, ok := c.rates.Get(cacheKey(day, currency))
	if !ok {
		return 0, false
	}
	return v.(float64), true
}

// Set stores a rate. Concurrent writers for the same key are last-writer-wins.
func (c *Cache) Set(day, currency string, rate float64) {
	k := cacheKey(day, currency)
	c.rates.Set(k, rate, gocache.NoExpiration)
	c.misses.Delete(k)
}

// markFailed remembers that the API could not answer for a key so later
// lookups go straight to the fallback table.
func (c *Cache) markFailed(day, currency string) {
	c.misses.Set(cacheKey(day, currency), struct{}{}, gocache.NoExpiration)
}

func (c *Cache) failed(day, currency string) bool {
	_, ok := c.misses.Get(cacheKey(day, currency))
	return ok
}

func (c *Cache) Reset() {
	c.rates.Flush()
	c.misses.Flush()
}

func (c *Cache) Stats() CacheStats {
	items := c.rates.Items()
	seen := make(map[string]struct{})
	for k := range items {
		if i := strings.LastIndexByte(k, '|'); i >= 0 {
			seen[k[i+1:]] = struct{}{}
		}
	}
	ccys := make([]string, 0, len(seen))
	for ccy := range seen {
		ccys = append(ccys, ccy)
	}
	sort.Strings(ccys)
	return CacheStats{Entries: len(items), Currencies: ccys}
}
