package highlight

import "sync"

// Cache memoizes another Highlighter's results per line text.
// Rows are re-highlighted on every frame, and most frames after a cursor
// move show the same lines again.
type Cache struct {
	mu sync.Mutex

	next Highlighter

	// lineCache caches highlighted lines
	lineCache map[cacheKey]cachedLine

	// maxCacheSize limits the cache size
	maxCacheSize int

	hits, misses int
}

type cacheKey struct {
	text, language, theme string
}

// cachedLine holds a cached highlight result.
type cachedLine struct {
	spans []Span
	err   error
}

// NewCache wraps next with a cache of at most maxCache lines.
func NewCache(next Highlighter, maxCache int) *Cache {
	if maxCache <= 0 {
		maxCache = 1000
	}
	return &Cache{
		next:         next,
		lineCache:    make(map[cacheKey]cachedLine),
		maxCacheSize: maxCache,
	}
}

// Highlight implements Highlighter.
func (c *Cache) Highlight(text, language, theme string) ([]Span, error) {
	key := cacheKey{text: text, language: language, theme: theme}

	c.mu.Lock()
	if hit, ok := c.lineCache[key]; ok {
		c.hits++
		c.mu.Unlock()
		return hit.spans, hit.err
	}
	c.misses++
	c.mu.Unlock()

	spans, err := c.next.Highlight(text, language, theme)

	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.lineCache) >= c.maxCacheSize {
		c.evictCache()
	}
	c.lineCache[key] = cachedLine{spans: spans, err: err}
	return spans, err
}

// Stats returns the cache hit and miss counts.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// Len returns the number of cached lines.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lineCache)
}

// evictCache removes some entries from the cache.
func (c *Cache) evictCache() {
	// Simple strategy: remove ~25% of entries
	toRemove := len(c.lineCache) / 4
	if toRemove < 1 {
		toRemove = 1
	}

	removed := 0
	for key := range c.lineCache {
		delete(c.lineCache, key)
		removed++
		if removed >= toRemove {
			break
		}
	}
}
