package label

import (
	"fmt"
	"sync"
)

// Cache wraps an Engine with an in-memory LRU of placement results. Panning
// and zooming re-request the same viewports constantly; caching keyed on
// dataset version plus viewport makes repeat requests free. Any dataset or
// filter change bumps the version and naturally invalidates old entries.
type Cache struct {
	engine *Engine
	cache  *lruCache
}

// NewCache creates a cache decorator around an engine.
func NewCache(engine *Engine, maxEntries int) *Cache {
	return &Cache{
		engine: engine,
		cache:  newLRUCache(maxEntries),
	}
}

// Place returns cached placements for (version, viewport, inputs) or computes
// and stores them.
func (c *Cache) Place(version uint64, vp Viewport, inputs []Input) []Placement {
	key := fmt.Sprintf("%d|%.4f,%.4f,%.4f,%.4f|%gx%g|%d",
		version, vp.MinLat, vp.MaxLat, vp.MinLon, vp.MaxLon, vp.Width, vp.Height, len(inputs))
	if placements, ok := c.cache.get(key); ok {
		return placements
	}
	placements := c.engine.Place(vp.Width, vp.Height, inputs)
	c.cache.put(key, placements)
	return placements
}

// lruCache is a simple thread-safe LRU cache for placement results.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value []Placement
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) ([]Placement, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value []Placement) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
