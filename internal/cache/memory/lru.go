package memory

import (
	"container/list"
	"context"
	"sync"

	"github.com/barhop/barhop/internal/domain"
)

// DefaultLogoCacheSize bounds the in-process logo cache. Logo URLs are tiny;
// the cap exists to keep a long-lived process from growing without bound.
const DefaultLogoCacheSize = 2048

type lruEntry struct {
	key string
	url string
}

// LogoCache is a bounded in-process LRU cache for resolved logo URLs,
// including negative results (an empty URL means "looked up, nothing found").
// Safe for concurrent use.
type LogoCache struct {
	mu    sync.Mutex
	cap   int
	order *list.List
	items map[string]*list.Element
}

// NewLogoCache creates a LogoCache holding at most capacity entries.
// A non-positive capacity falls back to DefaultLogoCacheSize.
func NewLogoCache(capacity int) *LogoCache {
	if capacity <= 0 {
		capacity = DefaultLogoCacheSize
	}
	return &LogoCache{
		cap:   capacity,
		order: list.New(),
		items: make(map[string]*list.Element),
	}
}

// Get returns the cached URL for key and whether the key was present.
func (c *LogoCache) Get(ctx context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		return "", false, nil
	}
	c.order.MoveToFront(el)
	return el.Value.(*lruEntry).url, true, nil
}

// Set stores url under key, evicting the least recently used entry when the
// cache is full.
func (c *LogoCache) Set(ctx context.Context, key, url string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		el.Value.(*lruEntry).url = url
		c.order.MoveToFront(el)
		return nil
	}

	c.items[key] = c.order.PushFront(&lruEntry{key: key, url: url})
	if c.order.Len() > c.cap {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.items, oldest.Value.(*lruEntry).key)
	}
	return nil
}

// Len returns the number of cached entries.
func (c *LogoCache) Len(ctx context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len(), nil
}

var _ domain.LogoCache = (*LogoCache)(nil)
