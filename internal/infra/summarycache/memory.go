package summarycache

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/yanqian/dialogsum/internal/domain/summarizer"
)

const defaultMaxEntries = 1024

// MemoryCache is a process local LRU with per entry expiry.
type MemoryCache struct {
	mu         sync.Mutex
	entries    map[string]*list.Element
	order      *list.List
	maxEntries int
	now        func() time.Time
}

type memoryEntry struct {
	key       string
	summary   string
	expiresAt time.Time
}

// NewMemoryCache constructs an LRU holding at most maxEntries summaries.
func NewMemoryCache(maxEntries int) *MemoryCache {
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}
	return &MemoryCache{
		entries:    make(map[string]*list.Element, maxEntries),
		order:      list.New(),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Get implements summarizer.Cache.
func (c *MemoryCache) Get(_ context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		return "", false, nil
	}
	entry := elem.Value.(*memoryEntry)
	if !entry.expiresAt.IsZero() && c.now().After(entry.expiresAt) {
		c.removeElement(elem)
		return "", false, nil
	}
	c.order.MoveToFront(elem)
	return entry.summary, true, nil
}

// Set implements summarizer.Cache. A non-positive ttl never expires.
func (c *MemoryCache) Set(_ context.Context, key, summary string, ttl time.Duration) error {
	if key == "" || summary == "" {
		return nil
	}
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = c.now().Add(ttl)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		entry := elem.Value.(*memoryEntry)
		entry.summary = summary
		entry.expiresAt = expiresAt
		c.order.MoveToFront(elem)
		return nil
	}

	c.entries[key] = c.order.PushFront(&memoryEntry{key: key, summary: summary, expiresAt: expiresAt})
	for c.order.Len() > c.maxEntries {
		c.removeElement(c.order.Back())
	}
	return nil
}

// Len reports the number of cached summaries.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func (c *MemoryCache) removeElement(elem *list.Element) {
	if elem == nil {
		return
	}
	entry := elem.Value.(*memoryEntry)
	delete(c.entries, entry.key)
	c.order.Remove(elem)
}

var _ summarizer.Cache = (*MemoryCache)(nil)
