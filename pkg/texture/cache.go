package texture

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Cache is a concurrency-safe pyramid cache keyed by file path. Failed
// loads are returned to the caller and retried on the next Get.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*Pyramid
	group singleflight.Group
	load  func(path string) (*Pyramid, error)
}

// NewCache creates an empty cache that reads files with Load.
func NewCache() *Cache {
	return &Cache{
		items: make(map[string]*Pyramid),
		load:  Load,
	}
}

// Get returns the pyramid for path, loading and caching it on first use.
func (c *Cache) Get(path string) (*Pyramid, error) {
	// Fast path: read lock
	c.mu.RLock()
	p, ok := c.items[path]
	c.mu.RUnlock()
	if ok {
		return p, nil
	}

	// Slow path: concurrent callers share one load
	v, err, _ := c.group.Do(path, func() (any, error) {
		c.mu.RLock()
		existing, ok := c.items[path]
		c.mu.RUnlock()
		if ok {
			return existing, nil
		}

		p, err := c.load(path)
		if err != nil {
			return nil, err
		}

		// Write lock with double-check
		c.mu.Lock()
		defer c.mu.Unlock()
		if existing, ok := c.items[path]; ok {
			return existing, nil
		}
		c.items[path] = p
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Pyramid), nil
}

// Put registers a pyramid under name, replacing any previous entry.
func (c *Cache) Put(name string, p *Pyramid) {
	c.mu.Lock()
	c.items[name] = p
	c.mu.Unlock()
}

// Len returns the number of cached pyramids.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Preload loads every path concurrently and returns the first error.
func (c *Cache) Preload(ctx context.Context, paths ...string) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, err := c.Get(path)
			return err
		})
	}
	return g.Wait()
}
