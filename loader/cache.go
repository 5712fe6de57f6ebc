package loader

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/spektr-org/eventboard/registrants"
)

// Cache memoizes loads by path. An entry is reused while the file's size
// and modification time are unchanged. Concurrent loads of one path share
// a single read.
type Cache struct {
	loader *Loader

	mu      sync.Mutex
	entries map[string]cacheEntry
	group   singleflight.Group
}

type cacheEntry struct {
	modTime time.Time
	size    int64
	dataset registrants.Dataset
}

// NewCache wraps l. A nil l uses New(nil).
func NewCache(l *Loader) *Cache {
	if l == nil {
		l = New(nil)
	}
	return &Cache{loader: l, entries: make(map[string]cacheEntry)}
}

// Load returns the cached Dataset for path, reading it when absent or stale.
func (c *Cache) Load(ctx context.Context, path string) (registrants.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return registrants.Dataset{}, err
	}

	info, err := os.Stat(path)
	if err != nil {
		reason := "cannot stat source"
		if errors.Is(err, fs.ErrNotExist) {
			reason = "source file not found"
		}
		return registrants.Dataset{}, &LoadError{Path: path, Reason: reason, Err: err}
	}

	c.mu.Lock()
	entry, ok := c.entries[path]
	c.mu.Unlock()
	if ok && entry.size == info.Size() && entry.modTime.Equal(info.ModTime()) {
		return entry.dataset, nil
	}

	v, err, _ := c.group.Do(path, func() (any, error) {
		ds, err := c.loader.Load(path)
		if err != nil {
			return registrants.Dataset{}, err
		}
		c.mu.Lock()
		c.entries[path] = cacheEntry{modTime: info.ModTime(), size: info.Size(), dataset: ds}
		c.mu.Unlock()
		return ds, nil
	})
	if err != nil {
		return registrants.Dataset{}, err
	}
	return v.(registrants.Dataset), nil
}

// Invalidate drops the cached entry for path.
func (c *Cache) Invalidate(path string) {
	c.mu.Lock()
	delete(c.entries, path)
	c.mu.Unlock()
}
