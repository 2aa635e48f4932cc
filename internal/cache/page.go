// Package cache holds rendered views until the data behind them changes.
package cache

import (
	"context"
	"log/slog"
	"strings"
	"time"

	goCache "github.com/patrickmn/go-cache"
)

// Page is a rendered view.
type Page struct {
	ContentType string
	Body        []byte
	RenderedAt  time.Time
}

// PageCache stores rendered pages keyed by request path. Revalidating a path
// drops the page at that path and every page nested beneath it.
type PageCache struct {
	cache *goCache.Cache
}

func NewPageCache(ttl, cleanupInterval time.Duration) *PageCache {
	return &PageCache{cache: goCache.New(ttl, cleanupInterval)}
}

func (c *PageCache) Get(_ context.Context, path string) (Page, bool) {
	v, ok := c.cache.Get(normalize(path))
	if !ok {
		return Page{}, false
	}
	return v.(Page), true
}

func (c *PageCache) Set(_ context.Context, path string, page Page) {
	c.cache.SetDefault(normalize(path), page)
}

// Revalidate marks the cached rendering of path as stale.
func (c *PageCache) Revalidate(_ context.Context, path string) {
	path = normalize(path)
	dropped := 0
	for key := range c.cache.Items() {
		if key == path || strings.HasPrefix(key, path+"/") || strings.HasPrefix(key, path+"?") {
			c.cache.Delete(key)
			dropped++
		}
	}
	slog.Debug("page cache revalidated", "path", path, "dropped", dropped)
}

func (c *PageCache) Len() int {
	return c.cache.ItemCount()
}

func normalize(path string) string {
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}
