package pagecache

import (
	"context"

	"github.com/invoicedash/dashboard/internal/metrics"
)

// cacheWithMetrics decorates Cache with hit, miss and revalidation counters.
type cacheWithMetrics struct {
	next    Cache
	metrics metrics.CacheMetrics
}

// NewCacheWithMetrics wraps a Cache with metrics recording.
func NewCacheWithMetrics(cache Cache, m metrics.CacheMetrics) Cache {
	return &cacheWithMetrics{next: cache, metrics: m}
}

// Get records a hit or a miss. Failed reads count as misses.
func (c *cacheWithMetrics) Get(ctx context.Context, path, key string) (Entry, error) {
	entry, err := c.next.Get(ctx, path, key)
	c.metrics.RecordLookup(ctx, path, entry.Hit && err == nil)
	return entry, err
}

func (c *cacheWithMetrics) Set(ctx context.Context, path, key string, generation int64, value []byte) error {
	return c.next.Set(ctx, path, key, generation, value)
}

// Revalidate records the outcome of the revalidation.
func (c *cacheWithMetrics) Revalidate(ctx context.Context, path string) error {
	err := c.next.Revalidate(ctx, path)

	status := "success"
	if err != nil {
		status = "error"
	}
	c.metrics.RecordRevalidation(ctx, path, status)

	return err
}
