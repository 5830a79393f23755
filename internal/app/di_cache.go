package app

import (
	"context"
	"fmt"
	"time"

	"github.com/invoicedash/dashboard/internal/pagecache"
)

// PageCache returns the listing cache. It is backed by Redis when the cache is enabled
// and is a no-op otherwise.
func (c *Container) PageCache() (pagecache.Cache, error) {
	var err error
	c.pageCacheInit.Do(func() {
		c.pageCache, err = c.initPageCache()
		if err != nil {
			c.initErrors["pageCache"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["pageCache"]; exists {
		return nil, storedErr
	}
	return c.pageCache, nil
}

// initPageCache connects to Redis and wraps the cache with metrics if enabled.
func (c *Container) initPageCache() (pagecache.Cache, error) {
	if !c.config.CacheEnabled {
		return pagecache.NewNop(), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	redisCache, err := pagecache.NewRedisCache(ctx, pagecache.RedisConfig{
		Addr:     c.config.RedisAddr,
		Password: c.config.RedisPassword,
		DB:       c.config.RedisDB,
		TTL:      c.config.CacheTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create page cache: %w", err)
	}
	c.redisCache = redisCache

	if c.config.MetricsEnabled {
		cacheMetrics, err := c.CacheMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get cache metrics for page cache: %w", err)
		}
		return pagecache.NewCacheWithMetrics(redisCache, cacheMetrics), nil
	}

	return redisCache, nil
}
