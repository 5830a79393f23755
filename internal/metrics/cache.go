package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// CacheMetrics records page cache lookups and revalidations per listing path.
type CacheMetrics interface {
	// RecordLookup counts a cache read as a hit or a miss.
	RecordLookup(ctx context.Context, path string, hit bool)

	// RecordRevalidation counts a revalidation of path with its status ("success" or "error").
	RecordRevalidation(ctx context.Context, path, status string)
}

// cacheMetrics implements CacheMetrics using OpenTelemetry counters.
type cacheMetrics struct {
	lookupCounter       metric.Int64Counter
	revalidationCounter metric.Int64Counter
}

// NewCacheMetrics creates a CacheMetrics implementation using the provided meter provider.
func NewCacheMetrics(meterProvider metric.MeterProvider, namespace string) (CacheMetrics, error) {
	meter := meterProvider.Meter(namespace)

	lookupCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_page_cache_lookups_total", namespace),
		metric.WithDescription("Total number of page cache lookups"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache lookup counter: %w", err)
	}

	revalidationCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_page_cache_revalidations_total", namespace),
		metric.WithDescription("Total number of page cache path revalidations"),
		metric.WithUnit("{revalidation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache revalidation counter: %w", err)
	}

	return &cacheMetrics{
		lookupCounter:       lookupCounter,
		revalidationCounter: revalidationCounter,
	}, nil
}

// RecordLookup increments the lookup counter with path and result labels.
func (c *cacheMetrics) RecordLookup(ctx context.Context, path string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	c.lookupCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("path", path),
			attribute.String("result", result),
		),
	)
}

// RecordRevalidation increments the revalidation counter with path and status labels.
func (c *cacheMetrics) RecordRevalidation(ctx context.Context, path, status string) {
	c.revalidationCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("path", path),
			attribute.String("status", status),
		),
	)
}

// NoOpCacheMetrics is a no-op implementation of CacheMetrics for when metrics are disabled.
type NoOpCacheMetrics struct{}

// NewNoOpCacheMetrics creates a no-op CacheMetrics implementation.
func NewNoOpCacheMetrics() CacheMetrics {
	return &NoOpCacheMetrics{}
}

// RecordLookup does nothing when metrics are disabled.
func (n *NoOpCacheMetrics) RecordLookup(ctx context.Context, path string, hit bool) {}

// RecordRevalidation does nothing when metrics are disabled.
func (n *NoOpCacheMetrics) RecordRevalidation(ctx context.Context, path, status string) {}
