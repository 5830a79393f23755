// Package pagecache caches rendered dashboard listings per path and lets a
// mutation drop every cached entry of a path at once.
package pagecache

import (
	"context"
	"encoding/json"
)

// Entry is the outcome of a lookup. Generation is the version of the path the
// lookup saw; a value loaded from storage after a miss is stored with it, so a
// load that races with Revalidate is never served afterwards.
type Entry struct {
	Value      []byte
	Hit        bool
	Generation int64
}

// Cache stores listing payloads grouped by request path.
type Cache interface {
	// Get returns the cached value of key under path.
	Get(ctx context.Context, path, key string) (Entry, error)
	// Set stores value for key under the given generation of path.
	Set(ctx context.Context, path, key string, generation int64, value []byte) error
	// Revalidate marks every entry cached under path as stale.
	Revalidate(ctx context.Context, path string) error
}

// Nop is a Cache that never stores anything.
type Nop struct{}

// NewNop returns a disabled cache.
func NewNop() Cache {
	return Nop{}
}

func (Nop) Get(ctx context.Context, path, key string) (Entry, error) {
	return Entry{}, nil
}

func (Nop) Set(ctx context.Context, path, key string, generation int64, value []byte) error {
	return nil
}

func (Nop) Revalidate(ctx context.Context, path string) error {
	return nil
}

// GetJSON decodes a cached JSON value into dst. A value that no longer decodes is
// reported as a miss with the generation it was read under.
func GetJSON(ctx context.Context, c Cache, path, key string, dst any) (Entry, error) {
	entry, err := c.Get(ctx, path, key)
	if err != nil || !entry.Hit {
		return entry, err
	}
	if err := json.Unmarshal(entry.Value, dst); err != nil {
		return Entry{Generation: entry.Generation}, nil
	}
	return entry, nil
}

// SetJSON encodes value as JSON and caches it under generation.
func SetJSON(ctx context.Context, c Cache, path, key string, generation int64, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.Set(ctx, path, key, generation, raw)
}
