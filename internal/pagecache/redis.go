package pagecache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "pagecache"

// RedisConfig holds the Redis connection settings of the page cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// RedisCache keeps one generation counter per path. Entries are stored under the
// generation their lookup saw, so incrementing the counter orphans them and the
// TTL reclaims the memory.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache connects to Redis and verifies the connection.
func NewRedisCache(ctx context.Context, cfg RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisCache{client: client, ttl: cfg.TTL}, nil
}

func generationKey(path string) string {
	return keyPrefix + ":gen:" + path
}

func entryKey(path string, generation int64, key string) string {
	return keyPrefix + ":entry:" + path + ":" + strconv.FormatInt(generation, 10) + ":" + key
}

func (c *RedisCache) generation(ctx context.Context, path string) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey(path)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read cache generation: %w", err)
	}
	return gen, nil
}

// Get returns the entry stored for key under the current generation of path.
func (c *RedisCache) Get(ctx context.Context, path, key string) (Entry, error) {
	gen, err := c.generation(ctx, path)
	if err != nil {
		return Entry{}, err
	}

	value, err := c.client.Get(ctx, entryKey(path, gen, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Entry{Generation: gen}, nil
	}
	if err != nil {
		return Entry{}, fmt.Errorf("failed to get value from redis: %w", err)
	}
	return Entry{Value: value, Hit: true, Generation: gen}, nil
}

// Set stores value for key under generation. A generation older than the current
// one leaves the value unreachable.
func (c *RedisCache) Set(ctx context.Context, path, key string, generation int64, value []byte) error {
	if err := c.client.Set(ctx, entryKey(path, generation, key), value, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set value in redis: %w", err)
	}
	return nil
}

// Revalidate bumps the generation of path.
func (c *RedisCache) Revalidate(ctx context.Context, path string) error {
	if err := c.client.Incr(ctx, generationKey(path)).Err(); err != nil {
		return fmt.Errorf("failed to revalidate %s: %w", path, err)
	}
	return nil
}

// Ping checks the Redis connection.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (c *RedisCache) Close() error {
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("failed to close redis connection: %w", err)
	}
	return nil
}
