package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/beanfield/storefront-gateway/internal/ports"
)

// CatalogCache caches serialized catalog payloads with per-key TTLs.
type CatalogCache struct {
	client redis.UniversalClient
	prefix string
}

// NewCatalogCache creates a Redis-backed catalog cache.
func NewCatalogCache(client redis.UniversalClient) *CatalogCache {
	return &CatalogCache{client: client, prefix: "catalog:"}
}

func (c *CatalogCache) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ports.ErrCacheMiss
		}
		return nil, fmt.Errorf("redis cache get: %w", err)
	}
	return data, nil
}

func (c *CatalogCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.prefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis cache set: %w", err)
	}
	return nil
}

func (c *CatalogCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis cache delete: %w", err)
	}
	return nil
}
