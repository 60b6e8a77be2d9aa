package cache

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	dom "github.com/Ashishchaubey550/Car-Dealer-Backend/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	keyList   = "product:list"
	keySearch = "product:search:"
)

// ProductCache caches product list and search results in Redis.
// Write paths invalidate everything; queries fall through to Postgres on miss.
type ProductCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewProductCache returns a new ProductCache.
func NewProductCache(rdb *redis.Client, ttl time.Duration) *ProductCache {
	return &ProductCache{rdb: rdb, ttl: ttl}
}

// GetList returns the cached full listing or nil if miss.
func (c *ProductCache) GetList(ctx context.Context) ([]dom.Product, error) {
	return c.get(ctx, keyList)
}

// SetList stores the full listing in cache.
func (c *ProductCache) SetList(ctx context.Context, list []dom.Product) error {
	return c.set(ctx, keyList, list)
}

// GetSearch returns the cached search result for key, or nil if miss.
func (c *ProductCache) GetSearch(ctx context.Context, key string) ([]dom.Product, error) {
	return c.get(ctx, keySearch+normalizeKey(key))
}

// SetSearch stores a search result in cache.
func (c *ProductCache) SetSearch(ctx context.Context, key string, list []dom.Product) error {
	return c.set(ctx, keySearch+normalizeKey(key), list)
}

// InvalidateAll removes the list key and all search keys (cache invalidation on write).
func (c *ProductCache) InvalidateAll(ctx context.Context) error {
	if err := c.rdb.Del(ctx, keyList).Err(); err != nil {
		return err
	}
	iter := c.rdb.Scan(ctx, 0, keySearch+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (c *ProductCache) get(ctx context.Context, key string) ([]dom.Product, error) {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []dom.Product
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *ProductCache) set(ctx context.Context, key string, list []dom.Product) error {
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, b, c.ttl).Err()
}

func normalizeKey(k string) string {
	return strings.TrimSpace(strings.ToLower(k))
}
