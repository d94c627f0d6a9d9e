// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"stock_dashboard/internal/feature/indexprices/domain/entity"
	"stock_dashboard/internal/feature/indexprices/usecase"
)

// DefaultIndexPriceTTL keeps the NSE endpoint from being hit on every dashboard refresh.
const DefaultIndexPriceTTL = 15 * time.Second

// CachingIndexPriceRepository decorates an IndexPriceRepository with a short-lived Redis cache.
// A nil Redis client bypasses the cache entirely.
type CachingIndexPriceRepository struct {
	inner     usecase.IndexPriceRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.IndexPriceRepository = (*CachingIndexPriceRepository)(nil)

// NewCachingIndexPriceRepository decorates an IndexPriceRepository with Redis caching.
// If ttl is 0, it defaults to DefaultIndexPriceTTL. If namespace is empty, it uses "indexprices".
func NewCachingIndexPriceRepository(rdb *redis.Client, ttl time.Duration, inner usecase.IndexPriceRepository, namespace string) *CachingIndexPriceRepository {
	if ttl <= 0 {
		ttl = DefaultIndexPriceTTL
	}
	if namespace == "" {
		namespace = "indexprices"
	}
	return &CachingIndexPriceRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// LastPrice returns the cached quote when present, otherwise asks the inner repository and caches its answer.
// Upstream errors are never cached.
func (c *CachingIndexPriceRepository) LastPrice(ctx context.Context, index string) (entity.IndexQuote, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.LastPrice(ctx, index)
	}

	key := c.cacheKey(index)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var q entity.IndexQuote
		if err := json.Unmarshal(b, &q); err == nil {
			return q, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to upstream
	q, err := c.inner.LastPrice(ctx, index)
	if err != nil {
		return entity.IndexQuote{}, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(q); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return q, nil
}

// Invalidate drops every cached index value in this namespace.
func (c *CachingIndexPriceRepository) Invalidate(ctx context.Context) error {
	if c.rdb == nil {
		return nil
	}
	return c.deleteByPattern(ctx, c.namespace+":*")
}

// cacheKey generates a cache key for one index.
func (c *CachingIndexPriceRepository) cacheKey(index string) string {
	return fmt.Sprintf("%s:%s", c.namespace, safe(index))
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingIndexPriceRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
