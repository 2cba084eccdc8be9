package catalog

import (
	"context"
	"time"

	"github.com/marketplace-next/storefront/internal/cache"
	"github.com/marketplace-next/storefront/internal/constants"
	"github.com/marketplace-next/storefront/internal/logger"

	"golang.org/x/sync/singleflight"
)

const defaultCacheTTL = time.Minute

// CachedLookup 带 Redis 缓存的商品查询，同一商品的并发未命中只回源一次
type CachedLookup struct {
	next  Lookup
	cache *cache.Store
	ttl   time.Duration
	group singleflight.Group
}

// NewCachedLookup 创建带缓存的商品查询
func NewCachedLookup(next Lookup, store *cache.Store, ttl time.Duration) *CachedLookup {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &CachedLookup{next: next, cache: store, ttl: ttl}
}

func productCacheKey(productID string) string {
	return constants.CacheKeyProduct + ":" + productID
}

// Product 查询商品
func (l *CachedLookup) Product(ctx context.Context, productID string) (*Product, error) {
	if !l.cache.Enabled() {
		return l.next.Product(ctx, productID)
	}
	var cached Product
	found, err := l.cache.GetJSON(ctx, productCacheKey(productID), &cached)
	if err != nil {
		logger.Warnw("catalog_cache_get_failed", "product_id", productID, "error", err)
	}
	if found {
		return &cached, nil
	}

	v, err, _ := l.group.Do(productID, func() (interface{}, error) {
		product, err := l.next.Product(ctx, productID)
		if err != nil {
			return nil, err
		}
		if err := l.cache.SetJSON(ctx, productCacheKey(productID), product, l.ttl); err != nil {
			logger.Warnw("catalog_cache_set_failed", "product_id", productID, "error", err)
		}
		return product, nil
	})
	if err != nil {
		return nil, err
	}
	product := *v.(*Product)
	return &product, nil
}

// Invalidate 清除商品缓存
func (l *CachedLookup) Invalidate(ctx context.Context, productID string) error {
	err := l.cache.Del(ctx, productCacheKey(productID))
	if err != nil {
		logger.Warnw("catalog_cache_invalidate_failed", "product_id", productID, "error", err)
	}
	return err
}
