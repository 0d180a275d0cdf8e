package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"salepoint/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	productsKey = "catalog:products"
	servicesKey = "catalog:services"
)

// CatalogCache is a read-through cache over the catalog listings.
// Redis failures degrade to the database; they never fail a request.
// A nil client disables caching entirely.
type CatalogCache struct {
	inner queries.CatalogViewRepo
	rdb   *redis.Client
	ttl   time.Duration
}

func NewCatalogCache(inner queries.CatalogViewRepo, rdb *redis.Client, ttl time.Duration) *CatalogCache {
	return &CatalogCache{inner: inner, rdb: rdb, ttl: ttl}
}

func (c *CatalogCache) FindProductByID(ctx context.Context, id uuid.UUID) (*queries.ProductView, error) {
	return c.inner.FindProductByID(ctx, id)
}

func (c *CatalogCache) FindServiceByID(ctx context.Context, id uuid.UUID) (*queries.ServiceView, error) {
	return c.inner.FindServiceByID(ctx, id)
}

func (c *CatalogCache) FindAllProducts(ctx context.Context) ([]*queries.ProductView, error) {
	var cached []*queries.ProductView
	if c.lookup(ctx, productsKey, &cached) {
		return cached, nil
	}

	views, err := c.inner.FindAllProducts(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, productsKey, views)
	return views, nil
}

func (c *CatalogCache) FindAllServices(ctx context.Context) ([]*queries.ServiceView, error) {
	var cached []*queries.ServiceView
	if c.lookup(ctx, servicesKey, &cached) {
		return cached, nil
	}

	views, err := c.inner.FindAllServices(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, servicesKey, views)
	return views, nil
}

func (c *CatalogCache) Invalidate(ctx context.Context) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, productsKey, servicesKey).Err()
}

func (c *CatalogCache) lookup(ctx context.Context, key string, dest any) bool {
	if c.rdb == nil {
		return false
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("catalog cache read failed", "key", key, "error", err)
		}
		return false
	}
	if err = json.Unmarshal(data, dest); err != nil {
		slog.Warn("catalog cache entry corrupt", "key", key, "error", err)
		return false
	}
	return true
}

func (c *CatalogCache) store(ctx context.Context, key string, value any) {
	if c.rdb == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		slog.Warn("catalog cache encode failed", "key", key, "error", err)
		return
	}
	if err = c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		slog.Warn("catalog cache write failed", "key", key, "error", err)
	}
}
