package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ikkim/storefront/internal/app/model"
	"github.com/ikkim/storefront/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// ProductCache stores product detail as JSON under product:{id}
type ProductCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewProductCache(client *redis.Client, ttl time.Duration) *ProductCache {
	return &ProductCache{client: client, ttl: ttl}
}

// ProductKey returns the cache key for a product
func ProductKey(id uint) string {
	return fmt.Sprintf("product:%d", id)
}

// Get reports a miss as (nil, false, nil)
func (c *ProductCache) Get(ctx context.Context, id uint) (*model.Product, bool, error) {
	raw, err := c.client.Get(ctx, ProductKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var product model.Product
	if err := json.Unmarshal(raw, &product); err != nil {
		logger.Warn("Dropping undecodable product cache entry", map[string]interface{}{
			"product_id": id,
			"error":      err.Error(),
		})
		_ = c.client.Del(ctx, ProductKey(id)).Err()
		return nil, false, nil
	}
	return &product, true, nil
}

func (c *ProductCache) Set(ctx context.Context, product *model.Product) error {
	raw, err := json.Marshal(product)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, ProductKey(product.ID), raw, c.ttl).Err()
}

func (c *ProductCache) Invalidate(ctx context.Context, id uint) error {
	return c.client.Del(ctx, ProductKey(id)).Err()
}
