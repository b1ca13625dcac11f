package redis

import (
	"context"
	"testing"
	"time"

	"github.com/ikkim/storefront/internal/app/model"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestProductKey(t *testing.T) {
	assert.Equal(t, "product:42", ProductKey(42))
}

func TestProductCache_UnreachableServerReturnsError(t *testing.T) {
	c := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer c.Close()

	cache := NewProductCache(c, time.Minute)
	ctx := context.Background()

	product, hit, err := cache.Get(ctx, 1)
	assert.Error(t, err)
	assert.False(t, hit)
	assert.Nil(t, product)

	assert.Error(t, cache.Set(ctx, &model.Product{ID: 1, Title: "Bread"}))
	assert.Error(t, cache.Invalidate(ctx, 1))
}

func TestClose_WithoutInit(t *testing.T) {
	client = nil
	assert.NoError(t, Close())
	assert.Nil(t, GetClient())
}
