package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
	"github.com/redis/go-redis/v9"
)

// GoodsCache caches catalog lookups keyed by barcode or goods id.
type GoodsCache interface {
	Get(ctx context.Context, key string) (*entity.Goods, bool, error)
	Set(ctx context.Context, key string, goods *entity.Goods, ttl time.Duration) error
}

// NoopGoodsCache is used when no cache backend is configured.
type NoopGoodsCache struct{}

func (NoopGoodsCache) Get(_ context.Context, _ string) (*entity.Goods, bool, error) {
	return nil, false, nil
}

func (NoopGoodsCache) Set(_ context.Context, _ string, _ *entity.Goods, _ time.Duration) error {
	return nil
}

// RedisGoodsCache stores goods records as JSON in redis.
type RedisGoodsCache struct {
	client *redis.Client
}

// NewRedisGoodsCache creates a redis-backed goods cache.
func NewRedisGoodsCache(client *redis.Client) *RedisGoodsCache {
	return &RedisGoodsCache{client: client}
}

func (c *RedisGoodsCache) Get(ctx context.Context, key string) (*entity.Goods, bool, error) {
	raw, err := c.client.Get(ctx, "goods:"+key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var goods entity.Goods
	if err := json.Unmarshal(raw, &goods); err != nil {
		return nil, false, err
	}
	return &goods, true, nil
}

func (c *RedisGoodsCache) Set(ctx context.Context, key string, goods *entity.Goods, ttl time.Duration) error {
	raw, err := json.Marshal(goods)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "goods:"+key, raw, ttl).Err()
}
