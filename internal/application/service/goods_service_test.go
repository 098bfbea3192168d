package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
	"github.com/orderdesk/orderdesk-api/internal/infrastructure/repository/memory"
	"github.com/orderdesk/orderdesk-api/pkg/apperror"
)

// countingCache records cache traffic so the cache-aside path can be
// asserted without redis.
type countingCache struct {
	mu      sync.Mutex
	entries map[string]*entity.Goods
	hits    int
	misses  int
	sets    int
}

func newCountingCache() *countingCache {
	return &countingCache{entries: make(map[string]*entity.Goods)}
}

func (c *countingCache) Get(_ context.Context, key string) (*entity.Goods, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if goods, ok := c.entries[key]; ok {
		c.hits++
		cp := *goods
		return &cp, true, nil
	}
	c.misses++
	return nil, false, nil
}

func (c *countingCache) Set(_ context.Context, key string, goods *entity.Goods, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := *goods
	c.entries[key] = &cp
	c.sets++
	return nil
}

func TestGetByBarcodePopulatesCache(t *testing.T) {
	cache := newCountingCache()
	svc := NewGoodsService(memory.NewSeeded().Goods(), cache, time.Minute)

	first, err := svc.GetByBarcode(context.Background(), "8801234560011")
	require.NoError(t, err)
	assert.Equal(t, "G10001", first.GoodsID)
	assert.Equal(t, 1, cache.misses)
	assert.Equal(t, 1, cache.sets)

	second, err := svc.GetByBarcode(context.Background(), "8801234560011")
	require.NoError(t, err)
	assert.Equal(t, first.GoodsID, second.GoodsID)
	assert.Equal(t, 1, cache.hits)
}

func TestGetByBarcodeUnknown(t *testing.T) {
	svc := NewGoodsService(memory.NewSeeded().Goods(), nil, time.Minute)

	_, err := svc.GetByBarcode(context.Background(), "0000000000000")
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestSearchMatchesNameAndID(t *testing.T) {
	svc := NewGoodsService(memory.NewSeeded().Goods(), nil, time.Minute)

	byName, err := svc.Search(context.Background(), "serum", 10)
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "G10002", byName[0].GoodsID)

	byID, err := svc.Search(context.Background(), "G10003", 10)
	require.NoError(t, err)
	require.Len(t, byID, 1)
	assert.Equal(t, "Clay Mask 120g", byID[0].GoodsName)
}

func TestSearchRequiresQuery(t *testing.T) {
	svc := NewGoodsService(memory.NewSeeded().Goods(), nil, time.Minute)

	_, err := svc.Search(context.Background(), "", 10)
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}
