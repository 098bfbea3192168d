package service

import (
	"context"
	"log"
	"time"

	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
	"github.com/orderdesk/orderdesk-api/internal/domain/repository"
	"github.com/orderdesk/orderdesk-api/internal/infrastructure/cache"
	"github.com/orderdesk/orderdesk-api/pkg/apperror"
)

// GoodsService serves catalog search and barcode lookups for the
// order-registration screen.
type GoodsService struct {
	goodsRepo repository.GoodsRepository
	cache     cache.GoodsCache
	cacheTTL  time.Duration
}

// NewGoodsService creates a new goods service
func NewGoodsService(goodsRepo repository.GoodsRepository, goodsCache cache.GoodsCache, cacheTTL time.Duration) *GoodsService {
	if goodsCache == nil {
		goodsCache = cache.NoopGoodsCache{}
	}
	return &GoodsService{
		goodsRepo: goodsRepo,
		cache:     goodsCache,
		cacheTTL:  cacheTTL,
	}
}

// Search returns catalog candidates for the item-search popup.
func (s *GoodsService) Search(ctx context.Context, query string, limit int) ([]entity.Goods, error) {
	if query == "" {
		return nil, apperror.NewBadRequestError("search query is required")
	}
	return s.goodsRepo.Search(ctx, query, limit)
}

// GetByBarcode resolves one scanned barcode to its catalog record.
// Barcode lookups are hot on the register, so hits are cached.
func (s *GoodsService) GetByBarcode(ctx context.Context, barcode string) (*entity.Goods, error) {
	if goods, ok, err := s.cache.Get(ctx, barcode); err == nil && ok {
		return goods, nil
	} else if err != nil {
		log.Printf("goods cache read failed: %v", err)
	}

	goods, err := s.goodsRepo.GetByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	if goods == nil {
		return nil, apperror.NewNotFoundError("Goods")
	}

	if err := s.cache.Set(ctx, barcode, goods, s.cacheTTL); err != nil {
		log.Printf("goods cache write failed: %v", err)
	}
	return goods, nil
}
