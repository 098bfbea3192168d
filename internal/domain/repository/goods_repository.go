package repository

import (
	"context"

	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
)

// GoodsRepository reads the product catalog.
type GoodsRepository interface {
	GetByID(ctx context.Context, goodsID string) (*entity.Goods, error)
	GetByBarcode(ctx context.Context, barcode string) (*entity.Goods, error)
	Search(ctx context.Context, query string, limit int) ([]entity.Goods, error)
	Create(ctx context.Context, goods *entity.Goods) error
}
