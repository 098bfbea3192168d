package repository

import (
	"context"
	"errors"

	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
	domainRepo "github.com/orderdesk/orderdesk-api/internal/domain/repository"
	"gorm.io/gorm"
)

type goodsRepository struct {
	db *gorm.DB
}

// NewGoodsRepository creates a new goods repository
func NewGoodsRepository(db *gorm.DB) domainRepo.GoodsRepository {
	return &goodsRepository{db: db}
}

func (r *goodsRepository) GetByID(ctx context.Context, goodsID string) (*entity.Goods, error) {
	var goods entity.Goods
	err := r.db.WithContext(ctx).First(&goods, "goods_id = ?", goodsID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &goods, err
}

func (r *goodsRepository) GetByBarcode(ctx context.Context, barcode string) (*entity.Goods, error) {
	var goods entity.Goods
	err := r.db.WithContext(ctx).First(&goods, "barcode = ?", barcode).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &goods, err
}

func (r *goodsRepository) Search(ctx context.Context, query string, limit int) ([]entity.Goods, error) {
	var goods []entity.Goods
	if limit <= 0 {
		limit = 50
	}
	q := "%" + query + "%"
	err := r.db.WithContext(ctx).
		Where("goods_name ILIKE ? OR goods_id ILIKE ? OR barcode = ?", q, q, query).
		Order("goods_name ASC").
		Limit(limit).
		Find(&goods).Error
	return goods, err
}

func (r *goodsRepository) Create(ctx context.Context, goods *entity.Goods) error {
	return r.db.WithContext(ctx).Create(goods).Error
}
