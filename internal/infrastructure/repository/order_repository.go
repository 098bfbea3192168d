package repository

import (
	"context"
	"errors"

	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
	domainRepo "github.com/orderdesk/orderdesk-api/internal/domain/repository"
	"gorm.io/gorm"
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) domainRepo.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *entity.OrderMaster) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepository) GetBySequ(ctx context.Context, orderSequ int64) (*entity.OrderMaster, error) {
	var order entity.OrderMaster
	err := r.db.WithContext(ctx).First(&order, "order_sequ = ?", orderSequ).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) GetByOrderNo(ctx context.Context, orderNo string) (*entity.OrderMaster, error) {
	var order entity.OrderMaster
	err := r.db.WithContext(ctx).First(&order, "order_no = ?", orderNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) GetWithDetails(ctx context.Context, orderNo string) (*entity.OrderMaster, error) {
	var order entity.OrderMaster
	err := r.db.WithContext(ctx).
		Preload("Details", func(db *gorm.DB) *gorm.DB {
			return db.Order("seq_no ASC")
		}).
		Preload("Details.Goods").
		First(&order, "order_no = ?", orderNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) Update(ctx context.Context, order *entity.OrderMaster) error {
	return r.db.WithContext(ctx).Save(order).Error
}

func (r *orderRepository) Delete(ctx context.Context, orderSequ int64) error {
	return r.db.WithContext(ctx).Delete(&entity.OrderMaster{}, "order_sequ = ?", orderSequ).Error
}

func (r *orderRepository) List(ctx context.Context, params *domainRepo.OrderFilterParams) ([]entity.OrderMaster, int64, error) {
	var orders []entity.OrderMaster
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.OrderMaster{})

	if params.Search != "" {
		query = query.Where("order_no ILIKE ?", "%"+params.Search+"%")
	}

	if params.StoreID != "" {
		query = query.Where("store_id = ?", params.StoreID)
	}

	if params.StartDate != nil {
		query = query.Where("order_date >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("order_date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("created_at DESC").
		Find(&orders).Error

	return orders, total, err
}

type orderDetailRepository struct {
	db *gorm.DB
}

// NewOrderDetailRepository creates a new order detail repository
func NewOrderDetailRepository(db *gorm.DB) domainRepo.OrderDetailRepository {
	return &orderDetailRepository{db: db}
}

func (r *orderDetailRepository) Create(ctx context.Context, detail *entity.OrderDetail) error {
	return r.db.WithContext(ctx).Create(detail).Error
}

func (r *orderDetailRepository) GetBySeqNo(ctx context.Context, seqNo int64) (*entity.OrderDetail, error) {
	var detail entity.OrderDetail
	err := r.db.WithContext(ctx).First(&detail, "seq_no = ?", seqNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &detail, err
}

func (r *orderDetailRepository) GetByOrderSequ(ctx context.Context, orderSequ int64) ([]entity.OrderDetail, error) {
	var details []entity.OrderDetail
	err := r.db.WithContext(ctx).
		Preload("Goods").
		Where("order_sequ = ?", orderSequ).
		Order("seq_no ASC").
		Find(&details).Error
	return details, err
}

func (r *orderDetailRepository) Update(ctx context.Context, detail *entity.OrderDetail) error {
	return r.db.WithContext(ctx).Save(detail).Error
}

func (r *orderDetailRepository) Delete(ctx context.Context, seqNo int64) error {
	return r.db.WithContext(ctx).Delete(&entity.OrderDetail{}, "seq_no = ?", seqNo).Error
}

func (r *orderDetailRepository) DeleteByOrderSequ(ctx context.Context, orderSequ int64) error {
	return r.db.WithContext(ctx).Delete(&entity.OrderDetail{}, "order_sequ = ?", orderSequ).Error
}
