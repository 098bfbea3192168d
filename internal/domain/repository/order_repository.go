package repository

import (
	"context"
	"time"

	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
	"github.com/orderdesk/orderdesk-api/pkg/pagination"
)

// OrderFilterParams narrows an order list query.
type OrderFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	StoreID    string
	StartDate  *time.Time
	EndDate    *time.Time
}

// OrderRepository persists order masters.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.OrderMaster) error
	GetBySequ(ctx context.Context, orderSequ int64) (*entity.OrderMaster, error)
	GetByOrderNo(ctx context.Context, orderNo string) (*entity.OrderMaster, error)
	GetWithDetails(ctx context.Context, orderNo string) (*entity.OrderMaster, error)
	Update(ctx context.Context, order *entity.OrderMaster) error
	Delete(ctx context.Context, orderSequ int64) error
	List(ctx context.Context, params *OrderFilterParams) ([]entity.OrderMaster, int64, error)
}

// OrderDetailRepository persists order lines.
type OrderDetailRepository interface {
	Create(ctx context.Context, detail *entity.OrderDetail) error
	GetBySeqNo(ctx context.Context, seqNo int64) (*entity.OrderDetail, error)
	GetByOrderSequ(ctx context.Context, orderSequ int64) ([]entity.OrderDetail, error)
	Update(ctx context.Context, detail *entity.OrderDetail) error
	Delete(ctx context.Context, seqNo int64) error
	DeleteByOrderSequ(ctx context.Context, orderSequ int64) error
}
