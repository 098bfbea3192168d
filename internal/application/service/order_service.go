package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
	"github.com/orderdesk/orderdesk-api/internal/domain/enum"
	"github.com/orderdesk/orderdesk-api/internal/domain/repository"
	"github.com/orderdesk/orderdesk-api/pkg/apperror"
	"github.com/orderdesk/orderdesk-api/pkg/pagination"
)

// OrderService handles order master and detail persistence
type OrderService struct {
	orderRepo  repository.OrderRepository
	detailRepo repository.OrderDetailRepository
	goodsRepo  repository.GoodsRepository
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo repository.OrderRepository,
	detailRepo repository.OrderDetailRepository,
	goodsRepo repository.GoodsRepository,
) *OrderService {
	return &OrderService{
		orderRepo:  orderRepo,
		detailRepo: detailRepo,
		goodsRepo:  goodsRepo,
	}
}

// CreateMasterInput represents the create-master input
type CreateMasterInput struct {
	OrderDate    string
	RequiredDate string
	RecvAddr     string
	RecvTel      string
	RecvPerson   string
	RecvMemo     string
	StoreID      string
	UserID       string
}

// UpdateMasterInput represents the update-master input
type UpdateMasterInput struct {
	OrderNo      string
	OrderSequ    int64
	OrderDate    string
	RequiredDate string
	RecvAddr     string
	RecvTel      string
	RecvPerson   string
	RecvMemo     string
	UserID       string
}

// DetailInput represents the create/update detail input. LineNo is only
// set for updates and names the line being updated.
type DetailInput struct {
	OrderDate    string
	OrderSequ    int64
	LineNo       int64
	OrderTypeID  int
	ClaimID      string
	VendorID     string
	BrandID      string
	GoodsID      string
	Quantity     int64
	UnitPrice    int64
	DiscountRate float64
	Memo         string
	UserID       string
}

func parseDate(value, field string) (time.Time, error) {
	t, err := time.Parse(entity.DateLayout, value)
	if err != nil {
		return time.Time{}, apperror.NewBadRequestError(field + " is not a valid date")
	}
	return t, nil
}

// CreateMaster creates the order header and assigns its order number.
func (s *OrderService) CreateMaster(ctx context.Context, input *CreateMasterInput) (*entity.OrderMaster, error) {
	orderDate, err := parseDate(input.OrderDate, "orderDate")
	if err != nil {
		return nil, err
	}
	requiredDate, err := parseDate(input.RequiredDate, "requiredDate")
	if err != nil {
		return nil, err
	}
	if requiredDate.Before(orderDate) {
		return nil, apperror.NewBadRequestError("requiredDate must not precede orderDate")
	}
	if input.StoreID == "" {
		return nil, apperror.NewBadRequestError("storeId is required")
	}

	order := &entity.OrderMaster{
		OrderNo:      fmt.Sprintf("SO-%s", uuid.New().String()[:8]),
		OrderDate:    orderDate,
		RequiredDate: requiredDate,
		StoreID:      input.StoreID,
		OrderType:    enum.OrderTypeNormal,
		RecvAddr:     input.RecvAddr,
		RecvTel:      input.RecvTel,
		RecvPerson:   input.RecvPerson,
		RecvMemo:     input.RecvMemo,
		UserID:       input.UserID,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateMaster updates an existing order header.
func (s *OrderService) UpdateMaster(ctx context.Context, input *UpdateMasterInput) (*entity.OrderMaster, error) {
	order, err := s.orderRepo.GetBySequ(ctx, input.OrderSequ)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}

	orderDate, err := parseDate(input.OrderDate, "orderDate")
	if err != nil {
		return nil, err
	}
	requiredDate, err := parseDate(input.RequiredDate, "requiredDate")
	if err != nil {
		return nil, err
	}
	if requiredDate.Before(orderDate) {
		return nil, apperror.NewBadRequestError("requiredDate must not precede orderDate")
	}

	order.OrderDate = orderDate
	order.RequiredDate = requiredDate
	order.RecvAddr = input.RecvAddr
	order.RecvTel = input.RecvTel
	order.RecvPerson = input.RecvPerson
	order.RecvMemo = input.RecvMemo
	order.UserID = input.UserID

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// CreateDetail appends a new line to an order and returns it with its
// assigned seq no.
func (s *OrderService) CreateDetail(ctx context.Context, input *DetailInput) (*entity.OrderDetail, error) {
	order, err := s.orderRepo.GetBySequ(ctx, input.OrderSequ)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}

	goods, err := s.goodsRepo.GetByID(ctx, input.GoodsID)
	if err != nil {
		return nil, err
	}
	if goods == nil {
		return nil, apperror.NewNotFoundError(fmt.Sprintf("Goods %s", input.GoodsID))
	}
	if input.DiscountRate < 0 || input.DiscountRate > 100 {
		return nil, apperror.NewBadRequestError("discountRate must be between 0 and 100")
	}

	detail := &entity.OrderDetail{
		OrderSequ:    input.OrderSequ,
		OrderType:    enum.OrderType(input.OrderTypeID),
		ClaimID:      input.ClaimID,
		GoodsID:      input.GoodsID,
		BrandID:      input.BrandID,
		VendorID:     input.VendorID,
		Quantity:     input.Quantity,
		UnitPrice:    input.UnitPrice,
		DiscountRate: input.DiscountRate,
		Memo:         input.Memo,
		UserID:       input.UserID,
	}
	if err := s.detailRepo.Create(ctx, detail); err != nil {
		return nil, err
	}
	return detail, nil
}

// UpdateDetail updates an existing line. Lines already in fulfillment
// reject edits.
func (s *OrderService) UpdateDetail(ctx context.Context, input *DetailInput) (*entity.OrderDetail, error) {
	detail, err := s.detailRepo.GetBySeqNo(ctx, input.LineNo)
	if err != nil {
		return nil, err
	}
	if detail == nil || detail.OrderSequ != input.OrderSequ {
		return nil, apperror.NewNotFoundError("Order line")
	}
	if detail.ShipOutDate != nil || detail.ExpectedInDate != nil || detail.ActualInDate != nil {
		return nil, apperror.NewBadRequestError("Order line is already in fulfillment")
	}
	if input.DiscountRate < 0 || input.DiscountRate > 100 {
		return nil, apperror.NewBadRequestError("discountRate must be between 0 and 100")
	}

	detail.OrderType = enum.OrderType(input.OrderTypeID)
	detail.ClaimID = input.ClaimID
	detail.BrandID = input.BrandID
	detail.VendorID = input.VendorID
	detail.Quantity = input.Quantity
	detail.UnitPrice = input.UnitPrice
	detail.DiscountRate = input.DiscountRate
	detail.Memo = input.Memo
	detail.UserID = input.UserID

	if err := s.detailRepo.Update(ctx, detail); err != nil {
		return nil, err
	}
	return detail, nil
}

// DeleteDetail removes one line from an order.
func (s *OrderService) DeleteDetail(ctx context.Context, orderSequ, lineOrderNo int64) error {
	detail, err := s.detailRepo.GetBySeqNo(ctx, lineOrderNo)
	if err != nil {
		return err
	}
	if detail == nil || detail.OrderSequ != orderSequ {
		return apperror.NewNotFoundError("Order line")
	}
	return s.detailRepo.Delete(ctx, lineOrderNo)
}

// DeleteMaster removes an order and all of its lines.
func (s *OrderService) DeleteMaster(ctx context.Context, orderSequ int64) error {
	order, err := s.orderRepo.GetBySequ(ctx, orderSequ)
	if err != nil {
		return err
	}
	if order == nil {
		return apperror.NewNotFoundError("Order")
	}
	if err := s.detailRepo.DeleteByOrderSequ(ctx, orderSequ); err != nil {
		return err
	}
	return s.orderRepo.Delete(ctx, orderSequ)
}

// FetchDetails loads the authoritative order with its lines by order
// number.
func (s *OrderService) FetchDetails(ctx context.Context, orderNo string) (*entity.OrderMaster, error) {
	order, err := s.orderRepo.GetWithDetails(ctx, orderNo)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// ListOrders lists order masters with filtering for the back-office
// search screen.
func (s *OrderService) ListOrders(ctx context.Context, params *repository.OrderFilterParams) (*pagination.PaginatedResult[entity.OrderMaster], error) {
	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}
