// Package memory holds in-memory repository implementations used by
// tests and dev/demo runs without a database.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
	"github.com/orderdesk/orderdesk-api/internal/domain/repository"
)

// Store implements the repository interfaces over process memory.
type Store struct {
	mu        sync.RWMutex
	nextSequ  int64
	nextSeqNo int64
	orders    map[int64]*entity.OrderMaster
	details   map[int64]*entity.OrderDetail
	goods     map[string]*entity.Goods
	users     map[string]*entity.User
}

// New creates an empty store.
func New() *Store {
	return &Store{
		orders:  make(map[int64]*entity.OrderMaster),
		details: make(map[int64]*entity.OrderDetail),
		goods:   make(map[string]*entity.Goods),
		users:   make(map[string]*entity.User),
	}
}

// NewSeeded creates a store preloaded with a small demo catalog.
func NewSeeded() *Store {
	s := New()
	for _, g := range []entity.Goods{
		{GoodsID: "G10001", Barcode: "8801234560011", GoodsName: "Hydra Toner 300ml", BrandID: "B01", BrandName: "Aqua Lab", VendorID: "V01", VendorName: "Seoul Beauty Co", ConsumerPrice: 12000, DiscountRate: 10},
		{GoodsID: "G10002", Barcode: "8801234560028", GoodsName: "Vita Serum 50ml", BrandID: "B01", BrandName: "Aqua Lab", VendorID: "V01", VendorName: "Seoul Beauty Co", ConsumerPrice: 5500, DiscountRate: 0},
		{GoodsID: "G10003", Barcode: "8801234560035", GoodsName: "Clay Mask 120g", BrandID: "B02", BrandName: "Terra", VendorID: "V02", VendorName: "Jeju Naturals", ConsumerPrice: 33000, DiscountRate: 15},
	} {
		cp := g
		s.goods[cp.GoodsID] = &cp
	}
	return s
}

// Orders returns the store as an order repository.
func (s *Store) Orders() repository.OrderRepository { return (*orderRepo)(s) }

// Details returns the store as an order-detail repository.
func (s *Store) Details() repository.OrderDetailRepository { return (*detailRepo)(s) }

// Goods returns the store as a goods repository.
func (s *Store) Goods() repository.GoodsRepository { return (*goodsRepo)(s) }

// Users returns the store as a user repository.
func (s *Store) Users() repository.UserRepository { return (*userRepo)(s) }

// --- orders -----------------------------------------------------------

type orderRepo Store

func (r *orderRepo) Create(_ context.Context, order *entity.OrderMaster) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextSequ++
	order.OrderSequ = r.nextSequ
	cp := *order
	r.orders[order.OrderSequ] = &cp
	return nil
}

func (r *orderRepo) GetBySequ(_ context.Context, orderSequ int64) (*entity.OrderMaster, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[orderSequ]
	if !ok {
		return nil, nil
	}
	cp := *order
	return &cp, nil
}

func (r *orderRepo) GetByOrderNo(_ context.Context, orderNo string) (*entity.OrderMaster, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.findByOrderNo(orderNo), nil
}

func (r *orderRepo) findByOrderNo(orderNo string) *entity.OrderMaster {
	for _, order := range r.orders {
		if order.OrderNo == orderNo {
			cp := *order
			return &cp
		}
	}
	return nil
}

func (r *orderRepo) GetWithDetails(_ context.Context, orderNo string) (*entity.OrderMaster, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order := r.findByOrderNo(orderNo)
	if order == nil {
		return nil, nil
	}
	for seq := int64(1); seq <= r.nextSeqNo; seq++ {
		line, ok := r.details[seq]
		if !ok || line.OrderSequ != order.OrderSequ {
			continue
		}
		cp := *line
		if goods, ok := r.goods[line.GoodsID]; ok {
			gcp := *goods
			cp.Goods = &gcp
		}
		order.Details = append(order.Details, cp)
	}
	return order, nil
}

func (r *orderRepo) Update(_ context.Context, order *entity.OrderMaster) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *order
	r.orders[order.OrderSequ] = &cp
	return nil
}

func (r *orderRepo) Delete(_ context.Context, orderSequ int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.orders, orderSequ)
	return nil
}

func (r *orderRepo) List(_ context.Context, params *repository.OrderFilterParams) ([]entity.OrderMaster, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []entity.OrderMaster
	for sequ := int64(1); sequ <= r.nextSequ; sequ++ {
		order, ok := r.orders[sequ]
		if !ok {
			continue
		}
		if params.StoreID != "" && order.StoreID != params.StoreID {
			continue
		}
		if params.Search != "" && !strings.Contains(order.OrderNo, params.Search) {
			continue
		}
		if params.StartDate != nil && order.OrderDate.Before(*params.StartDate) {
			continue
		}
		if params.EndDate != nil && order.OrderDate.After(*params.EndDate) {
			continue
		}
		out = append(out, *order)
	}
	return out, int64(len(out)), nil
}

// --- details ----------------------------------------------------------

type detailRepo Store

func (r *detailRepo) Create(_ context.Context, detail *entity.OrderDetail) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextSeqNo++
	detail.SeqNo = r.nextSeqNo
	cp := *detail
	r.details[detail.SeqNo] = &cp
	return nil
}

func (r *detailRepo) GetBySeqNo(_ context.Context, seqNo int64) (*entity.OrderDetail, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	line, ok := r.details[seqNo]
	if !ok {
		return nil, nil
	}
	cp := *line
	return &cp, nil
}

func (r *detailRepo) GetByOrderSequ(_ context.Context, orderSequ int64) ([]entity.OrderDetail, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []entity.OrderDetail
	for seq := int64(1); seq <= r.nextSeqNo; seq++ {
		if line, ok := r.details[seq]; ok && line.OrderSequ == orderSequ {
			out = append(out, *line)
		}
	}
	return out, nil
}

func (r *detailRepo) Update(_ context.Context, detail *entity.OrderDetail) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *detail
	r.details[detail.SeqNo] = &cp
	return nil
}

func (r *detailRepo) Delete(_ context.Context, seqNo int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.details, seqNo)
	return nil
}

func (r *detailRepo) DeleteByOrderSequ(_ context.Context, orderSequ int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for seq, line := range r.details {
		if line.OrderSequ == orderSequ {
			delete(r.details, seq)
		}
	}
	return nil
}

// --- goods ------------------------------------------------------------

type goodsRepo Store

func (r *goodsRepo) GetByID(_ context.Context, goodsID string) (*entity.Goods, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	goods, ok := r.goods[goodsID]
	if !ok {
		return nil, nil
	}
	cp := *goods
	return &cp, nil
}

func (r *goodsRepo) GetByBarcode(_ context.Context, barcode string) (*entity.Goods, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, goods := range r.goods {
		if goods.Barcode == barcode {
			cp := *goods
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *goodsRepo) Search(_ context.Context, query string, limit int) ([]entity.Goods, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	lower := strings.ToLower(query)
	var out []entity.Goods
	for _, goods := range r.goods {
		if strings.Contains(strings.ToLower(goods.GoodsName), lower) ||
			strings.Contains(strings.ToLower(goods.GoodsID), lower) ||
			strings.Contains(goods.Barcode, query) {
			out = append(out, *goods)
		}
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *goodsRepo) Create(_ context.Context, goods *entity.Goods) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *goods
	r.goods[goods.GoodsID] = &cp
	return nil
}

// --- users ------------------------------------------------------------

type userRepo Store

func (r *userRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	cp := *user
	r.users[user.Username] = &cp
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.ID == id {
			cp := *user
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *userRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[username]
	if !ok {
		return nil, nil
	}
	cp := *user
	return &cp, nil
}
