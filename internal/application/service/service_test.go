package service

import (
	"time"

	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
	"github.com/orderdesk/orderdesk-api/internal/infrastructure/repository/memory"
)

// newTestOrderService builds an order service over the seeded in-memory
// store. The store is returned so tests can inspect persisted state.
func newTestOrderService() (*OrderService, *memory.Store) {
	store := memory.NewSeeded()
	return NewOrderService(store.Orders(), store.Details(), store.Goods()), store
}

func dateOffset(days int) string {
	return time.Now().AddDate(0, 0, days).Format(entity.DateLayout)
}
