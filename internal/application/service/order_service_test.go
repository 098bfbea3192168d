package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
	"github.com/orderdesk/orderdesk-api/pkg/apperror"
)

func createTestMaster(t *testing.T, svc *OrderService) *entity.OrderMaster {
	t.Helper()
	order, err := svc.CreateMaster(context.Background(), &CreateMasterInput{
		OrderDate:    dateOffset(0),
		RequiredDate: dateOffset(2),
		StoreID:      "S001",
		UserID:       "admin",
	})
	require.NoError(t, err)
	return order
}

func TestCreateMasterAssignsIdentity(t *testing.T) {
	svc, _ := newTestOrderService()

	order := createTestMaster(t, svc)

	assert.NotZero(t, order.OrderSequ)
	assert.True(t, strings.HasPrefix(order.OrderNo, "SO-"))
	assert.Len(t, order.OrderNo, len("SO-")+8)
}

func TestCreateMasterRejectsBadDates(t *testing.T) {
	svc, _ := newTestOrderService()

	_, err := svc.CreateMaster(context.Background(), &CreateMasterInput{
		OrderDate:    "not-a-date",
		RequiredDate: dateOffset(2),
		StoreID:      "S001",
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)

	_, err = svc.CreateMaster(context.Background(), &CreateMasterInput{
		OrderDate:    dateOffset(2),
		RequiredDate: dateOffset(0),
		StoreID:      "S001",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requiredDate")
}

func TestCreateMasterRequiresStore(t *testing.T) {
	svc, _ := newTestOrderService()

	_, err := svc.CreateMaster(context.Background(), &CreateMasterInput{
		OrderDate:    dateOffset(0),
		RequiredDate: dateOffset(2),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storeId")
}

func TestUpdateMasterRewritesHeader(t *testing.T) {
	svc, store := newTestOrderService()
	order := createTestMaster(t, svc)

	updated, err := svc.UpdateMaster(context.Background(), &UpdateMasterInput{
		OrderNo:      order.OrderNo,
		OrderSequ:    order.OrderSequ,
		OrderDate:    dateOffset(0),
		RequiredDate: dateOffset(5),
		RecvPerson:   "Kim Minji",
		RecvAddr:     "12 Teheran-ro",
		UserID:       "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, "Kim Minji", updated.RecvPerson)

	stored, err := store.Orders().GetBySequ(context.Background(), order.OrderSequ)
	require.NoError(t, err)
	assert.Equal(t, "12 Teheran-ro", stored.RecvAddr)
}

func TestUpdateMasterUnknownOrder(t *testing.T) {
	svc, _ := newTestOrderService()

	_, err := svc.UpdateMaster(context.Background(), &UpdateMasterInput{
		OrderSequ:    999,
		OrderDate:    dateOffset(0),
		RequiredDate: dateOffset(1),
	})
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestCreateDetailAssignsSeqNo(t *testing.T) {
	svc, _ := newTestOrderService()
	order := createTestMaster(t, svc)

	detail, err := svc.CreateDetail(context.Background(), &DetailInput{
		OrderSequ:    order.OrderSequ,
		OrderTypeID:  1,
		GoodsID:      "G10001",
		Quantity:     3,
		UnitPrice:    12000,
		DiscountRate: 10,
		UserID:       "admin",
	})
	require.NoError(t, err)
	assert.NotZero(t, detail.SeqNo)
}

func TestCreateDetailRejectsUnknownGoods(t *testing.T) {
	svc, _ := newTestOrderService()
	order := createTestMaster(t, svc)

	_, err := svc.CreateDetail(context.Background(), &DetailInput{
		OrderSequ:   order.OrderSequ,
		OrderTypeID: 1,
		GoodsID:     "G99999",
		Quantity:    1,
	})
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestCreateDetailRejectsDiscountOutOfRange(t *testing.T) {
	svc, _ := newTestOrderService()
	order := createTestMaster(t, svc)

	_, err := svc.CreateDetail(context.Background(), &DetailInput{
		OrderSequ:    order.OrderSequ,
		OrderTypeID:  1,
		GoodsID:      "G10001",
		Quantity:     1,
		DiscountRate: 101,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "discountRate")
}

func TestUpdateDetailRewritesLine(t *testing.T) {
	svc, store := newTestOrderService()
	order := createTestMaster(t, svc)

	detail, err := svc.CreateDetail(context.Background(), &DetailInput{
		OrderSequ:   order.OrderSequ,
		OrderTypeID: 1,
		GoodsID:     "G10001",
		Quantity:    1,
		UnitPrice:   12000,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateDetail(context.Background(), &DetailInput{
		OrderSequ:    order.OrderSequ,
		LineNo:       detail.SeqNo,
		OrderTypeID:  1,
		GoodsID:      "G10001",
		Quantity:     5,
		UnitPrice:    12000,
		DiscountRate: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, detail.SeqNo, updated.SeqNo)

	stored, err := store.Details().GetBySeqNo(context.Background(), detail.SeqNo)
	require.NoError(t, err)
	assert.Equal(t, int64(5), stored.Quantity)
}

func TestUpdateDetailRejectsFulfilledLine(t *testing.T) {
	svc, store := newTestOrderService()
	order := createTestMaster(t, svc)

	detail, err := svc.CreateDetail(context.Background(), &DetailInput{
		OrderSequ:   order.OrderSequ,
		OrderTypeID: 1,
		GoodsID:     "G10001",
		Quantity:    1,
	})
	require.NoError(t, err)

	shipped := time.Now()
	stored, _ := store.Details().GetBySeqNo(context.Background(), detail.SeqNo)
	stored.ShipOutDate = &shipped
	require.NoError(t, store.Details().Update(context.Background(), stored))

	_, err = svc.UpdateDetail(context.Background(), &DetailInput{
		OrderSequ:   order.OrderSequ,
		LineNo:      detail.SeqNo,
		OrderTypeID: 1,
		GoodsID:     "G10001",
		Quantity:    9,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fulfillment")
}

func TestUpdateDetailWrongOrder(t *testing.T) {
	svc, _ := newTestOrderService()
	order := createTestMaster(t, svc)

	detail, err := svc.CreateDetail(context.Background(), &DetailInput{
		OrderSequ:   order.OrderSequ,
		OrderTypeID: 1,
		GoodsID:     "G10001",
		Quantity:    1,
	})
	require.NoError(t, err)

	_, err = svc.UpdateDetail(context.Background(), &DetailInput{
		OrderSequ:   order.OrderSequ + 1,
		LineNo:      detail.SeqNo,
		OrderTypeID: 1,
		GoodsID:     "G10001",
		Quantity:    1,
	})
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestDeleteDetailRemovesLine(t *testing.T) {
	svc, store := newTestOrderService()
	order := createTestMaster(t, svc)

	detail, err := svc.CreateDetail(context.Background(), &DetailInput{
		OrderSequ:   order.OrderSequ,
		OrderTypeID: 1,
		GoodsID:     "G10001",
		Quantity:    1,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteDetail(context.Background(), order.OrderSequ, detail.SeqNo))

	stored, err := store.Details().GetBySeqNo(context.Background(), detail.SeqNo)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestDeleteMasterRemovesOrderAndLines(t *testing.T) {
	svc, store := newTestOrderService()
	order := createTestMaster(t, svc)

	for _, goodsID := range []string{"G10001", "G10002"} {
		_, err := svc.CreateDetail(context.Background(), &DetailInput{
			OrderSequ:   order.OrderSequ,
			OrderTypeID: 1,
			GoodsID:     goodsID,
			Quantity:    1,
		})
		require.NoError(t, err)
	}

	require.NoError(t, svc.DeleteMaster(context.Background(), order.OrderSequ))

	stored, err := store.Orders().GetBySequ(context.Background(), order.OrderSequ)
	require.NoError(t, err)
	assert.Nil(t, stored)

	lines, err := store.Details().GetByOrderSequ(context.Background(), order.OrderSequ)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestFetchDetailsReturnsOrderWithLines(t *testing.T) {
	svc, _ := newTestOrderService()
	order := createTestMaster(t, svc)

	_, err := svc.CreateDetail(context.Background(), &DetailInput{
		OrderSequ:   order.OrderSequ,
		OrderTypeID: 1,
		GoodsID:     "G10002",
		Quantity:    2,
		UnitPrice:   5500,
	})
	require.NoError(t, err)

	fetched, err := svc.FetchDetails(context.Background(), order.OrderNo)
	require.NoError(t, err)
	assert.Equal(t, order.OrderSequ, fetched.OrderSequ)
	require.Len(t, fetched.Details, 1)
	assert.Equal(t, "G10002", fetched.Details[0].GoodsID)
}

func TestFetchDetailsUnknownOrder(t *testing.T) {
	svc, _ := newTestOrderService()

	_, err := svc.FetchDetails(context.Background(), "SO-missing0")
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}
