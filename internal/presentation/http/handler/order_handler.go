package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/orderdesk/orderdesk-api/internal/application/service"
	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
	"github.com/orderdesk/orderdesk-api/internal/domain/repository"
	"github.com/orderdesk/orderdesk-api/internal/presentation/http/dto/request"
	"github.com/orderdesk/orderdesk-api/internal/presentation/http/dto/response"
	"github.com/orderdesk/orderdesk-api/pkg/pagination"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// masterIdentity is the payload returned by master create/update.
type masterIdentity struct {
	OrderSequ int64  `json:"orderSequ"`
	OrderNo   string `json:"orderNo"`
}

// lineIdentity is the payload returned by detail create/update.
type lineIdentity struct {
	SeqNo int64 `json:"seqNo"`
}

// fetchedLine mirrors one order line in the shape terminals expect.
type fetchedLine struct {
	SeqNo          int64   `json:"seqNo"`
	GoodsID        string  `json:"goodsId"`
	GoodsName      string  `json:"goodsName"`
	BrandID        string  `json:"brandId"`
	BrandName      string  `json:"brandName"`
	VendorID       string  `json:"vendorId"`
	VendorName     string  `json:"vendorName"`
	ClaimID        string  `json:"claimId"`
	Quantity       int64   `json:"quantity"`
	UnitPrice      int64   `json:"unitPrice"`
	DiscountRate   float64 `json:"discountRate"`
	Memo           string  `json:"memo"`
	ShipOutDate    string  `json:"shipOutDate"`
	ExpectedInDate string  `json:"expectedInDate"`
	ActualInDate   string  `json:"actualInDate"`
}

// fetchedMaster mirrors the order header in the shape terminals expect.
type fetchedMaster struct {
	OrderNo      string `json:"orderNo"`
	OrderSequ    int64  `json:"orderSequ"`
	OrderDate    string `json:"orderDate"`
	RequiredDate string `json:"requiredDate"`
	StoreID      string `json:"storeId"`
	OrderTypeID  int    `json:"orderTypeId"`
	Remarks      string `json:"remarks"`
	RecvPerson   string `json:"recvPerson"`
	RecvAddr     string `json:"recvAddr"`
	RecvTel      string `json:"recvTel"`
	RecvMemo     string `json:"recvMemo"`
}

// fetchDetailsResponse keeps the lines in data and the header in
// masterData at the top level, the layout the terminals parse.
type fetchDetailsResponse struct {
	Success    bool           `json:"success"`
	Message    string         `json:"message"`
	Lines      []fetchedLine  `json:"data"`
	MasterData *fetchedMaster `json:"masterData,omitempty"`
}

// CreateMaster handles creating the order header
func (h *OrderHandler) CreateMaster(c *gin.Context) {
	var req request.CreateMasterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	input := &service.CreateMasterInput{
		OrderDate:    req.OrderDate,
		RequiredDate: req.RequiredDate,
		RecvAddr:     req.RecvAddr,
		RecvTel:      req.RecvTel,
		RecvPerson:   req.RecvPerson,
		RecvMemo:     req.RecvMemo,
		StoreID:      req.StoreID,
		UserID:       GetUsername(c),
	}

	order, err := h.orderService.CreateMaster(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order created successfully", masterIdentity{
		OrderSequ: order.OrderSequ,
		OrderNo:   order.OrderNo,
	})
}

// UpdateMaster handles updating the order header
func (h *OrderHandler) UpdateMaster(c *gin.Context) {
	var req request.UpdateMasterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	input := &service.UpdateMasterInput{
		OrderNo:      req.OrderNo,
		OrderSequ:    req.OrderSequ,
		OrderDate:    req.OrderDate,
		RequiredDate: req.RequiredDate,
		RecvAddr:     req.RecvAddr,
		RecvTel:      req.RecvTel,
		RecvPerson:   req.RecvPerson,
		RecvMemo:     req.RecvMemo,
		UserID:       GetUsername(c),
	}

	order, err := h.orderService.UpdateMaster(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order updated successfully", masterIdentity{
		OrderSequ: order.OrderSequ,
		OrderNo:   order.OrderNo,
	})
}

// CreateDetail handles appending a line to an order
func (h *OrderHandler) CreateDetail(c *gin.Context) {
	var req request.CreateDetailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	input := &service.DetailInput{
		OrderDate:    req.OrderDate,
		OrderSequ:    req.OrderSequ,
		OrderTypeID:  req.OrderTypeID,
		ClaimID:      req.ClaimID,
		VendorID:     req.VendorID,
		BrandID:      req.BrandID,
		GoodsID:      req.GoodsID,
		Quantity:     req.Quantity,
		UnitPrice:    req.UnitPrice,
		DiscountRate: req.DiscountRate,
		Memo:         req.Memo,
		UserID:       GetUsername(c),
	}

	detail, err := h.orderService.CreateDetail(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order line created successfully", lineIdentity{SeqNo: detail.SeqNo})
}

// UpdateDetail handles updating an existing order line
func (h *OrderHandler) UpdateDetail(c *gin.Context) {
	var req request.UpdateDetailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	input := &service.DetailInput{
		OrderDate:    req.OrderDate,
		OrderSequ:    req.OrderSequ,
		LineNo:       req.LineNo,
		OrderTypeID:  req.OrderTypeID,
		ClaimID:      req.ClaimID,
		VendorID:     req.VendorID,
		BrandID:      req.BrandID,
		GoodsID:      req.GoodsID,
		Quantity:     req.Quantity,
		UnitPrice:    req.UnitPrice,
		DiscountRate: req.DiscountRate,
		Memo:         req.Memo,
		UserID:       GetUsername(c),
	}

	detail, err := h.orderService.UpdateDetail(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order line updated successfully", lineIdentity{SeqNo: detail.SeqNo})
}

// DeleteDetail removes one order line. Keeps the legacy envelope.
func (h *OrderHandler) DeleteDetail(c *gin.Context) {
	var req request.DeleteDetailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, response.LegacyResponse{Result: "FAIL", Message: "Invalid request: " + err.Error()})
		return
	}

	if err := h.orderService.DeleteDetail(c.Request.Context(), req.OrderSequ, req.LineOrderNo); err != nil {
		response.LegacyError(c, err)
		return
	}

	response.LegacyOK(c, "Order line deleted")
}

// DeleteMaster removes an order and all of its lines. Keeps the legacy
// envelope.
func (h *OrderHandler) DeleteMaster(c *gin.Context) {
	var req request.DeleteMasterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, response.LegacyResponse{Result: "FAIL", Message: "Invalid request: " + err.Error()})
		return
	}

	if err := h.orderService.DeleteMaster(c.Request.Context(), req.OrderSequ); err != nil {
		response.LegacyError(c, err)
		return
	}

	response.LegacyOK(c, "Order deleted")
}

// FetchDetails returns the authoritative order lines plus the header.
func (h *OrderHandler) FetchDetails(c *gin.Context) {
	orderNo := c.Param("orderNo")

	order, err := h.orderService.FetchDetails(c.Request.Context(), orderNo)
	if err != nil {
		response.Error(c, err)
		return
	}

	lines := make([]fetchedLine, 0, len(order.Details))
	for i := range order.Details {
		d := &order.Details[i]
		line := fetchedLine{
			SeqNo:          d.SeqNo,
			GoodsID:        d.GoodsID,
			BrandID:        d.BrandID,
			VendorID:       d.VendorID,
			ClaimID:        d.ClaimID,
			Quantity:       d.Quantity,
			UnitPrice:      d.UnitPrice,
			DiscountRate:   d.DiscountRate,
			Memo:           d.Memo,
			ShipOutDate:    entity.FormatDate(d.ShipOutDate),
			ExpectedInDate: entity.FormatDate(d.ExpectedInDate),
			ActualInDate:   entity.FormatDate(d.ActualInDate),
		}
		if d.Goods != nil {
			line.GoodsName = d.Goods.GoodsName
			line.BrandName = d.Goods.BrandName
			line.VendorName = d.Goods.VendorName
		}
		lines = append(lines, line)
	}

	c.JSON(200, fetchDetailsResponse{
		Success: true,
		Message: "Order details retrieved successfully",
		Lines:   lines,
		MasterData: &fetchedMaster{
			OrderNo:      order.OrderNo,
			OrderSequ:    order.OrderSequ,
			OrderDate:    order.OrderDate.Format(entity.DateLayout),
			RequiredDate: order.RequiredDate.Format(entity.DateLayout),
			StoreID:      order.StoreID,
			OrderTypeID:  int(order.OrderType),
			Remarks:      order.Remarks,
			RecvPerson:   order.RecvPerson,
			RecvAddr:     order.RecvAddr,
			RecvTel:      order.RecvTel,
			RecvMemo:     order.RecvMemo,
		},
	})
}

// List handles listing orders for the back-office search screen
func (h *OrderHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.OrderFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Search:  c.Query("search"),
		StoreID: c.Query("store_id"),
	}

	if startDateStr := c.Query("start_date"); startDateStr != "" {
		if startDate, err := time.Parse(entity.DateLayout, startDateStr); err == nil {
			params.StartDate = &startDate
		}
	}

	if endDateStr := c.Query("end_date"); endDateStr != "" {
		if endDate, err := time.Parse(entity.DateLayout, endDateStr); err == nil {
			params.EndDate = &endDate
		}
	}

	result, err := h.orderService.ListOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Orders retrieved successfully", result)
}
