package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/orderdesk/orderdesk-api/internal/application/service"
	"github.com/orderdesk/orderdesk-api/internal/presentation/http/dto/response"
)

// GoodsHandler handles catalog lookups for the order-entry screen
type GoodsHandler struct {
	goodsService *service.GoodsService
}

// NewGoodsHandler creates a new goods handler
func NewGoodsHandler(goodsService *service.GoodsService) *GoodsHandler {
	return &GoodsHandler{goodsService: goodsService}
}

// Search handles the item-search popup query
func (h *GoodsHandler) Search(c *gin.Context) {
	query := c.Query("query")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	goods, err := h.goodsService.Search(c.Request.Context(), query, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Goods retrieved successfully", goods)
}

// GetByBarcode resolves a scanned barcode to its catalog record
func (h *GoodsHandler) GetByBarcode(c *gin.Context) {
	barcode := c.Param("barcode")
	if barcode == "" {
		response.BadRequest(c, "barcode is required")
		return
	}

	goods, err := h.goodsService.GetByBarcode(c.Request.Context(), barcode)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Goods retrieved successfully", goods)
}
