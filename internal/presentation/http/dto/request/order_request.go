package request

// CreateMasterRequest creates an order header.
type CreateMasterRequest struct {
	OrderDate    string `json:"orderDate" binding:"required"`
	RequiredDate string `json:"requiredDate" binding:"required"`
	RecvAddr     string `json:"recvAddr"`
	RecvTel      string `json:"recvTel"`
	RecvPerson   string `json:"recvPerson"`
	RecvMemo     string `json:"recvMemo"`
	StoreID      string `json:"storeId" binding:"required"`
	UserID       string `json:"userId"`
}

// UpdateMasterRequest updates an existing order header.
type UpdateMasterRequest struct {
	OrderNo      string `json:"orderNo"`
	OrderSequ    int64  `json:"orderSequ" binding:"required"`
	OrderDate    string `json:"orderDate" binding:"required"`
	RequiredDate string `json:"requiredDate" binding:"required"`
	RecvAddr     string `json:"recvAddr"`
	RecvTel      string `json:"recvTel"`
	RecvPerson   string `json:"recvPerson"`
	RecvMemo     string `json:"recvMemo"`
	UserID       string `json:"userId"`
}

// CreateDetailRequest persists a new order line.
type CreateDetailRequest struct {
	OrderDate    string  `json:"orderDate"`
	OrderSequ    int64   `json:"orderSequ" binding:"required"`
	OrderTypeID  int     `json:"orderTypeId" binding:"required"`
	ClaimID      string  `json:"claimId"`
	VendorID     string  `json:"vendorId"`
	BrandID      string  `json:"brandId"`
	GoodsID      string  `json:"goodsId" binding:"required"`
	Quantity     int64   `json:"quantity" binding:"required"`
	UnitPrice    int64   `json:"unitPrice"`
	DiscountRate float64 `json:"discountRate"`
	Memo         string  `json:"memo"`
	UserID       string  `json:"userId"`
}

// UpdateDetailRequest updates an existing order line. The orderNo field
// carries the server line id, a naming quirk older terminals depend on.
type UpdateDetailRequest struct {
	OrderDate    string  `json:"orderDate"`
	OrderSequ    int64   `json:"orderSequ" binding:"required"`
	LineNo       int64   `json:"orderNo" binding:"required"`
	OrderTypeID  int     `json:"orderTypeId" binding:"required"`
	ClaimID      string  `json:"claimId"`
	VendorID     string  `json:"vendorId"`
	BrandID      string  `json:"brandId"`
	GoodsID      string  `json:"goodsId" binding:"required"`
	Quantity     int64   `json:"quantity" binding:"required"`
	UnitPrice    int64   `json:"unitPrice"`
	DiscountRate float64 `json:"discountRate"`
	Memo         string  `json:"memo"`
	UserID       string  `json:"userId"`
}

// DeleteDetailRequest removes one order line.
type DeleteDetailRequest struct {
	OrderDate   string `json:"orderDate"`
	OrderSequ   int64  `json:"orderSequ" binding:"required"`
	LineOrderNo int64  `json:"lineOrderNo" binding:"required"`
	UserID      string `json:"userId"`
}

// DeleteMasterRequest removes a whole order.
type DeleteMasterRequest struct {
	OrderDate string `json:"orderDate"`
	OrderSequ int64  `json:"orderSequ" binding:"required"`
	UserID    string `json:"userId"`
}
