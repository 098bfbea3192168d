package orderdoc

import "context"

// Gateway is the persistence surface the save and reconcile flows run
// against: an authenticated JSON/HTTP order API. Implementations live
// outside this package; tests use in-memory fakes.
type Gateway interface {
	CreateMaster(ctx context.Context, req CreateMasterRequest) (CreateMasterResult, error)
	UpdateMaster(ctx context.Context, req UpdateMasterRequest) error
	CreateDetail(ctx context.Context, req CreateDetailRequest) (DetailResult, error)
	UpdateDetail(ctx context.Context, req UpdateDetailRequest) (DetailResult, error)
	DeleteDetail(ctx context.Context, req DeleteDetailRequest) error
	DeleteMaster(ctx context.Context, req DeleteMasterRequest) error
	FetchDetails(ctx context.Context, orderNo string) (FetchedOrder, error)
}

// CreateMasterRequest creates the order header.
type CreateMasterRequest struct {
	OrderDate    string `json:"orderDate"`
	RequiredDate string `json:"requiredDate"`
	RecvAddr     string `json:"recvAddr"`
	RecvTel      string `json:"recvTel"`
	RecvPerson   string `json:"recvPerson"`
	RecvMemo     string `json:"recvMemo"`
	StoreID      string `json:"storeId"`
	UserID       string `json:"userId"`
}

// CreateMasterResult carries the server-assigned order identity.
type CreateMasterResult struct {
	OrderSequ int64  `json:"orderSequ"`
	OrderNo   string `json:"orderNo"`
	Message   string `json:"message"`
}

// UpdateMasterRequest updates an existing order header.
type UpdateMasterRequest struct {
	OrderNo      string `json:"orderNo"`
	OrderSequ    int64  `json:"orderSequ"`
	OrderDate    string `json:"orderDate"`
	RequiredDate string `json:"requiredDate"`
	RecvAddr     string `json:"recvAddr"`
	RecvTel      string `json:"recvTel"`
	RecvPerson   string `json:"recvPerson"`
	RecvMemo     string `json:"recvMemo"`
	UserID       string `json:"userId"`
}

// CreateDetailRequest persists a new order line.
type CreateDetailRequest struct {
	OrderDate    string  `json:"orderDate"`
	OrderSequ    int64   `json:"orderSequ"`
	OrderTypeID  int     `json:"orderTypeId"`
	ClaimID      string  `json:"claimId"`
	VendorID     string  `json:"vendorId"`
	BrandID      string  `json:"brandId"`
	GoodsID      string  `json:"goodsId"`
	Quantity     int64   `json:"quantity"`
	UnitPrice    int64   `json:"unitPrice"`
	DiscountRate float64 `json:"discountRate"`
	Memo         string  `json:"memo"`
	UserID       string  `json:"userId"`
}

// UpdateDetailRequest updates an existing order line. LineNo is the
// server line id of the line being updated (the wire calls it orderNo).
type UpdateDetailRequest struct {
	OrderDate    string  `json:"orderDate"`
	OrderSequ    int64   `json:"orderSequ"`
	LineNo       int64   `json:"orderNo"`
	OrderTypeID  int     `json:"orderTypeId"`
	ClaimID      string  `json:"claimId"`
	VendorID     string  `json:"vendorId"`
	BrandID      string  `json:"brandId"`
	GoodsID      string  `json:"goodsId"`
	Quantity     int64   `json:"quantity"`
	UnitPrice    int64   `json:"unitPrice"`
	DiscountRate float64 `json:"discountRate"`
	Memo         string  `json:"memo"`
	UserID       string  `json:"userId"`
}

// DetailResult carries the server line id assigned or confirmed by a
// detail create/update.
type DetailResult struct {
	SeqNo   int64  `json:"seqNo"`
	Message string `json:"message"`
}

// DeleteDetailRequest removes one order line server-side.
type DeleteDetailRequest struct {
	OrderDate   string `json:"orderDate"`
	OrderSequ   int64  `json:"orderSequ"`
	LineOrderNo int64  `json:"lineOrderNo"`
	UserID      string `json:"userId"`
}

// DeleteMasterRequest removes the whole order server-side.
type DeleteMasterRequest struct {
	OrderDate string `json:"orderDate"`
	OrderSequ int64  `json:"orderSequ"`
	UserID    string `json:"userId"`
}

// FetchedLine is one authoritative order line as returned by the
// server.
type FetchedLine struct {
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

// FetchedMaster is the authoritative order header, returned alongside
// the lines when the caller asks for it.
type FetchedMaster struct {
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

// FetchedOrder is the server's answer to a detail fetch. Lines may be
// empty for a brand-new order; Master is present when the server
// includes header data.
type FetchedOrder struct {
	Lines  []FetchedLine  `json:"data"`
	Master *FetchedMaster `json:"masterData,omitempty"`
}
