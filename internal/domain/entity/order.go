package entity

import (
	"time"

	"github.com/orderdesk/orderdesk-api/internal/domain/enum"
	"gorm.io/gorm"
)

// DateLayout is the wire format for all order dates.
const DateLayout = "2006-01-02"

// OrderMaster is the order header, one per order. OrderSequ is the
// numeric sequence id assigned on insert; OrderNo is the human-facing
// order number assigned at creation.
type OrderMaster struct {
	OrderSequ    int64          `gorm:"primaryKey;autoIncrement" json:"orderSequ"`
	OrderNo      string         `gorm:"size:30;uniqueIndex;not null" json:"orderNo"`
	OrderDate    time.Time      `gorm:"type:date;not null;index" json:"-"`
	RequiredDate time.Time      `gorm:"type:date;not null" json:"-"`
	StoreID      string         `gorm:"size:20;not null;index" json:"storeId"`
	OrderType    enum.OrderType `gorm:"default:1" json:"orderTypeId"`
	Remarks      string         `gorm:"type:text" json:"remarks"`
	RecvPerson   string         `gorm:"size:100" json:"recvPerson"`
	RecvAddr     string         `gorm:"size:255" json:"recvAddr"`
	RecvTel      string         `gorm:"size:50" json:"recvTel"`
	RecvMemo     string         `gorm:"size:255" json:"recvMemo"`
	UserID       string         `gorm:"size:50;not null" json:"userId"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Details []OrderDetail `gorm:"foreignKey:OrderSequ;references:OrderSequ" json:"details,omitempty"`
}

// TableName returns the table name for the OrderMaster model
func (OrderMaster) TableName() string {
	return "order_masters"
}

// OrderDetail is one product line within an order. SeqNo is the server
// line id clients track per line.
type OrderDetail struct {
	SeqNo        int64          `gorm:"primaryKey;autoIncrement" json:"seqNo"`
	OrderSequ    int64          `gorm:"not null;index" json:"orderSequ"`
	OrderType    enum.OrderType `gorm:"default:1" json:"orderTypeId"`
	ClaimID      string         `gorm:"size:20" json:"claimId"`
	GoodsID      string         `gorm:"size:30;not null;index" json:"goodsId"`
	BrandID      string         `gorm:"size:20" json:"brandId"`
	VendorID     string         `gorm:"size:20" json:"vendorId"`
	Quantity     int64          `gorm:"not null" json:"quantity"`
	UnitPrice    int64          `gorm:"not null" json:"unitPrice"`
	DiscountRate float64        `gorm:"default:0" json:"discountRate"`
	Memo         string         `gorm:"size:255" json:"memo"`

	ShipOutDate    *time.Time `gorm:"type:date" json:"-"`
	ExpectedInDate *time.Time `gorm:"type:date" json:"-"`
	ActualInDate   *time.Time `gorm:"type:date" json:"-"`

	UserID    string         `gorm:"size:50;not null" json:"userId"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Order OrderMaster `gorm:"foreignKey:OrderSequ;references:OrderSequ" json:"-"`
	Goods *Goods      `gorm:"foreignKey:GoodsID;references:GoodsID" json:"goods,omitempty"`
}

// TableName returns the table name for the OrderDetail model
func (OrderDetail) TableName() string {
	return "order_details"
}

// FormatDate renders a nullable date column in the wire format, empty
// when unset.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}
