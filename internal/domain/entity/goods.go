package entity

import (
	"time"

	"gorm.io/gorm"
)

// Goods is one product in the catalog. Consumer price and the catalog
// discount rate seed new order lines; brand and vendor names are
// carried for grid display.
type Goods struct {
	GoodsID       string         `gorm:"primaryKey;size:30" json:"goodsId"`
	Barcode       string         `gorm:"size:30;uniqueIndex" json:"barcode"`
	GoodsName     string         `gorm:"size:255;not null" json:"goodsName"`
	BrandID       string         `gorm:"size:20;index" json:"brandId"`
	BrandName     string         `gorm:"size:100" json:"brandName"`
	VendorID      string         `gorm:"size:20;index" json:"vendorId"`
	VendorName    string         `gorm:"size:100" json:"vendorName"`
	ConsumerPrice int64          `gorm:"default:0" json:"consumerPrice"`
	DiscountRate  float64        `gorm:"default:0" json:"discountRate"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName returns the table name for the Goods model
func (Goods) TableName() string {
	return "goods"
}
