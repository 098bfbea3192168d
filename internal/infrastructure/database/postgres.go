package database

import (
	"fmt"
	"log"

	"github.com/orderdesk/orderdesk-api/internal/config"
	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
	"github.com/orderdesk/orderdesk-api/pkg/utils"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&entity.User{},
		&entity.Goods{},
		&entity.OrderMaster{},
		&entity.OrderDetail{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// SeedDefaultData inserts the default operator account and a small demo
// catalog when the tables are empty.
func SeedDefaultData(db *gorm.DB) error {
	var users int64
	if err := db.Model(&entity.User{}).Count(&users).Error; err != nil {
		return err
	}
	if users == 0 {
		hash, err := utils.HashPassword("admin1234")
		if err != nil {
			return err
		}
		admin := entity.User{
			Username: "admin",
			Name:     "Administrator",
			Password: hash,
			StoreID:  "S001",
		}
		if err := db.Create(&admin).Error; err != nil {
			return err
		}
		log.Println("Seeded default admin user")
	}

	var goods int64
	if err := db.Model(&entity.Goods{}).Count(&goods).Error; err != nil {
		return err
	}
	if goods == 0 {
		demo := []entity.Goods{
			{GoodsID: "G10001", Barcode: "8801234500017", GoodsName: "Trail Runner GTX", BrandID: "B01", BrandName: "Northpeak", VendorID: "V01", VendorName: "Hansol Trading", ConsumerPrice: 129000, DiscountRate: 10},
			{GoodsID: "G10002", Barcode: "8801234500024", GoodsName: "Daypack 22L", BrandID: "B01", BrandName: "Northpeak", VendorID: "V01", VendorName: "Hansol Trading", ConsumerPrice: 59000, DiscountRate: 5},
			{GoodsID: "G10003", Barcode: "8801234500031", GoodsName: "Merino Crew Sock", BrandID: "B02", BrandName: "Woolway", VendorID: "V02", VendorName: "Daeil Distribution", ConsumerPrice: 12000},
		}
		if err := db.Create(&demo).Error; err != nil {
			return err
		}
		log.Println("Seeded demo goods catalog")
	}
	return nil
}
