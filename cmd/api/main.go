package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/orderdesk/orderdesk-api/internal/application/service"
	"github.com/orderdesk/orderdesk-api/internal/config"
	"github.com/orderdesk/orderdesk-api/internal/infrastructure/cache"
	"github.com/orderdesk/orderdesk-api/internal/infrastructure/database"
	"github.com/orderdesk/orderdesk-api/internal/infrastructure/repository"
	"github.com/orderdesk/orderdesk-api/internal/presentation/http/handler"
	"github.com/orderdesk/orderdesk-api/internal/presentation/http/routes"
	"github.com/orderdesk/orderdesk-api/pkg/utils"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	orderDetailRepo := repository.NewOrderDetailRepository(db)
	goodsRepo := repository.NewGoodsRepository(db)

	// Initialize goods cache
	var goodsCache cache.GoodsCache = cache.NoopGoodsCache{}
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		goodsCache = cache.NewRedisGoodsCache(redisClient)
		log.Printf("Goods cache: redis at %s", cfg.Redis.Addr)
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	orderService := service.NewOrderService(orderRepo, orderDetailRepo, goodsRepo)
	goodsService := service.NewGoodsService(goodsRepo, goodsCache, cfg.Redis.TTL)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:  handler.NewAuthHandler(authService),
		Order: handler.NewOrderHandler(orderService),
		Goods: handler.NewGoodsHandler(goodsService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
