package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/orderdesk/orderdesk-api/internal/config"
	"github.com/orderdesk/orderdesk-api/internal/presentation/http/handler"
	"github.com/orderdesk/orderdesk-api/internal/presentation/http/middleware"
	"github.com/orderdesk/orderdesk-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth  *handler.AuthHandler
	Order *handler.OrderHandler
	Goods *handler.GoodsHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager *utils.JWTManager
	Cfg        *config.Config
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
		}

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-operator rate limiter
		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerOrderRoutes(protected, h)
		registerGoodsRoutes(protected, h)
	}

	return router
}

func registerOrderRoutes(protected *gin.RouterGroup, h *Handlers) {
	orders := protected.Group("/orders")
	{
		orders.GET("", h.Order.List)
		orders.POST("", h.Order.CreateMaster)
		orders.PUT("", h.Order.UpdateMaster)
		orders.POST("/details", h.Order.CreateDetail)
		orders.PUT("/details", h.Order.UpdateDetail)
		orders.GET("/:orderNo/details", h.Order.FetchDetails)
		// Deletes take a body and answer in the legacy envelope, so
		// they stay POST endpoints.
		orders.POST("/details/delete", h.Order.DeleteDetail)
		orders.POST("/delete", h.Order.DeleteMaster)
	}
}

func registerGoodsRoutes(protected *gin.RouterGroup, h *Handlers) {
	goods := protected.Group("/goods")
	{
		goods.GET("", h.Goods.Search)
		goods.GET("/barcode/:barcode", h.Goods.GetByBarcode)
	}
}
