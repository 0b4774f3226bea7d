package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kmart-dev/kmart-api/checkout"
	"github.com/kmart-dev/kmart-api/config"
	"github.com/kmart-dev/kmart-api/metrics"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up every route group.
func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config, svc *checkout.Service) {
	api := r.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "OK",
			"message":   "KMart API is running",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	api.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to KMart API",
			"version": "1.0.0",
			"endpoints": gin.H{
				"health":   "/api/health",
				"auth":     "/api/auth/*",
				"products": "/api/products/*",
				"cart":     "/api/cart/*",
				"payment":  "/api/payment/*",
				"orders":   "/api/orders/*",
			},
		})
	})

	SetupAuthRoutes(api, db, cfg)
	SetupProductRoutes(api, db, cfg)
	SetupCartRoutes(api, db, cfg)
	SetupPaymentRoutes(api, svc, cfg)
	SetupOrderRoutes(api, db, cfg)

	r.GET("/metrics", gin.WrapH(metrics.Handler()))
}
