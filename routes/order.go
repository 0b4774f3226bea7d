package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/kmart-dev/kmart-api/config"
	orderControllers "github.com/kmart-dev/kmart-api/controllers/order"
	"github.com/kmart-dev/kmart-api/middleware"
	"gorm.io/gorm"
)

// SetupOrderRoutes registers all "/api/orders/*" endpoints.
func SetupOrderRoutes(api *gin.RouterGroup, db *gorm.DB, cfg config.Config) {
	orders := api.Group("/orders")
	orders.Use(middleware.ValidateToken(cfg.JWTSecret))
	{
		orders.GET("", orderControllers.GetUserOrders(db))
		orders.GET("/ws", orderControllers.OrderWebSocket)
		orders.GET("/all", middleware.RequireAdmin, orderControllers.GetAllOrders(db))
		orders.GET("/:id", orderControllers.GetOrderByID(db))
		orders.PUT("/:id/status", middleware.RequireAdmin, orderControllers.UpdateOrderStatus(db))
	}
}
