package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/kmart-dev/kmart-api/config"
	cartControllers "github.com/kmart-dev/kmart-api/controllers/cart"
	"github.com/kmart-dev/kmart-api/middleware"
	"gorm.io/gorm"
)

// SetupCartRoutes registers all "/api/cart/*" endpoints (JWT-protected).
// Guest carts live in the client's local storage and only reach the
// server at checkout time.
func SetupCartRoutes(api *gin.RouterGroup, db *gorm.DB, cfg config.Config) {
	cart := api.Group("/cart")
	cart.Use(middleware.ValidateToken(cfg.JWTSecret))
	{
		cart.GET("", cartControllers.GetCart(db))
		cart.POST("", cartControllers.AddToCart(db))
		cart.PUT("/:id", cartControllers.UpdateCartItem(db))
		cart.DELETE("/:id", cartControllers.RemoveFromCart(db))
		cart.DELETE("", cartControllers.ClearCart(db))
	}
}
