package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/kmart-dev/kmart-api/config"
	productcontroller "github.com/kmart-dev/kmart-api/controllers/product"
	"github.com/kmart-dev/kmart-api/middleware"
	"gorm.io/gorm"
)

// SetupProductRoutes registers all "/api/products/*" endpoints.
// Browsing is public; mutations and the export are admin-only.
func SetupProductRoutes(api *gin.RouterGroup, db *gorm.DB, cfg config.Config) {
	products := api.Group("/products")
	{
		products.GET("", productcontroller.GetProducts(db))
		products.GET("/featured", productcontroller.GetFeaturedProducts(db))
		products.GET("/categories", productcontroller.GetCategories(db))
		products.GET("/:id", productcontroller.GetProductByID(db))

		admin := products.Group("")
		admin.Use(middleware.ValidateToken(cfg.JWTSecret), middleware.RequireAdmin)
		{
			admin.POST("", productcontroller.CreateProduct(db))
			admin.PUT("/:id", productcontroller.UpdateProduct(db))
			admin.DELETE("/:id", productcontroller.DeleteProduct(db))
			admin.GET("/export", productcontroller.ExportProductsToExcel(db))
		}
	}
}
