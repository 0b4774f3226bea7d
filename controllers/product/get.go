package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kmart-dev/kmart-api/checkout"
	"github.com/kmart-dev/kmart-api/models"
	"gorm.io/gorm"
)

// GetProductByID returns a single active product.
// URL param: /api/products/:id
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.Where("id = ? AND is_active = ?", id, true).First(&product).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"product":         product,
			"hasDiscount":     checkout.HasDiscount(product),
			"discountPercent": checkout.DiscountPercent(product),
		})
	}
}

// GetFeaturedProducts returns active products carrying a discount price.
// GET /api/products/featured?limit=6
func GetFeaturedProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "6"))
		if limit < 1 {
			limit = 6
		}

		var products []models.Product
		if err := db.
			Where("is_active = ? AND discount_price IS NOT NULL", true).
			Order("created_at DESC").
			Limit(limit).
			Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch featured products"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

// GetCategories lists the distinct categories of active products.
// GET /api/products/categories
func GetCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []string
		if err := db.Model(&models.Product{}).
			Where("is_active = ? AND category <> ''", true).
			Distinct("category").
			Order("category").
			Pluck("category", &categories).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"categories": categories})
	}
}
