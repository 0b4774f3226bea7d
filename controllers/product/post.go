package productcontroller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kmart-dev/kmart-api/models"
	"gorm.io/gorm"
)

type ProductInput struct {
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	Price         float64  `json:"price" binding:"required,gt=0"`
	DiscountPrice *float64 `json:"discountPrice"`
	StockQuantity int      `json:"stockQuantity"`
	Unit          string   `json:"unit"`
	ImageURL      string   `json:"imageUrl"`
	IsOrganic     bool     `json:"isOrganic"`
}

// CreateProduct adds a catalog item. Admin only.
// POST /api/products
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name and price are required"})
			return
		}

		unit := input.Unit
		if unit == "" {
			unit = "piece"
		}

		product := models.Product{
			Name:          input.Name,
			Description:   input.Description,
			Category:      input.Category,
			Price:         input.Price,
			DiscountPrice: input.DiscountPrice,
			StockQuantity: input.StockQuantity,
			Unit:          unit,
			ImageURL:      input.ImageURL,
			IsActive:      true,
			IsOrganic:     input.IsOrganic,
			CreatedAt:     time.Now(),
		}
		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "Product created successfully",
			"product": product,
		})
	}
}
