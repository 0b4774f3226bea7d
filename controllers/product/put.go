package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kmart-dev/kmart-api/models"
	"gorm.io/gorm"
)

type ProductUpdateInput struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	Category      *string  `json:"category"`
	Price         *float64 `json:"price"`
	DiscountPrice *float64 `json:"discountPrice"`
	StockQuantity *int     `json:"stockQuantity"`
	Unit          *string  `json:"unit"`
	ImageURL      *string  `json:"imageUrl"`
	IsActive      *bool    `json:"isActive"`
	IsOrganic     *bool    `json:"isOrganic"`
}

// UpdateProduct applies a partial update. Admin only.
// PUT /api/products/:id
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var input ProductUpdateInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.Price != nil && *input.Price <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be greater than zero"})
			return
		}

		updates := map[string]interface{}{}
		if input.Name != nil {
			updates["name"] = *input.Name
		}
		if input.Description != nil {
			updates["description"] = *input.Description
		}
		if input.Category != nil {
			updates["category"] = *input.Category
		}
		if input.Price != nil {
			updates["price"] = *input.Price
		}
		if input.DiscountPrice != nil {
			updates["discount_price"] = *input.DiscountPrice
		}
		if input.StockQuantity != nil {
			updates["stock_quantity"] = *input.StockQuantity
		}
		if input.Unit != nil {
			updates["unit"] = *input.Unit
		}
		if input.ImageURL != nil {
			updates["image_url"] = *input.ImageURL
		}
		if input.IsActive != nil {
			updates["is_active"] = *input.IsActive
		}
		if input.IsOrganic != nil {
			updates["is_organic"] = *input.IsOrganic
		}

		var product models.Product
		if err := db.First(&product, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		if err := db.Model(&product).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Product updated successfully",
			"product": product,
		})
	}
}
