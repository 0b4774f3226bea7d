package productcontroller

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kmart-dev/kmart-api/models"
	"gorm.io/gorm"
)

var sortableColumns = map[string]bool{
	"created_at":     true,
	"name":           true,
	"price":          true,
	"stock_quantity": true,
}

// GET /api/products
// Query params: page, limit, search, category (comma separated),
// minPrice, maxPrice, isOrganic, inStock, sortBy, order.
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		if page < 1 {
			page = 1
		}
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "12"))
		if limit < 1 {
			limit = 12
		}
		offset := (page - 1) * limit

		sortBy := c.DefaultQuery("sortBy", "created_at")
		if !sortableColumns[sortBy] {
			sortBy = "created_at"
		}
		sortOrder := strings.ToLower(c.DefaultQuery("order", "desc"))
		if sortOrder != "asc" && sortOrder != "desc" {
			sortOrder = "desc"
		}

		query := db.Model(&models.Product{}).Where("is_active = ?", true)

		if search := c.Query("search"); search != "" {
			likePattern := "%" + search + "%"
			query = query.Where("LOWER(name) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", likePattern, likePattern)
		}

		if category := c.Query("category"); category != "" {
			categories := []string{}
			for _, cat := range strings.Split(category, ",") {
				if cat = strings.TrimSpace(cat); cat != "" {
					categories = append(categories, cat)
				}
			}
			if len(categories) > 0 {
				query = query.Where("category IN ?", categories)
			}
		}

		if minPriceStr := c.Query("minPrice"); minPriceStr != "" {
			if mp, err := strconv.ParseFloat(minPriceStr, 64); err == nil {
				query = query.Where("price >= ?", mp)
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid minPrice"})
				return
			}
		}
		if maxPriceStr := c.Query("maxPrice"); maxPriceStr != "" {
			if mp, err := strconv.ParseFloat(maxPriceStr, 64); err == nil {
				query = query.Where("price <= ?", mp)
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid maxPrice"})
				return
			}
		}

		if c.Query("isOrganic") == "true" {
			query = query.Where("is_organic = ?", true)
		}
		if c.Query("inStock") == "true" {
			query = query.Where("stock_quantity > 0")
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		var products []models.Product
		if err := query.
			Order(fmt.Sprintf("%s %s", sortBy, sortOrder)).
			Limit(limit).
			Offset(offset).
			Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"products": products,
			"pagination": gin.H{
				"page":       page,
				"limit":      limit,
				"total":      total,
				"totalPages": int(math.Ceil(float64(total) / float64(limit))),
			},
		})
	}
}
