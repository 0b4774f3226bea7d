package checkout

import (
	"github.com/kmart-dev/kmart-api/models"
	"gorm.io/gorm"
)

// Line is one aggregated purchase: a current product snapshot plus the
// quantity being bought.
type Line struct {
	Product  models.Product
	Quantity int
}

// GuestItem is the client-supplied shape of a guest cart line. Only the
// product id and quantity are trusted; prices come from the catalog.
type GuestItem struct {
	ProductID uint `json:"productId"`
	Quantity  int  `json:"quantity"`
}

// AggregateUserCart resolves an authenticated user's stored cart into
// priced lines. Read-only.
func AggregateUserCart(db *gorm.DB, userID string) ([]Line, error) {
	var items []models.CartItem
	if err := db.Preload("Product").
		Where("user_id = ?", userID).
		Order("id asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	lines := make([]Line, 0, len(items))
	for _, item := range items {
		lines = append(lines, Line{Product: item.Product, Quantity: item.Quantity})
	}
	return lines, nil
}

// AggregateGuestCart re-fetches client-supplied items from the catalog.
// Entries whose product no longer resolves (or was soft-deleted) are
// dropped silently; client-supplied prices are never consulted.
func AggregateGuestCart(db *gorm.DB, items []GuestItem) ([]Line, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	lines := make([]Line, 0, len(items))
	for _, item := range items {
		if item.Quantity < 1 {
			continue
		}
		var product models.Product
		err := db.Where("id = ? AND is_active = ?", item.ProductID, true).First(&product).Error
		if err == gorm.ErrRecordNotFound {
			continue
		}
		if err != nil {
			return nil, err
		}
		lines = append(lines, Line{Product: product, Quantity: item.Quantity})
	}

	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	return lines, nil
}
