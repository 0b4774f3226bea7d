package models

import "time"

type Product struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string    `gorm:"not null" json:"name"`
	Description   string    `json:"description"`
	Category      string    `gorm:"index" json:"category"`
	Price         float64   `gorm:"not null" json:"price"`
	DiscountPrice *float64  `json:"discount_price"`
	StockQuantity int       `json:"stock_quantity"`
	Unit          string    `gorm:"default:'piece'" json:"unit"` // "kg", "piece", "bunch", ...
	ImageURL      string    `json:"image_url"`
	IsActive      bool      `json:"is_active"` // soft delete flag, rows are never removed
	IsOrganic     bool      `json:"is_organic"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
