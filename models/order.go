package models

import "time"

type OrderStatus string
type PaymentStatus string

const (
	OrderStatusProcessing OrderStatus = "processing" // paid, being prepared
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"

	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

type Order struct {
	ID     uint    `gorm:"primaryKey" json:"id"`
	UserID *string `gorm:"index" json:"user_id"` // nil for guest checkouts
	User   *User   `gorm:"foreignKey:UserID" json:"user,omitempty"`

	GuestEmail string `json:"guest_email,omitempty"` // informational only

	Items       []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount float64     `json:"total_amount"` // major units (dollars)

	Status        OrderStatus   `gorm:"type:VARCHAR(20);default:'processing'" json:"status"`
	PaymentStatus PaymentStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"payment_status"`
	PaymentMethod string        `json:"payment_method"` // "stripe" or "mock"

	// StripePaymentID is the gateway payment reference. The unique index
	// makes webhook redelivery a no-op: one fulfilled order per payment.
	StripePaymentID string `gorm:"uniqueIndex;not null" json:"stripe_payment_id"`

	ShippingAddress string    `json:"shipping_address"`
	CreatedAt       time.Time `json:"created_at"`
}

// OrderItem snapshots product name and price at fulfillment time, so
// later catalog edits never alter historical orders.
type OrderItem struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	OrderID     uint    `gorm:"index" json:"order_id"`
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	TotalPrice  float64 `json:"total_price"`
}
