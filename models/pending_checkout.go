package models

import "time"

// PendingCheckout persists a guest checkout's line items at
// session-creation time. The gateway webhook only carries the session
// id, so without this row a guest order could not be reconstructed.
type PendingCheckout struct {
	SessionID  string    `gorm:"primaryKey" json:"session_id"`
	GuestEmail string    `json:"guest_email"`
	ItemsJSON  string    `gorm:"type:text" json:"items_json"` // [{"productId":..,"quantity":..}]
	CreatedAt  time.Time `json:"created_at"`
}
