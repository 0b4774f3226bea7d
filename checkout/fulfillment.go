package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/kmart-dev/kmart-api/models"
	"github.com/kmart-dev/kmart-api/stripegateway"
	"gorm.io/gorm"
)

// PaymentEvent is the provider-agnostic "payment completed" signal the
// fulfillment handler consumes, whether it came from a verified webhook
// or was synthesized by mock mode.
type PaymentEvent struct {
	SessionID       string
	PaymentRef      string
	UserID          string // empty means guest
	GuestEmail      string
	ShippingAddress string
	PaymentMethod   string
	Lines           []Line // nil means re-derive from cart / pending checkout
}

// Fulfill turns a completed payment into an order: order row, item
// snapshots, conditional stock decrements, and cart clear, all inside
// one transaction. Redelivering the same payment reference is a no-op
// returning the already-created order.
func (s *Service) Fulfill(ctx context.Context, event PaymentEvent) (*models.Order, error) {
	var order models.Order
	created := false

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Preload("Items").Where("stripe_payment_id = ?", event.PaymentRef).First(&order).Error
		if err == nil {
			log.Printf("ℹ️ Payment %s already fulfilled as order %d, skipping", event.PaymentRef, order.ID)
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		lines, err := s.resolveLines(tx, event)
		if err != nil {
			return err
		}

		var total float64
		items := make([]models.OrderItem, 0, len(lines))
		for _, line := range lines {
			unit := EffectiveUnitPrice(line.Product)
			items = append(items, models.OrderItem{
				ProductID:   line.Product.ID,
				ProductName: line.Product.Name,
				Quantity:    line.Quantity,
				UnitPrice:   unit,
				TotalPrice:  unit * float64(line.Quantity),
			})
			total += unit * float64(line.Quantity)
		}

		var userID *string
		if event.UserID != "" {
			userID = &event.UserID
		}
		shipping := event.ShippingAddress
		if shipping == "" {
			shipping = "Direct Pickup"
		}
		method := event.PaymentMethod
		if method == "" {
			method = "stripe"
		}

		order = models.Order{
			UserID:          userID,
			GuestEmail:      event.GuestEmail,
			Items:           items,
			TotalAmount:     total,
			Status:          models.OrderStatusProcessing,
			PaymentStatus:   models.PaymentStatusPaid,
			PaymentMethod:   method,
			StripePaymentID: event.PaymentRef,
			ShippingAddress: shipping,
			CreatedAt:       time.Now(),
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		// Conditional decrement: zero rows affected means the guard
		// failed and the whole fulfillment rolls back. No oversell.
		for _, line := range lines {
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock_quantity >= ?", line.Product.ID, line.Quantity).
				Update("stock_quantity", gorm.Expr("stock_quantity - ?", line.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w: %s", ErrInsufficientStock, line.Product.Name)
			}
		}

		if event.UserID != "" {
			if err := tx.Where("user_id = ?", event.UserID).Delete(&models.CartItem{}).Error; err != nil {
				return err
			}
		}
		if event.SessionID != "" {
			if err := tx.Where("session_id = ?", event.SessionID).Delete(&models.PendingCheckout{}).Error; err != nil {
				return err
			}
		}

		if s.Metrics != nil {
			s.Metrics.OrdersFulfilled.Inc()
		}
		log.Printf("✅ Order %d fulfilled (payment %s)", order.ID, event.PaymentRef)
		created = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	// A duplicate delivery returns the existing order without
	// re-announcing it on the feed.
	if created && s.Notify != nil {
		s.Notify(order)
	}
	return &order, nil
}

// resolveLines picks the purchased items: already-known lines (mock
// mode), the user's stored cart, or the persisted guest checkout.
func (s *Service) resolveLines(tx *gorm.DB, event PaymentEvent) ([]Line, error) {
	if len(event.Lines) > 0 {
		return event.Lines, nil
	}
	if event.UserID != "" {
		return AggregateUserCart(tx, event.UserID)
	}

	var pending models.PendingCheckout
	err := tx.Where("session_id = ?", event.SessionID).First(&pending).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w (session %s)", ErrGuestItemsUnavailable, event.SessionID)
	}
	if err != nil {
		return nil, err
	}

	var items []GuestItem
	if err := json.Unmarshal([]byte(pending.ItemsJSON), &items); err != nil {
		return nil, fmt.Errorf("corrupt pending checkout %s: %w", event.SessionID, err)
	}
	return AggregateGuestCart(tx, items)
}

// HandleCompletedSession maps a verified webhook event onto fulfillment.
// Event types other than checkout.session.completed are ignored.
func (s *Service) HandleCompletedSession(ctx context.Context, event stripegateway.Event) error {
	if event.Type != "checkout.session.completed" {
		s.countWebhook("ignored")
		return nil
	}

	session := event.Data.Object
	userID := session.Metadata["userId"]
	guestEmail := ""
	if userID == "guest" || userID == "" {
		userID = ""
		guestEmail = session.CustomerEmail
	}

	shipping := ""
	if len(session.ShippingDetails) > 0 && string(session.ShippingDetails) != "null" {
		shipping = string(session.ShippingDetails)
	}

	_, err := s.Fulfill(ctx, PaymentEvent{
		SessionID:       session.ID,
		PaymentRef:      session.PaymentIntent,
		UserID:          userID,
		GuestEmail:      guestEmail,
		ShippingAddress: shipping,
		PaymentMethod:   "stripe",
	})
	if err != nil {
		s.countWebhook("failed")
		return err
	}
	s.countWebhook("fulfilled")
	return nil
}

func (s *Service) countWebhook(outcome string) {
	if s.Metrics != nil {
		s.Metrics.WebhookEvents.WithLabelValues(outcome).Inc()
	}
}
