package paymentControllers

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kmart-dev/kmart-api/checkout"
	"github.com/kmart-dev/kmart-api/stripegateway"
)

// CheckoutRequest is the guest payload. Authenticated callers send an
// empty body; their identity comes from the bearer token.
type CheckoutRequest struct {
	CartItems []checkout.GuestItem `json:"cartItems"`
	Email     string               `json:"email"`
}

// CreateCheckoutSession starts a checkout for the caller's cart.
// POST /api/payment/create-checkout-session
func CreateCheckoutSession(svc *checkout.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := checkout.SessionRequest{
			UserID:    c.GetString("user_id"),
			UserEmail: c.GetString("email"),
		}

		if req.UserID == "" {
			var body CheckoutRequest
			if err := c.ShouldBindJSON(&body); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
				return
			}
			if body.Email == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required for guest checkout"})
				return
			}
			req.GuestEmail = body.Email
			req.GuestItems = body.CartItems
		}

		result, err := svc.CreateSession(c.Request.Context(), req)
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Your cart is empty"})
		case errors.Is(err, checkout.ErrGatewayDisabled):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Payment service is currently unavailable (Missing configuration)"})
		case errors.Is(err, checkout.ErrInsufficientStock):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case err != nil:
			log.Printf("❌ Create checkout session error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create checkout session"})
		default:
			c.JSON(http.StatusOK, result)
		}
	}
}

// HandleWebhook consumes signed payment events. The signature is
// verified against the raw body before anything is parsed; after it
// passes, the response is always 200 so the gateway does not
// retry-storm; fulfillment failures are only logged.
// POST /api/payment/webhook
func HandleWebhook(svc *checkout.Service, webhookSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if webhookSecret == "" {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Webhook service unavailable"})
			return
		}

		payload, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.String(http.StatusBadRequest, "Webhook Error: could not read body")
			return
		}

		event, err := stripegateway.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), webhookSecret)
		if err != nil {
			log.Printf("❌ Webhook signature verification failed: %v", err)
			c.String(http.StatusBadRequest, "Webhook Error: %v", err)
			return
		}

		if err := svc.HandleCompletedSession(c.Request.Context(), event); err != nil {
			log.Printf("❌ Fulfill order error (event %s): %v", event.ID, err)
		}

		c.JSON(http.StatusOK, gin.H{"received": true})
	}
}
