package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/kmart-dev/kmart-api/checkout"
	"github.com/kmart-dev/kmart-api/config"
	paymentControllers "github.com/kmart-dev/kmart-api/controllers/payment"
	"github.com/kmart-dev/kmart-api/middleware"
)

// SetupPaymentRoutes registers all "/api/payment/*" endpoints.
func SetupPaymentRoutes(api *gin.RouterGroup, svc *checkout.Service, cfg config.Config) {
	payment := api.Group("/payment")
	{
		// Optional auth: authenticated buyers checkout their stored
		// cart, guests post their items inline.
		payment.POST("/create-checkout-session",
			middleware.OptionalToken(cfg.JWTSecret),
			paymentControllers.CreateCheckoutSession(svc),
		)

		// The webhook handler reads the raw body itself; no auth, the
		// signature is the authentication.
		payment.POST("/webhook", paymentControllers.HandleWebhook(svc, cfg.StripeWebhookSecret))
	}
}
