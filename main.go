package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/kmart-dev/kmart-api/checkout"
	"github.com/kmart-dev/kmart-api/config"
	orderControllers "github.com/kmart-dev/kmart-api/controllers/order"
	"github.com/kmart-dev/kmart-api/metrics"
	"github.com/kmart-dev/kmart-api/models"
	"github.com/kmart-dev/kmart-api/routes"
	"github.com/kmart-dev/kmart-api/stripegateway"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	log.Println("✅ Starting KMart API...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Config error: %v", err)
	}

	db := initDatabase(cfg)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.PendingCheckout{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	// The gateway stays nil without credentials; live checkout then
	// answers 503 while mock mode keeps working.
	var gateway stripegateway.Client
	if cfg.StripeSecretKey != "" {
		gateway = stripegateway.New(cfg.StripeAPIURL, cfg.StripeSecretKey)
	} else if !cfg.MockPayments() {
		log.Println("⚠️ STRIPE_SECRET_KEY not set; live checkout will be unavailable")
	}

	svc := &checkout.Service{
		DB:          db,
		Gateway:     gateway,
		Mock:        cfg.MockPayments(),
		FrontendURL: cfg.FrontendURL,
		Metrics:     metrics.New(prometheus.DefaultRegisterer),
		Notify:      orderControllers.BroadcastOrder,
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Stripe-Signature"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.SetupRoutes(r, db, cfg, svc)

	log.Printf("🚀 Server running on port %s (payment mode: %s)...", cfg.Port, cfg.PaymentMode)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase(cfg config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ DB connection failed: %v", err)
	}
	return db
}
