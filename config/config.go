package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds everything the server reads from the environment.
// Clients (DB, payment gateway) are constructed from it in main and
// passed down explicitly; nothing reads os.Getenv at request time.
type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:5177"`

	DatabaseURL string `env:"DATABASE_URL"`
	DBHost      string `env:"DB_HOST" envDefault:"localhost"`
	DBPort      string `env:"DB_PORT" envDefault:"5432"`
	DBUser      string `env:"DB_USER" envDefault:"postgres"`
	DBPassword  string `env:"DB_PASSWORD"`
	DBName      string `env:"DB_NAME" envDefault:"kmart"`

	JWTSecret        string `env:"JWT_SECRET" envDefault:"kmart-dev-secret"`
	JWTRefreshSecret string `env:"JWT_REFRESH_SECRET" envDefault:"kmart-dev-refresh-secret"`

	// PaymentMode selects "live" (real Stripe checkout) or "mock"
	// (no gateway credentials needed, orders fulfilled inline).
	PaymentMode         string `env:"PAYMENT_MODE" envDefault:"live"`
	StripeAPIURL        string `env:"STRIPE_API_URL" envDefault:"https://api.stripe.com"`
	StripeSecretKey     string `env:"STRIPE_SECRET_KEY"`
	StripeWebhookSecret string `env:"STRIPE_WEBHOOK_SECRET"`
}

// Load reads .env (if present) and parses the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// DSN builds the postgres connection string, preferring DATABASE_URL.
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort,
	)
}

// MockPayments reports whether checkout should bypass the real gateway.
func (c Config) MockPayments() bool {
	return c.PaymentMode == "mock"
}
