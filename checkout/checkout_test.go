package checkout

import (
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kmart-dev/kmart-api/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory sqlite database with the full
// schema. Each test gets its own named database so they can't see each
// other's rows.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.PendingCheckout{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64, discount *float64, stock int) models.Product {
	t.Helper()
	product := models.Product{
		Name:          name,
		Category:      "fruit",
		Price:         price,
		DiscountPrice: discount,
		StockQuantity: stock,
		Unit:          "kg",
		IsActive:      true,
		CreatedAt:     time.Now(),
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("seed product %s: %v", name, err)
	}
	return product
}

func seedUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	user := models.User{
		ID:        uuid.NewString(),
		Email:     email,
		Role:      "user",
		CreatedAt: time.Now(),
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return user
}

func seedCartItem(t *testing.T, db *gorm.DB, userID string, productID uint, qty int) {
	t.Helper()
	item := models.CartItem{UserID: userID, ProductID: productID, Quantity: qty, AddedAt: time.Now()}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("seed cart item: %v", err)
	}
}

func floatPtr(v float64) *float64 { return &v }

func itoa(v uint) string { return strconv.FormatUint(uint64(v), 10) }

func almostEqual(a, b float64) bool {
	diff := a - b
	return diff < 1e-9 && diff > -1e-9
}
