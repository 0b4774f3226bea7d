package productcontroller_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kmart-dev/kmart-api/config"
	authControllers "github.com/kmart-dev/kmart-api/controllers/auth"
	"github.com/kmart-dev/kmart-api/models"
	"github.com/kmart-dev/kmart-api/routes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testJWTSecret = "test-jwt-secret"

func newProductServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Product{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	r := gin.New()
	routes.SetupProductRoutes(r.Group("/api"), db, config.Config{JWTSecret: testJWTSecret})
	return r, db
}

func tokenFor(t *testing.T, db *gorm.DB, role string) string {
	t.Helper()
	user := models.User{ID: uuid.NewString(), Email: role + "@example.com", Role: role, CreatedAt: time.Now()}
	if err := db.Create(&user).Error; err != nil {
		t.Fatal(err)
	}
	token, err := authControllers.GenerateToken(user, testJWTSecret)
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func seed(t *testing.T, db *gorm.DB, p models.Product) models.Product {
	t.Helper()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatal(err)
	}
	return p
}

func do(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var resp struct {
		Products []map[string]any `json:"products"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v, body = %s", err, w.Body.String())
	}
	return resp.Products
}

func discount(v float64) *float64 { return &v }

func TestGetProductsFiltersAndPaginates(t *testing.T) {
	r, db := newProductServer(t)
	seed(t, db, models.Product{Name: "Apples", Category: "fruit", Price: 2.99, StockQuantity: 10, IsActive: true})
	seed(t, db, models.Product{Name: "Pears", Category: "fruit", Price: 3.49, StockQuantity: 0, IsActive: true})
	seed(t, db, models.Product{Name: "Milk", Category: "dairy", Price: 1.99, StockQuantity: 5, IsActive: true, IsOrganic: true})
	seed(t, db, models.Product{Name: "Hidden", Category: "fruit", Price: 9.99, StockQuantity: 3, IsActive: false})

	w := do(r, http.MethodGet, "/api/products", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if got := decodeList(t, w); len(got) != 3 {
		t.Errorf("got %d products, want 3 (inactive excluded)", len(got))
	}

	if got := decodeList(t, do(r, http.MethodGet, "/api/products?category=fruit", "", nil)); len(got) != 2 {
		t.Errorf("category filter: got %d, want 2", len(got))
	}
	if got := decodeList(t, do(r, http.MethodGet, "/api/products?inStock=true&category=fruit", "", nil)); len(got) != 1 {
		t.Errorf("inStock filter: got %d, want 1", len(got))
	}
	if got := decodeList(t, do(r, http.MethodGet, "/api/products?isOrganic=true", "", nil)); len(got) != 1 {
		t.Errorf("isOrganic filter: got %d, want 1", len(got))
	}
	if got := decodeList(t, do(r, http.MethodGet, "/api/products?minPrice=2&maxPrice=3", "", nil)); len(got) != 1 {
		t.Errorf("price filter: got %d, want 1", len(got))
	}

	w = do(r, http.MethodGet, "/api/products?limit=2&page=2&sortBy=price&order=asc", "", nil)
	var resp struct {
		Products   []map[string]any `json:"products"`
		Pagination struct {
			Total      int `json:"total"`
			TotalPages int `json:"totalPages"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Pagination.Total != 3 || resp.Pagination.TotalPages != 2 {
		t.Errorf("pagination = %+v", resp.Pagination)
	}
	if len(resp.Products) != 1 || resp.Products[0]["name"] != "Pears" {
		t.Errorf("page 2 = %v", resp.Products)
	}
}

func TestGetProductsSearch(t *testing.T) {
	r, db := newProductServer(t)
	seed(t, db, models.Product{Name: "Green Apples", Category: "fruit", Price: 2.99, StockQuantity: 10, IsActive: true})
	seed(t, db, models.Product{Name: "Cider", Description: "Pressed apple juice", Price: 3.99, StockQuantity: 4, IsActive: true})
	seed(t, db, models.Product{Name: "Bread", Price: 2.49, StockQuantity: 6, IsActive: true})

	// Case-insensitive, matching name or description.
	if got := decodeList(t, do(r, http.MethodGet, "/api/products?search=APPLE", "", nil)); len(got) != 2 {
		t.Errorf("search=APPLE: got %d products, want 2", len(got))
	}
	if got := decodeList(t, do(r, http.MethodGet, "/api/products?search=bread", "", nil)); len(got) != 1 {
		t.Errorf("search=bread: got %d products, want 1", len(got))
	}
	if got := decodeList(t, do(r, http.MethodGet, "/api/products?search=quinoa", "", nil)); len(got) != 0 {
		t.Errorf("search=quinoa: got %d products, want 0", len(got))
	}
}

func TestGetProductsRejectsBadPrice(t *testing.T) {
	r, _ := newProductServer(t)

	w := do(r, http.MethodGet, "/api/products?minPrice=abc", "", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestGetProductByIDReportsDiscount(t *testing.T) {
	r, db := newProductServer(t)
	p := seed(t, db, models.Product{Name: "Apples", Price: 10, DiscountPrice: discount(8), StockQuantity: 5, IsActive: true})

	w := do(r, http.MethodGet, fmt.Sprintf("/api/products/%d", p.ID), "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp struct {
		HasDiscount     bool    `json:"hasDiscount"`
		DiscountPercent float64 `json:"discountPercent"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.HasDiscount || resp.DiscountPercent != 20 {
		t.Errorf("resp = %+v", resp)
	}
}

func TestGetProductByIDNotFound(t *testing.T) {
	r, db := newProductServer(t)
	p := seed(t, db, models.Product{Name: "Gone", Price: 1, IsActive: false})

	if w := do(r, http.MethodGet, fmt.Sprintf("/api/products/%d", p.ID), "", nil); w.Code != http.StatusNotFound {
		t.Errorf("inactive product: status = %d, want 404", w.Code)
	}
	if w := do(r, http.MethodGet, "/api/products/99999", "", nil); w.Code != http.StatusNotFound {
		t.Errorf("missing product: status = %d, want 404", w.Code)
	}
}

func TestGetFeaturedProducts(t *testing.T) {
	r, db := newProductServer(t)
	seed(t, db, models.Product{Name: "Plain", Price: 2, IsActive: true})
	seed(t, db, models.Product{Name: "On sale", Price: 4, DiscountPrice: discount(3), IsActive: true})

	got := decodeList(t, do(r, http.MethodGet, "/api/products/featured", "", nil))
	if len(got) != 1 || got[0]["name"] != "On sale" {
		t.Errorf("featured = %v", got)
	}
}

func TestGetCategories(t *testing.T) {
	r, db := newProductServer(t)
	seed(t, db, models.Product{Name: "Apples", Category: "fruit", Price: 2, IsActive: true})
	seed(t, db, models.Product{Name: "Pears", Category: "fruit", Price: 3, IsActive: true})
	seed(t, db, models.Product{Name: "Milk", Category: "dairy", Price: 1, IsActive: true})
	seed(t, db, models.Product{Name: "Hidden", Category: "frozen", Price: 5, IsActive: false})

	w := do(r, http.MethodGet, "/api/products/categories", "", nil)
	var resp struct {
		Categories []string `json:"categories"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	want := []string{"dairy", "fruit"}
	if len(resp.Categories) != len(want) {
		t.Fatalf("categories = %v", resp.Categories)
	}
	for i := range want {
		if resp.Categories[i] != want[i] {
			t.Errorf("categories = %v, want %v", resp.Categories, want)
		}
	}
}

func TestCreateProductRequiresAdmin(t *testing.T) {
	r, db := newProductServer(t)
	userToken := tokenFor(t, db, "user")

	body := gin.H{"name": "Apples", "price": 2.99}
	if w := do(r, http.MethodPost, "/api/products", "", body); w.Code != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", w.Code)
	}
	if w := do(r, http.MethodPost, "/api/products", userToken, body); w.Code != http.StatusForbidden {
		t.Errorf("user token: status = %d, want 403", w.Code)
	}
}

func TestCreateProduct(t *testing.T) {
	r, db := newProductServer(t)
	adminToken := tokenFor(t, db, "admin")

	w := do(r, http.MethodPost, "/api/products", adminToken, gin.H{
		"name":          "Apples",
		"price":         2.99,
		"category":      "fruit",
		"stockQuantity": 10,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var product models.Product
	if err := db.Where("name = ?", "Apples").First(&product).Error; err != nil {
		t.Fatal(err)
	}
	if !product.IsActive || product.Unit != "piece" {
		t.Errorf("product = %+v", product)
	}
}

func TestUpdateProductPartial(t *testing.T) {
	r, db := newProductServer(t)
	adminToken := tokenFor(t, db, "admin")
	p := seed(t, db, models.Product{Name: "Apples", Category: "fruit", Price: 2.99, StockQuantity: 10, IsActive: true})

	w := do(r, http.MethodPut, fmt.Sprintf("/api/products/%d", p.ID), adminToken, gin.H{"price": 3.49})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var updated models.Product
	db.First(&updated, p.ID)
	if updated.Price != 3.49 {
		t.Errorf("price = %v, want 3.49", updated.Price)
	}
	if updated.Name != "Apples" || updated.StockQuantity != 10 {
		t.Errorf("untouched fields changed: %+v", updated)
	}
}

func TestUpdateProductRejectsNonPositivePrice(t *testing.T) {
	r, db := newProductServer(t)
	adminToken := tokenFor(t, db, "admin")
	p := seed(t, db, models.Product{Name: "Apples", Price: 2.99, StockQuantity: 10, IsActive: true})

	for _, price := range []float64{0, -1.50} {
		w := do(r, http.MethodPut, fmt.Sprintf("/api/products/%d", p.ID), adminToken, gin.H{"price": price})
		if w.Code != http.StatusBadRequest {
			t.Errorf("price %v: status = %d, want 400", price, w.Code)
		}
	}

	var stored models.Product
	db.First(&stored, p.ID)
	if stored.Price != 2.99 {
		t.Errorf("price = %v, want unchanged 2.99", stored.Price)
	}
}

func TestDeleteProductSoftDeletes(t *testing.T) {
	r, db := newProductServer(t)
	adminToken := tokenFor(t, db, "admin")
	p := seed(t, db, models.Product{Name: "Apples", Price: 2.99, IsActive: true})

	w := do(r, http.MethodDelete, fmt.Sprintf("/api/products/%d", p.ID), adminToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	// The row survives for order history; the storefront stops seeing it.
	var stored models.Product
	if err := db.First(&stored, p.ID).Error; err != nil {
		t.Fatalf("row deleted outright: %v", err)
	}
	if stored.IsActive {
		t.Error("product still active")
	}
	if w := do(r, http.MethodGet, fmt.Sprintf("/api/products/%d", p.ID), "", nil); w.Code != http.StatusNotFound {
		t.Errorf("storefront fetch: status = %d, want 404", w.Code)
	}

	// Deleting again reports not found.
	if w := do(r, http.MethodDelete, fmt.Sprintf("/api/products/%d", p.ID), adminToken, nil); w.Code != http.StatusNotFound {
		t.Errorf("second delete: status = %d, want 404", w.Code)
	}
}
