package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/podolskiy06021990-bit/orderdesk-backend/internal/customers"
	"github.com/podolskiy06021990-bit/orderdesk-backend/internal/orders"
	"github.com/podolskiy06021990-bit/orderdesk-backend/internal/people"
	"github.com/podolskiy06021990-bit/orderdesk-backend/internal/products"
	"github.com/podolskiy06021990-bit/orderdesk-backend/internal/stats"
	"github.com/podolskiy06021990-bit/orderdesk-backend/pkg/config"
	"github.com/podolskiy06021990-bit/orderdesk-backend/pkg/db"
	"github.com/podolskiy06021990-bit/orderdesk-backend/pkg/db/models"
	"github.com/podolskiy06021990-bit/orderdesk-backend/pkg/logger"
)

func newTestRouter(t *testing.T) (http.Handler, *gorm.DB) {
	t.Helper()

	dsn := "file:router_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	err = conn.AutoMigrate(
		&models.Customer{}, &models.Product{}, &models.Order{}, &models.OrderLine{},
		&models.Person{}, &models.StudentProfile{}, &models.TeacherProfile{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	client := db.NewWithConn(conn)
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})

	customersRepo := customers.NewRepository(conn)
	productsRepo := products.NewRepository(conn)
	ordersRepo := orders.NewRepository(conn)

	customersSvc, err := customers.NewService(customersRepo)
	if err != nil {
		t.Fatalf("customers service: %v", err)
	}
	productsSvc, err := products.NewService(productsRepo, 10)
	if err != nil {
		t.Fatalf("products service: %v", err)
	}
	ordersSvc, err := orders.NewService(client, ordersRepo, customersRepo, productsRepo, nil, logg)
	if err != nil {
		t.Fatalf("orders service: %v", err)
	}
	peopleSvc, err := people.NewService(people.NewRepository(conn))
	if err != nil {
		t.Fatalf("people service: %v", err)
	}
	statsSvc, err := stats.NewService(customersRepo, productsRepo, ordersRepo)
	if err != nil {
		t.Fatalf("stats service: %v", err)
	}

	cfg := &config.Config{}
	cfg.App.Env = config.AppEnvDev
	cfg.App.Port = "8080"

	handler := NewRouter(Deps{
		Config:    cfg,
		Logger:    logg,
		DBPinger:  client,
		Customers: customersSvc,
		Products:  productsSvc,
		Orders:    ordersSvc,
		People:    peopleSvc,
		Stats:     statsSvc,
	})
	return handler, conn
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dest any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v (body %s)", err, rec.Body.String())
	}
	if err := json.Unmarshal(envelope.Data, dest); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode error envelope: %v (body %s)", err, rec.Body.String())
	}
	return envelope.Error.Code
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	handler, _ := newTestRouter(t)
	rec := doJSON(t, handler, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestCustomerLifecycle(t *testing.T) {
	t.Parallel()

	handler, _ := newTestRouter(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/customers", map[string]any{
		"first_name": "Ada",
		"last_name":  "Okafor",
		"email":      "ada@example.com",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created models.Customer
	decodeData(t, rec, &created)

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/customers", map[string]any{
		"first_name": "Ada",
		"last_name":  "Okafor",
		"email":      "ada@example.com",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d", rec.Code)
	}

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/customers/"+created.ID.String(), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/customers?q=oka", nil)
	var matches []models.Customer
	decodeData(t, rec, &matches)
	if len(matches) != 1 {
		t.Fatalf("expected 1 search match, got %d", len(matches))
	}

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/customers", map[string]any{
		"first_name": "No",
		"last_name":  "Email",
		"email":      "not-an-email",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad email, got %d", rec.Code)
	}
}

func TestPlaceOrderOverHTTP(t *testing.T) {
	t.Parallel()

	handler, conn := newTestRouter(t)

	customer := &models.Customer{FirstName: "Leo", LastName: "Martins", Email: "leo@example.com"}
	if err := conn.Create(customer).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	product := &models.Product{
		Name: "Laptop", SKU: "NB001", Category: "electronics",
		Price: decimal.RequireFromString("50000.00"), QuantityOnHand: 10, IsActive: true,
	}
	if err := conn.Create(product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/orders", map[string]any{
		"customer_id": customer.ID.String(),
		"lines": []map[string]any{
			{"product_id": product.ID.String(), "qty": 2},
		},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var order models.Order
	decodeData(t, rec, &order)
	if !order.TotalAmount.Equal(decimal.RequireFromString("100000.00")) {
		t.Fatalf("unexpected total %s", order.TotalAmount)
	}

	// more than remaining stock
	rec = doJSON(t, handler, http.MethodPost, "/api/v1/orders", map[string]any{
		"customer_id": customer.ID.String(),
		"lines": []map[string]any{
			{"product_id": product.ID.String(), "qty": 9},
		},
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
	if code := errorCode(t, rec); code != "INSUFFICIENT_STOCK" {
		t.Fatalf("expected INSUFFICIENT_STOCK, got %s", code)
	}

	// empty lines rejected by payload validation
	rec = doJSON(t, handler, http.MethodPost, "/api/v1/orders", map[string]any{
		"customer_id": customer.ID.String(),
		"lines":       []map[string]any{},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty lines, got %d", rec.Code)
	}

	rec = doJSON(t, handler, http.MethodPost, fmt.Sprintf("/api/v1/orders/%s/status", order.ID), map[string]any{
		"status": "processing",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, handler, http.MethodPost, fmt.Sprintf("/api/v1/orders/%s/status", order.ID), map[string]any{
		"status": "delivered",
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for skipped transition, got %d", rec.Code)
	}

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/orders?status=processing", nil)
	var byStatus []models.Order
	decodeData(t, rec, &byStatus)
	if len(byStatus) != 1 {
		t.Fatalf("expected 1 processing order, got %d", len(byStatus))
	}

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/orders?customer_id="+customer.ID.String(), nil)
	var byCustomer []models.Order
	decodeData(t, rec, &byCustomer)
	if len(byCustomer) != 1 {
		t.Fatalf("expected 1 customer order, got %d", len(byCustomer))
	}
}

func TestStatsEndpoint(t *testing.T) {
	t.Parallel()

	handler, conn := newTestRouter(t)
	customer := &models.Customer{FirstName: "Zoe", LastName: "Chan", Email: "zoe@example.com"}
	if err := conn.Create(customer).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}

	rec := doJSON(t, handler, http.MethodGet, "/api/v1/stats", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var overview stats.Overview
	decodeData(t, rec, &overview)
	if overview.Customers != 1 {
		t.Fatalf("expected 1 customer, got %d", overview.Customers)
	}
}

func TestPeopleEndpoints(t *testing.T) {
	t.Parallel()

	handler, _ := newTestRouter(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/people", map[string]any{"first_name": "Iris"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var person models.Person
	decodeData(t, rec, &person)

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/people/"+person.ID.String()+"/student-profile", map[string]any{"grade": 88.0})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/people/"+person.ID.String()+"/student-profile", map[string]any{"grade": 101.0})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for out of range grade, got %d", rec.Code)
	}

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/students", nil)
	var students []models.Person
	decodeData(t, rec, &students)
	if len(students) != 1 {
		t.Fatalf("expected 1 student, got %d", len(students))
	}
}
