package stats

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/podolskiy06021990-bit/orderdesk-backend/internal/customers"
	"github.com/podolskiy06021990-bit/orderdesk-backend/internal/orders"
	"github.com/podolskiy06021990-bit/orderdesk-backend/internal/products"
	"github.com/podolskiy06021990-bit/orderdesk-backend/pkg/db/models"
	"github.com/podolskiy06021990-bit/orderdesk-backend/pkg/enums"
)

func TestOverview(t *testing.T) {
	t.Parallel()

	dsn := "file:stats_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := conn.AutoMigrate(&models.Customer{}, &models.Product{}, &models.Order{}, &models.OrderLine{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	customer := &models.Customer{FirstName: "Ivy", LastName: "Park", Email: "ivy@example.com"}
	if err := conn.Create(customer).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	for _, p := range []*models.Product{
		{Name: "active", SKU: "SKU-A", Category: enums.ProductCategoryOther, Price: decimal.NewFromInt(5), QuantityOnHand: 3, IsActive: true},
		{Name: "inactive", SKU: "SKU-B", Category: enums.ProductCategoryOther, Price: decimal.NewFromInt(5), QuantityOnHand: 3, IsActive: false},
	} {
		if err := conn.Create(p).Error; err != nil {
			t.Fatalf("seed product: %v", err)
		}
	}
	for _, status := range []enums.OrderStatus{enums.OrderStatusPending, enums.OrderStatusShipped} {
		order := &models.Order{CustomerID: customer.ID, Status: status, TotalAmount: decimal.Zero}
		if err := conn.Create(order).Error; err != nil {
			t.Fatalf("seed order: %v", err)
		}
	}

	svc, err := NewService(customers.NewRepository(conn), products.NewRepository(conn), orders.NewRepository(conn))
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	overview, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	want := Overview{Customers: 1, Products: 2, ActiveProducts: 1, Orders: 2, PendingOrders: 1}
	if *overview != want {
		t.Fatalf("unexpected overview %+v, want %+v", *overview, want)
	}
}
