package stats

import (
	"context"
	"fmt"

	"github.com/podolskiy06021990-bit/orderdesk-backend/internal/customers"
	"github.com/podolskiy06021990-bit/orderdesk-backend/internal/orders"
	"github.com/podolskiy06021990-bit/orderdesk-backend/internal/products"
	"github.com/podolskiy06021990-bit/orderdesk-backend/pkg/enums"
	pkgerrors "github.com/podolskiy06021990-bit/orderdesk-backend/pkg/errors"
)

// Overview is the store-wide record count snapshot.
type Overview struct {
	Customers      int64 `json:"customers"`
	Products       int64 `json:"products"`
	ActiveProducts int64 `json:"active_products"`
	Orders         int64 `json:"orders"`
	PendingOrders  int64 `json:"pending_orders"`
}

// Service reports aggregate counts across the store.
type Service interface {
	Overview(ctx context.Context) (*Overview, error)
}

type service struct {
	customersRepo customers.Repository
	productsRepo  products.Repository
	ordersRepo    orders.Repository
}

// NewService builds the stats service.
func NewService(customersRepo customers.Repository, productsRepo products.Repository, ordersRepo orders.Repository) (Service, error) {
	if customersRepo == nil || productsRepo == nil || ordersRepo == nil {
		return nil, fmt.Errorf("customers, products and orders repositories required")
	}
	return &service{
		customersRepo: customersRepo,
		productsRepo:  productsRepo,
		ordersRepo:    ordersRepo,
	}, nil
}

func (s *service) Overview(ctx context.Context) (*Overview, error) {
	overview := &Overview{}

	var err error
	if overview.Customers, err = s.customersRepo.Count(ctx); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count customers")
	}
	if overview.Products, err = s.productsRepo.Count(ctx, false); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count products")
	}
	if overview.ActiveProducts, err = s.productsRepo.Count(ctx, true); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count active products")
	}
	if overview.Orders, err = s.ordersRepo.Count(ctx, ""); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count orders")
	}
	if overview.PendingOrders, err = s.ordersRepo.Count(ctx, enums.OrderStatusPending); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count pending orders")
	}
	return overview, nil
}
