package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/podolskiy06021990-bit/orderdesk-backend/internal/customers"
	"github.com/podolskiy06021990-bit/orderdesk-backend/internal/products"
	"github.com/podolskiy06021990-bit/orderdesk-backend/pkg/db"
	"github.com/podolskiy06021990-bit/orderdesk-backend/pkg/db/models"
	"github.com/podolskiy06021990-bit/orderdesk-backend/pkg/enums"
	pkgerrors "github.com/podolskiy06021990-bit/orderdesk-backend/pkg/errors"
	"github.com/podolskiy06021990-bit/orderdesk-backend/pkg/logger"
	"github.com/podolskiy06021990-bit/orderdesk-backend/pkg/metrics"
	"github.com/podolskiy06021990-bit/orderdesk-backend/pkg/pagination"
)

// Service exposes order operations to the API layer. PlaceOrder is the only
// write path that touches stock.
type Service interface {
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*models.Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID, params pagination.Params) ([]models.Order, error)
	ListByStatus(ctx context.Context, status string, params pagination.Params) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error)
}

type service struct {
	client        *db.Client
	ordersRepo    Repository
	customersRepo customers.Repository
	productsRepo  products.Repository
	metrics       *metrics.OrderMetrics
	logg          *logger.Logger
}

// NewService builds the order service. metrics may be nil when no registry
// is wired (tests, one-off commands).
func NewService(
	client *db.Client,
	ordersRepo Repository,
	customersRepo customers.Repository,
	productsRepo products.Repository,
	orderMetrics *metrics.OrderMetrics,
	logg *logger.Logger,
) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("db client required")
	}
	if ordersRepo == nil || customersRepo == nil || productsRepo == nil {
		return nil, fmt.Errorf("orders, customers and products repositories required")
	}
	return &service{
		client:        client,
		ordersRepo:    ordersRepo,
		customersRepo: customersRepo,
		productsRepo:  productsRepo,
		metrics:       orderMetrics,
		logg:          logg,
	}, nil
}

// PlaceOrder creates an order and reserves stock for every line inside one
// transaction. Either every line is written and every product decremented,
// or nothing is. The created order is returned with its lines loaded.
func (s *service) PlaceOrder(ctx context.Context, input PlaceOrderInput) (*models.Order, error) {
	start := time.Now()
	if err := validatePlaceOrderInput(input); err != nil {
		s.recordFailure("validation", start)
		return nil, err
	}

	var orderID uuid.UUID
	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		ordersRepo := s.ordersRepo.WithTx(tx)
		customersRepo := s.customersRepo.WithTx(tx)
		productsRepo := s.productsRepo.WithTx(tx)

		if _, err := customersRepo.FindByID(ctx, input.CustomerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "customer not found").
					WithDetails(map[string]any{"customer_id": input.CustomerID})
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer")
		}

		order := &models.Order{
			CustomerID:  input.CustomerID,
			OrderDate:   time.Now().UTC(),
			Status:      enums.OrderStatusPending,
			TotalAmount: decimal.Zero,
			Notes:       input.Notes,
		}
		if _, err := ordersRepo.CreateOrder(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}
		orderID = order.ID

		total := decimal.Zero
		lines := make([]models.OrderLine, 0, len(input.Lines))
		for _, line := range input.Lines {
			product, err := productsRepo.FindByID(ctx, line.ProductID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
						WithDetails(map[string]any{"product_id": line.ProductID})
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
			}
			if !product.IsActive {
				return pkgerrors.New(pkgerrors.CodeValidation, "product is not active").
					WithDetails(map[string]any{"product_id": line.ProductID})
			}

			ok, err := productsRepo.DecrementStock(ctx, line.ProductID, line.Qty)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reserve stock")
			}
			if !ok {
				msg := fmt.Sprintf("insufficient stock for %s: requested %d, available %d",
					product.Name, line.Qty, product.QuantityOnHand)
				return pkgerrors.New(pkgerrors.CodeInsufficientStock, msg).
					WithDetails(map[string]any{
						"product_id":   line.ProductID,
						"product_name": product.Name,
						"requested":    line.Qty,
						"available":    product.QuantityOnHand,
					})
			}

			lineTotal := product.Price.Mul(decimal.NewFromInt(int64(line.Qty)))
			lines = append(lines, models.OrderLine{
				OrderID:   order.ID,
				ProductID: line.ProductID,
				Qty:       line.Qty,
				UnitPrice: product.Price,
				LineTotal: lineTotal,
			})
			total = total.Add(lineTotal)
		}

		if err := ordersRepo.CreateLines(ctx, lines); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order lines")
		}
		if err := ordersRepo.UpdateTotal(ctx, order.ID, total); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order total")
		}
		return nil
	})
	if err != nil {
		s.recordPlacementError(err, start)
		return nil, err
	}

	order, err := s.ordersRepo.FindByID(ctx, orderID)
	if err != nil {
		s.recordFailure("load", start)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load placed order")
	}

	if s.metrics != nil {
		s.metrics.IncPlaced()
		s.metrics.ObserveDuration("success", time.Since(start))
	}
	if s.logg != nil {
		lctx := s.logg.WithOrderID(ctx, order.ID.String())
		lctx = s.logg.WithCustomerID(lctx, order.CustomerID.String())
		lctx = s.logg.WithFields(lctx, map[string]any{
			"lines": len(order.Lines),
			"total": order.TotalAmount.String(),
		})
		s.logg.Info(lctx, "order placed")
	}
	return order, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	order, err := s.ordersRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

func (s *service) ListByCustomer(ctx context.Context, customerID uuid.UUID, params pagination.Params) ([]models.Order, error) {
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	orders, err := s.ordersRepo.ListByCustomer(ctx, customerID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders by customer")
	}
	return orders, nil
}

func (s *service) ListByStatus(ctx context.Context, status string, params pagination.Params) ([]models.Order, error) {
	parsed, err := enums.ParseOrderStatus(status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status").
			WithDetails(map[string]any{"status": status})
	}
	orders, err := s.ordersRepo.ListByStatus(ctx, parsed, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders by status")
	}
	return orders, nil
}

// UpdateStatus moves an order along the fulfilment lifecycle. Transitions
// outside the allowed graph are rejected without touching the row.
func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error) {
	target, err := enums.ParseOrderStatus(status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status").
			WithDetails(map[string]any{"status": status})
	}

	err = s.client.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.ordersRepo.WithTx(tx)
		order, err := repo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
		if !order.Status.CanTransitionTo(target) {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "status transition not allowed").
				WithDetails(map[string]any{
					"from": order.Status,
					"to":   target,
				})
		}
		if err := repo.UpdateStatus(ctx, id, target); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func validatePlaceOrderInput(input PlaceOrderInput) error {
	if input.CustomerID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	if len(input.Lines) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "order must contain at least one line")
	}
	seen := make(map[uuid.UUID]struct{}, len(input.Lines))
	for _, line := range input.Lines {
		if line.ProductID == uuid.Nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "product id required on every line")
		}
		if line.Qty < 1 {
			return pkgerrors.New(pkgerrors.CodeValidation, "qty must be at least 1").
				WithDetails(map[string]any{"product_id": line.ProductID})
		}
		if _, dup := seen[line.ProductID]; dup {
			return pkgerrors.New(pkgerrors.CodeConflict, "duplicate product in order").
				WithDetails(map[string]any{"product_id": line.ProductID})
		}
		seen[line.ProductID] = struct{}{}
	}
	return nil
}

func (s *service) recordPlacementError(err error, start time.Time) {
	reason := "internal"
	if appErr := pkgerrors.As(err); appErr != nil {
		reason = string(appErr.Code())
	}
	s.recordFailure(reason, start)
}

func (s *service) recordFailure(reason string, start time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.IncFailed(reason)
	s.metrics.ObserveDuration("failure", time.Since(start))
}
