package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/podolskiy06021990-bit/orderdesk-backend/pkg/db"
	"github.com/podolskiy06021990-bit/orderdesk-backend/pkg/db/models"
	"github.com/podolskiy06021990-bit/orderdesk-backend/pkg/enums"
	pkgerrors "github.com/podolskiy06021990-bit/orderdesk-backend/pkg/errors"
	"github.com/podolskiy06021990-bit/orderdesk-backend/pkg/pagination"
)

// CreateProductInput carries the fields accepted on product creation.
type CreateProductInput struct {
	Name           string
	Description    string
	SKU            string
	Category       string
	Price          decimal.Decimal
	QuantityOnHand int
}

// Service exposes catalog operations to the API layer.
type Service interface {
	Create(ctx context.Context, input CreateProductInput) (*models.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	List(ctx context.Context, params pagination.Params) ([]models.Product, error)
	ListByCategory(ctx context.Context, category string, params pagination.Params) ([]models.Product, error)
	ListLowStock(ctx context.Context, threshold int, params pagination.Params) ([]models.Product, error)
}

type service struct {
	repo              Repository
	lowStockThreshold int
}

// NewService builds the product service. threshold is the on-hand count
// below which a product is reported as low stock.
func NewService(repo Repository, lowStockThreshold int) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("products repository required")
	}
	if lowStockThreshold <= 0 {
		lowStockThreshold = 10
	}
	return &service{repo: repo, lowStockThreshold: lowStockThreshold}, nil
}

func (s *service) Create(ctx context.Context, input CreateProductInput) (*models.Product, error) {
	name := strings.TrimSpace(input.Name)
	sku := strings.TrimSpace(strings.ToUpper(input.SKU))
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name required")
	}
	if sku == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sku required")
	}
	category, err := enums.ParseProductCategory(input.Category)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid category").
			WithDetails(map[string]any{"category": input.Category})
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}
	if input.QuantityOnHand < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity_on_hand must not be negative")
	}

	product := &models.Product{
		Name:           name,
		Description:    strings.TrimSpace(input.Description),
		SKU:            sku,
		Category:       category,
		Price:          input.Price,
		QuantityOnHand: input.QuantityOnHand,
		IsActive:       true,
	}
	created, err := s.repo.Create(ctx, product)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "sku already in use").
				WithDetails(map[string]any{"sku": sku})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return created, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

func (s *service) List(ctx context.Context, params pagination.Params) ([]models.Product, error) {
	prods, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return prods, nil
}

func (s *service) ListByCategory(ctx context.Context, category string, params pagination.Params) ([]models.Product, error) {
	parsed, err := enums.ParseProductCategory(category)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid category").
			WithDetails(map[string]any{"category": category})
	}
	prods, err := s.repo.ListByCategory(ctx, parsed, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products by category")
	}
	return prods, nil
}

// ListLowStock reports active products under the given on-hand threshold.
// A non-positive threshold falls back to the configured default.
func (s *service) ListLowStock(ctx context.Context, threshold int, params pagination.Params) ([]models.Product, error) {
	if threshold <= 0 {
		threshold = s.lowStockThreshold
	}
	prods, err := s.repo.ListLowStock(ctx, threshold, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list low stock products")
	}
	return prods, nil
}
