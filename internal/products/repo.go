package products

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/podolskiy06021990-bit/orderdesk-backend/pkg/db/models"
	"github.com/podolskiy06021990-bit/orderdesk-backend/pkg/enums"
	"github.com/podolskiy06021990-bit/orderdesk-backend/pkg/pagination"
)

// Repository defines persistence operations for products and stock.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	List(ctx context.Context, params pagination.Params) ([]models.Product, error)
	ListByCategory(ctx context.Context, category enums.ProductCategory, params pagination.Params) ([]models.Product, error)
	ListLowStock(ctx context.Context, threshold int, params pagination.Params) ([]models.Product, error)
	DecrementStock(ctx context.Context, id uuid.UUID, qty int) (bool, error)
	Count(ctx context.Context, activeOnly bool) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a products repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *repository) List(ctx context.Context, params pagination.Params) ([]models.Product, error) {
	params = params.Normalize()
	var prods []models.Product
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Limit(params.Limit).
		Offset(params.Offset).
		Find(&prods).Error
	if err != nil {
		return nil, err
	}
	return prods, nil
}

func (r *repository) ListByCategory(ctx context.Context, category enums.ProductCategory, params pagination.Params) ([]models.Product, error) {
	params = params.Normalize()
	var prods []models.Product
	err := r.db.WithContext(ctx).
		Where("category = ? AND is_active = ?", category, true).
		Order("name ASC").
		Limit(params.Limit).
		Offset(params.Offset).
		Find(&prods).Error
	if err != nil {
		return nil, err
	}
	return prods, nil
}

func (r *repository) ListLowStock(ctx context.Context, threshold int, params pagination.Params) ([]models.Product, error) {
	params = params.Normalize()
	var prods []models.Product
	err := r.db.WithContext(ctx).
		Where("quantity_on_hand < ? AND is_active = ?", threshold, true).
		Order("quantity_on_hand ASC").
		Limit(params.Limit).
		Offset(params.Offset).
		Find(&prods).Error
	if err != nil {
		return nil, err
	}
	return prods, nil
}

// DecrementStock atomically subtracts qty from a product's on-hand count.
// The guard in the WHERE clause makes the update a no-op when stock is
// insufficient, so concurrent orders can never drive the count negative.
func (r *repository) DecrementStock(ctx context.Context, id uuid.UUID, qty int) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND quantity_on_hand >= ?", id, qty).
		UpdateColumn("quantity_on_hand", gorm.Expr("quantity_on_hand - ?", qty))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *repository) Count(ctx context.Context, activeOnly bool) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var count int64
	err := query.Count(&count).Error
	return count, err
}
