package customers

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/podolskiy06021990-bit/orderdesk-backend/pkg/db/models"
	"github.com/podolskiy06021990-bit/orderdesk-backend/pkg/pagination"
)

// Repository defines persistence operations for customers.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, customer *models.Customer) (*models.Customer, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	SearchByName(ctx context.Context, query string, params pagination.Params) ([]models.Customer, error)
	List(ctx context.Context, params pagination.Params) ([]models.Customer, error)
	Count(ctx context.Context) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a customers repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	if err := r.db.WithContext(ctx).Create(customer).Error; err != nil {
		return nil, err
	}
	return customer, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *repository) SearchByName(ctx context.Context, query string, params pagination.Params) ([]models.Customer, error) {
	params = params.Normalize()
	pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	var customers []models.Customer
	err := r.db.WithContext(ctx).
		Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?", pattern, pattern).
		Order("last_name ASC, first_name ASC").
		Limit(params.Limit).
		Offset(params.Offset).
		Find(&customers).Error
	if err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *repository) List(ctx context.Context, params pagination.Params) ([]models.Customer, error) {
	params = params.Normalize()
	var customers []models.Customer
	err := r.db.WithContext(ctx).
		Order("last_name ASC, first_name ASC").
		Limit(params.Limit).
		Offset(params.Offset).
		Find(&customers).Error
	if err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Customer{}).Count(&count).Error
	return count, err
}
