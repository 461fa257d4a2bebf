package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/podolskiy06021990-bit/orderdesk-backend/pkg/enums"
)

// Product describes one catalog entry. QuantityOnHand is the physical stock
// and never goes negative after a committed operation; all decrements go
// through the conditional update in the products repository.
type Product struct {
	ID             uuid.UUID             `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name           string                `gorm:"column:name;not null" json:"name"`
	Description    string                `gorm:"column:description" json:"description,omitempty"`
	Category       enums.ProductCategory `gorm:"column:category;not null;default:'other';index:idx_products_category" json:"category"`
	Price          decimal.Decimal       `gorm:"column:price;type:numeric(10,2);not null" json:"price"`
	QuantityOnHand int                   `gorm:"column:quantity_on_hand;not null;default:0" json:"quantity_on_hand"`
	SKU            string                `gorm:"column:sku;not null;uniqueIndex:idx_products_sku" json:"sku"`
	IsActive       bool                  `gorm:"column:is_active;not null;default:true;index:idx_products_is_active" json:"is_active"`
	CreatedAt      time.Time             `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
