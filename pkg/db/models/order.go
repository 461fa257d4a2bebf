package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/podolskiy06021990-bit/orderdesk-backend/pkg/enums"
)

// Order links a customer to a set of lines. TotalAmount is derived from the
// lines and is only ever written inside the placement transaction.
type Order struct {
	ID          uuid.UUID         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	CustomerID  uuid.UUID         `gorm:"column:customer_id;type:uuid;not null;index:idx_orders_customer_date" json:"customer_id"`
	Customer    *Customer         `gorm:"foreignKey:CustomerID;constraint:OnDelete:RESTRICT" json:"customer,omitempty"`
	OrderDate   time.Time         `gorm:"column:order_date;not null;index:idx_orders_order_date" json:"order_date"`
	Status      enums.OrderStatus `gorm:"column:status;not null;default:'pending';index:idx_orders_status" json:"status"`
	TotalAmount decimal.Decimal   `gorm:"column:total_amount;type:numeric(12,2);not null" json:"total_amount"`
	Notes       *string           `gorm:"column:notes" json:"notes,omitempty"`
	Lines       []OrderLine       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"lines,omitempty"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (o *Order) BeforeCreate(*gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
