package orders

import (
	"github.com/google/uuid"
)

// LineInput is one requested product within an order.
type LineInput struct {
	ProductID uuid.UUID
	Qty       int
}

// PlaceOrderInput carries everything needed to place an order.
type PlaceOrderInput struct {
	CustomerID uuid.UUID
	Lines      []LineInput
	Notes      *string
}
