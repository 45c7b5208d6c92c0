package entities

import (
	"fmt"
	"time"
)

// OrderID uniquely identifies a manufacturing order
type OrderID string

// OrderType tags an order with its production class. The set is open:
// callers may introduce new tags, the scheduler only distinguishes the
// high-priority production tags from everything else.
type OrderType string

const (
	TypeMesaUniversal   OrderType = "mesa_universal"
	TypeProductionOrder OrderType = "production_order"
	TypeP1              OrderType = "P1"
	TypeRegular         OrderType = "regular"
)

// StockModelID tags an order with the stock model it produces
type StockModelID string

// StockModelMesaUniversal marks the high-priority stock model
const StockModelMesaUniversal StockModelID = "mesa_universal"

// Order represents a manufacturing order awaiting scheduling.
// Orders are immutable once constructed; the scheduler never mutates them.
type Order struct {
	OrderID      OrderID
	OrderType    OrderType
	Features     map[string]string
	Quantity     int
	Priority     int // lower = more urgent
	Deadline     time.Time
	StockModelID StockModelID // empty when the order has no stock model
}

// NewOrder creates a validated Order
func NewOrder(
	orderID OrderID,
	orderType OrderType,
	features map[string]string,
	quantity int,
	priority int,
	deadline time.Time,
	stockModelID StockModelID,
) (*Order, error) {
	if string(orderID) == "" {
		return nil, fmt.Errorf("order ID cannot be empty")
	}
	if string(orderType) == "" {
		return nil, fmt.Errorf("order type cannot be empty")
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive, got %d", quantity)
	}

	return &Order{
		OrderID:      orderID,
		OrderType:    orderType,
		Features:     features,
		Quantity:     quantity,
		Priority:     priority,
		Deadline:     deadline,
		StockModelID: stockModelID,
	}, nil
}

// IsHighPriority reports whether the order belongs to the high-priority
// production class, which is subject to the daily quota. All three markers
// are accepted: mesa_universal stock model, mesa_universal order type, or
// the production_order type. This is the single definition of the class;
// the prioritizer, the engine, and the reporter all go through it.
func (o Order) IsHighPriority() bool {
	return o.StockModelID == StockModelMesaUniversal ||
		o.OrderType == TypeMesaUniversal ||
		o.OrderType == TypeProductionOrder
}
