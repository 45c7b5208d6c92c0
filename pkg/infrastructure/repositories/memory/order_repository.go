package memory

import (
	"fmt"

	"github.com/moldworks/layup/pkg/domain/entities"
	"github.com/moldworks/layup/pkg/domain/repositories"
)

// OrderRepository provides in-memory order storage
type OrderRepository struct {
	orders    []entities.Order
	ordersMap map[entities.OrderID]int
}

// NewOrderRepository creates a new in-memory order repository
func NewOrderRepository(expectedOrders int) *OrderRepository {
	return &OrderRepository{
		orders:    make([]entities.Order, 0, expectedOrders),
		ordersMap: make(map[entities.OrderID]int, expectedOrders),
	}
}

// Verify interface compliance
var _ repositories.OrderRepository = (*OrderRepository)(nil)

// LoadOrders loads orders into the repository
func (r *OrderRepository) LoadOrders(orders []*entities.Order) error {
	for _, order := range orders {
		r.AddOrder(*order)
	}
	return nil
}

// AddOrder adds an order to the repository
func (r *OrderRepository) AddOrder(order entities.Order) {
	r.ordersMap[order.OrderID] = len(r.orders)
	r.orders = append(r.orders, order)
}

// GetOrder returns the order with the given id
func (r *OrderRepository) GetOrder(orderID entities.OrderID) (*entities.Order, error) {
	index, exists := r.ordersMap[orderID]
	if !exists {
		return nil, fmt.Errorf("order not found: %s", orderID)
	}
	return &r.orders[index], nil
}

// GetAllOrders returns all orders in insertion order
func (r *OrderRepository) GetAllOrders() ([]*entities.Order, error) {
	var orders []*entities.Order
	for i := range r.orders {
		orders = append(orders, &r.orders[i])
	}
	return orders, nil
}
