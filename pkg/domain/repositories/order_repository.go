package repositories

import "github.com/moldworks/layup/pkg/domain/entities"

// OrderRepository provides access to the order backlog
type OrderRepository interface {
	GetOrder(orderID entities.OrderID) (*entities.Order, error)
	GetAllOrders() ([]*entities.Order, error)
	LoadOrders(orders []*entities.Order) error
}
