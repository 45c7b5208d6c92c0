package services

import (
	"sort"

	"github.com/moldworks/layup/pkg/domain/entities"
)

// classBase separates the high-priority production class from everything
// else in the composite sort key. Ordinary orders start 100 points behind
// so that no per-order priority value can jump the class boundary.
const classBase = 100

// PrioritizeOrders returns a copy of the backlog in scheduling order:
// high-priority production orders first, then ordinary orders, each class
// ordered by ascending priority then ascending deadline. The sort is
// stable, so orders with identical keys keep their input order; there is
// deliberately no secondary id tie-break.
func PrioritizeOrders(orders []entities.Order) []entities.Order {
	sorted := make([]entities.Order, len(orders))
	copy(sorted, orders)

	sort.SliceStable(sorted, func(i, j int) bool {
		ki := sortKey(sorted[i])
		kj := sortKey(sorted[j])
		if ki != kj {
			return ki < kj
		}
		return sorted[i].Deadline.Before(sorted[j].Deadline)
	})

	return sorted
}

func sortKey(o entities.Order) int {
	if o.IsHighPriority() {
		return o.Priority
	}
	return classBase + o.Priority
}
