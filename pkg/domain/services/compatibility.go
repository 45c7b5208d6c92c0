package services

import (
	"github.com/moldworks/layup/pkg/domain/entities"
)

// MoldEligible reports whether the mold may service the order, based on
// type and stock-model rules alone. Capacity is a separate concern checked
// by the engine against the ledger; this predicate is pure.
func MoldEligible(order entities.Order, mold entities.Mold) bool {
	if mold.AcceptsType(order.OrderType) {
		return true
	}
	if order.StockModelID != "" && mold.AcceptsStockModel(order.StockModelID) {
		return true
	}
	if order.IsHighPriority() && mold.AcceptsStockModel(entities.StockModelMesaUniversal) {
		return true
	}
	// Molds tagged for the ordinary classes take any non-priority order.
	if !order.IsHighPriority() &&
		(mold.AcceptsType(entities.TypeRegular) || mold.AcceptsType(entities.TypeP1)) {
		return true
	}
	return false
}

// EmployeeEligible mirrors MoldEligible with the employee's single skill
// set standing in for both the compatible-types and stock-models sets.
func EmployeeEligible(order entities.Order, employee entities.Employee) bool {
	if employee.HasSkill(string(order.OrderType)) {
		return true
	}
	if order.StockModelID != "" && employee.HasSkill(string(order.StockModelID)) {
		return true
	}
	if order.IsHighPriority() && employee.HasSkill(string(entities.StockModelMesaUniversal)) {
		return true
	}
	if !order.IsHighPriority() &&
		(employee.HasSkill(string(entities.TypeRegular)) || employee.HasSkill(string(entities.TypeP1))) {
		return true
	}
	return false
}
