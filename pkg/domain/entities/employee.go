package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// EmployeeID uniquely identifies an employee
type EmployeeID string

// DefaultHoursPerDay is the shift length assumed when a roster omits one
var DefaultHoursPerDay = decimal.NewFromInt(10)

// Employee represents a production employee with a skill set and a daily
// hour budget. ProdRate (units/hour) is carried for future use; the current
// time model charges one hour per unit regardless of rate.
type Employee struct {
	EmployeeID  EmployeeID
	Skills      []string // order-type and stock-model tags
	ProdRate    decimal.Decimal
	HoursPerDay decimal.Decimal
}

// NewEmployee creates a validated Employee. A zero hoursPerDay falls back
// to DefaultHoursPerDay.
func NewEmployee(employeeID EmployeeID, skills []string, prodRate, hoursPerDay decimal.Decimal) (*Employee, error) {
	if string(employeeID) == "" {
		return nil, fmt.Errorf("employee ID cannot be empty")
	}
	if hoursPerDay.IsZero() {
		hoursPerDay = DefaultHoursPerDay
	}
	if hoursPerDay.IsNegative() {
		return nil, fmt.Errorf("hours per day must be positive, got %s", hoursPerDay)
	}

	return &Employee{
		EmployeeID:  employeeID,
		Skills:      skills,
		ProdRate:    prodRate,
		HoursPerDay: hoursPerDay,
	}, nil
}

// HasSkill reports whether the employee's skill set contains the tag
func (e Employee) HasSkill(tag string) bool {
	for _, s := range e.Skills {
		if s == tag {
			return true
		}
	}
	return false
}
