package repositories

import "github.com/moldworks/layup/pkg/domain/entities"

// EmployeeRepository provides access to the employee roster
type EmployeeRepository interface {
	GetEmployee(employeeID entities.EmployeeID) (*entities.Employee, error)
	GetAllEmployees() ([]*entities.Employee, error)
	LoadEmployees(employees []*entities.Employee) error
}
