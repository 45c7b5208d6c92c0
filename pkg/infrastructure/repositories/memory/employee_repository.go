package memory

import (
	"fmt"

	"github.com/moldworks/layup/pkg/domain/entities"
	"github.com/moldworks/layup/pkg/domain/repositories"
)

// EmployeeRepository provides in-memory employee storage. Insertion order
// is preserved: the engine's first-fit selection depends on roster order.
type EmployeeRepository struct {
	employees    []entities.Employee
	employeesMap map[entities.EmployeeID]int
}

// NewEmployeeRepository creates a new in-memory employee repository
func NewEmployeeRepository(expectedEmployees int) *EmployeeRepository {
	return &EmployeeRepository{
		employees:    make([]entities.Employee, 0, expectedEmployees),
		employeesMap: make(map[entities.EmployeeID]int, expectedEmployees),
	}
}

// Verify interface compliance
var _ repositories.EmployeeRepository = (*EmployeeRepository)(nil)

// LoadEmployees loads employees into the repository
func (r *EmployeeRepository) LoadEmployees(employees []*entities.Employee) error {
	for _, employee := range employees {
		r.AddEmployee(*employee)
	}
	return nil
}

// AddEmployee adds an employee to the repository
func (r *EmployeeRepository) AddEmployee(employee entities.Employee) {
	r.employeesMap[employee.EmployeeID] = len(r.employees)
	r.employees = append(r.employees, employee)
}

// GetEmployee returns the employee with the given id
func (r *EmployeeRepository) GetEmployee(employeeID entities.EmployeeID) (*entities.Employee, error) {
	index, exists := r.employeesMap[employeeID]
	if !exists {
		return nil, fmt.Errorf("employee not found: %s", employeeID)
	}
	return &r.employees[index], nil
}

// GetAllEmployees returns all employees in insertion order
func (r *EmployeeRepository) GetAllEmployees() ([]*entities.Employee, error) {
	var employees []*entities.Employee
	for i := range r.employees {
		employees = append(employees, &r.employees[i])
	}
	return employees, nil
}
