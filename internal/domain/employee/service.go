package employee

import (
	"context"
)

// EmployeeService defines business logic for employee operations
type EmployeeService interface {
	// CreateEmployee registers a new employee; id and email must be unused
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	// ListEmployees returns every employee in registration order
	ListEmployees(ctx context.Context) ([]EmployeeResponse, error)

	GetEmployee(ctx context.Context, employeeID string) (EmployeeResponse, error)

	// DeleteEmployee removes the employee together with its attendance and salary rows
	DeleteEmployee(ctx context.Context, employeeID string) error
}
