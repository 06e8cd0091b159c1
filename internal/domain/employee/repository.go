package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	GetByID(ctx context.Context, employeeID string) (Employee, error)
	List(ctx context.Context) ([]Employee, error)
	Delete(ctx context.Context, employeeID string) error

	// ExistsByIDOrEmail reports which of the two unique keys are already taken.
	ExistsByIDOrEmail(ctx context.Context, employeeID, email string) (idTaken bool, emailTaken bool, err error)

	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}
