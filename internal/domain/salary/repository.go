package salary

import "context"

// SalaryRepository defines data access methods for salary records.
type SalaryRepository interface {
	// Upsert inserts or overwrites the record for (EmployeeID, Month).
	// created is true when a new row was inserted.
	Upsert(ctx context.Context, s Salary) (saved Salary, created bool, err error)

	GetByID(ctx context.Context, id string) (Salary, error)
	Update(ctx context.Context, s Salary) (Salary, error)
	Delete(ctx context.Context, id string) error

	// ListByMonth joins employee names, oldest first
	ListByMonth(ctx context.Context, month string) ([]Salary, error)

	// ListByEmployee returns newest month first
	ListByEmployee(ctx context.Context, employeeID string) ([]Salary, error)

	SummaryByMonth(ctx context.Context, month string) (PayrollSummary, error)
}
