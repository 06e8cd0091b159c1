package salary

import "context"

// SalaryService defines business logic for payroll records
type SalaryService interface {
	// CreateSalary creates or overwrites the salary for an employee and month
	CreateSalary(ctx context.Context, req CreateSalaryRequest) (SaveSalaryResponse, error)

	GetSalary(ctx context.Context, id string) (SalaryResponse, error)
	UpdateSalary(ctx context.Context, req UpdateSalaryRequest) (SalaryResponse, error)
	DeleteSalary(ctx context.Context, id string) error

	ListByMonth(ctx context.Context, month string) ([]SalaryResponse, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]SalaryResponse, error)
	Summary(ctx context.Context, month string) (PayrollSummaryResponse, error)

	// ExportMonth renders a month's payroll as an xlsx workbook
	ExportMonth(ctx context.Context, month string) (Document, error)

	// Payslip renders a single salary record as a PDF
	Payslip(ctx context.Context, id string) (Document, error)
}
