package salary

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/salary"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/validator"
	"github.com/google/uuid"
)

type SalaryServiceImpl struct {
	salaryRepo salary.SalaryRepository
}

func NewSalaryService(salaryRepo salary.SalaryRepository) salary.SalaryService {
	return &SalaryServiceImpl{salaryRepo: salaryRepo}
}

func validateMonth(month string) error {
	if _, ok := validator.IsValidMonth(month); !ok {
		return salary.ErrInvalidMonth
	}
	return nil
}

func validateID(id string) error {
	if !validator.IsValidUUID(id) {
		return validator.ValidationErrors{{Field: "id", Message: "must be a valid salary id"}}
	}
	return nil
}

// CreateSalary implements salary.SalaryService.
func (s *SalaryServiceImpl) CreateSalary(ctx context.Context, req salary.CreateSalaryRequest) (salary.SaveSalaryResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.SaveSalaryResponse{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return salary.SaveSalaryResponse{}, fmt.Errorf("failed to generate salary id: %w", err)
	}

	record := salary.Salary{
		ID:         id.String(),
		EmployeeID: req.EmployeeID,
		Month:      req.Month,
		BaseSalary: req.BaseSalary,
		Bonus:      req.Bonus,
		Deductions: req.Deductions,
	}
	record.Recompute()

	saved, created, err := s.salaryRepo.Upsert(ctx, record)
	if err != nil {
		return salary.SaveSalaryResponse{}, err
	}

	slog.Info("salary saved", "id", saved.ID, "employee_id", saved.EmployeeID, "month", saved.Month, "created", created)
	return salary.SaveSalaryResponse{Created: created, Salary: salary.ToResponse(saved)}, nil
}

// GetSalary implements salary.SalaryService.
func (s *SalaryServiceImpl) GetSalary(ctx context.Context, id string) (salary.SalaryResponse, error) {
	if err := validateID(id); err != nil {
		return salary.SalaryResponse{}, err
	}

	record, err := s.salaryRepo.GetByID(ctx, id)
	if err != nil {
		return salary.SalaryResponse{}, err
	}
	return salary.ToResponse(record), nil
}

// UpdateSalary implements salary.SalaryService.
func (s *SalaryServiceImpl) UpdateSalary(ctx context.Context, req salary.UpdateSalaryRequest) (salary.SalaryResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.SalaryResponse{}, err
	}

	existing, err := s.salaryRepo.GetByID(ctx, req.ID)
	if err != nil {
		return salary.SalaryResponse{}, err
	}
	if req.IsEmpty() {
		return salary.ToResponse(existing), nil
	}

	req.Apply(&existing)
	if err := salary.CheckNet(existing.NetSalary); err != nil {
		return salary.SalaryResponse{}, err
	}
	updated, err := s.salaryRepo.Update(ctx, existing)
	if err != nil {
		return salary.SalaryResponse{}, err
	}

	slog.Info("salary updated", "id", updated.ID, "net_salary", updated.NetSalary.StringFixed(2))
	return salary.ToResponse(updated), nil
}

// DeleteSalary implements salary.SalaryService.
func (s *SalaryServiceImpl) DeleteSalary(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	if err := s.salaryRepo.Delete(ctx, id); err != nil {
		return err
	}

	slog.Info("salary deleted", "id", id)
	return nil
}

// ListByMonth implements salary.SalaryService.
func (s *SalaryServiceImpl) ListByMonth(ctx context.Context, month string) ([]salary.SalaryResponse, error) {
	if err := validateMonth(month); err != nil {
		return nil, err
	}

	records, err := s.salaryRepo.ListByMonth(ctx, month)
	if err != nil {
		return nil, err
	}
	return salary.ToResponses(records), nil
}

// ListByEmployee implements salary.SalaryService.
func (s *SalaryServiceImpl) ListByEmployee(ctx context.Context, employeeID string) ([]salary.SalaryResponse, error) {
	records, err := s.salaryRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return salary.ToResponses(records), nil
}

// Summary implements salary.SalaryService.
func (s *SalaryServiceImpl) Summary(ctx context.Context, month string) (salary.PayrollSummaryResponse, error) {
	if err := validateMonth(month); err != nil {
		return salary.PayrollSummaryResponse{}, err
	}

	summary, err := s.salaryRepo.SummaryByMonth(ctx, month)
	if err != nil {
		return salary.PayrollSummaryResponse{}, err
	}
	return salary.ToSummaryResponse(summary), nil
}

// ExportMonth implements salary.SalaryService.
func (s *SalaryServiceImpl) ExportMonth(ctx context.Context, month string) (salary.Document, error) {
	if err := validateMonth(month); err != nil {
		return salary.Document{}, err
	}

	records, err := s.salaryRepo.ListByMonth(ctx, month)
	if err != nil {
		return salary.Document{}, err
	}
	if len(records) == 0 {
		return salary.Document{}, salary.ErrEmptyPayroll
	}

	summary, err := s.salaryRepo.SummaryByMonth(ctx, month)
	if err != nil {
		return salary.Document{}, err
	}

	content, err := renderPayrollWorkbook(month, records, summary)
	if err != nil {
		return salary.Document{}, fmt.Errorf("failed to render payroll workbook: %w", err)
	}

	return salary.Document{
		Filename:    fmt.Sprintf("payroll-%s.xlsx", month),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Content:     content,
	}, nil
}

// Payslip implements salary.SalaryService.
func (s *SalaryServiceImpl) Payslip(ctx context.Context, id string) (salary.Document, error) {
	if err := validateID(id); err != nil {
		return salary.Document{}, err
	}

	record, err := s.salaryRepo.GetByID(ctx, id)
	if err != nil {
		return salary.Document{}, err
	}

	content, err := renderPayslip(record)
	if err != nil {
		return salary.Document{}, fmt.Errorf("failed to render payslip: %w", err)
	}

	return salary.Document{
		Filename:    fmt.Sprintf("payslip-%s-%s.pdf", record.EmployeeID, record.Month),
		ContentType: "application/pdf",
		Content:     content,
	}, nil
}
