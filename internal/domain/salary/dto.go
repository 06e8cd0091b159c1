package salary

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-lite/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== SALARY DTOs ==========

type CreateSalaryRequest struct {
	EmployeeID string          `json:"employee_id"`
	Month      string          `json:"month"`
	BaseSalary decimal.Decimal `json:"base_salary"`
	Bonus      decimal.Decimal `json:"bonus"`
	Deductions decimal.Decimal `json:"deductions"`
}

func (r *CreateSalaryRequest) Validate() error {
	var errs validator.ValidationErrors

	r.EmployeeID = strings.TrimSpace(r.EmployeeID)
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if _, ok := validator.IsValidMonth(r.Month); !ok {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be in YYYY-MM format"})
	}
	errs = appendAmountError(errs, "base_salary", r.BaseSalary)
	errs = appendAmountError(errs, "bonus", r.Bonus)
	errs = appendAmountError(errs, "deductions", r.Deductions)
	if len(errs) == 0 {
		if err := CheckNet(NetSalary(r.BaseSalary, r.Bonus, r.Deductions)); err != nil {
			return err
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// appendAmountError checks that d fits a NUMERIC(14,2) column exactly:
// non-negative, at most two decimal places and below MaxAmount.
func appendAmountError(errs validator.ValidationErrors, field string, d decimal.Decimal) validator.ValidationErrors {
	switch {
	case d.IsNegative():
		return append(errs, validator.ValidationError{Field: field, Message: "must be non-negative"})
	case !d.Equal(d.Round(2)):
		return append(errs, validator.ValidationError{Field: field, Message: "must have at most 2 decimal places"})
	case d.GreaterThanOrEqual(MaxAmount):
		return append(errs, validator.ValidationError{Field: field, Message: "must be less than " + MaxAmount.String()})
	}
	return errs
}

// CheckNet rejects a net amount that would not fit the net_salary column.
func CheckNet(net decimal.Decimal) error {
	if net.Abs().GreaterThanOrEqual(MaxAmount) {
		return validator.ValidationErrors{{Field: "net_salary", Message: "must be less than " + MaxAmount.String() + " in absolute value"}}
	}
	return nil
}

// UpdateSalaryRequest is a partial update; nil fields keep their value.
type UpdateSalaryRequest struct {
	ID         string           `json:"-"`
	BaseSalary *decimal.Decimal `json:"base_salary,omitempty"`
	Bonus      *decimal.Decimal `json:"bonus,omitempty"`
	Deductions *decimal.Decimal `json:"deductions,omitempty"`
}

func (r *UpdateSalaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "must be a valid salary id"})
	}
	if r.BaseSalary != nil {
		errs = appendAmountError(errs, "base_salary", *r.BaseSalary)
	}
	if r.Bonus != nil {
		errs = appendAmountError(errs, "bonus", *r.Bonus)
	}
	if r.Deductions != nil {
		errs = appendAmountError(errs, "deductions", *r.Deductions)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// IsEmpty reports whether the update changes nothing.
func (r UpdateSalaryRequest) IsEmpty() bool {
	return r.BaseSalary == nil && r.Bonus == nil && r.Deductions == nil
}

// Apply merges the update into s and recomputes the net amount.
func (r UpdateSalaryRequest) Apply(s *Salary) {
	if r.BaseSalary != nil {
		s.BaseSalary = *r.BaseSalary
	}
	if r.Bonus != nil {
		s.Bonus = *r.Bonus
	}
	if r.Deductions != nil {
		s.Deductions = *r.Deductions
	}
	s.Recompute()
}

type SalaryResponse struct {
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employee_id"`
	EmployeeName *string         `json:"employee_name,omitempty"`
	Month        string          `json:"month"`
	BaseSalary   decimal.Decimal `json:"base_salary"`
	Bonus        decimal.Decimal `json:"bonus"`
	Deductions   decimal.Decimal `json:"deductions"`
	NetSalary    decimal.Decimal `json:"net_salary"`
	CreatedAt    string          `json:"created_at"`
	UpdatedAt    string          `json:"updated_at"`
}

// SaveSalaryResponse is returned by the upsert; Created is false when an
// existing month was overwritten.
type SaveSalaryResponse struct {
	Created bool           `json:"created"`
	Salary  SalaryResponse `json:"salary"`
}

type PayrollSummaryResponse struct {
	Month           string          `json:"month"`
	TotalEmployees  int64           `json:"total_employees"`
	TotalBaseSalary decimal.Decimal `json:"total_base_salary"`
	TotalBonus      decimal.Decimal `json:"total_bonus"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	TotalNetSalary  decimal.Decimal `json:"total_net_salary"`
}

// Document is a generated file ready to be streamed to the client.
type Document struct {
	Filename    string
	ContentType string
	Content     []byte
}

func ToResponse(s Salary) SalaryResponse {
	return SalaryResponse{
		ID:           s.ID,
		EmployeeID:   s.EmployeeID,
		EmployeeName: s.EmployeeName,
		Month:        s.Month,
		BaseSalary:   s.BaseSalary,
		Bonus:        s.Bonus,
		Deductions:   s.Deductions,
		NetSalary:    s.NetSalary,
		CreatedAt:    s.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    s.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func ToResponses(salaries []Salary) []SalaryResponse {
	result := make([]SalaryResponse, 0, len(salaries))
	for _, s := range salaries {
		result = append(result, ToResponse(s))
	}
	return result
}

func ToSummaryResponse(s PayrollSummary) PayrollSummaryResponse {
	return PayrollSummaryResponse(s)
}
