package salary

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxAmount is the exclusive upper bound of every stored amount (NUMERIC(14,2)).
var MaxAmount = decimal.New(1, 12)

// Salary is one employee's pay for one month. There is at most one per
// (EmployeeID, Month).
type Salary struct {
	ID         string
	EmployeeID string
	Month      string // YYYY-MM
	BaseSalary decimal.Decimal
	Bonus      decimal.Decimal
	Deductions decimal.Decimal
	NetSalary  decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Joined fields
	EmployeeName *string
}

// NetSalary is base + bonus - deductions.
func NetSalary(base, bonus, deductions decimal.Decimal) decimal.Decimal {
	return base.Add(bonus).Sub(deductions)
}

// Recompute refreshes NetSalary from the components.
func (s *Salary) Recompute() {
	s.NetSalary = NetSalary(s.BaseSalary, s.Bonus, s.Deductions)
}

// PayrollSummary totals every salary of a month.
type PayrollSummary struct {
	Month           string
	TotalEmployees  int64
	TotalBaseSalary decimal.Decimal
	TotalBonus      decimal.Decimal
	TotalDeductions decimal.Decimal
	TotalNetSalary  decimal.Decimal
}
