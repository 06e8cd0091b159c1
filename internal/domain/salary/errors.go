package salary

import "errors"

var (
	ErrSalaryNotFound   = errors.New("salary record not found")
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrInvalidMonth     = errors.New("month must be in YYYY-MM format")
	ErrNegativeAmount   = errors.New("amounts must be non-negative")
	ErrEmptyPayroll     = errors.New("no salary records for this month")
)
