package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// Create inserts a new attendance record
	Create(ctx context.Context, record Record) (Record, error)

	// GetByID retrieves a record by its id
	GetByID(ctx context.Context, id string) (Record, error)

	// ExistsForEmployeeOnDate is used to prevent marking the same day twice
	ExistsForEmployeeOnDate(ctx context.Context, employeeID string, date string) (bool, error)

	// LockEmployeeDate holds a lock on (employeeID, date) until the
	// surrounding transaction ends
	LockEmployeeDate(ctx context.Context, employeeID string, date string) error

	// UpdateStatus changes the status in place and stamps the write time
	UpdateStatus(ctx context.Context, id string, status Status, at time.Time) (Record, error)

	ListByEmployee(ctx context.Context, employeeID string) ([]Record, error)
	ListByDate(ctx context.Context, date string) ([]Record, error)
	ListAll(ctx context.Context) ([]Record, error)

	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}
