package maintenance

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/cache"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/database"
	"github.com/cmlabs-hris/hrms-lite/internal/repository/postgresql"
	employeeservice "github.com/cmlabs-hris/hrms-lite/internal/service/employee"
)

// ClearResult reports how many rows a wipe removed.
type ClearResult struct {
	Attendance int64 `json:"attendance"`
	Employees  int64 `json:"employees"`
}

type MaintenanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	cache          *cache.Store
	runInTx        func(ctx context.Context, fn func(txCtx context.Context) error) error
}

func NewMaintenanceService(
	db *database.DB,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	store *cache.Store,
) *MaintenanceServiceImpl {
	return &MaintenanceServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		cache:          store,
		runInTx: func(ctx context.Context, fn func(txCtx context.Context) error) error {
			return postgresql.WithTransaction(ctx, db, fn)
		},
	}
}

// ClearAll deletes attendance first, then employees (salaries follow through
// the foreign key cascade), in one transaction.
func (s *MaintenanceServiceImpl) ClearAll(ctx context.Context) (ClearResult, error) {
	var result ClearResult

	err := s.runInTx(ctx, func(txCtx context.Context) error {
		n, err := s.attendanceRepo.DeleteAll(txCtx)
		if err != nil {
			return fmt.Errorf("clear attendance: %w", err)
		}
		result.Attendance = n

		n, err = s.employeeRepo.DeleteAll(txCtx)
		if err != nil {
			return fmt.Errorf("clear employees: %w", err)
		}
		result.Employees = n
		return nil
	})
	if err != nil {
		return ClearResult{}, err
	}

	s.cache.Invalidate(ctx, employeeservice.ListCacheKey)
	slog.Info("all data cleared", "attendance", result.Attendance, "employees", result.Employees)
	return result, nil
}

// Counts returns the current number of attendance and employee rows.
func (s *MaintenanceServiceImpl) Counts(ctx context.Context) (ClearResult, error) {
	att, err := s.attendanceRepo.Count(ctx)
	if err != nil {
		return ClearResult{}, err
	}
	emp, err := s.employeeRepo.Count(ctx)
	if err != nil {
		return ClearResult{}, err
	}
	return ClearResult{Attendance: att, Employees: emp}, nil
}
