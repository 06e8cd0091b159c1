package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/database"
	"github.com/cmlabs-hris/hrms-lite/internal/repository/postgresql"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// rosterConcurrency bounds the per-employee lookups of a roster.
const rosterConcurrency = 8

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	loc            *time.Location
	now            func() time.Time
	runInTx        func(ctx context.Context, fn func(txCtx context.Context) error) error
}

func NewAttendanceService(
	db *database.DB,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	loc *time.Location,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		loc:            loc,
		now:            time.Now,
		runInTx: func(ctx context.Context, fn func(txCtx context.Context) error) error {
			return postgresql.WithTransaction(ctx, db, fn)
		},
	}
}

func (s *AttendanceServiceImpl) today() string {
	return s.now().In(s.loc).Format("2006-01-02")
}

// MarkAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) MarkAttendance(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to generate attendance id: %w", err)
	}

	// The day lock makes the existence check and the insert atomic against
	// another mark for the same employee and date.
	var created attendance.Record
	err = s.runInTx(ctx, func(txCtx context.Context) error {
		if err := s.attendanceRepo.LockEmployeeDate(txCtx, req.EmployeeID, req.Date); err != nil {
			return err
		}

		exists, err := s.attendanceRepo.ExistsForEmployeeOnDate(txCtx, req.EmployeeID, req.Date)
		if err != nil {
			return err
		}
		if exists {
			return attendance.ErrAttendanceAlreadyMarked
		}

		at := s.now().UTC()
		created, err = s.attendanceRepo.Create(txCtx, attendance.Record{
			ID:         id.String(),
			EmployeeID: req.EmployeeID,
			Date:       req.Date,
			Status:     attendance.Status(req.Status),
			Timestamp:  &at,
		})
		return err
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("attendance marked", "employee_id", created.EmployeeID, "date", created.Date, "status", created.Status)
	return attendance.ToResponse(created), nil
}

// UpdateAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) UpdateAttendance(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	updated, err := s.attendanceRepo.UpdateStatus(ctx, req.ID, attendance.Status(req.Status), s.now().UTC())
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("attendance updated", "id", updated.ID, "employee_id", updated.EmployeeID, "status", updated.Status)
	return attendance.ToResponse(updated), nil
}

// ListByEmployee implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListByEmployee(ctx context.Context, filter attendance.ListAttendanceFilter) ([]attendance.AttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	records, err := s.attendanceRepo.ListByEmployee(ctx, filter.EmployeeID)
	if err != nil {
		return nil, err
	}

	filtered, err := attendance.FilterByRange(records, filter.StartDate, filter.EndDate)
	if err != nil {
		return nil, err
	}
	return attendance.ToResponses(filtered), nil
}

// ListAll implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListAll(ctx context.Context, filter attendance.ListAttendanceFilter) ([]attendance.AttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	records, err := s.attendanceRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	filtered, err := attendance.FilterByRange(records, filter.StartDate, filter.EndDate)
	if err != nil {
		return nil, err
	}
	return attendance.ToResponses(filtered), nil
}

// TodayStats implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) TodayStats(ctx context.Context) (attendance.TodayStatsResponse, error) {
	today := s.today()

	records, err := s.attendanceRepo.ListByDate(ctx, today)
	if err != nil {
		return attendance.TodayStatsResponse{}, err
	}

	tallies := attendance.ComputeDailyTallies(attendance.LatestByEmployee(records))
	return attendance.TodayStatsResponse{
		Date:        today,
		TotalMarked: tallies.Marked,
		Present:     tallies.Present,
		Absent:      tallies.Absent,
		Leave:       tallies.Leave,
	}, nil
}

// Roster implements attendance.AttendanceService. Every employee is looked up
// separately; a failed lookup leaves that employee without a record instead of
// failing the whole roster.
func (s *AttendanceServiceImpl) Roster(ctx context.Context, filter attendance.RosterFilter) (attendance.RosterResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.RosterResponse{}, err
	}
	if filter.Date == "" {
		filter.Date = s.today()
	}

	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return attendance.RosterResponse{}, err
	}

	entries := make([]attendance.RosterEntry, len(employees))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(rosterConcurrency)

	for i, emp := range employees {
		entries[i].Employee = employee.ToResponse(emp)

		g.Go(func() error {
			records, err := s.attendanceRepo.ListByEmployee(gCtx, emp.EmployeeID)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return err
				}
				slog.Warn("roster lookup failed", "employee_id", emp.EmployeeID, "error", err)
				return nil
			}

			latest := attendance.LatestByEmployee(attendance.FilterByDate(records, filter.Date))
			if len(latest) > 0 {
				resp := attendance.ToResponse(latest[0])
				entries[i].Attendance = &resp
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return attendance.RosterResponse{}, err
	}

	return attendance.RosterResponse{
		Date:    filter.Date,
		Status:  filter.Status,
		Entries: attendance.FilterRoster(entries, filter.Status),
	}, nil
}
