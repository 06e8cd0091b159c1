package dashboard

import (
	"context"
	"time"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/dashboard"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/employee"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	loc            *time.Location
	now            func() time.Time
}

func NewDashboardService(employeeRepo employee.EmployeeRepository, attendanceRepo attendance.AttendanceRepository, loc *time.Location) dashboard.DashboardService {
	return &DashboardServiceImpl{
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		loc:            loc,
		now:            time.Now,
	}
}

// referenceDay parses YYYY-MM-DD, defaults to today
func (s *DashboardServiceImpl) referenceDay(date string) time.Time {
	if date == "" {
		return s.now().In(s.loc)
	}
	parsed, err := time.ParseInLocation("2006-01-02", date, s.loc)
	if err != nil {
		return s.now().In(s.loc)
	}
	return parsed
}

// GetDashboard returns combined dashboard data using parallel goroutines.
// Employees and attendance are loaded concurrently; every figure is then
// derived in memory from the same snapshot.
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context, filter dashboard.DashboardFilter) (*dashboard.DashboardResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	ref := s.referenceDay(filter.Date)
	day := ref.Format("2006-01-02")

	var (
		employees []employee.Employee
		records   []attendance.Record
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		list, err := s.employeeRepo.List(gCtx)
		if err != nil {
			return err
		}
		employees = list
		return nil
	})

	g.Go(func() error {
		list, err := s.attendanceRepo.ListAll(gCtx)
		if err != nil {
			return err
		}
		records = list
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	names := make(map[string]string, len(employees))
	for _, e := range employees {
		names[e.EmployeeID] = e.FullName
	}

	effective := attendance.LatestByEmployee(attendance.FilterByDate(records, day))
	tallies := attendance.ComputeDailyTallies(effective)

	recent := attendance.RecentActivity(effective, dashboard.RecentActivitySize)
	activity := make([]dashboard.ActivityItem, 0, len(recent))
	for _, r := range recent {
		name, ok := names[r.EmployeeID]
		if !ok {
			name = r.EmployeeID
		}
		resp := attendance.ToResponse(r)
		activity = append(activity, dashboard.ActivityItem{
			EmployeeID:   r.EmployeeID,
			EmployeeName: name,
			Status:       resp.Status,
			Date:         resp.Date,
			Timestamp:    resp.Timestamp,
		})
	}

	return &dashboard.DashboardResponse{
		Date:           day,
		TotalEmployees: len(employees),
		Today:          tallies,
		Unmarked:       tallies.Unmarked(len(employees)),
		RecentActivity: activity,
		Trend:          attendance.ComputeTrailingWindow(records, filter.Days, ref),
	}, nil
}
