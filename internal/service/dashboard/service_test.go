package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/dashboard"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/employee"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	employees []employee.Employee
	err       error
}

func (f *fakeEmployeeRepo) List(ctx context.Context) ([]employee.Employee, error) {
	return f.employees, f.err
}

type fakeAttendanceRepo struct {
	attendance.AttendanceRepository
	records []attendance.Record
	err     error
}

func (f *fakeAttendanceRepo) ListAll(ctx context.Context) ([]attendance.Record, error) {
	return f.records, f.err
}

func stamp(day, hour, minute int) *time.Time {
	t := time.Date(2024, 1, day, hour, minute, 0, 0, time.UTC)
	return &t
}

func newTestService(employees []employee.Employee, records []attendance.Record) *DashboardServiceImpl {
	return &DashboardServiceImpl{
		employeeRepo:   &fakeEmployeeRepo{employees: employees},
		attendanceRepo: &fakeAttendanceRepo{records: records},
		loc:            time.UTC,
		now:            func() time.Time { return time.Date(2024, 1, 7, 12, 0, 0, 0, time.UTC) },
	}
}

func TestGetDashboard(t *testing.T) {
	employees := []employee.Employee{
		{EmployeeID: "E001", FullName: "Ada"},
		{EmployeeID: "E002", FullName: "Grace"},
		{EmployeeID: "E003", FullName: "Linus"},
		{EmployeeID: "E004", FullName: "Ken"},
	}
	records := []attendance.Record{
		{ID: "1", EmployeeID: "E001", Date: "2024-01-07", Status: attendance.StatusAbsent, Timestamp: stamp(7, 9, 0)},
		{ID: "2", EmployeeID: "E001", Date: "2024-01-07", Status: attendance.StatusPresent, Timestamp: stamp(7, 9, 5)},
		{ID: "3", EmployeeID: "E002", Date: "2024-01-07", Status: attendance.StatusAbsent, Timestamp: stamp(7, 10, 0)},
		{ID: "4", EmployeeID: "E003", Date: "2024-01-06", Status: attendance.StatusPresent, Timestamp: stamp(6, 8, 0)},
		{ID: "5", EmployeeID: "E002", Date: "2024-01-06", Status: attendance.StatusPresent},
	}
	svc := newTestService(employees, records)

	got, err := svc.GetDashboard(context.Background(), dashboard.DashboardFilter{})
	require.NoError(t, err)

	assert.Equal(t, "2024-01-07", got.Date)
	assert.Equal(t, 4, got.TotalEmployees)
	assert.Equal(t, attendance.DailyTallies{Marked: 2, Present: 1, Absent: 1}, got.Today)
	assert.Equal(t, 2, got.Unmarked)

	require.Len(t, got.RecentActivity, 2)
	assert.Equal(t, "Grace", got.RecentActivity[0].EmployeeName)
	assert.Equal(t, "Ada", got.RecentActivity[1].EmployeeName)
	assert.Equal(t, "Present", got.RecentActivity[1].Status)

	require.Len(t, got.Trend, dashboard.DefaultTrendDays)
	assert.Equal(t, "2024-01-01", got.Trend[0].Date)
	assert.Equal(t, 2, got.Trend[5].PresentCount)
	assert.Equal(t, 1, got.Trend[6].PresentCount)
}

func TestGetDashboard_CustomDateAndWindow(t *testing.T) {
	svc := newTestService(nil, nil)

	got, err := svc.GetDashboard(context.Background(), dashboard.DashboardFilter{Date: "2024-03-02", Days: 3})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-02", got.Date)
	assert.Zero(t, got.Unmarked)
	assert.Empty(t, got.RecentActivity)
	require.Len(t, got.Trend, 3)
	assert.Equal(t, "2024-02-29", got.Trend[0].Date)
}

func TestGetDashboard_FetchError(t *testing.T) {
	svc := newTestService(nil, nil)
	svc.attendanceRepo = &fakeAttendanceRepo{err: errors.New("db down")}

	_, err := svc.GetDashboard(context.Background(), dashboard.DashboardFilter{})
	assert.Error(t, err)
}

func TestGetDashboard_InvalidFilter(t *testing.T) {
	svc := newTestService(nil, nil)

	_, err := svc.GetDashboard(context.Background(), dashboard.DashboardFilter{Days: 500})
	assert.Error(t, err)
}
