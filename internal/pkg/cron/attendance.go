package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/employee"
)

const DailySummaryJob = "attendance_daily_summary"

type AttendanceJobs struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	interval       time.Duration
	loc            *time.Location
	now            func() time.Time
}

func NewAttendanceJobs(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	interval time.Duration,
	loc *time.Location,
) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		interval:       interval,
		loc:            loc,
		now:            time.Now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob(DailySummaryJob, j.interval, func(ctx context.Context) error {
		_, err := j.DailySummary(ctx)
		return err
	})
}

// DailySummary is today's effective tallies plus how many employees have no
// record yet.
type DailySummary struct {
	Date           string
	TotalEmployees int
	Tallies        attendance.DailyTallies
	Unmarked       int
}

// DailySummary computes and logs today's attendance summary; "today" is the
// calendar day in the configured location.
func (j *AttendanceJobs) DailySummary(ctx context.Context) (DailySummary, error) {
	today := j.now().In(j.loc).Format("2006-01-02")

	employees, err := j.employeeRepo.List(ctx)
	if err != nil {
		return DailySummary{}, fmt.Errorf("failed to list employees: %w", err)
	}
	records, err := j.attendanceRepo.ListByDate(ctx, today)
	if err != nil {
		return DailySummary{}, fmt.Errorf("failed to list attendance for %s: %w", today, err)
	}

	tallies := attendance.ComputeDailyTallies(attendance.LatestByEmployee(records))
	summary := DailySummary{
		Date:           today,
		TotalEmployees: len(employees),
		Tallies:        tallies,
		Unmarked:       tallies.Unmarked(len(employees)),
	}

	slog.Info("Cron: Attendance summary",
		"date", summary.Date,
		"employees", summary.TotalEmployees,
		"marked", tallies.Marked,
		"present", tallies.Present,
		"absent", tallies.Absent,
		"unmarked", summary.Unmarked)

	return summary, nil
}
