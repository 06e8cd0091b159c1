package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// MarkAttendance records a status for an employee on a day
	MarkAttendance(ctx context.Context, req MarkAttendanceRequest) (AttendanceResponse, error)

	// UpdateAttendance corrects the status of an existing record
	UpdateAttendance(ctx context.Context, req UpdateAttendanceRequest) (AttendanceResponse, error)

	// ListByEmployee returns an employee's records, optionally within a date range
	ListByEmployee(ctx context.Context, filter ListAttendanceFilter) ([]AttendanceResponse, error)

	// ListAll returns every record, optionally within a date range
	ListAll(ctx context.Context, filter ListAttendanceFilter) ([]AttendanceResponse, error)

	// TodayStats aggregates today's effective statuses
	TodayStats(ctx context.Context) (TodayStatsResponse, error)

	// Roster joins every employee with its effective record for a day
	Roster(ctx context.Context, filter RosterFilter) (RosterResponse, error)
}
