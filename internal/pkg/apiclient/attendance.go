package apiclient

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/attendance"
	"golang.org/x/sync/errgroup"
)

const rosterConcurrency = 8

func (c *Client) ListAttendance(ctx context.Context, employeeID string) ([]attendance.AttendanceResponse, error) {
	var result []attendance.AttendanceResponse
	if err := c.do(ctx, http.MethodGet, "/attendance/"+url.PathEscape(employeeID), nil, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// ListAllAttendance returns every record, optionally within an inclusive
// range. Empty bounds are omitted from the query.
func (c *Client) ListAllAttendance(ctx context.Context, start, end string) ([]attendance.AttendanceResponse, error) {
	query := url.Values{}
	if start != "" {
		query.Set("start", start)
	}
	if end != "" {
		query.Set("end", end)
	}

	var result []attendance.AttendanceResponse
	if err := c.do(ctx, http.MethodGet, "/attendance/all", query, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) MarkAttendance(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.AttendanceResponse, error) {
	var result attendance.AttendanceResponse
	err := c.do(ctx, http.MethodPost, "/attendance/", nil, req, &result)
	return result, err
}

func (c *Client) UpdateAttendanceStatus(ctx context.Context, recordID, status string) (attendance.AttendanceResponse, error) {
	var result attendance.AttendanceResponse
	body := attendance.UpdateAttendanceRequest{Status: status}
	err := c.do(ctx, http.MethodPut, "/attendance/"+url.PathEscape(recordID), nil, body, &result)
	return result, err
}

func (c *Client) TodayStats(ctx context.Context) (attendance.TodayStatsResponse, error) {
	var result attendance.TodayStatsResponse
	err := c.do(ctx, http.MethodGet, "/stats/attendance/today", nil, nil, &result)
	return result, err
}

// FetchRoster lists employees and then fetches each one's history
// concurrently, keeping the effective record for date. A failed history
// request leaves that employee's attendance nil; only a failure to list
// employees is returned. Entries follow the employee list order.
func (c *Client) FetchRoster(ctx context.Context, date string) ([]attendance.RosterEntry, error) {
	employees, err := c.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]attendance.RosterEntry, len(employees))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(rosterConcurrency)

	for i, emp := range employees {
		entries[i].Employee = emp
		g.Go(func() error {
			history, err := c.ListAttendance(gctx, emp.EmployeeID)
			if err != nil {
				slog.Warn("Failed to fetch attendance history", "employee_id", emp.EmployeeID, "error", err)
				return nil
			}

			records := make([]attendance.Record, 0, len(history))
			for _, h := range history {
				records = append(records, h.ToRecord())
			}
			latest := attendance.LatestByEmployee(attendance.FilterByDate(records, date))
			if len(latest) > 0 {
				resp := attendance.ToResponse(latest[0])
				entries[i].Attendance = &resp
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}
