package dashboard

import (
	"github.com/cmlabs-hris/hrms-lite/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/validator"
)

const (
	DefaultTrendDays   = 7
	MaxTrendDays       = 90
	RecentActivitySize = 5
)

// DashboardFilter selects the reference day and trend length. Empty values
// mean today and DefaultTrendDays.
type DashboardFilter struct {
	Date string
	Days int
}

func (f *DashboardFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Date != "" {
		if _, ok := validator.IsValidDate(f.Date); !ok {
			errs = append(errs, validator.ValidationError{Field: "date", Message: "must be in YYYY-MM-DD format"})
		}
	}

	if f.Days == 0 {
		f.Days = DefaultTrendDays
	} else if f.Days < 1 || f.Days > MaxTrendDays {
		errs = append(errs, validator.ValidationError{Field: "days", Message: "must be between 1 and 90"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== COMBINED DASHBOARD ==========

// DashboardResponse is the combined response for the main dashboard endpoint
type DashboardResponse struct {
	Date           string                  `json:"date"`
	TotalEmployees int                     `json:"total_employees"`
	Today          attendance.DailyTallies `json:"today"`
	Unmarked       int                     `json:"unmarked"`
	RecentActivity []ActivityItem          `json:"recent_activity"`
	Trend          []attendance.TrendPoint `json:"trend"`
}

// ActivityItem is one of the latest attendance writes of the day
type ActivityItem struct {
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	Status       string  `json:"status"`
	Date         string  `json:"date"`
	Timestamp    *string `json:"timestamp,omitempty"`
}
