package attendance

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type MarkAttendanceRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Status     string `json:"status"`
}

func (r *MarkAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	r.EmployeeID = strings.TrimSpace(r.EmployeeID)
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if status, ok := ParseStatus(r.Status); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be Present or Absent",
		})
	} else {
		r.Status = string(status)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateAttendanceRequest struct {
	ID     string `json:"-"`
	Status string `json:"status"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id must be a valid record id",
		})
	}

	if status, ok := ParseStatus(r.Status); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be Present or Absent",
		})
	} else {
		r.Status = string(status)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ListAttendanceFilter narrows a listing to an inclusive date range. Empty
// bounds are open.
type ListAttendanceFilter struct {
	EmployeeID string
	StartDate  string
	EndDate    string
}

func (f *ListAttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	start, startOK := validator.IsValidDate(f.StartDate)
	if f.StartDate != "" && !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start",
			Message: "start must be in YYYY-MM-DD format",
		})
	}
	end, endOK := validator.IsValidDate(f.EndDate)
	if f.EndDate != "" && !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end",
			Message: "end must be in YYYY-MM-DD format",
		})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end",
			Message: ErrInvalidRange.Error(),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceResponse struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"`
	Status     string  `json:"status"`
	Timestamp  *string `json:"timestamp,omitempty"`
}

func ToResponse(r Record) AttendanceResponse {
	resp := AttendanceResponse{
		ID:         r.ID,
		EmployeeID: r.EmployeeID,
		Date:       r.Date,
		Status:     string(r.Status),
	}
	if r.Timestamp != nil {
		ts := r.Timestamp.UTC().Format(time.RFC3339Nano)
		resp.Timestamp = &ts
	}
	return resp
}

func ToResponses(records []Record) []AttendanceResponse {
	result := make([]AttendanceResponse, 0, len(records))
	for _, r := range records {
		result = append(result, ToResponse(r))
	}
	return result
}

// ToRecord converts a wire representation back into a Record. A timestamp that
// does not parse is dropped so the record falls back to its date.
func (a AttendanceResponse) ToRecord() Record {
	rec := Record{
		ID:         a.ID,
		EmployeeID: a.EmployeeID,
		Date:       a.Date,
		Status:     Status(a.Status),
	}
	if a.Timestamp != nil {
		if ts, ok := validator.IsValidDateTime(*a.Timestamp); ok {
			rec.Timestamp = &ts
		}
	}
	return rec
}

type TodayStatsResponse struct {
	Date        string `json:"date"`
	TotalMarked int    `json:"total_marked"`
	Present     int    `json:"present"`
	Absent      int    `json:"absent"`
	Leave       int    `json:"leave"`
}

// ========================================
// ROSTER DTOs
// ========================================

// RosterStatus selects which roster entries are returned.
type RosterStatus string

const (
	RosterAll      RosterStatus = "all"
	RosterPresent  RosterStatus = "present"
	RosterAbsent   RosterStatus = "absent"
	RosterUnmarked RosterStatus = "unmarked"
)

type RosterFilter struct {
	Date   string
	Status RosterStatus
}

func (f *RosterFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Date != "" {
		if _, ok := validator.IsValidDate(f.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	switch f.Status {
	case "":
		f.Status = RosterAll
	case RosterAll, RosterPresent, RosterAbsent, RosterUnmarked:
	default:
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of all, present, absent, unmarked",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RosterEntry pairs an employee with the effective record for the day, or nil
// when none was found or the lookup failed.
type RosterEntry struct {
	Employee   employee.EmployeeResponse `json:"employee"`
	Attendance *AttendanceResponse       `json:"attendance"`
}

type RosterResponse struct {
	Date    string        `json:"date"`
	Status  RosterStatus  `json:"status"`
	Entries []RosterEntry `json:"entries"`
}

// FilterRoster applies a roster status selection. RosterAll keeps only marked
// entries, RosterUnmarked only the unmarked ones; present/absent match the
// effective status.
func FilterRoster(entries []RosterEntry, status RosterStatus) []RosterEntry {
	result := make([]RosterEntry, 0, len(entries))
	for _, e := range entries {
		if status == RosterUnmarked {
			if e.Attendance == nil {
				result = append(result, e)
			}
			continue
		}
		if e.Attendance == nil {
			continue
		}
		switch status {
		case RosterPresent:
			if !strings.EqualFold(e.Attendance.Status, string(StatusPresent)) {
				continue
			}
		case RosterAbsent:
			if !strings.EqualFold(e.Attendance.Status, string(StatusAbsent)) {
				continue
			}
		}
		result = append(result, e)
	}
	return result
}
