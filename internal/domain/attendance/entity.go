package attendance

import (
	"strings"
	"time"
)

// Status is the attendance status of an employee for a day.
type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
	StatusLeave   Status = "Leave"
)

// ParseStatus normalises a client supplied status. Only Present and Absent
// can be written; Leave is recognised on read.
func ParseStatus(s string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "present":
		return StatusPresent, true
	case "absent":
		return StatusAbsent, true
	default:
		return "", false
	}
}

// Record is a single attendance entry. Several records may exist for the
// same employee and date; the effective one has the latest Timestamp.
type Record struct {
	ID         string
	EmployeeID string
	Date       string // YYYY-MM-DD
	Status     Status
	Timestamp  *time.Time
}
