package attendance

import "errors"

// Attendance domain errors
var (
	ErrAttendanceNotFound      = errors.New("attendance record not found")
	ErrAttendanceAlreadyMarked = errors.New("attendance already marked for this employee and date")
	ErrInvalidStatus           = errors.New("status must be Present or Absent")
	ErrInvalidDate             = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidRange            = errors.New("start date must not be after end date")
)
