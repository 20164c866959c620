package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in / check-out errors
	ErrDuplicateCheckIn  = errors.New("attendance already recorded for today")
	ErrAlreadyCheckedOut = errors.New("already checked out")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrNotOwner           = errors.New("only the employee or an admin can modify this attendance record")
	ErrCheckOutNotOwner   = errors.New("only the employee can check out of this attendance record")
	ErrCheckOutBeforeIn   = errors.New("check_out must not be before check_in")
)
