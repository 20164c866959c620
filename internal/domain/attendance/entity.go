package attendance

import (
	"time"

	"github.com/sitecrew/workforce-backend/internal/pkg/worktime"
)

type Attendance struct {
	ID           string
	EmployeeID   string
	Date         time.Time // calendar day, midnight UTC
	CheckIn      time.Time
	CheckOut     *time.Time
	BreakMinutes int
	Location     *string
	Notes        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsCheckedOut reports whether the shift has been closed.
func (a *Attendance) IsCheckedOut() bool {
	return a.CheckOut != nil
}

// HoursWorked returns hours on site net of the break. Open shifts count 0.
func (a *Attendance) HoursWorked() float64 {
	return worktime.HoursWorked(a.CheckIn, a.CheckOut, a.BreakMinutes)
}
