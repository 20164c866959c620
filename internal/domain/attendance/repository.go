package attendance

import (
	"context"
	"time"

	"github.com/sitecrew/workforce-backend/internal/domain/access"
)

// Query narrows a List call. Scope must not be denied; StartDate/EndDate are
// inclusive calendar days.
type Query struct {
	Scope     access.Scope
	StartDate *time.Time
	EndDate   *time.Time

	// Pagination, Limit 0 means no limit
	Offset int
	Limit  int
}

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// Create inserts a record. A second row for the same (employee_id, date)
	// fails with a unique violation (see database.IsUniqueViolation).
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// GetByID returns ErrAttendanceNotFound when missing
	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByEmployeeAndDate returns nil when the employee has no record that day
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	// Update persists check_out, break_minutes and notes
	Update(ctx context.Context, attendance Attendance) (Attendance, error)

	// CheckOut sets check_out only while it is still empty and returns
	// ErrAlreadyCheckedOut otherwise.
	CheckOut(ctx context.Context, id string, at time.Time) (Attendance, error)

	// List returns records newest date first and the total matching count
	List(ctx context.Context, query Query) ([]Attendance, int64, error)
}
