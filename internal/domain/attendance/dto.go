package attendance

import (
	"time"

	"github.com/sitecrew/workforce-backend/internal/pkg/validator"
	"github.com/sitecrew/workforce-backend/internal/pkg/worktime"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type CheckInRequest struct {
	Location *string `json:"location,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Location != nil && len(*r.Location) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "location",
			Message: "location must not exceed 255 characters",
		})
	}

	if r.Notes != nil && len(*r.Notes) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "notes",
			Message: "notes must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateAttendanceRequest edits an existing record. Nil fields are left as is.
type UpdateAttendanceRequest struct {
	ID           string  `json:"-"`
	CheckOut     *string `json:"check_out,omitempty"` // RFC3339
	BreakMinutes *int    `json:"break_minutes,omitempty"`
	Notes        *string `json:"notes,omitempty"`

	checkOut *time.Time
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if r.BreakMinutes != nil && *r.BreakMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "break_minutes",
			Message: "break_minutes must not be negative",
		})
	}

	if r.Notes != nil && len(*r.Notes) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "notes",
			Message: "notes must not exceed 500 characters",
		})
	}

	if r.CheckOut != nil {
		t, err := time.Parse(time.RFC3339, *r.CheckOut)
		if err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "check_out",
				Message: "check_out must be an RFC3339 timestamp",
			})
		} else {
			utc := t.UTC()
			r.checkOut = &utc
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ParsedCheckOut returns the check-out instant parsed by Validate.
func (r *UpdateAttendanceRequest) ParsedCheckOut() *time.Time {
	return r.checkOut
}

type AttendanceResponse struct {
	ID           string   `json:"id"`
	EmployeeID   string   `json:"employee_id"`
	Date         string   `json:"date"`
	CheckIn      string   `json:"check_in"`
	CheckOut     *string  `json:"check_out,omitempty"`
	BreakMinutes int      `json:"break_minutes"`
	Location     *string  `json:"location,omitempty"`
	Notes        *string  `json:"notes,omitempty"`
	HoursWorked  *float64 `json:"hours_worked,omitempty"`
	CreatedAt    string   `json:"created_at"`
	UpdatedAt    string   `json:"updated_at"`
}

type ListAttendanceResponse struct {
	Data       []AttendanceResponse `json:"data"`
	TotalCount int64                `json:"total_count"`
	Page       int                  `json:"page"`
	Limit      int                  `json:"limit"`
	TotalPages int                  `json:"total_pages"`
}

type AttendanceFilter struct {
	// Search & Filter
	EmployeeID *string `json:"employee_id,omitempty"`
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	startDate *time.Time
	endDate   *time.Time
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	validator.Pagination(&errs, &f.Page, &f.Limit)

	if f.StartDate != nil && *f.StartDate != "" {
		if d, valid := validator.IsValidDate(*f.StartDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		} else {
			f.startDate = &d
		}
	}

	if f.EndDate != nil && *f.EndDate != "" {
		if d, valid := validator.IsValidDate(*f.EndDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		} else {
			f.endDate = &d
		}
	}

	if f.startDate != nil && f.endDate != nil && f.endDate.Before(*f.startDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Window returns the parsed date bounds, nil when not supplied.
func (f *AttendanceFilter) Window() (start, end *time.Time) {
	return f.startDate, f.endDate
}

// NewAttendanceResponse maps an entity to its API shape.
func NewAttendanceResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:           a.ID,
		EmployeeID:   a.EmployeeID,
		Date:         a.Date.Format(validator.DateLayout),
		CheckIn:      a.CheckIn.Format(time.RFC3339),
		BreakMinutes: a.BreakMinutes,
		Location:     a.Location,
		Notes:        a.Notes,
		CreatedAt:    a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    a.UpdatedAt.Format(time.RFC3339),
	}
	if a.CheckOut != nil {
		out := a.CheckOut.Format(time.RFC3339)
		hours := worktime.Round2(a.HoursWorked())
		resp.CheckOut = &out
		resp.HoursWorked = &hours
	}
	return resp
}
