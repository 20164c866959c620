package report

import (
	"time"

	"github.com/sitecrew/workforce-backend/internal/domain/attendance"
	"github.com/sitecrew/workforce-backend/internal/domain/leave"
	"github.com/sitecrew/workforce-backend/internal/pkg/validator"
)

// ========================================
// DAILY ATTENDANCE SUMMARY
// ========================================

type DailySummaryRequest struct {
	Date         string  `json:"date"` // YYYY-MM-DD
	EmployeeID   *string `json:"employee_id,omitempty"`
	SupervisorID *string `json:"supervisor_id,omitempty"`
	SiteLocation *string `json:"site_location,omitempty"`
	TeamName     *string `json:"team_name,omitempty"`

	date time.Time
}

func (r *DailySummaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if d, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	} else {
		r.date = d
	}

	r.trim()

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *DailySummaryRequest) trim() {
	r.EmployeeID = validator.OptionalString(r.EmployeeID)
	r.SupervisorID = validator.OptionalString(r.SupervisorID)
	r.SiteLocation = validator.OptionalString(r.SiteLocation)
	r.TeamName = validator.OptionalString(r.TeamName)
}

// Day returns the date parsed by Validate.
func (r *DailySummaryRequest) Day() time.Time {
	return r.date
}

type DailySummary struct {
	Date                    string                          `json:"date"`
	TotalEmployees          int                             `json:"total_employees"`
	CheckedOut              int                             `json:"checked_out"`
	StillWorking            int                             `json:"still_working"`
	TotalHoursWorked        float64                         `json:"total_hours_worked"`
	AverageHoursPerEmployee float64                         `json:"average_hours_per_employee"`
	Records                 []attendance.AttendanceResponse `json:"records"`
}

// ========================================
// ATTENDANCE RANGE SUMMARY
// ========================================

type RangeRequest struct {
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	EmployeeID   *string `json:"employee_id,omitempty"`
	SupervisorID *string `json:"supervisor_id,omitempty"`
	SiteLocation *string `json:"site_location,omitempty"`
	TeamName     *string `json:"team_name,omitempty"`

	start time.Time
	end   time.Time
}

func (r *RangeRequest) Validate() error {
	var errs validator.ValidationErrors

	r.start, r.end = validator.DateRange(&errs, r.StartDate, r.EndDate)
	r.EmployeeID = validator.OptionalString(r.EmployeeID)
	r.SupervisorID = validator.OptionalString(r.SupervisorID)
	r.SiteLocation = validator.OptionalString(r.SiteLocation)
	r.TeamName = validator.OptionalString(r.TeamName)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Period returns the bounds parsed by Validate.
func (r *RangeRequest) Period() (time.Time, time.Time) {
	return r.start, r.end
}

type Period struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type RangeFilters struct {
	EmployeeID   *string `json:"employee_id"`
	SupervisorID *string `json:"supervisor_id"`
	SiteLocation *string `json:"site_location"`
	TeamName     *string `json:"team_name"`
}

type RangeTotals struct {
	TotalAttendanceRecords int     `json:"total_attendance_records"`
	UniqueEmployees        int     `json:"unique_employees"`
	TotalHoursWorked       float64 `json:"total_hours_worked"`
	AverageDailyAttendance float64 `json:"average_daily_attendance"`
}

type DailyBreakdown struct {
	Date                    string  `json:"date"`
	EmployeesPresent        int     `json:"employees_present"`
	EmployeesCheckedOut     int     `json:"employees_checked_out"`
	TotalHoursWorked        float64 `json:"total_hours_worked"`
	AverageHoursPerEmployee float64 `json:"average_hours_per_employee"`
}

type RangeSummary struct {
	Period         Period           `json:"period"`
	Filters        RangeFilters     `json:"filters"`
	Summary        RangeTotals      `json:"summary"`
	DailyBreakdown []DailyBreakdown `json:"daily_breakdown"`
}

// ========================================
// LEAVE SUMMARY
// ========================================

type LeaveSummaryRequest struct {
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	Status       *string `json:"status,omitempty"`
	SupervisorID *string `json:"supervisor_id,omitempty"`
	EmployeeID   *string `json:"employee_id,omitempty"`

	start time.Time
	end   time.Time
}

func (r *LeaveSummaryRequest) Validate() error {
	var errs validator.ValidationErrors

	r.start, r.end = validator.DateRange(&errs, r.StartDate, r.EndDate)
	r.Status = validator.OptionalString(r.Status)
	r.SupervisorID = validator.OptionalString(r.SupervisorID)
	r.EmployeeID = validator.OptionalString(r.EmployeeID)

	if r.Status != nil && !leave.LeaveRequestStatus(*r.Status).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: ErrInvalidStatus.Error(),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Period returns the bounds parsed by Validate.
func (r *LeaveSummaryRequest) Period() (time.Time, time.Time) {
	return r.start, r.end
}

type LeaveFilters struct {
	Status       *string `json:"status"`
	SupervisorID *string `json:"supervisor_id"`
	EmployeeID   *string `json:"employee_id"`
}

type LeaveTotals struct {
	TotalRequests      int            `json:"total_requests"`
	ApprovedLeaveDays  int            `json:"approved_leave_days"`
	StatusBreakdown    map[string]int `json:"status_breakdown"`
	LeaveTypeBreakdown map[string]int `json:"leave_type_breakdown"`
}

type LeaveSummary struct {
	Period   Period                       `json:"period"`
	Filters  LeaveFilters                 `json:"filters"`
	Summary  LeaveTotals                  `json:"summary"`
	Requests []leave.LeaveRequestResponse `json:"requests"`
}

// ========================================
// TEAM PERFORMANCE
// ========================================

type TeamPerformanceRequest struct {
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	SupervisorID *string `json:"supervisor_id,omitempty"`
	TeamName     *string `json:"team_name,omitempty"`
	SiteLocation *string `json:"site_location,omitempty"`

	start time.Time
	end   time.Time
}

func (r *TeamPerformanceRequest) Validate() error {
	var errs validator.ValidationErrors

	r.start, r.end = validator.DateRange(&errs, r.StartDate, r.EndDate)
	r.SupervisorID = validator.OptionalString(r.SupervisorID)
	r.TeamName = validator.OptionalString(r.TeamName)
	r.SiteLocation = validator.OptionalString(r.SiteLocation)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Period returns the bounds parsed by Validate.
func (r *TeamPerformanceRequest) Period() (time.Time, time.Time) {
	return r.start, r.end
}

type MemberPerformance struct {
	EmployeeID     string  `json:"employee_id"`
	FullName       string  `json:"full_name"`
	EmployeeNumber string  `json:"employee_number"`
	AttendanceDays int     `json:"attendance_days"`
	HoursWorked    float64 `json:"hours_worked"`
	LeaveDays      int     `json:"leave_days"`
}

type TeamPerformance struct {
	TeamName                   string              `json:"team_name"`
	SiteLocation               string              `json:"site_location"`
	SupervisorID               string              `json:"supervisor_id"`
	Members                    []MemberPerformance `json:"members"`
	MemberCount                int                 `json:"member_count"`
	TotalAttendanceDays        int                 `json:"total_attendance_days"`
	TotalHoursWorked           float64             `json:"total_hours_worked"`
	TotalLeaveDays             int                 `json:"total_leave_days"`
	AverageAttendancePerMember float64             `json:"average_attendance_per_member"`
	AverageHoursPerMember      float64             `json:"average_hours_per_member"`
	AverageLeaveDaysPerMember  float64             `json:"average_leave_days_per_member"`
}

type TeamPerformanceReport struct {
	Period Period            `json:"period"`
	Teams  []TeamPerformance `json:"teams"`
}
