package leave

import (
	"time"

	"github.com/sitecrew/workforce-backend/internal/pkg/validator"
)

// ========================================
// LEAVE REQUEST DTOs
// ========================================

type CreateLeaveRequestRequest struct {
	LeaveType string `json:"leave_type"`
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // YYYY-MM-DD
	Reason    string `json:"reason"`

	startDate time.Time
	endDate   time.Time
}

func (r *CreateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LeaveType) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type is required",
		})
	} else if len(r.LeaveType) > 50 {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type must not exceed 50 characters",
		})
	}

	r.startDate, r.endDate = validator.DateRange(&errs, r.StartDate, r.EndDate)

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	} else if len(r.Reason) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Period returns the dates parsed by Validate.
func (r *CreateLeaveRequestRequest) Period() (time.Time, time.Time) {
	return r.startDate, r.endDate
}

type DecideLeaveRequestRequest struct {
	ID                 string  `json:"-"`
	Status             string  `json:"status"`
	SupervisorComments *string `json:"supervisor_comments,omitempty"`
}

func (r *DecideLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	status := LeaveRequestStatus(r.Status)
	if status != LeaveRequestStatusApproved && status != LeaveRequestStatusRejected {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: ErrInvalidDecision.Error(),
		})
	}

	if r.SupervisorComments != nil && len(*r.SupervisorComments) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "supervisor_comments",
			Message: "supervisor_comments must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LeaveRequestFilter struct {
	Status *string `json:"status,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *LeaveRequestFilter) Validate() error {
	var errs validator.ValidationErrors

	validator.Pagination(&errs, &f.Page, &f.Limit)

	if f.Status != nil && !LeaveRequestStatus(*f.Status).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: pending, approved, rejected",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LeaveRequestResponse struct {
	ID                 string  `json:"id"`
	EmployeeID         string  `json:"employee_id"`
	SupervisorID       *string `json:"supervisor_id"`
	LeaveType          string  `json:"leave_type"`
	StartDate          string  `json:"start_date"`
	EndDate            string  `json:"end_date"`
	TotalDays          int     `json:"total_days"`
	Reason             string  `json:"reason"`
	Status             string  `json:"status"`
	SupervisorComments *string `json:"supervisor_comments"`
	CreatedAt          string  `json:"created_at"`
	UpdatedAt          string  `json:"updated_at"`
}

type ListLeaveRequestResponse struct {
	Data       []LeaveRequestResponse `json:"data"`
	TotalCount int64                  `json:"total_count"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
	TotalPages int                    `json:"total_pages"`
}

func NewLeaveRequestResponse(r LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:                 r.ID,
		EmployeeID:         r.EmployeeID,
		SupervisorID:       r.SupervisorID,
		LeaveType:          r.LeaveType,
		StartDate:          r.StartDate.Format(validator.DateLayout),
		EndDate:            r.EndDate.Format(validator.DateLayout),
		TotalDays:          r.Days(),
		Reason:             r.Reason,
		Status:             string(r.Status),
		SupervisorComments: r.SupervisorComments,
		CreatedAt:          r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          r.UpdatedAt.Format(time.RFC3339),
	}
}
