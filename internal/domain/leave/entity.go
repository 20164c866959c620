package leave

import (
	"time"

	"github.com/sitecrew/workforce-backend/internal/pkg/worktime"
)

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending  LeaveRequestStatus = "pending"
	LeaveRequestStatusApproved LeaveRequestStatus = "approved"
	LeaveRequestStatusRejected LeaveRequestStatus = "rejected"
)

func (s LeaveRequestStatus) IsValid() bool {
	switch s {
	case LeaveRequestStatusPending, LeaveRequestStatusApproved, LeaveRequestStatusRejected:
		return true
	}
	return false
}

// LeaveRequest entity
type LeaveRequest struct {
	ID                 string
	EmployeeID         string
	SupervisorID       *string // approver resolved at creation
	LeaveType          string  // sick, vacation, personal, ...
	StartDate          time.Time
	EndDate            time.Time // inclusive
	Reason             string
	Status             LeaveRequestStatus
	SupervisorComments *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (r *LeaveRequest) IsPending() bool {
	return r.Status == LeaveRequestStatusPending
}

// Days is the inclusive calendar length of the request regardless of status.
func (r *LeaveRequest) Days() int {
	return worktime.LeaveDays(r.StartDate, r.EndDate)
}

// DaysConsumed counts toward leave utilization only once approved.
func (r *LeaveRequest) DaysConsumed() int {
	if r.Status != LeaveRequestStatusApproved {
		return 0
	}
	return r.Days()
}

// IsApprover reports whether userID is the request's assigned approver.
func (r *LeaveRequest) IsApprover(userID string) bool {
	return r.SupervisorID != nil && *r.SupervisorID == userID
}
