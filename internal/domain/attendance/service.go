package attendance

import (
	"context"

	"github.com/sitecrew/workforce-backend/internal/domain/user"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// CheckIn opens today's attendance record for the requester
	CheckIn(ctx context.Context, requester user.Requester, req CheckInRequest) (AttendanceResponse, error)

	// CheckOut closes an open record owned by the requester
	CheckOut(ctx context.Context, requester user.Requester, id string) (AttendanceResponse, error)

	// UpdateAttendance edits break/notes/check-out (owner or admin)
	UpdateAttendance(ctx context.Context, requester user.Requester, req UpdateAttendanceRequest) (AttendanceResponse, error)

	// GetAttendance retrieves a single record visible to the requester
	GetAttendance(ctx context.Context, requester user.Requester, id string) (AttendanceResponse, error)

	// ListAttendance retrieves records visible to the requester
	ListAttendance(ctx context.Context, requester user.Requester, filter AttendanceFilter) (ListAttendanceResponse, error)
}
