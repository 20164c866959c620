package leave

import (
	"context"

	"github.com/sitecrew/workforce-backend/internal/domain/user"
)

type LeaveService interface {
	SubmitLeaveRequest(ctx context.Context, requester user.Requester, req CreateLeaveRequestRequest) (LeaveRequestResponse, error)
	DecideLeaveRequest(ctx context.Context, requester user.Requester, req DecideLeaveRequestRequest) (LeaveRequestResponse, error)
	GetLeaveRequest(ctx context.Context, requester user.Requester, id string) (LeaveRequestResponse, error)
	ListLeaveRequests(ctx context.Context, requester user.Requester, filter LeaveRequestFilter) (ListLeaveRequestResponse, error)
	DeleteLeaveRequest(ctx context.Context, requester user.Requester, id string) error
}
