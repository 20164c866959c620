package leave

import (
	"context"
	"time"

	"github.com/sitecrew/workforce-backend/internal/domain/access"
)

// Query narrows a List call. Requests match when their employee is in Scope
// and, if both bounds are set, their [start,end] overlaps [OverlapStart,OverlapEnd].
type Query struct {
	Scope        access.Scope
	SupervisorID *string
	Status       *LeaveRequestStatus
	OverlapStart *time.Time
	OverlapEnd   *time.Time

	// Pagination, Limit 0 means no limit
	Offset int
	Limit  int
}

type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	// UpdateDecision persists status, supervisor comments and updated_at
	UpdateDecision(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	Delete(ctx context.Context, id string) error
	// List returns requests newest first and the total matching count
	List(ctx context.Context, query Query) ([]LeaveRequest, int64, error)
}
