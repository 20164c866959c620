package access

import (
	"context"

	"github.com/sitecrew/workforce-backend/internal/domain/user"
)

// Target names an explicit employee and/or supervisor a query is aimed at.
type Target struct {
	EmployeeID   *string
	SupervisorID *string
}

// Resolver computes the Scope for a requester. Permission failures return a
// Denied scope together with an error wrapping ErrPermissionDenied.
type Resolver interface {
	// RecordScope is used for raw record reads
	RecordScope(ctx context.Context, requester user.Requester, target Target) (Scope, error)
	// ReportScope is used for summaries and reports
	ReportScope(ctx context.Context, requester user.Requester, target Target) (Scope, error)
}
