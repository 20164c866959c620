package team

import (
	"context"
)

// MemberFilter selects assignments. Set predicates are combined with AND.
// Inactive rows are excluded unless IncludeInactive is true.
type MemberFilter struct {
	SupervisorID    *string
	LaborerID       *string
	TeamName        *string
	SiteLocation    *string
	IncludeInactive bool
}

type TeamAssignmentRepository interface {
	// Create fails with a unique violation when the laborer already has an active assignment
	Create(ctx context.Context, assignment TeamAssignment) (TeamAssignment, error)
	GetByID(ctx context.Context, id string) (TeamAssignment, error)
	GetActiveByLaborer(ctx context.Context, laborerID string) (*TeamAssignment, error)
	Update(ctx context.Context, assignment TeamAssignment) (TeamAssignment, error)
	// List orders by assigned_date ascending, then id
	List(ctx context.Context, filter MemberFilter) ([]TeamAssignment, error)
}
