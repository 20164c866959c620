package team

import (
	"context"

	"github.com/sitecrew/workforce-backend/internal/domain/user"
)

type TeamService interface {
	AssignToTeam(ctx context.Context, requester user.Requester, req AssignTeamRequest) (TeamAssignmentResponse, error)
	UpdateAssignment(ctx context.Context, requester user.Requester, req UpdateTeamAssignmentRequest) (TeamAssignmentResponse, error)
	DeactivateAssignment(ctx context.Context, requester user.Requester, id string) error
	ListAssignments(ctx context.Context, requester user.Requester, filter TeamAssignmentFilter) ([]TeamAssignmentResponse, error)
	MyTeam(ctx context.Context, requester user.Requester) ([]TeamAssignmentResponse, error)
	GetTeamStats(ctx context.Context, requester user.Requester, supervisorID string) (TeamStatsResponse, error)
}
