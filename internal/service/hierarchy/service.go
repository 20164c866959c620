// Package hierarchy answers who reports to whom and who sits on which team.
package hierarchy

import (
	"context"
	"fmt"

	"github.com/sitecrew/workforce-backend/internal/domain/team"
	"github.com/sitecrew/workforce-backend/internal/domain/user"
)

type Resolver struct {
	userRepo user.UserRepository
	teamRepo team.TeamAssignmentRepository
}

func NewResolver(userRepo user.UserRepository, teamRepo team.TeamAssignmentRepository) *Resolver {
	return &Resolver{userRepo: userRepo, teamRepo: teamRepo}
}

// DirectReports returns the ids of users whose supervisor is supervisorID.
func (r *Resolver) DirectReports(ctx context.Context, supervisorID string) ([]string, error) {
	ids, err := r.userRepo.ListDirectReportIDs(ctx, supervisorID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve direct reports of %s: %w", supervisorID, err)
	}
	return ids, nil
}

// TeamMembers returns assignments matching every set predicate of filter,
// oldest assignment first.
func (r *Resolver) TeamMembers(ctx context.Context, filter team.MemberFilter) ([]team.TeamAssignment, error) {
	members, err := r.teamRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve team members: %w", err)
	}
	return members, nil
}

// TeamMemberIDs is TeamMembers reduced to distinct laborer ids in the same order.
func (r *Resolver) TeamMemberIDs(ctx context.Context, filter team.MemberFilter) ([]string, error) {
	members, err := r.TeamMembers(ctx, filter)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(members))
	ids := make([]string, 0, len(members))
	for _, m := range members {
		if _, ok := seen[m.LaborerID]; ok {
			continue
		}
		seen[m.LaborerID] = struct{}{}
		ids = append(ids, m.LaborerID)
	}
	return ids, nil
}
