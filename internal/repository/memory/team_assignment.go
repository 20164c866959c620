package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/sitecrew/workforce-backend/internal/domain/team"
	"github.com/sitecrew/workforce-backend/internal/pkg/database"
)

type teamAssignmentRepository struct {
	s *Store
}

func NewTeamAssignmentRepository(s *Store) team.TeamAssignmentRepository {
	return &teamAssignmentRepository{s: s}
}

// activeFor must be called with the lock held.
func (r *teamAssignmentRepository) activeFor(laborerID, exceptID string) bool {
	for _, ta := range r.s.teamAssignments {
		if ta.LaborerID == laborerID && ta.IsActive && ta.ID != exceptID {
			return true
		}
	}
	return false
}

func (r *teamAssignmentRepository) Create(ctx context.Context, assignment team.TeamAssignment) (team.TeamAssignment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if assignment.IsActive && r.activeFor(assignment.LaborerID, "") {
		return team.TeamAssignment{}, fmt.Errorf("active assignment for %s: %w", assignment.LaborerID, database.ErrUniqueViolation)
	}

	assignment.ID = r.s.newID(assignment.ID)
	assignment.CreatedAt = r.s.timestamp()
	assignment.UpdatedAt = assignment.CreatedAt
	r.s.teamAssignments[assignment.ID] = assignment
	return assignment, nil
}

func (r *teamAssignmentRepository) GetByID(ctx context.Context, id string) (team.TeamAssignment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ta, ok := r.s.teamAssignments[id]
	if !ok {
		return team.TeamAssignment{}, team.ErrTeamAssignmentNotFound
	}
	return ta, nil
}

func (r *teamAssignmentRepository) GetActiveByLaborer(ctx context.Context, laborerID string) (*team.TeamAssignment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, ta := range r.s.teamAssignments {
		if ta.LaborerID == laborerID && ta.IsActive {
			return &ta, nil
		}
	}
	return nil, nil
}

func (r *teamAssignmentRepository) Update(ctx context.Context, assignment team.TeamAssignment) (team.TeamAssignment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.teamAssignments[assignment.ID]
	if !ok {
		return team.TeamAssignment{}, team.ErrTeamAssignmentNotFound
	}
	if assignment.IsActive && !existing.IsActive && r.activeFor(existing.LaborerID, existing.ID) {
		return team.TeamAssignment{}, fmt.Errorf("active assignment for %s: %w", existing.LaborerID, database.ErrUniqueViolation)
	}

	existing.TeamName = assignment.TeamName
	existing.SiteLocation = assignment.SiteLocation
	existing.IsActive = assignment.IsActive
	existing.UpdatedAt = r.s.timestamp()
	r.s.teamAssignments[existing.ID] = existing
	return existing, nil
}

func (r *teamAssignmentRepository) List(ctx context.Context, filter team.MemberFilter) ([]team.TeamAssignment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched := []team.TeamAssignment{}
	for _, ta := range r.s.teamAssignments {
		if !filter.IncludeInactive && !ta.IsActive {
			continue
		}
		if filter.SupervisorID != nil && ta.SupervisorID != *filter.SupervisorID {
			continue
		}
		if filter.LaborerID != nil && ta.LaborerID != *filter.LaborerID {
			continue
		}
		if filter.TeamName != nil && ta.TeamName != *filter.TeamName {
			continue
		}
		if filter.SiteLocation != nil && (ta.SiteLocation == nil || *ta.SiteLocation != *filter.SiteLocation) {
			continue
		}
		matched = append(matched, ta)
	}

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.AssignedDate.Equal(b.AssignedDate) {
			return a.AssignedDate.Before(b.AssignedDate)
		}
		return r.s.order[a.ID] < r.s.order[b.ID]
	})
	return matched, nil
}
