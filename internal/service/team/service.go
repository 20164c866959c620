package team

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/sitecrew/workforce-backend/internal/domain/access"
	"github.com/sitecrew/workforce-backend/internal/domain/team"
	"github.com/sitecrew/workforce-backend/internal/domain/user"
	"github.com/sitecrew/workforce-backend/internal/pkg/clock"
	"github.com/sitecrew/workforce-backend/internal/pkg/database"
	"github.com/sitecrew/workforce-backend/internal/service/hierarchy"
)

type TeamServiceImpl struct {
	teamRepo  team.TeamAssignmentRepository
	userRepo  user.UserRepository
	hierarchy *hierarchy.Resolver
	clock     clock.Clock
}

func NewTeamService(
	teamRepo team.TeamAssignmentRepository,
	userRepo user.UserRepository,
	hierarchyResolver *hierarchy.Resolver,
	clk clock.Clock,
) team.TeamService {
	return &TeamServiceImpl{
		teamRepo:  teamRepo,
		userRepo:  userRepo,
		hierarchy: hierarchyResolver,
		clock:     clk,
	}
}

func denied(reason error) error {
	return fmt.Errorf("%w: %w", access.ErrPermissionDenied, reason)
}

// AssignToTeam implements team.TeamService.
func (s *TeamServiceImpl) AssignToTeam(ctx context.Context, requester user.Requester, req team.AssignTeamRequest) (team.TeamAssignmentResponse, error) {
	if !requester.IsAdmin() {
		return team.TeamAssignmentResponse{}, denied(team.ErrAssignNotAllowed)
	}
	if err := req.Validate(); err != nil {
		return team.TeamAssignmentResponse{}, err
	}

	laborer, err := s.userRepo.GetByID(ctx, req.LaborerID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return team.TeamAssignmentResponse{}, team.ErrLaborerNotFound
		}
		return team.TeamAssignmentResponse{}, err
	}
	if !laborer.IsLaborer() {
		return team.TeamAssignmentResponse{}, team.ErrNotALaborer
	}
	if laborer.SupervisorID == nil {
		return team.TeamAssignmentResponse{}, team.ErrLaborerHasNoSupervisor
	}

	active, err := s.teamRepo.GetActiveByLaborer(ctx, laborer.ID)
	if err != nil {
		return team.TeamAssignmentResponse{}, err
	}
	if active != nil {
		return team.TeamAssignmentResponse{}, fmt.Errorf("%w (team %q)", team.ErrLaborerAlreadyAssigned, active.TeamName)
	}

	created, err := s.teamRepo.Create(ctx, team.TeamAssignment{
		SupervisorID: *laborer.SupervisorID,
		LaborerID:    laborer.ID,
		TeamName:     req.TeamName,
		SiteLocation: req.SiteLocation,
		AssignedDate: s.clock.Today(),
		IsActive:     true,
	})
	if err != nil {
		// lost a race with a concurrent assignment
		if database.IsUniqueViolation(err) {
			return team.TeamAssignmentResponse{}, team.ErrLaborerAlreadyAssigned
		}
		slog.Error("Failed to create team assignment", "laborer_id", laborer.ID, "error", err)
		return team.TeamAssignmentResponse{}, fmt.Errorf("failed to assign team: %w", err)
	}

	return team.NewTeamAssignmentResponse(created), nil
}

func (s *TeamServiceImpl) getManaged(ctx context.Context, requester user.Requester, id string) (team.TeamAssignment, error) {
	assignment, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return team.TeamAssignment{}, err
	}
	if !requester.IsAdmin() && !assignment.ManagedBy(requester.ID) {
		return team.TeamAssignment{}, denied(team.ErrManageNotAllowed)
	}
	return assignment, nil
}

// UpdateAssignment implements team.TeamService.
func (s *TeamServiceImpl) UpdateAssignment(ctx context.Context, requester user.Requester, req team.UpdateTeamAssignmentRequest) (team.TeamAssignmentResponse, error) {
	if err := req.Validate(); err != nil {
		return team.TeamAssignmentResponse{}, err
	}

	assignment, err := s.getManaged(ctx, requester, req.ID)
	if err != nil {
		return team.TeamAssignmentResponse{}, err
	}

	if req.TeamName != nil {
		assignment.TeamName = *req.TeamName
	}
	if req.SiteLocation != nil {
		assignment.SiteLocation = req.SiteLocation
		if *req.SiteLocation == "" {
			assignment.SiteLocation = nil
		}
	}
	if req.IsActive != nil {
		assignment.IsActive = *req.IsActive
	}

	updated, err := s.teamRepo.Update(ctx, assignment)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return team.TeamAssignmentResponse{}, team.ErrLaborerAlreadyAssigned
		}
		return team.TeamAssignmentResponse{}, err
	}
	return team.NewTeamAssignmentResponse(updated), nil
}

// DeactivateAssignment implements team.TeamService.
func (s *TeamServiceImpl) DeactivateAssignment(ctx context.Context, requester user.Requester, id string) error {
	assignment, err := s.getManaged(ctx, requester, id)
	if err != nil {
		return err
	}
	if !assignment.IsActive {
		return nil
	}

	assignment.IsActive = false
	if _, err := s.teamRepo.Update(ctx, assignment); err != nil {
		return fmt.Errorf("failed to deactivate team assignment: %w", err)
	}
	return nil
}

// ListAssignments implements team.TeamService.
func (s *TeamServiceImpl) ListAssignments(ctx context.Context, requester user.Requester, filter team.TeamAssignmentFilter) ([]team.TeamAssignmentResponse, error) {
	wantActive := filter.IsActive == nil || *filter.IsActive

	memberFilter := team.MemberFilter{
		SupervisorID:    filter.SupervisorID,
		TeamName:        filter.TeamName,
		SiteLocation:    filter.SiteLocation,
		IncludeInactive: !wantActive,
	}

	switch requester.Role {
	case user.RoleAdmin:
	case user.RoleSupervisor:
		if filter.SupervisorID != nil && *filter.SupervisorID != requester.ID {
			return nil, denied(access.ErrOtherSupervisor)
		}
		memberFilter.SupervisorID = &requester.ID
	case user.RoleLaborer:
		memberFilter.LaborerID = &requester.ID
	default:
		return nil, denied(access.ErrUnknownRole)
	}

	assignments, err := s.hierarchy.TeamMembers(ctx, memberFilter)
	if err != nil {
		return nil, err
	}

	result := make([]team.TeamAssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		if a.IsActive != wantActive {
			continue
		}
		result = append(result, team.NewTeamAssignmentResponse(a))
	}
	return result, nil
}

// MyTeam implements team.TeamService. Supervisors get their active members;
// laborers get everyone on their current team.
func (s *TeamServiceImpl) MyTeam(ctx context.Context, requester user.Requester) ([]team.TeamAssignmentResponse, error) {
	var filter team.MemberFilter

	switch requester.Role {
	case user.RoleSupervisor:
		filter.SupervisorID = &requester.ID
	case user.RoleLaborer:
		own, err := s.teamRepo.GetActiveByLaborer(ctx, requester.ID)
		if err != nil {
			return nil, err
		}
		if own == nil {
			return []team.TeamAssignmentResponse{}, nil
		}
		filter.SupervisorID = &own.SupervisorID
		filter.TeamName = &own.TeamName
	case user.RoleAdmin:
	default:
		return nil, denied(access.ErrUnknownRole)
	}

	members, err := s.hierarchy.TeamMembers(ctx, filter)
	if err != nil {
		return nil, err
	}
	result := make([]team.TeamAssignmentResponse, 0, len(members))
	for _, m := range members {
		result = append(result, team.NewTeamAssignmentResponse(m))
	}
	return result, nil
}

// GetTeamStats implements team.TeamService.
func (s *TeamServiceImpl) GetTeamStats(ctx context.Context, requester user.Requester, supervisorID string) (team.TeamStatsResponse, error) {
	switch {
	case requester.IsAdmin():
	case requester.IsSupervisor() && requester.ID == supervisorID:
	default:
		return team.TeamStatsResponse{}, denied(team.ErrStatsNotAllowed)
	}

	assignments, err := s.hierarchy.TeamMembers(ctx, team.MemberFilter{SupervisorID: &supervisorID, IncludeInactive: true})
	if err != nil {
		return team.TeamStatsResponse{}, err
	}

	stats := team.TeamStatsResponse{
		SupervisorID:     supervisorID,
		TotalAssignments: len(assignments),
		Teams:            []string{},
		Sites:            []string{},
	}
	teams := make(map[string]struct{})
	sites := make(map[string]struct{})
	for _, a := range assignments {
		if !a.IsActive {
			continue
		}
		stats.ActiveAssignments++
		teams[a.TeamName] = struct{}{}
		if a.SiteLocation != nil {
			sites[*a.SiteLocation] = struct{}{}
		}
	}
	for name := range teams {
		stats.Teams = append(stats.Teams, name)
	}
	for site := range sites {
		stats.Sites = append(stats.Sites, site)
	}
	sort.Strings(stats.Teams)
	sort.Strings(stats.Sites)

	return stats, nil
}
