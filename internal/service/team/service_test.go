package team

import (
	"context"
	"testing"
	"time"

	"github.com/sitecrew/workforce-backend/internal/domain/access"
	"github.com/sitecrew/workforce-backend/internal/domain/team"
	"github.com/sitecrew/workforce-backend/internal/domain/user"
	"github.com/sitecrew/workforce-backend/internal/pkg/clock"
	"github.com/sitecrew/workforce-backend/internal/repository/memory"
	"github.com/sitecrew/workforce-backend/internal/service/hierarchy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	admin    = user.Requester{ID: "adm", Role: user.RoleAdmin}
	sup      = user.Requester{ID: "sup", Role: user.RoleSupervisor}
	otherSup = user.Requester{ID: "sup-2", Role: user.RoleSupervisor}
	worker   = user.Requester{ID: "lab-1", Role: user.RoleLaborer}
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

type fixture struct {
	svc  team.TeamService
	repo team.TeamAssignmentRepository
}

func setup(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	teams := memory.NewTeamAssignmentRepository(store)
	supID, otherID := sup.ID, otherSup.ID

	for _, u := range []user.User{
		{ID: admin.ID, Email: "adm@example.com", Role: user.RoleAdmin, IsActive: true},
		{ID: sup.ID, Email: "sup@example.com", Role: user.RoleSupervisor, IsActive: true},
		{ID: otherSup.ID, Email: "sup2@example.com", Role: user.RoleSupervisor, IsActive: true},
		{ID: worker.ID, Email: "lab1@example.com", Role: user.RoleLaborer, SupervisorID: &supID, IsActive: true},
		{ID: "lab-2", Email: "lab2@example.com", Role: user.RoleLaborer, SupervisorID: &supID, IsActive: true},
		{ID: "lab-3", Email: "lab3@example.com", Role: user.RoleLaborer, SupervisorID: &otherID, IsActive: true},
		{ID: "lab-orphan", Email: "orphan@example.com", Role: user.RoleLaborer, IsActive: true},
	} {
		_, err := users.Create(ctx, u)
		require.NoError(t, err)
	}

	clk := clock.Fixed{At: time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC)}
	return fixture{
		svc:  NewTeamService(teams, users, hierarchy.NewResolver(users, teams), clk),
		repo: teams,
	}
}

func TestAssignToTeamRules(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	assign := func(requester user.Requester, laborerID string) (team.TeamAssignmentResponse, error) {
		return f.svc.AssignToTeam(ctx, requester, team.AssignTeamRequest{LaborerID: laborerID, TeamName: "Concrete", SiteLocation: strPtr("Dock 4")})
	}

	_, err := assign(sup, worker.ID)
	assert.ErrorIs(t, err, access.ErrPermissionDenied)

	_, err = assign(admin, "ghost")
	assert.ErrorIs(t, err, team.ErrLaborerNotFound)

	_, err = assign(admin, sup.ID)
	assert.ErrorIs(t, err, team.ErrNotALaborer)

	_, err = assign(admin, "lab-orphan")
	assert.ErrorIs(t, err, team.ErrLaborerHasNoSupervisor)
	assert.True(t, team.IsBusinessRuleViolation(err))

	created, err := assign(admin, worker.ID)
	require.NoError(t, err)
	assert.Equal(t, sup.ID, created.SupervisorID)
	assert.Equal(t, "2024-04-01", created.AssignedDate)
	assert.True(t, created.IsActive)

	_, err = f.svc.AssignToTeam(ctx, admin, team.AssignTeamRequest{LaborerID: worker.ID, TeamName: "Steel"})
	assert.ErrorIs(t, err, team.ErrLaborerAlreadyAssigned)

	prior, err := f.repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, prior.IsActive, "prior assignment stays active")
	assert.Equal(t, "Concrete", prior.TeamName)
}

func TestUpdateAndDeactivate(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	created, err := f.svc.AssignToTeam(ctx, admin, team.AssignTeamRequest{LaborerID: worker.ID, TeamName: "Concrete"})
	require.NoError(t, err)

	_, err = f.svc.UpdateAssignment(ctx, otherSup, team.UpdateTeamAssignmentRequest{ID: created.ID, TeamName: strPtr("Steel")})
	assert.ErrorIs(t, err, team.ErrManageNotAllowed)

	updated, err := f.svc.UpdateAssignment(ctx, sup, team.UpdateTeamAssignmentRequest{ID: created.ID, TeamName: strPtr("Steel"), SiteLocation: strPtr("Yard")})
	require.NoError(t, err)
	assert.Equal(t, "Steel", updated.TeamName)
	assert.Equal(t, strPtr("Yard"), updated.SiteLocation)

	assert.ErrorIs(t, f.svc.DeactivateAssignment(ctx, worker, created.ID), access.ErrPermissionDenied)
	require.NoError(t, f.svc.DeactivateAssignment(ctx, sup, created.ID))

	stored, err := f.repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive, "soft delete keeps the row")

	again, err := f.svc.AssignToTeam(ctx, admin, team.AssignTeamRequest{LaborerID: worker.ID, TeamName: "Paving"})
	require.NoError(t, err)

	_, err = f.svc.UpdateAssignment(ctx, admin, team.UpdateTeamAssignmentRequest{ID: created.ID, IsActive: boolPtr(true)})
	assert.ErrorIs(t, err, team.ErrLaborerAlreadyAssigned)
	assert.NotEmpty(t, again.ID)
}

func TestListMyTeamAndStats(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	for _, req := range []team.AssignTeamRequest{
		{LaborerID: worker.ID, TeamName: "Concrete", SiteLocation: strPtr("Dock 4")},
		{LaborerID: "lab-2", TeamName: "Concrete", SiteLocation: strPtr("Dock 4")},
		{LaborerID: "lab-3", TeamName: "Steel"},
	} {
		_, err := f.svc.AssignToTeam(ctx, admin, req)
		require.NoError(t, err)
	}

	all, err := f.svc.ListAssignments(ctx, admin, team.TeamAssignmentFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	mine, err := f.svc.ListAssignments(ctx, sup, team.TeamAssignmentFilter{})
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	_, err = f.svc.ListAssignments(ctx, sup, team.TeamAssignmentFilter{SupervisorID: strPtr(otherSup.ID)})
	assert.ErrorIs(t, err, access.ErrPermissionDenied)

	own, err := f.svc.ListAssignments(ctx, worker, team.TeamAssignmentFilter{})
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, worker.ID, own[0].LaborerID)

	teammates, err := f.svc.MyTeam(ctx, worker)
	require.NoError(t, err)
	assert.Len(t, teammates, 2)

	inactive, err := f.svc.ListAssignments(ctx, admin, team.TeamAssignmentFilter{IsActive: boolPtr(false)})
	require.NoError(t, err)
	assert.Empty(t, inactive)

	stats, err := f.svc.GetTeamStats(ctx, sup, sup.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.ActiveAssignments)
	assert.Equal(t, 2, stats.TotalAssignments)
	assert.Equal(t, []string{"Concrete"}, stats.Teams)
	assert.Equal(t, []string{"Dock 4"}, stats.Sites)

	_, err = f.svc.GetTeamStats(ctx, sup, otherSup.ID)
	assert.ErrorIs(t, err, team.ErrStatsNotAllowed)
	_, err = f.svc.GetTeamStats(ctx, worker, sup.ID)
	assert.ErrorIs(t, err, access.ErrPermissionDenied)
}
