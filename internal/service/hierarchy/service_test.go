package hierarchy

import (
	"context"
	"testing"
	"time"

	"github.com/sitecrew/workforce-backend/internal/domain/team"
	"github.com/sitecrew/workforce-backend/internal/domain/user"
	"github.com/sitecrew/workforce-backend/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestTeamMembersFiltersAndOrder(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	teams := memory.NewTeamAssignmentRepository(store)
	r := NewResolver(users, teams)

	day := func(d int) time.Time { return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC) }
	seed := []team.TeamAssignment{
		{LaborerID: "l3", SupervisorID: "s1", TeamName: "Alpha", SiteLocation: strPtr("North"), AssignedDate: day(9), IsActive: true},
		{LaborerID: "l1", SupervisorID: "s1", TeamName: "Alpha", SiteLocation: strPtr("North"), AssignedDate: day(1), IsActive: true},
		{LaborerID: "l2", SupervisorID: "s1", TeamName: "Beta", AssignedDate: day(5), IsActive: true},
		{LaborerID: "l4", SupervisorID: "s2", TeamName: "Alpha", SiteLocation: strPtr("North"), AssignedDate: day(2), IsActive: true},
		{LaborerID: "l5", SupervisorID: "s1", TeamName: "Alpha", SiteLocation: strPtr("North"), AssignedDate: day(3), IsActive: false},
	}
	for _, a := range seed {
		_, err := teams.Create(ctx, a)
		require.NoError(t, err)
	}

	ids, err := r.TeamMemberIDs(ctx, team.MemberFilter{SupervisorID: strPtr("s1")})
	require.NoError(t, err)
	assert.Equal(t, []string{"l1", "l2", "l3"}, ids)

	ids, err = r.TeamMemberIDs(ctx, team.MemberFilter{SupervisorID: strPtr("s1"), TeamName: strPtr("Alpha"), SiteLocation: strPtr("North")})
	require.NoError(t, err)
	assert.Equal(t, []string{"l1", "l3"}, ids)

	ids, err = r.TeamMemberIDs(ctx, team.MemberFilter{TeamName: strPtr("Alpha"), IncludeInactive: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"l1", "l4", "l5", "l3"}, ids)
}

func TestDirectReports(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	r := NewResolver(users, memory.NewTeamAssignmentRepository(store))

	sup := "s1"
	for _, u := range []user.User{
		{ID: sup, Email: "s1@example.com", Role: user.RoleSupervisor},
		{ID: "l1", Email: "l1@example.com", Role: user.RoleLaborer, SupervisorID: &sup},
		{ID: "l2", Email: "l2@example.com", Role: user.RoleLaborer},
	} {
		_, err := users.Create(ctx, u)
		require.NoError(t, err)
	}

	ids, err := r.DirectReports(ctx, sup)
	require.NoError(t, err)
	assert.Equal(t, []string{"l1"}, ids)

	ids, err = r.DirectReports(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, ids)
}
