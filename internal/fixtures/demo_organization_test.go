package fixtures

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

func TestSeedDemoOrganization(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	teams := memory.NewTeamAssignmentRepository(store)
	assigned := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	seeded, err := SeedDemoOrganization(ctx, users, teams, "hash", assigned)
	require.NoError(t, err)
	assert.Len(t, seeded.UserIDs, len(GetDefaultUsers()))
	assert.Len(t, seeded.AssignmentIDs, len(GetDefaultTeams()))

	north := seeded.UserIDs["foreman-north"]
	reports, err := users.ListDirectReportIDs(ctx, north)
	require.NoError(t, err)
	assert.Len(t, reports, 3)

	members, err := teams.List(ctx, team.MemberFilter{SupervisorID: &north})
	require.NoError(t, err)
	require.Len(t, members, 3)
	for _, m := range members {
		assert.Equal(t, assigned, m.AssignedDate)
	}

	logistics, err := teams.GetByID(ctx, seeded.AssignmentIDs["laborer-5"])
	require.NoError(t, err)
	assert.Equal(t, team.NoSiteLabel, logistics.SiteLabel())

	counts, err := users.CountActiveByRole(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[user.RoleAdmin])
	assert.Equal(t, int64(2), counts[user.RoleSupervisor])
	assert.Equal(t, int64(5), counts[user.RoleLaborer])

	again, err := SeedDemoOrganization(ctx, users, teams, "hash", assigned)
	require.NoError(t, err)
	assert.Equal(t, seeded, again)
}
