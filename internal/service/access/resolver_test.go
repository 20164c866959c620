package access

import (
	"context"
	"errors"
	"testing"

	"github.com/sitecrew/workforce-backend/internal/domain/access"
	"github.com/sitecrew/workforce-backend/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticHierarchy map[string][]string

func (h staticHierarchy) DirectReports(_ context.Context, supervisorID string) ([]string, error) {
	if supervisorID == "broken" {
		return nil, errors.New("store unavailable")
	}
	return h[supervisorID], nil
}

func strPtr(s string) *string { return &s }

var org = staticHierarchy{
	"sup-1": {"lab-1", "lab-2"},
	"sup-2": {"lab-3"},
}

var (
	admin   = user.Requester{ID: "adm-1", Role: user.RoleAdmin}
	sup1    = user.Requester{ID: "sup-1", Role: user.RoleSupervisor}
	lonely  = user.Requester{ID: "sup-9", Role: user.RoleSupervisor}
	laborer = user.Requester{ID: "lab-1", Role: user.RoleLaborer}
)

func TestAdminScope(t *testing.T) {
	r := NewResolver(org)
	ctx := context.Background()

	scope, err := r.ReportScope(ctx, admin, access.Target{})
	require.NoError(t, err)
	assert.True(t, scope.IsUnrestricted())

	scope, err = r.ReportScope(ctx, admin, access.Target{SupervisorID: strPtr("sup-1")})
	require.NoError(t, err)
	assert.Equal(t, []string{"lab-1", "lab-2"}, scope.EmployeeIDs())

	scope, err = r.ReportScope(ctx, admin, access.Target{EmployeeID: strPtr("lab-3")})
	require.NoError(t, err)
	assert.Equal(t, []string{"lab-3"}, scope.EmployeeIDs())

	// employee outside the named supervisor's team intersects to nothing
	scope, err = r.ReportScope(ctx, admin, access.Target{SupervisorID: strPtr("sup-1"), EmployeeID: strPtr("lab-3")})
	require.NoError(t, err)
	assert.True(t, scope.IsEmpty())
	assert.False(t, scope.IsDenied())

	_, err = r.ReportScope(ctx, admin, access.Target{SupervisorID: strPtr("broken")})
	assert.Error(t, err)
	assert.False(t, errors.Is(err, access.ErrPermissionDenied))
}

func TestSupervisorScopeIsExactlyDirectReports(t *testing.T) {
	r := NewResolver(org)
	ctx := context.Background()

	scope, err := r.ReportScope(ctx, sup1, access.Target{})
	require.NoError(t, err)
	assert.Equal(t, []string{"lab-1", "lab-2"}, scope.EmployeeIDs())

	scope, err = r.RecordScope(ctx, sup1, access.Target{})
	require.NoError(t, err)
	assert.Equal(t, []string{"lab-1", "lab-2", "sup-1"}, scope.EmployeeIDs())

	scope, err = r.ReportScope(ctx, sup1, access.Target{EmployeeID: strPtr("lab-2")})
	require.NoError(t, err)
	assert.Equal(t, []string{"lab-2"}, scope.EmployeeIDs())

	scope, err = r.ReportScope(ctx, sup1, access.Target{EmployeeID: strPtr("lab-3")})
	assert.ErrorIs(t, err, access.ErrPermissionDenied)
	assert.ErrorIs(t, err, access.ErrNotDirectReport)
	assert.True(t, scope.IsDenied())

	_, err = r.ReportScope(ctx, sup1, access.Target{SupervisorID: strPtr("sup-2")})
	assert.ErrorIs(t, err, access.ErrOtherSupervisor)

	scope, err = r.ReportScope(ctx, sup1, access.Target{SupervisorID: strPtr("sup-1")})
	require.NoError(t, err)
	assert.Equal(t, []string{"lab-1", "lab-2"}, scope.EmployeeIDs())

	scope, err = r.ReportScope(ctx, lonely, access.Target{})
	require.NoError(t, err)
	assert.True(t, scope.IsEmpty())
	assert.False(t, scope.IsDenied())
}

func TestLaborerScope(t *testing.T) {
	r := NewResolver(org)
	ctx := context.Background()

	scope, err := r.RecordScope(ctx, laborer, access.Target{})
	require.NoError(t, err)
	assert.Equal(t, []string{"lab-1"}, scope.EmployeeIDs())

	_, err = r.RecordScope(ctx, laborer, access.Target{EmployeeID: strPtr("lab-1")})
	assert.NoError(t, err)

	_, err = r.RecordScope(ctx, laborer, access.Target{EmployeeID: strPtr("lab-2")})
	assert.ErrorIs(t, err, access.ErrNotYourRecord)

	for _, target := range []access.Target{{}, {EmployeeID: strPtr("lab-1")}} {
		scope, err := r.ReportScope(ctx, laborer, target)
		assert.ErrorIs(t, err, access.ErrReportsNotAllowed)
		assert.True(t, scope.IsDenied())
	}
}

func TestUnknownRoleAndMissingID(t *testing.T) {
	r := NewResolver(org)
	ctx := context.Background()

	_, err := r.RecordScope(ctx, user.Requester{ID: "x", Role: "owner"}, access.Target{})
	assert.ErrorIs(t, err, access.ErrUnknownRole)

	_, err = r.RecordScope(ctx, user.Requester{Role: user.RoleAdmin}, access.Target{})
	assert.ErrorIs(t, err, access.ErrMissingRequesterID)
}
