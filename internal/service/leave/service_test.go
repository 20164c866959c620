package leave

import (
	"context"
	"testing"

	"github.com/sitecrew/workforce-backend/internal/domain/access"
	"github.com/sitecrew/workforce-backend/internal/domain/leave"
	"github.com/sitecrew/workforce-backend/internal/domain/user"
	"github.com/sitecrew/workforce-backend/internal/pkg/validator"
	"github.com/sitecrew/workforce-backend/internal/repository/memory"
	accessService "github.com/sitecrew/workforce-backend/internal/service/access"
	"github.com/sitecrew/workforce-backend/internal/service/hierarchy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	admin     = user.Requester{ID: "adm", Role: user.RoleAdmin}
	sup       = user.Requester{ID: "sup", Role: user.RoleSupervisor}
	otherSup  = user.Requester{ID: "sup-2", Role: user.RoleSupervisor}
	worker    = user.Requester{ID: "lab-1", Role: user.RoleLaborer}
	teammate  = user.Requester{ID: "lab-2", Role: user.RoleLaborer}
	unmanaged = user.Requester{ID: "lab-3", Role: user.RoleLaborer}
)

func newService(t *testing.T) leave.LeaveService {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	adminID, supID := admin.ID, sup.ID

	for _, u := range []user.User{
		{ID: admin.ID, Email: "adm@example.com", Role: user.RoleAdmin, IsActive: true},
		{ID: sup.ID, Email: "sup@example.com", Role: user.RoleSupervisor, SupervisorID: &adminID, IsActive: true},
		{ID: otherSup.ID, Email: "sup2@example.com", Role: user.RoleSupervisor, IsActive: true},
		{ID: worker.ID, Email: "lab1@example.com", Role: user.RoleLaborer, SupervisorID: &supID, IsActive: true},
		{ID: teammate.ID, Email: "lab2@example.com", Role: user.RoleLaborer, SupervisorID: &supID, IsActive: true},
		{ID: unmanaged.ID, Email: "lab3@example.com", Role: user.RoleLaborer, IsActive: true},
	} {
		_, err := users.Create(ctx, u)
		require.NoError(t, err)
	}

	resolver := accessService.NewResolver(hierarchy.NewResolver(users, memory.NewTeamAssignmentRepository(store)))
	return NewLeaveService(memory.NewLeaveRequestRepository(store), users, resolver)
}

func submit(t *testing.T, svc leave.LeaveService, requester user.Requester) leave.LeaveRequestResponse {
	t.Helper()
	resp, err := svc.SubmitLeaveRequest(context.Background(), requester, leave.CreateLeaveRequestRequest{
		LeaveType: "sick",
		StartDate: "2024-06-03",
		EndDate:   "2024-06-05",
		Reason:    "fever",
	})
	require.NoError(t, err)
	return resp
}

func TestSubmitLeaveRequest(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	resp := submit(t, svc, worker)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, 3, resp.TotalDays)
	require.NotNil(t, resp.SupervisorID)
	assert.Equal(t, sup.ID, *resp.SupervisorID)

	own := submit(t, svc, sup)
	require.NotNil(t, own.SupervisorID)
	assert.Equal(t, admin.ID, *own.SupervisorID, "supervisor requests go to their own supervisor")

	orphan := submit(t, svc, unmanaged)
	assert.Nil(t, orphan.SupervisorID)

	_, err := svc.SubmitLeaveRequest(ctx, admin, leave.CreateLeaveRequestRequest{LeaveType: "sick", StartDate: "2024-06-03", EndDate: "2024-06-03", Reason: "x"})
	assert.ErrorIs(t, err, access.ErrPermissionDenied)
	assert.ErrorIs(t, err, leave.ErrCreateNotAllowed)

	_, err = svc.SubmitLeaveRequest(ctx, worker, leave.CreateLeaveRequestRequest{LeaveType: "sick", StartDate: "2024-06-05", EndDate: "2024-06-03", Reason: "x"})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestDecideLeaveRequest(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	resp := submit(t, svc, worker)

	decide := func(requester user.Requester, status string) (leave.LeaveRequestResponse, error) {
		return svc.DecideLeaveRequest(ctx, requester, leave.DecideLeaveRequestRequest{ID: resp.ID, Status: status})
	}

	_, err := decide(worker, "approved")
	assert.ErrorIs(t, err, leave.ErrOwnRequestDecision)

	_, err = decide(teammate, "approved")
	assert.ErrorIs(t, err, access.ErrPermissionDenied)

	_, err = decide(otherSup, "approved")
	assert.ErrorIs(t, err, leave.ErrDecideNotAllowed)

	_, err = decide(sup, "pending")
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	decided, err := decide(sup, "approved")
	require.NoError(t, err)
	assert.Equal(t, "approved", decided.Status)

	_, err = decide(admin, "rejected")
	assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)

	_, err = svc.DecideLeaveRequest(ctx, admin, leave.DecideLeaveRequestRequest{ID: "missing", Status: "approved"})
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}

func TestAdminDecidesUnassignedRequest(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	resp := submit(t, svc, unmanaged)

	comments := "ok"
	decided, err := svc.DecideLeaveRequest(ctx, admin, leave.DecideLeaveRequestRequest{ID: resp.ID, Status: "rejected", SupervisorComments: &comments})
	require.NoError(t, err)
	assert.Equal(t, "rejected", decided.Status)
	assert.Equal(t, &comments, decided.SupervisorComments)
}

func TestListAndGetLeaveRequests(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	mine := submit(t, svc, worker)
	submit(t, svc, teammate)
	foreign := submit(t, svc, unmanaged)
	own := submit(t, svc, sup)

	list, err := svc.ListLeaveRequests(ctx, worker, leave.LeaveRequestFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, list.TotalCount)

	list, err = svc.ListLeaveRequests(ctx, sup, leave.LeaveRequestFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, list.TotalCount)

	list, err = svc.ListLeaveRequests(ctx, admin, leave.LeaveRequestFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 4, list.TotalCount)

	approved := "approved"
	list, err = svc.ListLeaveRequests(ctx, admin, leave.LeaveRequestFilter{Status: &approved})
	require.NoError(t, err)
	assert.Zero(t, list.TotalCount)

	_, err = svc.GetLeaveRequest(ctx, sup, mine.ID)
	assert.NoError(t, err)
	_, err = svc.GetLeaveRequest(ctx, sup, foreign.ID)
	assert.ErrorIs(t, err, access.ErrPermissionDenied)
	_, err = svc.GetLeaveRequest(ctx, teammate, mine.ID)
	assert.ErrorIs(t, err, access.ErrPermissionDenied)
	_, err = svc.GetLeaveRequest(ctx, admin, own.ID)
	assert.NoError(t, err, "approver can read")
}

func TestDeleteLeaveRequest(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	pending := submit(t, svc, worker)
	decided := submit(t, svc, worker)
	_, err := svc.DecideLeaveRequest(ctx, sup, leave.DecideLeaveRequestRequest{ID: decided.ID, Status: "approved"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteLeaveRequest(ctx, sup, pending.ID), leave.ErrDeleteNotAllowed)
	assert.ErrorIs(t, svc.DeleteLeaveRequest(ctx, worker, decided.ID), leave.ErrDeleteAfterDecision)
	assert.NoError(t, svc.DeleteLeaveRequest(ctx, worker, pending.ID))
	assert.NoError(t, svc.DeleteLeaveRequest(ctx, admin, decided.ID))
	assert.ErrorIs(t, svc.DeleteLeaveRequest(ctx, admin, decided.ID), leave.ErrLeaveRequestNotFound)
}
