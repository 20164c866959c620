package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/sitecrew/workforce-backend/internal/domain/access"
	"github.com/sitecrew/workforce-backend/internal/domain/attendance"
	"github.com/sitecrew/workforce-backend/internal/domain/leave"
	"github.com/sitecrew/workforce-backend/internal/domain/team"
	"github.com/sitecrew/workforce-backend/internal/domain/user"
	"github.com/sitecrew/workforce-backend/internal/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, 7, d, 0, 0, 0, 0, time.UTC)
}

func TestAttendanceCreateIsUniquePerEmployeeAndDate(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository(NewStore())

	const workers = 16
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Create(ctx, attendance.Attendance{EmployeeID: "emp-1", Date: day(1), CheckIn: day(1).Add(9 * time.Hour)})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok, dup int
	for err := range errs {
		if err == nil {
			ok++
		} else {
			assert.True(t, database.IsUniqueViolation(err))
			dup++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, workers-1, dup)

	_, total, err := repo.List(ctx, attendance.Query{Scope: access.Unrestricted()})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestAttendanceListScopeWindowAndPaging(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository(NewStore())

	for _, emp := range []string{"a", "b", "c"} {
		for d := 1; d <= 3; d++ {
			_, err := repo.Create(ctx, attendance.Attendance{EmployeeID: emp, Date: day(d), CheckIn: day(d).Add(8 * time.Hour)})
			require.NoError(t, err)
		}
	}

	start, end := day(2), day(3)
	records, total, err := repo.List(ctx, attendance.Query{
		Scope:     access.RestrictedTo("a", "b"),
		StartDate: &start,
		EndDate:   &end,
		Limit:     3,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	require.Len(t, records, 3)
	assert.Equal(t, day(3), records[0].Date)

	records, total, err = repo.List(ctx, attendance.Query{Scope: access.RestrictedTo()})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, records)

	_, total, err = repo.List(ctx, attendance.Query{Scope: access.Denied(nil)})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestPaginateOffsets(t *testing.T) {
	items := []int{1, 2, 3}
	assert.Equal(t, []int{1, 2}, paginate(items, -6917529027641081856, 2))
	assert.Equal(t, []int{3}, paginate(items, 2, 2))
	assert.Empty(t, paginate(items, 5, 2))
	assert.Equal(t, items, paginate(items, 0, 0))
}

func TestAttendanceCheckOutIsConditional(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository(NewStore())

	open, err := repo.Create(ctx, attendance.Attendance{EmployeeID: "a", Date: day(1), CheckIn: day(1).Add(8 * time.Hour)})
	require.NoError(t, err)

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.CheckOut(ctx, open.ID, day(1).Add(time.Duration(16+i)*time.Hour))
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	var ok int
	for err := range errs {
		if err == nil {
			ok++
		} else {
			assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
		}
	}
	assert.Equal(t, 1, ok)

	stored, err := repo.GetByID(ctx, open.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.CheckOut)

	_, err = repo.CheckOut(ctx, "missing", day(1))
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func TestLeaveRequestOverlapAndDecision(t *testing.T) {
	ctx := context.Background()
	repo := NewLeaveRequestRepository(NewStore())

	inside, err := repo.Create(ctx, leave.LeaveRequest{EmployeeID: "a", StartDate: day(5), EndDate: day(6), Status: leave.LeaveRequestStatusPending})
	require.NoError(t, err)
	_, err = repo.Create(ctx, leave.LeaveRequest{EmployeeID: "a", StartDate: day(20), EndDate: day(21), Status: leave.LeaveRequestStatusPending})
	require.NoError(t, err)

	from, to := day(6), day(10)
	requests, total, err := repo.List(ctx, leave.Query{Scope: access.Unrestricted(), OverlapStart: &from, OverlapEnd: &to})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, inside.ID, requests[0].ID)

	inside.Status = leave.LeaveRequestStatusApproved
	_, err = repo.UpdateDecision(ctx, inside)
	require.NoError(t, err)

	inside.Status = leave.LeaveRequestStatusRejected
	_, err = repo.UpdateDecision(ctx, inside)
	assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)

	assert.NoError(t, repo.Delete(ctx, inside.ID))
	assert.ErrorIs(t, repo.Delete(ctx, inside.ID), leave.ErrLeaveRequestNotFound)
}

func TestTeamAssignmentOneActivePerLaborer(t *testing.T) {
	ctx := context.Background()
	repo := NewTeamAssignmentRepository(NewStore())

	first, err := repo.Create(ctx, team.TeamAssignment{SupervisorID: "s", LaborerID: "l", TeamName: "Alpha", AssignedDate: day(2), IsActive: true})
	require.NoError(t, err)

	_, err = repo.Create(ctx, team.TeamAssignment{SupervisorID: "s", LaborerID: "l", TeamName: "Beta", AssignedDate: day(3), IsActive: true})
	assert.True(t, database.IsUniqueViolation(err))

	first.IsActive = false
	_, err = repo.Update(ctx, first)
	require.NoError(t, err)

	second, err := repo.Create(ctx, team.TeamAssignment{SupervisorID: "s", LaborerID: "l", TeamName: "Beta", AssignedDate: day(1), IsActive: true})
	require.NoError(t, err)

	first.IsActive = true
	_, err = repo.Update(ctx, first)
	assert.True(t, database.IsUniqueViolation(err))

	all, err := repo.List(ctx, team.MemberFilter{IncludeInactive: true})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID, "ordered by assigned date")

	active, err := repo.GetActiveByLaborer(ctx, "l")
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, second.ID, active.ID)
}

func TestUserDirectReportsAndRoleCounts(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(NewStore())
	sup := "sup"

	_, err := repo.Create(ctx, user.User{ID: sup, Email: "s@example.com", Role: user.RoleSupervisor, IsActive: true})
	require.NoError(t, err)
	_, err = repo.Create(ctx, user.User{ID: "l2", Email: "l2@example.com", Role: user.RoleLaborer, SupervisorID: &sup, IsActive: true})
	require.NoError(t, err)
	_, err = repo.Create(ctx, user.User{ID: "l1", Email: "l1@example.com", Role: user.RoleLaborer, SupervisorID: &sup})
	require.NoError(t, err)

	_, err = repo.Create(ctx, user.User{Email: "s@example.com", Role: user.RoleLaborer})
	assert.ErrorIs(t, err, user.ErrUserEmailExists)

	ids, err := repo.ListDirectReportIDs(ctx, sup)
	require.NoError(t, err)
	assert.Equal(t, []string{"l1", "l2"}, ids)

	counts, err := repo.CountActiveByRole(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, counts[user.RoleSupervisor])
	assert.EqualValues(t, 1, counts[user.RoleLaborer])
}
