package attendance

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/sitecrew/workforce-backend/internal/domain/access"
	"github.com/sitecrew/workforce-backend/internal/domain/attendance"
	"github.com/sitecrew/workforce-backend/internal/domain/user"
	"github.com/sitecrew/workforce-backend/internal/pkg/clock"
	"github.com/sitecrew/workforce-backend/internal/pkg/validator"
	"github.com/sitecrew/workforce-backend/internal/repository/memory"
	accessService "github.com/sitecrew/workforce-backend/internal/service/access"
	"github.com/sitecrew/workforce-backend/internal/service/hierarchy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	admin    = user.Requester{ID: "adm", Role: user.RoleAdmin}
	sup      = user.Requester{ID: "sup", Role: user.RoleSupervisor}
	worker   = user.Requester{ID: "lab-1", Role: user.RoleLaborer}
	outsider = user.Requester{ID: "lab-2", Role: user.RoleLaborer}
)

// movableClock lets a test advance time between calls.
type movableClock struct {
	mu sync.Mutex
	at time.Time
}

func (c *movableClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.at.UTC()
}

func (c *movableClock) Today() time.Time { return clock.DateOf(c.Now()) }

func (c *movableClock) set(t time.Time) {
	c.mu.Lock()
	c.at = t
	c.mu.Unlock()
}

type fixture struct {
	svc   attendance.AttendanceService
	repo  attendance.AttendanceRepository
	clock *movableClock
}

func setup(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	supID := sup.ID

	for _, u := range []user.User{
		{ID: admin.ID, Email: "adm@example.com", Role: user.RoleAdmin, IsActive: true},
		{ID: sup.ID, Email: "sup@example.com", Role: user.RoleSupervisor, IsActive: true},
		{ID: worker.ID, Email: "lab1@example.com", Role: user.RoleLaborer, SupervisorID: &supID, IsActive: true},
		{ID: outsider.ID, Email: "lab2@example.com", Role: user.RoleLaborer, IsActive: true},
	} {
		_, err := users.Create(ctx, u)
		require.NoError(t, err)
	}

	repo := memory.NewAttendanceRepository(store)
	resolver := accessService.NewResolver(hierarchy.NewResolver(users, memory.NewTeamAssignmentRepository(store)))
	clk := &movableClock{at: time.Date(2024, 5, 6, 9, 0, 0, 0, time.UTC)}

	return fixture{
		svc:   NewAttendanceService(repo, resolver, clk),
		repo:  repo,
		clock: clk,
	}
}

func TestCheckInTwiceSameDay(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	first, err := f.svc.CheckIn(ctx, worker, attendance.CheckInRequest{})
	require.NoError(t, err)
	assert.Equal(t, "2024-05-06", first.Date)

	f.clock.set(time.Date(2024, 5, 6, 13, 0, 0, 0, time.UTC))
	_, err = f.svc.CheckIn(ctx, worker, attendance.CheckInRequest{})
	assert.ErrorIs(t, err, attendance.ErrDuplicateCheckIn)

	_, total, err := f.repo.List(ctx, attendance.Query{Scope: access.Unrestricted()})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	f.clock.set(time.Date(2024, 5, 7, 9, 0, 0, 0, time.UTC))
	_, err = f.svc.CheckIn(ctx, worker, attendance.CheckInRequest{})
	assert.NoError(t, err, "next day is a new record")
}

func TestConcurrentCheckInCreatesOneRecord(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	results := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.CheckIn(ctx, worker, attendance.CheckInRequest{})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, attendance.ErrDuplicateCheckIn)
	}
	assert.Equal(t, 1, succeeded)
}

func TestCheckInCheckOutRoundTrip(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	in, err := f.svc.CheckIn(ctx, worker, attendance.CheckInRequest{})
	require.NoError(t, err)

	breakMinutes := 30
	_, err = f.svc.UpdateAttendance(ctx, worker, attendance.UpdateAttendanceRequest{ID: in.ID, BreakMinutes: &breakMinutes})
	require.NoError(t, err)

	f.clock.set(time.Date(2024, 5, 6, 17, 0, 0, 0, time.UTC))
	out, err := f.svc.CheckOut(ctx, worker, in.ID)
	require.NoError(t, err)
	require.NotNil(t, out.CheckOut)
	require.NotNil(t, out.HoursWorked)
	assert.Equal(t, 7.5, *out.HoursWorked)

	stored, err := f.repo.GetByID(ctx, in.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.CheckOut)
	assert.Equal(t, stored.CheckOut.Sub(stored.CheckIn).Hours()-0.5, stored.HoursWorked())

	_, err = f.svc.CheckOut(ctx, worker, in.ID)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestCheckOutGuards(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	in, err := f.svc.CheckIn(ctx, worker, attendance.CheckInRequest{})
	require.NoError(t, err)

	_, err = f.svc.CheckOut(ctx, admin, in.ID)
	assert.ErrorIs(t, err, access.ErrPermissionDenied, "only the owner checks out")

	_, err = f.svc.CheckOut(ctx, worker, "missing")
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func TestConcurrentCheckOutSucceedsOnce(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	in, err := f.svc.CheckIn(ctx, worker, attendance.CheckInRequest{})
	require.NoError(t, err)
	f.clock.set(time.Date(2024, 5, 6, 17, 0, 0, 0, time.UTC))

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.CheckOut(ctx, worker, in.ID)
			errs <- err
		}()
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
}

func TestListRejectsOverflowingPage(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.CheckIn(ctx, worker, attendance.CheckInRequest{})
	require.NoError(t, err)

	var verrs validator.ValidationErrors
	require.NotPanics(t, func() {
		_, err = f.svc.ListAttendance(ctx, admin, attendance.AttendanceFilter{Page: 576460752303423489, Limit: 20})
	})
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "page")
}

func TestUpdateAttendancePermissionsAndValidation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	in, err := f.svc.CheckIn(ctx, worker, attendance.CheckInRequest{})
	require.NoError(t, err)

	notes := "forklift training"
	_, err = f.svc.UpdateAttendance(ctx, outsider, attendance.UpdateAttendanceRequest{ID: in.ID, Notes: &notes})
	assert.ErrorIs(t, err, attendance.ErrNotOwner)

	updated, err := f.svc.UpdateAttendance(ctx, admin, attendance.UpdateAttendanceRequest{ID: in.ID, Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, &notes, updated.Notes)

	negative := -5
	_, err = f.svc.UpdateAttendance(ctx, worker, attendance.UpdateAttendanceRequest{ID: in.ID, BreakMinutes: &negative})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	early := "2024-05-06T08:00:00Z"
	_, err = f.svc.UpdateAttendance(ctx, admin, attendance.UpdateAttendanceRequest{ID: in.ID, CheckOut: &early})
	assert.ErrorAs(t, err, &verrs)
}

func TestListAndGetAreScoped(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	mine, err := f.svc.CheckIn(ctx, worker, attendance.CheckInRequest{})
	require.NoError(t, err)
	other, err := f.svc.CheckIn(ctx, outsider, attendance.CheckInRequest{})
	require.NoError(t, err)
	_, err = f.svc.CheckIn(ctx, sup, attendance.CheckInRequest{})
	require.NoError(t, err)

	list, err := f.svc.ListAttendance(ctx, worker, attendance.AttendanceFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, list.TotalCount)

	list, err = f.svc.ListAttendance(ctx, sup, attendance.AttendanceFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, list.TotalCount, "supervisor sees self and team")

	list, err = f.svc.ListAttendance(ctx, admin, attendance.AttendanceFilter{Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, list.TotalCount)
	assert.Len(t, list.Data, 2)
	assert.Equal(t, 2, list.TotalPages)

	target := outsider.ID
	_, err = f.svc.ListAttendance(ctx, sup, attendance.AttendanceFilter{EmployeeID: &target})
	assert.ErrorIs(t, err, access.ErrPermissionDenied)

	_, err = f.svc.GetAttendance(ctx, sup, mine.ID)
	assert.NoError(t, err)
	_, err = f.svc.GetAttendance(ctx, sup, other.ID)
	assert.ErrorIs(t, err, access.ErrPermissionDenied)
	_, err = f.svc.GetAttendance(ctx, worker, other.ID)
	assert.ErrorIs(t, err, access.ErrPermissionDenied)
}
