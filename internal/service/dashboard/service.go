package dashboard

import (
	"context"
	"fmt"

	"github.com/sitecrew/workforce-backend/internal/domain/access"
	"github.com/sitecrew/workforce-backend/internal/domain/attendance"
	"github.com/sitecrew/workforce-backend/internal/domain/dashboard"
	"github.com/sitecrew/workforce-backend/internal/domain/leave"
	"github.com/sitecrew/workforce-backend/internal/domain/user"
	"github.com/sitecrew/workforce-backend/internal/pkg/clock"
	"github.com/sitecrew/workforce-backend/internal/pkg/worktime"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	leaveRepo      leave.LeaveRequestRepository
	userRepo       user.UserRepository
	clock          clock.Clock
}

func NewDashboardService(
	attendanceRepo attendance.AttendanceRepository,
	leaveRepo leave.LeaveRequestRepository,
	userRepo user.UserRepository,
	clk clock.Clock,
) dashboard.DashboardService {
	return &DashboardServiceImpl{
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
		userRepo:       userRepo,
		clock:          clk,
	}
}

// GetDashboardStats implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetDashboardStats(ctx context.Context, requester user.Requester) (dashboard.Stats, error) {
	if requester.ID == "" {
		return nil, fmt.Errorf("%w: %w", access.ErrPermissionDenied, access.ErrMissingRequesterID)
	}

	switch requester.Role {
	case user.RoleLaborer:
		return s.laborerStats(ctx, requester.ID)
	case user.RoleSupervisor:
		return s.supervisorStats(ctx, requester.ID)
	case user.RoleAdmin:
		return s.adminStats(ctx)
	default:
		return nil, fmt.Errorf("%w: %w", access.ErrPermissionDenied, access.ErrUnknownRole)
	}
}

// countAttendance returns how many records match without loading them all.
func (s *DashboardServiceImpl) countAttendance(ctx context.Context, query attendance.Query) (int64, error) {
	query.Limit = 1
	_, total, err := s.attendanceRepo.List(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to count attendance: %w", err)
	}
	return total, nil
}

func (s *DashboardServiceImpl) countPendingLeave(ctx context.Context, query leave.Query) (int64, error) {
	pending := leave.LeaveRequestStatusPending
	query.Status = &pending
	query.Limit = 1
	_, total, err := s.leaveRepo.List(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending leave requests: %w", err)
	}
	return total, nil
}

func (s *DashboardServiceImpl) laborerStats(ctx context.Context, userID string) (dashboard.LaborerStats, error) {
	today := s.clock.Today()
	monthStart := clock.MonthStart(today)
	self := access.RestrictedTo(userID)
	stats := dashboard.LaborerStats{Role: user.RoleLaborer}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		record, err := s.attendanceRepo.GetByEmployeeAndDate(gCtx, userID, today)
		if err != nil {
			return fmt.Errorf("failed to load today's attendance: %w", err)
		}
		if record != nil {
			stats.TodayCheckedIn = true
			stats.TodayCheckedOut = record.IsCheckedOut()
		}
		return nil
	})

	g.Go(func() error {
		count, err := s.countPendingLeave(gCtx, leave.Query{Scope: self})
		stats.PendingLeaveRequests = count
		return err
	})

	g.Go(func() error {
		count, err := s.countAttendance(gCtx, attendance.Query{Scope: self, StartDate: &monthStart, EndDate: &today})
		stats.MonthAttendanceDays = count
		return err
	})

	if err := g.Wait(); err != nil {
		return dashboard.LaborerStats{}, err
	}
	return stats, nil
}

func (s *DashboardServiceImpl) supervisorStats(ctx context.Context, userID string) (dashboard.SupervisorStats, error) {
	today := s.clock.Today()
	stats := dashboard.SupervisorStats{Role: user.RoleSupervisor}

	reports, err := s.userRepo.ListDirectReportIDs(ctx, userID)
	if err != nil {
		return dashboard.SupervisorStats{}, fmt.Errorf("failed to load direct reports: %w", err)
	}
	stats.TeamMembers = len(reports)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		count, err := s.countAttendance(gCtx, attendance.Query{
			Scope:     access.RestrictedTo(reports...),
			StartDate: &today,
			EndDate:   &today,
		})
		stats.TodayTeamAttendance = count
		return err
	})

	g.Go(func() error {
		count, err := s.countPendingLeave(gCtx, leave.Query{Scope: access.Unrestricted(), SupervisorID: &userID})
		stats.PendingLeaveApprovals = count
		return err
	})

	if err := g.Wait(); err != nil {
		return dashboard.SupervisorStats{}, err
	}

	stats.TeamAttendanceRate = worktime.Round2(worktime.Rate(stats.TodayTeamAttendance, int64(stats.TeamMembers)))
	return stats, nil
}

func (s *DashboardServiceImpl) adminStats(ctx context.Context) (dashboard.AdminStats, error) {
	today := s.clock.Today()
	stats := dashboard.AdminStats{Role: user.RoleAdmin}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		counts, err := s.userRepo.CountActiveByRole(gCtx)
		if err != nil {
			return fmt.Errorf("failed to count users: %w", err)
		}
		stats.TotalLaborers = counts[user.RoleLaborer]
		stats.TotalSupervisors = counts[user.RoleSupervisor]
		stats.TotalAdmins = counts[user.RoleAdmin]
		stats.TotalUsers = stats.TotalLaborers + stats.TotalSupervisors + stats.TotalAdmins
		return nil
	})

	g.Go(func() error {
		count, err := s.countAttendance(gCtx, attendance.Query{
			Scope:     access.Unrestricted(),
			StartDate: &today,
			EndDate:   &today,
		})
		stats.TodayAttendance = count
		return err
	})

	g.Go(func() error {
		count, err := s.countPendingLeave(gCtx, leave.Query{Scope: access.Unrestricted()})
		stats.PendingLeaveRequests = count
		return err
	})

	if err := g.Wait(); err != nil {
		return dashboard.AdminStats{}, err
	}

	stats.OverallAttendanceRate = worktime.Round2(worktime.Rate(stats.TodayAttendance, stats.TotalLaborers))
	return stats, nil
}
