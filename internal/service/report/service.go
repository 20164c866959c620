package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sitecrew/workforce-backend/internal/domain/access"
	"github.com/sitecrew/workforce-backend/internal/domain/attendance"
	"github.com/sitecrew/workforce-backend/internal/domain/leave"
	"github.com/sitecrew/workforce-backend/internal/domain/report"
	"github.com/sitecrew/workforce-backend/internal/domain/team"
	"github.com/sitecrew/workforce-backend/internal/domain/user"
	"github.com/sitecrew/workforce-backend/internal/pkg/validator"
	"github.com/sitecrew/workforce-backend/internal/pkg/worktime"
	"github.com/sitecrew/workforce-backend/internal/service/hierarchy"
)

type ReportServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	leaveRepo      leave.LeaveRequestRepository
	userRepo       user.UserRepository
	resolver       access.Resolver
	hierarchy      *hierarchy.Resolver
}

func NewReportService(
	attendanceRepo attendance.AttendanceRepository,
	leaveRepo leave.LeaveRequestRepository,
	userRepo user.UserRepository,
	resolver access.Resolver,
	hierarchyResolver *hierarchy.Resolver,
) report.ReportService {
	return &ReportServiceImpl{
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
		userRepo:       userRepo,
		resolver:       resolver,
		hierarchy:      hierarchyResolver,
	}
}

// scopeFor resolves the report scope and, when a team or site is named,
// narrows it to the laborers actively assigned there.
func (s *ReportServiceImpl) scopeFor(ctx context.Context, requester user.Requester, employeeID, supervisorID, teamName, siteLocation *string) (access.Scope, error) {
	scope, err := s.resolver.ReportScope(ctx, requester, access.Target{EmployeeID: employeeID, SupervisorID: supervisorID})
	if err != nil {
		return scope, err
	}
	if teamName == nil && siteLocation == nil {
		return scope, nil
	}

	// membership is taken across all supervisors, the scope does the rest
	members, err := s.hierarchy.TeamMemberIDs(ctx, team.MemberFilter{
		TeamName:     teamName,
		SiteLocation: siteLocation,
	})
	if err != nil {
		return access.Scope{}, err
	}
	return scope.Narrow(members), nil
}

func (s *ReportServiceImpl) attendanceBetween(ctx context.Context, scope access.Scope, start, end time.Time) ([]attendance.Attendance, error) {
	records, _, err := s.attendanceRepo.List(ctx, attendance.Query{Scope: scope, StartDate: &start, EndDate: &end})
	if err != nil {
		return nil, fmt.Errorf("failed to load attendance: %w", err)
	}
	return records, nil
}

// GetDailyAttendanceSummary implements report.ReportService.
func (s *ReportServiceImpl) GetDailyAttendanceSummary(ctx context.Context, requester user.Requester, req report.DailySummaryRequest) (report.DailySummary, error) {
	invalid := req.Validate()
	scope, err := s.scopeFor(ctx, requester, req.EmployeeID, req.SupervisorID, req.TeamName, req.SiteLocation)
	if err != nil {
		return report.DailySummary{}, err
	}
	if invalid != nil {
		return report.DailySummary{}, invalid
	}

	day := req.Day()
	records, err := s.attendanceBetween(ctx, scope, day, day)
	if err != nil {
		return report.DailySummary{}, err
	}

	employees := make(map[string]struct{}, len(records))
	checkedOut := 0
	var hours float64
	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		employees[r.EmployeeID] = struct{}{}
		if r.IsCheckedOut() {
			checkedOut++
			hours += r.HoursWorked()
		}
		responses = append(responses, attendance.NewAttendanceResponse(r))
	}

	total := len(employees)
	return report.DailySummary{
		Date:                    day.Format(validator.DateLayout),
		TotalEmployees:          total,
		CheckedOut:              checkedOut,
		StillWorking:            total - checkedOut,
		TotalHoursWorked:        worktime.Round2(hours),
		AverageHoursPerEmployee: worktime.Round2(worktime.Average(hours, total)),
		Records:                 responses,
	}, nil
}

type dayBucket struct {
	employees  map[string]struct{}
	checkedOut int
	hours      float64
}

// GetAttendanceRangeSummary implements report.ReportService.
func (s *ReportServiceImpl) GetAttendanceRangeSummary(ctx context.Context, requester user.Requester, req report.RangeRequest) (report.RangeSummary, error) {
	invalid := req.Validate()
	scope, err := s.scopeFor(ctx, requester, req.EmployeeID, req.SupervisorID, req.TeamName, req.SiteLocation)
	if err != nil {
		return report.RangeSummary{}, err
	}
	if invalid != nil {
		return report.RangeSummary{}, invalid
	}

	start, end := req.Period()
	records, err := s.attendanceBetween(ctx, scope, start, end)
	if err != nil {
		return report.RangeSummary{}, err
	}

	buckets := make(map[time.Time]*dayBucket)
	unique := make(map[string]struct{})
	var totalHours float64
	for _, r := range records {
		b, ok := buckets[r.Date]
		if !ok {
			b = &dayBucket{employees: make(map[string]struct{})}
			buckets[r.Date] = b
		}
		b.employees[r.EmployeeID] = struct{}{}
		unique[r.EmployeeID] = struct{}{}
		if r.IsCheckedOut() {
			h := r.HoursWorked()
			b.checkedOut++
			b.hours += h
			totalHours += h
		}
	}

	dates := make([]time.Time, 0, len(buckets))
	for d := range buckets {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	breakdown := make([]report.DailyBreakdown, 0, len(dates))
	for _, d := range dates {
		b := buckets[d]
		breakdown = append(breakdown, report.DailyBreakdown{
			Date:                    d.Format(validator.DateLayout),
			EmployeesPresent:        len(b.employees),
			EmployeesCheckedOut:     b.checkedOut,
			TotalHoursWorked:        worktime.Round2(b.hours),
			AverageHoursPerEmployee: worktime.Round2(worktime.Average(b.hours, len(b.employees))),
		})
	}

	return report.RangeSummary{
		Period: report.Period{
			StartDate: start.Format(validator.DateLayout),
			EndDate:   end.Format(validator.DateLayout),
		},
		Filters: report.RangeFilters{
			EmployeeID:   req.EmployeeID,
			SupervisorID: req.SupervisorID,
			SiteLocation: req.SiteLocation,
			TeamName:     req.TeamName,
		},
		Summary: report.RangeTotals{
			TotalAttendanceRecords: len(records),
			UniqueEmployees:        len(unique),
			TotalHoursWorked:       worktime.Round2(totalHours),
			AverageDailyAttendance: worktime.Round2(worktime.Average(float64(len(records)), len(dates))),
		},
		DailyBreakdown: breakdown,
	}, nil
}

// GetLeaveRangeSummary implements report.ReportService.
func (s *ReportServiceImpl) GetLeaveRangeSummary(ctx context.Context, requester user.Requester, req report.LeaveSummaryRequest) (report.LeaveSummary, error) {
	invalid := req.Validate()
	scope, err := s.scopeFor(ctx, requester, req.EmployeeID, req.SupervisorID, nil, nil)
	if err != nil {
		return report.LeaveSummary{}, err
	}
	if invalid != nil {
		return report.LeaveSummary{}, invalid
	}

	start, end := req.Period()
	query := leave.Query{Scope: scope, OverlapStart: &start, OverlapEnd: &end}
	if req.Status != nil {
		status := leave.LeaveRequestStatus(*req.Status)
		query.Status = &status
	}

	requests, _, err := s.leaveRepo.List(ctx, query)
	if err != nil {
		return report.LeaveSummary{}, fmt.Errorf("failed to load leave requests: %w", err)
	}

	totals := report.LeaveTotals{
		TotalRequests:      len(requests),
		StatusBreakdown:    make(map[string]int),
		LeaveTypeBreakdown: make(map[string]int),
	}
	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		totals.StatusBreakdown[string(r.Status)]++
		totals.LeaveTypeBreakdown[r.LeaveType]++
		totals.ApprovedLeaveDays += r.DaysConsumed()
		responses = append(responses, leave.NewLeaveRequestResponse(r))
	}

	return report.LeaveSummary{
		Period: report.Period{
			StartDate: start.Format(validator.DateLayout),
			EndDate:   end.Format(validator.DateLayout),
		},
		Filters: report.LeaveFilters{
			Status:       req.Status,
			SupervisorID: req.SupervisorID,
			EmployeeID:   req.EmployeeID,
		},
		Summary:  totals,
		Requests: responses,
	}, nil
}

type memberTotals struct {
	attendanceDays int
	hours          float64
	leaveDays      int
}

type teamAccumulator struct {
	out     report.TeamPerformance
	hours   float64
	members []report.MemberPerformance
}

// GetTeamPerformance implements report.ReportService.
func (s *ReportServiceImpl) GetTeamPerformance(ctx context.Context, requester user.Requester, req report.TeamPerformanceRequest) (report.TeamPerformanceReport, error) {
	invalid := req.Validate()

	supervisorFilter := req.SupervisorID
	if requester.IsSupervisor() && supervisorFilter == nil {
		supervisorFilter = &requester.ID
	}
	scope, err := s.resolver.ReportScope(ctx, requester, access.Target{SupervisorID: supervisorFilter})
	if err != nil {
		return report.TeamPerformanceReport{}, err
	}
	if invalid != nil {
		return report.TeamPerformanceReport{}, invalid
	}

	assignments, err := s.hierarchy.TeamMembers(ctx, team.MemberFilter{
		SupervisorID: supervisorFilter,
		TeamName:     req.TeamName,
		SiteLocation: req.SiteLocation,
	})
	if err != nil {
		return report.TeamPerformanceReport{}, err
	}

	inScope := assignments[:0:0]
	memberIDs := make([]string, 0, len(assignments))
	for _, a := range assignments {
		// Admins see every assignment of the named supervisor even if the
		// laborer has since moved to another supervisor.
		if !requester.IsAdmin() && !scope.Allows(a.LaborerID) {
			continue
		}
		inScope = append(inScope, a)
		memberIDs = append(memberIDs, a.LaborerID)
	}

	start, end := req.Period()
	totals, err := s.memberTotals(ctx, memberIDs, start, end)
	if err != nil {
		return report.TeamPerformanceReport{}, err
	}

	var order []string
	teams := make(map[string]*teamAccumulator)
	for _, a := range inScope {
		laborer, err := s.userRepo.GetByID(ctx, a.LaborerID)
		if err != nil {
			// assignment points at a removed user
			continue
		}

		key := a.TeamName + "\x00" + a.SiteLabel()
		acc, ok := teams[key]
		if !ok {
			acc = &teamAccumulator{out: report.TeamPerformance{
				TeamName:     a.TeamName,
				SiteLocation: a.SiteLabel(),
				SupervisorID: a.SupervisorID,
			}}
			teams[key] = acc
			order = append(order, key)
		}

		m := totals[a.LaborerID]
		acc.members = append(acc.members, report.MemberPerformance{
			EmployeeID:     laborer.ID,
			FullName:       deref(laborer.FullName),
			EmployeeNumber: deref(laborer.EmployeeNumber),
			AttendanceDays: m.attendanceDays,
			HoursWorked:    worktime.Round2(m.hours),
			LeaveDays:      m.leaveDays,
		})
		acc.out.TotalAttendanceDays += m.attendanceDays
		acc.out.TotalLeaveDays += m.leaveDays
		acc.hours += m.hours
	}

	result := report.TeamPerformanceReport{
		Period: report.Period{
			StartDate: start.Format(validator.DateLayout),
			EndDate:   end.Format(validator.DateLayout),
		},
		Teams: make([]report.TeamPerformance, 0, len(order)),
	}
	for _, key := range order {
		acc := teams[key]
		n := len(acc.members)
		acc.out.Members = acc.members
		acc.out.MemberCount = n
		acc.out.TotalHoursWorked = worktime.Round2(acc.hours)
		acc.out.AverageAttendancePerMember = worktime.Round2(worktime.Average(float64(acc.out.TotalAttendanceDays), n))
		acc.out.AverageHoursPerMember = worktime.Round2(worktime.Average(acc.hours, n))
		acc.out.AverageLeaveDaysPerMember = worktime.Round2(worktime.Average(float64(acc.out.TotalLeaveDays), n))
		result.Teams = append(result.Teams, acc.out)
	}
	return result, nil
}

// memberTotals loads attendance and approved leave for ids in two scans.
func (s *ReportServiceImpl) memberTotals(ctx context.Context, ids []string, start, end time.Time) (map[string]memberTotals, error) {
	totals := make(map[string]memberTotals, len(ids))
	if len(ids) == 0 {
		return totals, nil
	}
	scope := access.RestrictedTo(ids...)

	records, err := s.attendanceBetween(ctx, scope, start, end)
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		m := totals[r.EmployeeID]
		m.attendanceDays++
		m.hours += r.HoursWorked()
		totals[r.EmployeeID] = m
	}

	approved := leave.LeaveRequestStatusApproved
	requests, _, err := s.leaveRepo.List(ctx, leave.Query{
		Scope:        scope,
		Status:       &approved,
		OverlapStart: &start,
		OverlapEnd:   &end,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load leave requests: %w", err)
	}
	for _, r := range requests {
		m := totals[r.EmployeeID]
		m.leaveDays += r.DaysConsumed()
		totals[r.EmployeeID] = m
	}
	return totals, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
