package report

import (
	"context"

	"github.com/sitecrew/workforce-backend/internal/domain/user"
)

// ReportService builds role-scoped summaries. Laborers are denied every report.
type ReportService interface {
	// GetDailyAttendanceSummary summarizes one calendar day
	GetDailyAttendanceSummary(ctx context.Context, requester user.Requester, req DailySummaryRequest) (DailySummary, error)

	// GetAttendanceRangeSummary buckets attendance by date over a range
	GetAttendanceRangeSummary(ctx context.Context, requester user.Requester, req RangeRequest) (RangeSummary, error)

	// GetLeaveRangeSummary tallies leave requests overlapping a range
	GetLeaveRangeSummary(ctx context.Context, requester user.Requester, req LeaveSummaryRequest) (LeaveSummary, error)

	// GetTeamPerformance groups active team members by team and site
	GetTeamPerformance(ctx context.Context, requester user.Requester, req TeamPerformanceRequest) (TeamPerformanceReport, error)
}
