package http

import (
	"net/http"

	"github.com/sitecrew/workforce-backend/internal/domain/report"
	"github.com/sitecrew/workforce-backend/internal/handler/http/response"
)

type ReportHandler interface {
	// Attendance summary over a date range
	GetAttendanceSummary(w http.ResponseWriter, r *http.Request)

	// Leave summary over a date range
	GetLeaveSummary(w http.ResponseWriter, r *http.Request)

	// Team performance grouped by team and site
	GetTeamPerformance(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// GetAttendanceSummary handles GET /reports/attendance-summary
func (h *reportHandlerImpl) GetAttendanceSummary(w http.ResponseWriter, r *http.Request) {
	req, ok := requester(w, r)
	if !ok {
		return
	}

	rangeReq := report.RangeRequest{
		StartDate:    r.URL.Query().Get("start_date"),
		EndDate:      r.URL.Query().Get("end_date"),
		EmployeeID:   queryString(r, "employee_id"),
		SupervisorID: queryString(r, "supervisor_id"),
		SiteLocation: queryString(r, "site_location"),
		TeamName:     queryString(r, "team_name"),
	}

	result, err := h.reportService.GetAttendanceRangeSummary(r.Context(), req, rangeReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetLeaveSummary handles GET /reports/leave-summary
func (h *reportHandlerImpl) GetLeaveSummary(w http.ResponseWriter, r *http.Request) {
	req, ok := requester(w, r)
	if !ok {
		return
	}

	leaveReq := report.LeaveSummaryRequest{
		StartDate:    r.URL.Query().Get("start_date"),
		EndDate:      r.URL.Query().Get("end_date"),
		Status:       queryString(r, "status"),
		SupervisorID: queryString(r, "supervisor_id"),
		EmployeeID:   queryString(r, "employee_id"),
	}

	result, err := h.reportService.GetLeaveRangeSummary(r.Context(), req, leaveReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetTeamPerformance handles GET /reports/team-performance
func (h *reportHandlerImpl) GetTeamPerformance(w http.ResponseWriter, r *http.Request) {
	req, ok := requester(w, r)
	if !ok {
		return
	}

	perfReq := report.TeamPerformanceRequest{
		StartDate:    r.URL.Query().Get("start_date"),
		EndDate:      r.URL.Query().Get("end_date"),
		SupervisorID: queryString(r, "supervisor_id"),
		TeamName:     queryString(r, "team_name"),
		SiteLocation: queryString(r, "site_location"),
	}

	result, err := h.reportService.GetTeamPerformance(r.Context(), req, perfReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
