package dashboard

import "github.com/sitecrew/workforce-backend/internal/domain/user"

// Stats is one of LaborerStats, SupervisorStats or AdminStats, picked by the
// requester's role.
type Stats interface {
	StatsRole() user.Role
}

type LaborerStats struct {
	Role                 user.Role `json:"role"`
	TodayCheckedIn       bool      `json:"today_checked_in"`
	TodayCheckedOut      bool      `json:"today_checked_out"`
	PendingLeaveRequests int64     `json:"pending_leave_requests"`
	MonthAttendanceDays  int64     `json:"month_attendance_days"`
}

type SupervisorStats struct {
	Role                  user.Role `json:"role"`
	TeamMembers           int       `json:"team_members"`
	TodayTeamAttendance   int64     `json:"today_team_attendance"`
	PendingLeaveApprovals int64     `json:"pending_leave_approvals"`
	TeamAttendanceRate    float64   `json:"team_attendance_rate"`
}

type AdminStats struct {
	Role                  user.Role `json:"role"`
	TotalUsers            int64     `json:"total_users"`
	TotalLaborers         int64     `json:"total_laborers"`
	TotalSupervisors      int64     `json:"total_supervisors"`
	TotalAdmins           int64     `json:"total_admins"`
	TodayAttendance       int64     `json:"today_attendance"`
	OverallAttendanceRate float64   `json:"overall_attendance_rate"`
	PendingLeaveRequests  int64     `json:"pending_leave_requests"`
}

func (LaborerStats) StatsRole() user.Role    { return user.RoleLaborer }
func (SupervisorStats) StatsRole() user.Role { return user.RoleSupervisor }
func (AdminStats) StatsRole() user.Role      { return user.RoleAdmin }
