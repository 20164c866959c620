package user

type Permission string

const (
	// Attendance
	PermissionAttendanceViewOwn  Permission = "attendance.view_own"
	PermissionAttendanceCheckIn  Permission = "attendance.check_in"
	PermissionAttendanceViewTeam Permission = "attendance.view_team"
	PermissionAttendanceViewAll  Permission = "attendance.view_all"

	// Leave
	PermissionLeaveViewOwn Permission = "leave.view_own"
	PermissionLeaveCreate  Permission = "leave.create"
	PermissionLeaveApprove Permission = "leave.approve"

	// Teams
	PermissionTeamView   Permission = "team.view"
	PermissionTeamManage Permission = "team.manage"

	// Reports
	PermissionReportsView Permission = "reports.view"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionAttendanceViewOwn,
		PermissionAttendanceCheckIn,
		PermissionAttendanceViewTeam,
		PermissionAttendanceViewAll,
		PermissionLeaveViewOwn,
		PermissionLeaveApprove,
		PermissionTeamView,
		PermissionTeamManage,
		PermissionReportsView,
	},
	RoleSupervisor: {
		PermissionAttendanceViewOwn,
		PermissionAttendanceCheckIn,
		PermissionAttendanceViewTeam,
		PermissionLeaveViewOwn,
		PermissionLeaveCreate,
		PermissionLeaveApprove,
		PermissionTeamView,
		PermissionReportsView,
	},
	RoleLaborer: {
		PermissionAttendanceViewOwn,
		PermissionAttendanceCheckIn,
		PermissionLeaveViewOwn,
		PermissionLeaveCreate,
		PermissionTeamView,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
