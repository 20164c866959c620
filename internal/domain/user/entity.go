package user

import "time"

type Role string

const (
	RoleAdmin      Role = "admin"      // Organization-wide access
	RoleSupervisor Role = "supervisor" // Leads direct reports, approves their leave
	RoleLaborer    Role = "laborer"    // Field worker, sees own records only
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleSupervisor, RoleLaborer:
		return true
	}
	return false
}

type User struct {
	ID             string
	Email          string
	PasswordHash   *string
	FullName       *string
	EmployeeNumber *string
	Department     *string
	Role           Role
	SupervisorID   *string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsAdmin checks if user has organization-wide access
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsSupervisor checks if user leads a team
func (u *User) IsSupervisor() bool {
	return u.Role == RoleSupervisor
}

// IsLaborer checks if user is a field worker
func (u *User) IsLaborer() bool {
	return u.Role == RoleLaborer
}

// CanSupervise reports whether u may be referenced as someone's supervisor.
func (u *User) CanSupervise() bool {
	return u.Role == RoleSupervisor || u.Role == RoleAdmin
}

// Requester is the authenticated caller of a service operation.
type Requester struct {
	ID   string
	Role Role
}

func (r Requester) IsAdmin() bool      { return r.Role == RoleAdmin }
func (r Requester) IsSupervisor() bool { return r.Role == RoleSupervisor }
func (r Requester) IsLaborer() bool    { return r.Role == RoleLaborer }
