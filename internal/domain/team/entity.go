package team

import "time"

// NoSiteLabel buckets assignments without a site location in reports.
const NoSiteLabel = "No Site"

// TeamAssignment links a laborer to a supervisor's team.
type TeamAssignment struct {
	ID           string
	SupervisorID string
	LaborerID    string
	TeamName     string
	SiteLocation *string
	AssignedDate time.Time
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SiteLabel returns the site location, or NoSiteLabel when unset.
func (a *TeamAssignment) SiteLabel() string {
	if a.SiteLocation == nil || *a.SiteLocation == "" {
		return NoSiteLabel
	}
	return *a.SiteLocation
}

// ManagedBy reports whether userID is the assignment's supervisor.
func (a *TeamAssignment) ManagedBy(userID string) bool {
	return a.SupervisorID == userID
}
