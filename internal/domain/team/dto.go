package team

import (
	"time"

	"github.com/sitecrew/workforce-backend/internal/pkg/validator"
)

type AssignTeamRequest struct {
	LaborerID    string  `json:"laborer_id"`
	TeamName     string  `json:"team_name"`
	SiteLocation *string `json:"site_location,omitempty"`
}

func (r *AssignTeamRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LaborerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "laborer_id",
			Message: "laborer_id is required",
		})
	}

	validateTeamName(&errs, &r.TeamName)
	r.SiteLocation = validator.OptionalString(r.SiteLocation)
	validateSiteLocation(&errs, r.SiteLocation)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateTeamAssignmentRequest edits an assignment. Nil fields are left as is.
type UpdateTeamAssignmentRequest struct {
	ID           string  `json:"-"`
	TeamName     *string `json:"team_name,omitempty"`
	SiteLocation *string `json:"site_location,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"`
}

func (r *UpdateTeamAssignmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if r.TeamName != nil {
		validateTeamName(&errs, r.TeamName)
	}
	validateSiteLocation(&errs, r.SiteLocation)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateTeamName(errs *validator.ValidationErrors, name *string) {
	if validator.IsEmpty(*name) {
		*errs = append(*errs, validator.ValidationError{
			Field:   "team_name",
			Message: "team_name is required",
		})
	} else if len(*name) > 100 {
		*errs = append(*errs, validator.ValidationError{
			Field:   "team_name",
			Message: "team_name must not exceed 100 characters",
		})
	}
}

func validateSiteLocation(errs *validator.ValidationErrors, site *string) {
	if site != nil && len(*site) > 255 {
		*errs = append(*errs, validator.ValidationError{
			Field:   "site_location",
			Message: "site_location must not exceed 255 characters",
		})
	}
}

type TeamAssignmentFilter struct {
	SupervisorID *string `json:"supervisor_id,omitempty"`
	TeamName     *string `json:"team_name,omitempty"`
	SiteLocation *string `json:"site_location,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"` // defaults to true
}

type TeamAssignmentResponse struct {
	ID           string  `json:"id"`
	SupervisorID string  `json:"supervisor_id"`
	LaborerID    string  `json:"laborer_id"`
	TeamName     string  `json:"team_name"`
	SiteLocation *string `json:"site_location"`
	AssignedDate string  `json:"assigned_date"`
	IsActive     bool    `json:"is_active"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

type TeamStatsResponse struct {
	SupervisorID      string   `json:"supervisor_id"`
	ActiveAssignments int      `json:"active_assignments"`
	TotalAssignments  int      `json:"total_assignments"`
	Teams             []string `json:"teams"`
	Sites             []string `json:"sites"`
}

func NewTeamAssignmentResponse(a TeamAssignment) TeamAssignmentResponse {
	return TeamAssignmentResponse{
		ID:           a.ID,
		SupervisorID: a.SupervisorID,
		LaborerID:    a.LaborerID,
		TeamName:     a.TeamName,
		SiteLocation: a.SiteLocation,
		AssignedDate: a.AssignedDate.Format(validator.DateLayout),
		IsActive:     a.IsActive,
		CreatedAt:    a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    a.UpdatedAt.Format(time.RFC3339),
	}
}
