package team

import "errors"

var (
	ErrTeamAssignmentNotFound = errors.New("team assignment not found")
	ErrLaborerNotFound        = errors.New("laborer not found")

	// Business rule violations
	ErrNotALaborer            = errors.New("only laborers can be assigned to teams")
	ErrLaborerHasNoSupervisor = errors.New("laborer must have a supervisor before being assigned to a team")
	ErrLaborerAlreadyAssigned = errors.New("laborer already has an active team assignment")

	ErrAssignNotAllowed = errors.New("only admins can create team assignments")
	ErrManageNotAllowed = errors.New("only admins or the team's supervisor can modify this assignment")
	ErrStatsNotAllowed  = errors.New("you can only view statistics for your own teams")
)

// IsBusinessRuleViolation reports whether err breaks a team assignment rule.
func IsBusinessRuleViolation(err error) bool {
	return errors.Is(err, ErrNotALaborer) ||
		errors.Is(err, ErrLaborerHasNoSupervisor) ||
		errors.Is(err, ErrLaborerAlreadyAssigned)
}
