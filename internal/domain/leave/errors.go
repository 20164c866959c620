package leave

import "errors"

var (
	ErrLeaveRequestNotFound         = errors.New("leave request not found")
	ErrLeaveRequestAlreadyProcessed = errors.New("leave request already processed")
	ErrCreateNotAllowed             = errors.New("only laborers and supervisors can create leave requests")
	ErrDecideNotAllowed             = errors.New("only the assigned supervisor or an admin can decide this leave request")
	ErrOwnRequestDecision           = errors.New("you cannot decide your own leave request")
	ErrDeleteNotAllowed             = errors.New("only the requesting employee or an admin can delete this leave request")
	ErrDeleteAfterDecision          = errors.New("decided leave requests can only be deleted by an admin")
	ErrInvalidDecision              = errors.New("decision must be approved or rejected")
)
