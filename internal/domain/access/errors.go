package access

import "errors"

var (
	ErrPermissionDenied   = errors.New("not enough permissions")
	ErrReportsNotAllowed  = errors.New("laborers cannot access summaries or reports")
	ErrNotYourRecord      = errors.New("laborers can only access their own records")
	ErrNotDirectReport    = errors.New("employee is not one of your direct reports")
	ErrOtherSupervisor    = errors.New("supervisors can only query their own team")
	ErrUnknownRole        = errors.New("unknown requester role")
	ErrMissingRequesterID = errors.New("requester id is missing")
)
