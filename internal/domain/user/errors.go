package user

import "errors"

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrUserEmailExists       = errors.New("email already registered")
	ErrInvalidEmailFormat    = errors.New("invalid email format")
	ErrInvalidPasswordLength = errors.New("password must be at least 8 characters")
	ErrInvalidRole           = errors.New("role must be admin, supervisor or laborer")
	ErrInvalidSupervisor     = errors.New("supervisor must be an active supervisor or admin")
)
