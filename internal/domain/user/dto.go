package user

import (
	"github.com/sitecrew/workforce-backend/internal/pkg/validator"
)

// UserResponse represents user data in API responses
type UserResponse struct {
	ID             string  `json:"id"`
	Email          string  `json:"email"`
	FullName       *string `json:"full_name,omitempty"`
	EmployeeNumber *string `json:"employee_number,omitempty"`
	Department     *string `json:"department,omitempty"`
	Role           string  `json:"role"`
	SupervisorID   *string `json:"supervisor_id,omitempty"`
	IsActive       bool    `json:"is_active"`
}

func NewUserResponse(u User) UserResponse {
	return UserResponse{
		ID:             u.ID,
		Email:          u.Email,
		FullName:       u.FullName,
		EmployeeNumber: u.EmployeeNumber,
		Department:     u.Department,
		Role:           string(u.Role),
		SupervisorID:   u.SupervisorID,
		IsActive:       u.IsActive,
	}
}

// CreateUserRequest represents request to create a new user
type CreateUserRequest struct {
	Email          string  `json:"email"`
	Password       string  `json:"password"`
	FullName       *string `json:"full_name,omitempty"`
	EmployeeNumber *string `json:"employee_number,omitempty"`
	Department     *string `json:"department,omitempty"`
	Role           string  `json:"role"`
	SupervisorID   *string `json:"supervisor_id,omitempty"`
}

func (r *CreateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: ErrInvalidEmailFormat.Error(),
		})
	}

	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	} else if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: ErrInvalidPasswordLength.Error(),
		})
	}

	if !Role(r.Role).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: ErrInvalidRole.Error(),
		})
	}

	if r.SupervisorID != nil && Role(r.Role) == RoleAdmin {
		errs = append(errs, validator.ValidationError{
			Field:   "supervisor_id",
			Message: "admins do not report to a supervisor",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
