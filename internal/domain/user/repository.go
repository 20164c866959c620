package user

import (
	"context"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	Create(ctx context.Context, newUser User) (User, error)

	// ListDirectReportIDs returns the ids of users whose supervisor_id is supervisorID.
	ListDirectReportIDs(ctx context.Context, supervisorID string) ([]string, error)

	// CountActiveByRole counts active users grouped by role.
	CountActiveByRole(ctx context.Context) (map[Role]int64, error)
}
