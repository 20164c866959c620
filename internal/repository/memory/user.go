package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/sitecrew/workforce-backend/internal/domain/user"
	"github.com/sitecrew/workforce-backend/internal/pkg/database"
)

type userRepository struct {
	s *Store
}

func NewUserRepository(s *Store) user.UserRepository {
	return &userRepository{s: s}
}

func (r *userRepository) Create(ctx context.Context, newUser user.User) (user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Email == newUser.Email {
			return user.User{}, fmt.Errorf("%w: %w", user.ErrUserEmailExists, database.ErrUniqueViolation)
		}
	}

	newUser.ID = r.s.newID(newUser.ID)
	newUser.CreatedAt = r.s.timestamp()
	newUser.UpdatedAt = newUser.CreatedAt
	r.s.users[newUser.ID] = newUser
	return newUser, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *userRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (r *userRepository) ListDirectReportIDs(ctx context.Context, supervisorID string) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ids := []string{}
	for _, u := range r.s.users {
		if u.SupervisorID != nil && *u.SupervisorID == supervisorID {
			ids = append(ids, u.ID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *userRepository) CountActiveByRole(ctx context.Context) (map[user.Role]int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	counts := make(map[user.Role]int64)
	for _, u := range r.s.users {
		if u.IsActive {
			counts[u.Role]++
		}
	}
	return counts, nil
}
