// Package memory is an in-process store implementing every repository
// interface. It enforces the same uniqueness rules as the PostgreSQL schema.
package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sitecrew/workforce-backend/internal/domain/attendance"
	"github.com/sitecrew/workforce-backend/internal/domain/leave"
	"github.com/sitecrew/workforce-backend/internal/domain/team"
	"github.com/sitecrew/workforce-backend/internal/domain/user"
)

type Store struct {
	mu sync.RWMutex

	users           map[string]user.User
	attendances     map[string]attendance.Attendance
	leaveRequests   map[string]leave.LeaveRequest
	teamAssignments map[string]team.TeamAssignment

	// insertion sequence, used as a stable tie-break
	seq   int64
	order map[string]int64

	now func() time.Time
}

type Option func(*Store)

// WithNow sets the timestamp source for created_at/updated_at.
func WithNow(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		users:           make(map[string]user.User),
		attendances:     make(map[string]attendance.Attendance),
		leaveRequests:   make(map[string]leave.LeaveRequest),
		teamAssignments: make(map[string]team.TeamAssignment),
		order:           make(map[string]int64),
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// newID keeps a caller supplied id, otherwise generates a v7 uuid. Callers
// must hold the write lock.
func (s *Store) newID(id string) string {
	if id == "" {
		id = uuid.Must(uuid.NewV7()).String()
	}
	s.seq++
	s.order[id] = s.seq
	return id
}

func (s *Store) timestamp() time.Time {
	return s.now().UTC()
}
