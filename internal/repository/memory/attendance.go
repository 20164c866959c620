package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sitecrew/workforce-backend/internal/domain/attendance"
	"github.com/sitecrew/workforce-backend/internal/pkg/database"
)

type attendanceRepository struct {
	s *Store
}

func NewAttendanceRepository(s *Store) attendance.AttendanceRepository {
	return &attendanceRepository{s: s}
}

func (r *attendanceRepository) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.attendances {
		if existing.EmployeeID == att.EmployeeID && existing.Date.Equal(att.Date) {
			return attendance.Attendance{}, fmt.Errorf("attendance (%s, %s): %w",
				att.EmployeeID, att.Date.Format(time.DateOnly), database.ErrUniqueViolation)
		}
	}

	att.ID = r.s.newID(att.ID)
	att.CreatedAt = r.s.timestamp()
	att.UpdatedAt = att.CreatedAt
	r.s.attendances[att.ID] = att
	return att, nil
}

func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	att, ok := r.s.attendances[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return att, nil
}

func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, att := range r.s.attendances {
		if att.EmployeeID == employeeID && att.Date.Equal(date) {
			return &att, nil
		}
	}
	return nil, nil
}

func (r *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.attendances[att.ID]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	existing.CheckOut = att.CheckOut
	existing.BreakMinutes = att.BreakMinutes
	existing.Notes = att.Notes
	existing.UpdatedAt = r.s.timestamp()
	r.s.attendances[att.ID] = existing
	return existing, nil
}

func (r *attendanceRepository) CheckOut(ctx context.Context, id string, at time.Time) (attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.attendances[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	if existing.CheckOut != nil {
		return attendance.Attendance{}, attendance.ErrAlreadyCheckedOut
	}
	existing.CheckOut = &at
	existing.UpdatedAt = r.s.timestamp()
	r.s.attendances[id] = existing
	return existing, nil
}

func (r *attendanceRepository) List(ctx context.Context, query attendance.Query) ([]attendance.Attendance, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched := []attendance.Attendance{}
	if query.Scope.IsEmpty() {
		return matched, 0, nil
	}
	for _, att := range r.s.attendances {
		if !query.Scope.Allows(att.EmployeeID) {
			continue
		}
		if query.StartDate != nil && att.Date.Before(*query.StartDate) {
			continue
		}
		if query.EndDate != nil && att.Date.After(*query.EndDate) {
			continue
		}
		matched = append(matched, att)
	}

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		if !a.CheckIn.Equal(b.CheckIn) {
			return a.CheckIn.After(b.CheckIn)
		}
		return r.s.order[a.ID] < r.s.order[b.ID]
	})

	return paginate(matched, query.Offset, query.Limit), int64(len(matched)), nil
}

func paginate[T any](items []T, offset, limit int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
