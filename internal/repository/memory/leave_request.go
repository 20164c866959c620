package memory

import (
	"context"
	"sort"

	"github.com/sitecrew/workforce-backend/internal/domain/leave"
	"github.com/sitecrew/workforce-backend/internal/pkg/worktime"
)

type leaveRequestRepository struct {
	s *Store
}

func NewLeaveRequestRepository(s *Store) leave.LeaveRequestRepository {
	return &leaveRequestRepository{s: s}
}

func (r *leaveRequestRepository) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	request.ID = r.s.newID(request.ID)
	request.CreatedAt = r.s.timestamp()
	request.UpdatedAt = request.CreatedAt
	r.s.leaveRequests[request.ID] = request
	return request, nil
}

func (r *leaveRequestRepository) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	lr, ok := r.s.leaveRequests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return lr, nil
}

func (r *leaveRequestRepository) UpdateDecision(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.leaveRequests[request.ID]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	if !existing.IsPending() {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestAlreadyProcessed
	}
	existing.Status = request.Status
	existing.SupervisorComments = request.SupervisorComments
	existing.UpdatedAt = r.s.timestamp()
	r.s.leaveRequests[request.ID] = existing
	return existing, nil
}

func (r *leaveRequestRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.leaveRequests[id]; !ok {
		return leave.ErrLeaveRequestNotFound
	}
	delete(r.s.leaveRequests, id)
	return nil
}

func (r *leaveRequestRepository) List(ctx context.Context, query leave.Query) ([]leave.LeaveRequest, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched := []leave.LeaveRequest{}
	if query.Scope.IsEmpty() {
		return matched, 0, nil
	}
	for _, lr := range r.s.leaveRequests {
		if !query.Scope.Allows(lr.EmployeeID) {
			continue
		}
		if query.SupervisorID != nil && !lr.IsApprover(*query.SupervisorID) {
			continue
		}
		if query.Status != nil && lr.Status != *query.Status {
			continue
		}
		if query.OverlapStart != nil && query.OverlapEnd != nil &&
			!worktime.Overlaps(lr.StartDate, lr.EndDate, *query.OverlapStart, *query.OverlapEnd) {
			continue
		}
		matched = append(matched, lr)
	}

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return r.s.order[a.ID] > r.s.order[b.ID]
	})

	return paginate(matched, query.Offset, query.Limit), int64(len(matched)), nil
}
