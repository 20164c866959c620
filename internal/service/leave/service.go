package leave

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/sitecrew/workforce-backend/internal/domain/access"
	"github.com/sitecrew/workforce-backend/internal/domain/leave"
	"github.com/sitecrew/workforce-backend/internal/domain/user"
)

type LeaveServiceImpl struct {
	leaveRequestRepo leave.LeaveRequestRepository
	userRepo         user.UserRepository
	resolver         access.Resolver
}

func NewLeaveService(
	leaveRequestRepo leave.LeaveRequestRepository,
	userRepo user.UserRepository,
	resolver access.Resolver,
) leave.LeaveService {
	return &LeaveServiceImpl{
		leaveRequestRepo: leaveRequestRepo,
		userRepo:         userRepo,
		resolver:         resolver,
	}
}

func denied(reason error) error {
	return fmt.Errorf("%w: %w", access.ErrPermissionDenied, reason)
}

// SubmitLeaveRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) SubmitLeaveRequest(ctx context.Context, requester user.Requester, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	if !user.HasPermission(requester.Role, user.PermissionLeaveCreate) {
		return leave.LeaveRequestResponse{}, denied(leave.ErrCreateNotAllowed)
	}
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	employee, err := s.userRepo.GetByID(ctx, requester.ID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	// The approver is the requester's own supervisor, whatever the requester's role.
	start, end := req.Period()
	created, err := s.leaveRequestRepo.Create(ctx, leave.LeaveRequest{
		EmployeeID:   employee.ID,
		SupervisorID: employee.SupervisorID,
		LeaveType:    req.LeaveType,
		StartDate:    start,
		EndDate:      end,
		Reason:       req.Reason,
		Status:       leave.LeaveRequestStatusPending,
	})
	if err != nil {
		slog.Error("Failed to create leave request", "employee_id", requester.ID, "error", err)
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return leave.NewLeaveRequestResponse(created), nil
}

// DecideLeaveRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) DecideLeaveRequest(ctx context.Context, requester user.Requester, req leave.DecideLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	request, err := s.leaveRequestRepo.GetByID(ctx, req.ID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	if request.EmployeeID == requester.ID {
		return leave.LeaveRequestResponse{}, denied(leave.ErrOwnRequestDecision)
	}
	canDecide := requester.IsAdmin() || (requester.IsSupervisor() && request.IsApprover(requester.ID))
	if !canDecide {
		return leave.LeaveRequestResponse{}, denied(leave.ErrDecideNotAllowed)
	}
	if !request.IsPending() {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestAlreadyProcessed
	}

	request.Status = leave.LeaveRequestStatus(req.Status)
	request.SupervisorComments = req.SupervisorComments

	updated, err := s.leaveRequestRepo.UpdateDecision(ctx, request)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	slog.Info("Leave request decided", "leave_request_id", updated.ID, "status", updated.Status, "decided_by", requester.ID)
	return leave.NewLeaveRequestResponse(updated), nil
}

// GetLeaveRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) GetLeaveRequest(ctx context.Context, requester user.Requester, id string) (leave.LeaveRequestResponse, error) {
	request, err := s.leaveRequestRepo.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	if request.IsApprover(requester.ID) {
		return leave.NewLeaveRequestResponse(request), nil
	}

	scope, err := s.resolver.RecordScope(ctx, requester, access.Target{})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if !scope.Allows(request.EmployeeID) {
		return leave.LeaveRequestResponse{}, access.ErrPermissionDenied
	}

	return leave.NewLeaveRequestResponse(request), nil
}

// ListLeaveRequests implements leave.LeaveService.
func (s *LeaveServiceImpl) ListLeaveRequests(ctx context.Context, requester user.Requester, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}

	scope, err := s.resolver.RecordScope(ctx, requester, access.Target{})
	if err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}

	query := leave.Query{
		Scope:  scope,
		Offset: (filter.Page - 1) * filter.Limit,
		Limit:  filter.Limit,
	}
	if filter.Status != nil {
		status := leave.LeaveRequestStatus(*filter.Status)
		query.Status = &status
	}

	requests, total, err := s.leaveRequestRepo.List(ctx, query)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	data := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		data = append(data, leave.NewLeaveRequestResponse(r))
	}

	return leave.ListLeaveRequestResponse{
		Data:       data,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
	}, nil
}

// DeleteLeaveRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) DeleteLeaveRequest(ctx context.Context, requester user.Requester, id string) error {
	request, err := s.leaveRequestRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	switch {
	case requester.IsAdmin():
	case request.EmployeeID == requester.ID:
		if !request.IsPending() {
			return denied(leave.ErrDeleteAfterDecision)
		}
	default:
		return denied(leave.ErrDeleteNotAllowed)
	}

	return s.leaveRequestRepo.Delete(ctx, id)
}
