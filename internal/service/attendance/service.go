package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/sitecrew/workforce-backend/internal/domain/access"
	"github.com/sitecrew/workforce-backend/internal/domain/attendance"
	"github.com/sitecrew/workforce-backend/internal/domain/user"
	"github.com/sitecrew/workforce-backend/internal/pkg/clock"
	"github.com/sitecrew/workforce-backend/internal/pkg/database"
	"github.com/sitecrew/workforce-backend/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	resolver access.Resolver
	clock    clock.Clock
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	resolver access.Resolver,
	clk clock.Clock,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		resolver:             resolver,
		clock:                clk,
	}
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, requester user.Requester, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !user.HasPermission(requester.Role, user.PermissionAttendanceCheckIn) {
		return attendance.AttendanceResponse{}, access.ErrPermissionDenied
	}

	// The (employee_id, date) unique constraint decides concurrent check-ins.
	created, err := s.AttendanceRepository.Create(ctx, attendance.Attendance{
		EmployeeID: requester.ID,
		Date:       s.clock.Today(),
		CheckIn:    s.clock.Now(),
		Location:   validator.OptionalString(req.Location),
		Notes:      validator.OptionalString(req.Notes),
	})
	if err != nil {
		if database.IsUniqueViolation(err) {
			return attendance.AttendanceResponse{}, attendance.ErrDuplicateCheckIn
		}
		slog.Error("Failed to record check-in", "employee_id", requester.ID, "error", err)
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check in: %w", err)
	}

	return attendance.NewAttendanceResponse(created), nil
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, requester user.Requester, id string) (attendance.AttendanceResponse, error) {
	record, err := s.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if record.EmployeeID != requester.ID {
		return attendance.AttendanceResponse{}, fmt.Errorf("%w: %w", access.ErrPermissionDenied, attendance.ErrCheckOutNotOwner)
	}
	if record.IsCheckedOut() {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	now := s.clock.Now()
	if now.Before(record.CheckIn) {
		return attendance.AttendanceResponse{}, attendance.ErrCheckOutBeforeIn
	}

	// a concurrent check-out loses here with ErrAlreadyCheckedOut
	updated, err := s.AttendanceRepository.CheckOut(ctx, record.ID, now)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check out: %w", err)
	}
	return attendance.NewAttendanceResponse(updated), nil
}

// UpdateAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) UpdateAttendance(ctx context.Context, requester user.Requester, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := s.AttendanceRepository.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if record.EmployeeID != requester.ID && !requester.IsAdmin() {
		return attendance.AttendanceResponse{}, fmt.Errorf("%w: %w", access.ErrPermissionDenied, attendance.ErrNotOwner)
	}

	if checkOut := req.ParsedCheckOut(); checkOut != nil {
		if checkOut.Before(record.CheckIn) {
			return attendance.AttendanceResponse{}, validator.ValidationErrors{{
				Field:   "check_out",
				Message: attendance.ErrCheckOutBeforeIn.Error(),
			}}
		}
		record.CheckOut = checkOut
	}
	if req.BreakMinutes != nil {
		record.BreakMinutes = *req.BreakMinutes
	}
	if req.Notes != nil {
		record.Notes = validator.OptionalString(req.Notes)
	}

	updated, err := s.AttendanceRepository.Update(ctx, record)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}
	return attendance.NewAttendanceResponse(updated), nil
}

// GetAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetAttendance(ctx context.Context, requester user.Requester, id string) (attendance.AttendanceResponse, error) {
	record, err := s.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	scope, err := s.resolver.RecordScope(ctx, requester, access.Target{})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !scope.Allows(record.EmployeeID) {
		return attendance.AttendanceResponse{}, access.ErrPermissionDenied
	}

	return attendance.NewAttendanceResponse(record), nil
}

// ListAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListAttendance(ctx context.Context, requester user.Requester, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	scope, err := s.resolver.RecordScope(ctx, requester, access.Target{EmployeeID: validator.OptionalString(filter.EmployeeID)})
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	start, end := filter.Window()
	records, total, err := s.AttendanceRepository.List(ctx, attendance.Query{
		Scope:     scope,
		StartDate: start,
		EndDate:   end,
		Offset:    (filter.Page - 1) * filter.Limit,
		Limit:     filter.Limit,
	})
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	data := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		data = append(data, attendance.NewAttendanceResponse(r))
	}

	return attendance.ListAttendanceResponse{
		Data:       data,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
	}, nil
}
