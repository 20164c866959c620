// Package access turns a requester and an optional target into the Scope
// every read is filtered by.
package access

import (
	"context"
	"fmt"

	"github.com/sitecrew/workforce-backend/internal/domain/access"
	"github.com/sitecrew/workforce-backend/internal/domain/user"
)

// Hierarchy is the part of the hierarchy resolver scope computation needs.
type Hierarchy interface {
	DirectReports(ctx context.Context, supervisorID string) ([]string, error)
}

type ResolverImpl struct {
	hierarchy Hierarchy
}

func NewResolver(hierarchy Hierarchy) access.Resolver {
	return &ResolverImpl{hierarchy: hierarchy}
}

// RecordScope is the scope for raw record reads. Supervisors see their
// direct reports and themselves; laborers see only themselves.
func (r *ResolverImpl) RecordScope(ctx context.Context, requester user.Requester, target access.Target) (access.Scope, error) {
	return r.resolve(ctx, requester, target, false)
}

// ReportScope is the scope for summaries. Supervisors see exactly their
// direct reports; laborers are denied.
func (r *ResolverImpl) ReportScope(ctx context.Context, requester user.Requester, target access.Target) (access.Scope, error) {
	return r.resolve(ctx, requester, target, true)
}

func (r *ResolverImpl) resolve(ctx context.Context, requester user.Requester, target access.Target, report bool) (access.Scope, error) {
	if requester.ID == "" {
		return deny(access.ErrMissingRequesterID, "")
	}

	switch requester.Role {
	case user.RoleAdmin:
		return r.adminScope(ctx, target)
	case user.RoleSupervisor:
		return r.supervisorScope(ctx, requester, target, !report)
	case user.RoleLaborer:
		if report {
			return deny(access.ErrReportsNotAllowed, "")
		}
		if target.SupervisorID != nil {
			return deny(access.ErrNotYourRecord, "")
		}
		if target.EmployeeID != nil && *target.EmployeeID != requester.ID {
			return deny(access.ErrNotYourRecord, "")
		}
		return access.RestrictedTo(requester.ID), nil
	}
	return deny(access.ErrUnknownRole, string(requester.Role))
}

func (r *ResolverImpl) adminScope(ctx context.Context, target access.Target) (access.Scope, error) {
	scope := access.Unrestricted()
	if target.SupervisorID != nil {
		reports, err := r.hierarchy.DirectReports(ctx, *target.SupervisorID)
		if err != nil {
			return access.Scope{}, err
		}
		scope = access.RestrictedTo(reports...)
	}
	if target.EmployeeID != nil {
		scope = scope.Narrow([]string{*target.EmployeeID})
	}
	return scope, nil
}

func (r *ResolverImpl) supervisorScope(ctx context.Context, requester user.Requester, target access.Target, includeSelf bool) (access.Scope, error) {
	if target.SupervisorID != nil && *target.SupervisorID != requester.ID {
		return deny(access.ErrOtherSupervisor, "")
	}

	reports, err := r.hierarchy.DirectReports(ctx, requester.ID)
	if err != nil {
		return access.Scope{}, err
	}
	scope := access.RestrictedTo(reports...)
	if includeSelf {
		scope = scope.Add(requester.ID)
	}

	if target.EmployeeID != nil {
		if !scope.Allows(*target.EmployeeID) {
			return deny(access.ErrNotDirectReport, "")
		}
		scope = access.RestrictedTo(*target.EmployeeID)
	}
	return scope, nil
}

func deny(reason error, detail string) (access.Scope, error) {
	err := fmt.Errorf("%w: %w", access.ErrPermissionDenied, reason)
	if detail != "" {
		err = fmt.Errorf("%w (%s)", err, detail)
	}
	return access.Denied(err), err
}
