// Package access defines the visibility scope computed once per request and
// threaded into every repository filter.
package access

import (
	"sort"
)

type scopeKind int

const (
	kindDenied scopeKind = iota
	kindUnrestricted
	kindRestricted
)

// Scope is the set of employee ids a requester may see. The zero value is a
// denied scope.
type Scope struct {
	kind   scopeKind
	ids    map[string]struct{}
	reason error
}

// Unrestricted allows every employee.
func Unrestricted() Scope {
	return Scope{kind: kindUnrestricted}
}

// RestrictedTo allows exactly ids. An empty list yields a scope that matches
// nothing, which is distinct from Denied.
func RestrictedTo(ids ...string) Scope {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return Scope{kind: kindRestricted, ids: set}
}

// Denied carries the permission failure that produced it.
func Denied(reason error) Scope {
	if reason == nil {
		reason = ErrPermissionDenied
	}
	return Scope{kind: kindDenied, reason: reason}
}

func (s Scope) IsDenied() bool       { return s.kind == kindDenied }
func (s Scope) IsUnrestricted() bool { return s.kind == kindUnrestricted }

// IsEmpty reports whether the scope cannot match any employee.
func (s Scope) IsEmpty() bool {
	return s.kind == kindDenied || (s.kind == kindRestricted && len(s.ids) == 0)
}

// Err returns the denial reason, or nil for a usable scope.
func (s Scope) Err() error {
	if s.kind != kindDenied {
		return nil
	}
	if s.reason == nil {
		return ErrPermissionDenied
	}
	return s.reason
}

// Allows reports whether employeeID is visible.
func (s Scope) Allows(employeeID string) bool {
	switch s.kind {
	case kindUnrestricted:
		return true
	case kindRestricted:
		_, ok := s.ids[employeeID]
		return ok
	}
	return false
}

// EmployeeIDs lists the visible ids in sorted order. It returns nil for an
// unrestricted or denied scope.
func (s Scope) EmployeeIDs() []string {
	if s.kind != kindRestricted {
		return nil
	}
	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Narrow intersects s with ids. Narrowing an unrestricted scope yields
// RestrictedTo(ids); a denied scope stays denied.
func (s Scope) Narrow(ids []string) Scope {
	switch s.kind {
	case kindDenied:
		return s
	case kindUnrestricted:
		return RestrictedTo(ids...)
	}
	kept := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := s.ids[id]; ok {
			kept = append(kept, id)
		}
	}
	return RestrictedTo(kept...)
}

// Add widens a restricted scope with extra ids. Other kinds are unchanged.
func (s Scope) Add(ids ...string) Scope {
	if s.kind != kindRestricted {
		return s
	}
	return RestrictedTo(append(s.EmployeeIDs(), ids...)...)
}
