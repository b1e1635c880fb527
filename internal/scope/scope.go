// Package scope computes the department-level visibility of a user.
//
// The scope is a tagged variant rather than a nil-able set: "unrestricted"
// and "restricted to nothing" are different values and cannot be confused by
// callers.
package scope

// AccessScope is either unrestricted (admins) or restricted to an explicit,
// possibly empty, set of department ids.
type AccessScope struct {
	unrestricted bool
	ids          map[int64]struct{}
}

// Unrestricted returns the scope that contains every department.
func Unrestricted() AccessScope {
	return AccessScope{unrestricted: true}
}

// RestrictedTo returns a scope containing exactly the given department ids.
// With no ids the scope is empty, meaning zero access.
func RestrictedTo(ids ...int64) AccessScope {
	s := AccessScope{ids: make(map[int64]struct{}, len(ids))}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

func (s AccessScope) IsUnrestricted() bool {
	return s.unrestricted
}

func (s AccessScope) IsEmpty() bool {
	return !s.unrestricted && len(s.ids) == 0
}

// Contains reports whether the department is visible under this scope.
func (s AccessScope) Contains(departmentID int64) bool {
	if s.unrestricted {
		return true
	}
	_, ok := s.ids[departmentID]
	return ok
}

// DepartmentIDs returns the explicit id list for restricted scopes, for use
// in WHERE ... IN query filters. Unrestricted scopes return nil; callers must
// check IsUnrestricted first and skip the filter entirely.
func (s AccessScope) DepartmentIDs() []int64 {
	if s.unrestricted {
		return nil
	}
	out := make([]int64, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	return out
}

// ForUser builds the effective scope: admins are unrestricted; everyone else
// gets the union of their assigned department and any explicit grants.
func ForUser(isAdmin bool, assignedDepartmentID *int64, grantedIDs []int64) AccessScope {
	if isAdmin {
		return Unrestricted()
	}
	ids := make([]int64, 0, len(grantedIDs)+1)
	if assignedDepartmentID != nil {
		ids = append(ids, *assignedDepartmentID)
	}
	ids = append(ids, grantedIDs...)
	return RestrictedTo(ids...)
}

// CanAccessEmployee reports whether an employee in the given department is
// visible. Employees without a department are only visible to unrestricted
// scopes.
func CanAccessEmployee(s AccessScope, employeeDepartmentID *int64) bool {
	if s.unrestricted {
		return true
	}
	if employeeDepartmentID == nil {
		return false
	}
	return s.Contains(*employeeDepartmentID)
}
