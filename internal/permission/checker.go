package permission

// Subject is the minimal view of an authenticated user the checker needs.
// It is implemented by auth.User; the interface keeps this package free of
// import cycles and makes the checks trivially testable.
type Subject interface {
	// IsAdmin reports the bypass rule: legacy admin role or system admin
	// user type. Admin subjects pass every permission check unconditionally.
	IsAdmin() bool
	// ModuleGrant returns the capability set granted for a module and
	// whether a grant row exists at all. Absence of a row means no access
	// (closed world).
	ModuleGrant(m Module) (CapabilitySet, bool)
}

// HasPermission reports whether the subject may perform the capability on the
// module. Admin subjects bypass the grant lookup entirely; this is a distinct
// rule, not a consequence of "all bits set".
func HasPermission(s Subject, m Module, c Capability) bool {
	if s.IsAdmin() {
		return true
	}
	grant, ok := s.ModuleGrant(m)
	if !ok {
		return false
	}
	return grant.Has(c)
}

// HasModuleAccess reports whether the subject has any access to the module.
// A grant row with an empty capability set does NOT count: the row-exists
// rule alone would let a fully revoked grant keep the module visible, so the
// stricter non-empty interpretation is used here.
func HasModuleAccess(s Subject, m Module) bool {
	if s.IsAdmin() {
		return true
	}
	grant, ok := s.ModuleGrant(m)
	if !ok {
		return false
	}
	return !grant.IsEmpty()
}

// AccessibleModules returns the catalog modules the subject can see, used to
// build navigation. Admins see the whole catalog.
func AccessibleModules(s Subject) []Module {
	if s.IsAdmin() {
		out := make([]Module, len(Catalog))
		copy(out, Catalog)
		return out
	}
	var out []Module
	for _, m := range Catalog {
		if HasModuleAccess(s, m) {
			out = append(out, m)
		}
	}
	return out
}
