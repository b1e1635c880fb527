package permission

import "sort"

// Capability is a single grantable action on a module.
type Capability string

const (
	CapabilityView   Capability = "view"
	CapabilityCreate Capability = "create"
	CapabilityEdit   Capability = "edit"
	CapabilityDelete Capability = "delete"
	CapabilityManage Capability = "manage"
	CapabilityAdmin  Capability = "admin"
)

// Legacy bitmask values. Persisted permission rows still store an integer
// bitmask; the capability set is the in-memory representation.
const (
	bitView   = 1
	bitCreate = 2
	bitEdit   = 4
	bitDelete = 8
	bitManage = 16
	// BitmaskAdmin has every bit set, including the three reserved ones.
	BitmaskAdmin = 255
)

var capabilityBits = map[Capability]int{
	CapabilityView:   bitView,
	CapabilityCreate: bitCreate,
	CapabilityEdit:   bitEdit,
	CapabilityDelete: bitDelete,
	CapabilityManage: bitManage,
}

// CapabilitySet is a set of capabilities granted on one module.
type CapabilitySet map[Capability]struct{}

func NewCapabilitySet(caps ...Capability) CapabilitySet {
	s := make(CapabilitySet, len(caps))
	for _, c := range caps {
		s[c] = struct{}{}
	}
	return s
}

func (s CapabilitySet) Has(c Capability) bool {
	if _, ok := s[CapabilityAdmin]; ok {
		return true
	}
	_, ok := s[c]
	return ok
}

func (s CapabilitySet) Add(c Capability) {
	s[c] = struct{}{}
}

func (s CapabilitySet) IsEmpty() bool {
	return len(s) == 0
}

func (s CapabilitySet) Union(other CapabilitySet) CapabilitySet {
	out := make(CapabilitySet, len(s)+len(other))
	for c := range s {
		out[c] = struct{}{}
	}
	for c := range other {
		out[c] = struct{}{}
	}
	return out
}

// List returns the capabilities in stable order, for JSON responses and logs.
func (s CapabilitySet) List() []string {
	out := make([]string, 0, len(s))
	for c := range s {
		out = append(out, string(c))
	}
	sort.Strings(out)
	return out
}

// Bitmask renders the set as the legacy integer encoding.
func (s CapabilitySet) Bitmask() int {
	if _, ok := s[CapabilityAdmin]; ok {
		return BitmaskAdmin
	}
	mask := 0
	for c := range s {
		mask |= capabilityBits[c]
	}
	return mask
}

// FromBitmask decodes the legacy integer encoding. The all-bits value decodes
// to the admin capability, which implies every other capability.
func FromBitmask(mask int) CapabilitySet {
	if mask == BitmaskAdmin {
		return NewCapabilitySet(CapabilityAdmin)
	}
	s := make(CapabilitySet)
	for c, bit := range capabilityBits {
		if mask&bit != 0 {
			s[c] = struct{}{}
		}
	}
	return s
}

// ParseCapability validates a capability name supplied over the wire.
func ParseCapability(name string) (Capability, bool) {
	switch Capability(name) {
	case CapabilityView, CapabilityCreate, CapabilityEdit, CapabilityDelete, CapabilityManage, CapabilityAdmin:
		return Capability(name), true
	}
	return "", false
}
