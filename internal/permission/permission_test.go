package permission_test

import (
	"testing"

	"github.com/alfarhan/hr-fleet-management/internal/permission"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestPermission(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Permission Suite")
}

// testSubject implements permission.Subject for testing
type testSubject struct {
	admin  bool
	grants map[permission.Module]permission.CapabilitySet
}

func (s *testSubject) IsAdmin() bool { return s.admin }

func (s *testSubject) ModuleGrant(m permission.Module) (permission.CapabilitySet, bool) {
	grant, ok := s.grants[m]
	return grant, ok
}

var _ = Describe("CapabilitySet", func() {
	Describe("Bitmask", func() {
		It("should encode individual capabilities to their bits", func() {
			Expect(permission.NewCapabilitySet(permission.CapabilityView).Bitmask()).To(Equal(1))
			Expect(permission.NewCapabilitySet(permission.CapabilityCreate).Bitmask()).To(Equal(2))
			Expect(permission.NewCapabilitySet(permission.CapabilityEdit).Bitmask()).To(Equal(4))
			Expect(permission.NewCapabilitySet(permission.CapabilityDelete).Bitmask()).To(Equal(8))
			Expect(permission.NewCapabilitySet(permission.CapabilityManage).Bitmask()).To(Equal(16))
		})

		It("should combine capabilities with OR", func() {
			set := permission.NewCapabilitySet(
				permission.CapabilityView,
				permission.CapabilityCreate,
				permission.CapabilityEdit,
			)
			Expect(set.Bitmask()).To(Equal(7))
		})

		It("should encode the admin capability as all bits set", func() {
			set := permission.NewCapabilitySet(permission.CapabilityAdmin)
			Expect(set.Bitmask()).To(Equal(permission.BitmaskAdmin))
		})

		It("should encode admin as 255 even when mixed with other capabilities", func() {
			set := permission.NewCapabilitySet(permission.CapabilityAdmin, permission.CapabilityView)
			Expect(set.Bitmask()).To(Equal(255))
		})
	})

	Describe("FromBitmask", func() {
		It("should decode single bits to their capabilities", func() {
			set := permission.FromBitmask(1)
			Expect(set.Has(permission.CapabilityView)).To(BeTrue())
			Expect(set.Has(permission.CapabilityCreate)).To(BeFalse())
		})

		It("should decode combined masks", func() {
			set := permission.FromBitmask(9)
			Expect(set.Has(permission.CapabilityView)).To(BeTrue())
			Expect(set.Has(permission.CapabilityDelete)).To(BeTrue())
			Expect(set.Has(permission.CapabilityEdit)).To(BeFalse())
		})

		It("should decode 255 to the admin capability", func() {
			set := permission.FromBitmask(255)
			Expect(set.Has(permission.CapabilityAdmin)).To(BeTrue())
		})

		It("should round trip every non-admin combination", func() {
			for mask := 0; mask < 32; mask++ {
				Expect(permission.FromBitmask(mask).Bitmask()).To(Equal(mask))
			}
		})

		It("should round trip the admin mask", func() {
			Expect(permission.FromBitmask(255).Bitmask()).To(Equal(255))
		})

		It("should decode zero to an empty set", func() {
			Expect(permission.FromBitmask(0).IsEmpty()).To(BeTrue())
		})
	})

	Describe("Has", func() {
		It("should imply every capability when admin is held", func() {
			set := permission.NewCapabilitySet(permission.CapabilityAdmin)
			Expect(set.Has(permission.CapabilityView)).To(BeTrue())
			Expect(set.Has(permission.CapabilityCreate)).To(BeTrue())
			Expect(set.Has(permission.CapabilityEdit)).To(BeTrue())
			Expect(set.Has(permission.CapabilityDelete)).To(BeTrue())
			Expect(set.Has(permission.CapabilityManage)).To(BeTrue())
		})

		It("should not imply manage from delete", func() {
			set := permission.NewCapabilitySet(permission.CapabilityDelete)
			Expect(set.Has(permission.CapabilityManage)).To(BeFalse())
		})
	})

	Describe("List", func() {
		It("should return capabilities in stable sorted order", func() {
			set := permission.NewCapabilitySet(
				permission.CapabilityView,
				permission.CapabilityManage,
				permission.CapabilityCreate,
			)
			Expect(set.List()).To(Equal([]string{"create", "manage", "view"}))
		})
	})
})

var _ = Describe("HasPermission", func() {
	Context("when the subject is an admin", func() {
		It("should allow every capability on every module without a grant row", func() {
			subject := &testSubject{admin: true}
			for _, m := range permission.Catalog {
				Expect(permission.HasPermission(subject, m, permission.CapabilityDelete)).To(BeTrue())
			}
		})
	})

	Context("when the subject holds a grant", func() {
		var subject *testSubject

		BeforeEach(func() {
			subject = &testSubject{
				grants: map[permission.Module]permission.CapabilitySet{
					permission.ModuleEmployees: permission.NewCapabilitySet(
						permission.CapabilityView, permission.CapabilityCreate),
				},
			}
		})

		It("should allow granted capabilities", func() {
			Expect(permission.HasPermission(subject, permission.ModuleEmployees, permission.CapabilityView)).To(BeTrue())
			Expect(permission.HasPermission(subject, permission.ModuleEmployees, permission.CapabilityCreate)).To(BeTrue())
		})

		It("should deny capabilities outside the grant", func() {
			Expect(permission.HasPermission(subject, permission.ModuleEmployees, permission.CapabilityDelete)).To(BeFalse())
		})

		It("should deny modules without a grant row", func() {
			Expect(permission.HasPermission(subject, permission.ModuleVehicles, permission.CapabilityView)).To(BeFalse())
		})
	})

	Context("when the subject has no grants at all", func() {
		It("should deny everything", func() {
			subject := &testSubject{grants: map[permission.Module]permission.CapabilitySet{}}
			for _, m := range permission.Catalog {
				Expect(permission.HasPermission(subject, m, permission.CapabilityView)).To(BeFalse())
			}
		})
	})
})

var _ = Describe("HasModuleAccess", func() {
	It("should allow admins on every module", func() {
		subject := &testSubject{admin: true}
		Expect(permission.HasModuleAccess(subject, permission.ModuleSettings)).To(BeTrue())
	})

	It("should allow a module with at least one capability", func() {
		subject := &testSubject{
			grants: map[permission.Module]permission.CapabilitySet{
				permission.ModuleDocuments: permission.NewCapabilitySet(permission.CapabilityView),
			},
		}
		Expect(permission.HasModuleAccess(subject, permission.ModuleDocuments)).To(BeTrue())
	})

	It("should deny a module whose grant row has an empty capability set", func() {
		subject := &testSubject{
			grants: map[permission.Module]permission.CapabilitySet{
				permission.ModuleDocuments: permission.NewCapabilitySet(),
			},
		}
		Expect(permission.HasModuleAccess(subject, permission.ModuleDocuments)).To(BeFalse())
	})

	It("should deny a module with no grant row", func() {
		subject := &testSubject{grants: map[permission.Module]permission.CapabilitySet{}}
		Expect(permission.HasModuleAccess(subject, permission.ModuleDocuments)).To(BeFalse())
	})
})

var _ = Describe("AccessibleModules", func() {
	It("should return the full catalog for admins", func() {
		subject := &testSubject{admin: true}
		Expect(permission.AccessibleModules(subject)).To(Equal(permission.Catalog))
	})

	It("should return only modules with non-empty grants, in catalog order", func() {
		subject := &testSubject{
			grants: map[permission.Module]permission.CapabilitySet{
				permission.ModuleReports:   permission.NewCapabilitySet(permission.CapabilityView),
				permission.ModuleEmployees: permission.NewCapabilitySet(permission.CapabilityView),
				permission.ModuleVehicles:  permission.NewCapabilitySet(),
			},
		}
		Expect(permission.AccessibleModules(subject)).To(Equal([]permission.Module{
			permission.ModuleEmployees,
			permission.ModuleReports,
		}))
	})
})

var _ = Describe("ValidModule", func() {
	It("should accept every catalog module", func() {
		for _, m := range permission.Catalog {
			Expect(permission.ValidModule(m)).To(BeTrue())
		}
	})

	It("should reject unknown module names", func() {
		Expect(permission.ValidModule(permission.Module("payroll"))).To(BeFalse())
		Expect(permission.ValidModule(permission.Module(""))).To(BeFalse())
	})
})
