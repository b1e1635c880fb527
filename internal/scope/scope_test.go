package scope_test

import (
	"testing"

	"github.com/alfarhan/hr-fleet-management/internal/scope"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestScope(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Scope Suite")
}

func ptr(v int64) *int64 { return &v }

var _ = Describe("AccessScope", func() {
	Describe("Unrestricted", func() {
		It("should contain every department", func() {
			s := scope.Unrestricted()
			Expect(s.IsUnrestricted()).To(BeTrue())
			Expect(s.IsEmpty()).To(BeFalse())
			Expect(s.Contains(1)).To(BeTrue())
			Expect(s.Contains(9999)).To(BeTrue())
		})

		It("should return nil department ids so queries skip the filter", func() {
			Expect(scope.Unrestricted().DepartmentIDs()).To(BeNil())
		})
	})

	Describe("RestrictedTo", func() {
		It("should contain exactly the given departments", func() {
			s := scope.RestrictedTo(3, 7)
			Expect(s.IsUnrestricted()).To(BeFalse())
			Expect(s.Contains(3)).To(BeTrue())
			Expect(s.Contains(7)).To(BeTrue())
			Expect(s.Contains(5)).To(BeFalse())
		})

		It("should be empty with no ids and contain nothing", func() {
			s := scope.RestrictedTo()
			Expect(s.IsEmpty()).To(BeTrue())
			Expect(s.Contains(1)).To(BeFalse())
			Expect(s.DepartmentIDs()).To(BeEmpty())
			Expect(s.DepartmentIDs()).NotTo(BeNil())
		})

		It("should deduplicate repeated ids", func() {
			s := scope.RestrictedTo(4, 4, 4)
			Expect(s.DepartmentIDs()).To(ConsistOf(int64(4)))
		})
	})

	Describe("ForUser", func() {
		It("should give admins an unrestricted scope regardless of assignments", func() {
			s := scope.ForUser(true, ptr(2), []int64{5})
			Expect(s.IsUnrestricted()).To(BeTrue())
		})

		It("should union the assigned department with explicit grants", func() {
			s := scope.ForUser(false, ptr(2), []int64{5, 9})
			Expect(s.DepartmentIDs()).To(ConsistOf(int64(2), int64(5), int64(9)))
		})

		It("should produce an empty scope for a user with no assignment and no grants", func() {
			s := scope.ForUser(false, nil, nil)
			Expect(s.IsEmpty()).To(BeTrue())
		})

		It("should work with grants only", func() {
			s := scope.ForUser(false, nil, []int64{8})
			Expect(s.Contains(8)).To(BeTrue())
			Expect(s.Contains(2)).To(BeFalse())
		})
	})

	Describe("CanAccessEmployee", func() {
		Context("with an unrestricted scope", func() {
			It("should allow employees in any department", func() {
				Expect(scope.CanAccessEmployee(scope.Unrestricted(), ptr(5))).To(BeTrue())
			})

			It("should allow employees without a department", func() {
				Expect(scope.CanAccessEmployee(scope.Unrestricted(), nil)).To(BeTrue())
			})
		})

		Context("with a restricted scope", func() {
			It("should allow employees inside the scope", func() {
				s := scope.RestrictedTo(5)
				Expect(scope.CanAccessEmployee(s, ptr(5))).To(BeTrue())
			})

			It("should deny employees outside the scope", func() {
				s := scope.RestrictedTo(5)
				Expect(scope.CanAccessEmployee(s, ptr(6))).To(BeFalse())
			})

			It("should deny employees without a department", func() {
				s := scope.RestrictedTo(5)
				Expect(scope.CanAccessEmployee(s, nil)).To(BeFalse())
			})
		})
	})
})
