package entitlement_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	companyDatamodel "github.com/alfarhan/hr-fleet-management/internal/core/datamodel/company"
	"github.com/alfarhan/hr-fleet-management/internal/entitlement"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestEntitlement(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Entitlement Suite")
}

func intPtr(v int) *int             { return &v }
func datePtr(t time.Time) *time.Time { return &t }

// MockCounter implements entitlement.Counter for testing
type MockCounter struct {
	users       int64
	employees   int64
	vehicles    int64
	departments int64
	failError   error
}

func (m *MockCounter) CountUsers(ctx context.Context, companyID int64) (int64, error) {
	return m.users, m.failError
}

func (m *MockCounter) CountEmployees(ctx context.Context, companyID int64) (int64, error) {
	return m.employees, m.failError
}

func (m *MockCounter) CountVehicles(ctx context.Context, companyID int64) (int64, error) {
	return m.vehicles, m.failError
}

func (m *MockCounter) CountDepartments(ctx context.Context, companyID int64) (int64, error) {
	return m.departments, m.failError
}

var _ = Describe("Subscription state", func() {
	today := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	Describe("IsSubscriptionActive", func() {
		It("should be active when the end date is in the future", func() {
			c := &companyDatamodel.Company{
				SubscriptionStatus:  companyDatamodel.SubscriptionActive,
				SubscriptionEndDate: datePtr(today.AddDate(0, 1, 0)),
			}
			Expect(entitlement.IsSubscriptionActive(c, today)).To(BeTrue())
		})

		It("should be active on the end date itself", func() {
			c := &companyDatamodel.Company{
				SubscriptionStatus:  companyDatamodel.SubscriptionActive,
				SubscriptionEndDate: datePtr(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)),
			}
			Expect(entitlement.IsSubscriptionActive(c, today)).To(BeTrue())
		})

		It("should be inactive the day after the end date", func() {
			c := &companyDatamodel.Company{
				SubscriptionStatus:  companyDatamodel.SubscriptionActive,
				SubscriptionEndDate: datePtr(today.AddDate(0, 0, -1)),
			}
			Expect(entitlement.IsSubscriptionActive(c, today)).To(BeFalse())
		})

		It("should be inactive without an end date", func() {
			c := &companyDatamodel.Company{SubscriptionStatus: companyDatamodel.SubscriptionActive}
			Expect(entitlement.IsSubscriptionActive(c, today)).To(BeFalse())
		})

		It("should be inactive when the status is not active, even with a future end date", func() {
			c := &companyDatamodel.Company{
				SubscriptionStatus:  companyDatamodel.SubscriptionSuspended,
				SubscriptionEndDate: datePtr(today.AddDate(0, 1, 0)),
			}
			Expect(entitlement.IsSubscriptionActive(c, today)).To(BeFalse())
		})
	})

	Describe("IsTrialActive", func() {
		It("should be active inside the trial window", func() {
			c := &companyDatamodel.Company{
				IsTrial:            true,
				SubscriptionStatus: companyDatamodel.SubscriptionTrial,
				TrialEndDate:       datePtr(today.AddDate(0, 0, 7)),
			}
			Expect(entitlement.IsTrialActive(c, today)).To(BeTrue())
		})

		It("should be active on the trial end date itself", func() {
			c := &companyDatamodel.Company{
				IsTrial:            true,
				SubscriptionStatus: companyDatamodel.SubscriptionTrial,
				TrialEndDate:       datePtr(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)),
			}
			Expect(entitlement.IsTrialActive(c, today)).To(BeTrue())
		})

		It("should be inactive when the trial ended yesterday", func() {
			c := &companyDatamodel.Company{
				IsTrial:            true,
				SubscriptionStatus: companyDatamodel.SubscriptionTrial,
				TrialEndDate:       datePtr(today.AddDate(0, 0, -1)),
			}
			Expect(entitlement.IsTrialActive(c, today)).To(BeFalse())
		})

		It("should be inactive without the trial flag", func() {
			c := &companyDatamodel.Company{
				SubscriptionStatus: companyDatamodel.SubscriptionTrial,
				TrialEndDate:       datePtr(today.AddDate(0, 0, 7)),
			}
			Expect(entitlement.IsTrialActive(c, today)).To(BeFalse())
		})

		It("should be inactive once the subscription status leaves trial", func() {
			c := &companyDatamodel.Company{
				IsTrial:            true,
				SubscriptionStatus: companyDatamodel.SubscriptionActive,
				TrialEndDate:       datePtr(today.AddDate(0, 0, 7)),
			}
			Expect(entitlement.IsTrialActive(c, today)).To(BeFalse())
		})
	})

	Describe("HasActiveAccess", func() {
		It("should pass with either an active subscription or an active trial", func() {
			paid := &companyDatamodel.Company{
				SubscriptionStatus:  companyDatamodel.SubscriptionActive,
				SubscriptionEndDate: datePtr(today.AddDate(1, 0, 0)),
			}
			trial := &companyDatamodel.Company{
				IsTrial:            true,
				SubscriptionStatus: companyDatamodel.SubscriptionTrial,
				TrialEndDate:       datePtr(today.AddDate(0, 0, 3)),
			}
			Expect(entitlement.HasActiveAccess(paid, today)).To(BeTrue())
			Expect(entitlement.HasActiveAccess(trial, today)).To(BeTrue())
		})

		It("should fail when neither is active", func() {
			c := &companyDatamodel.Company{
				IsTrial:            true,
				SubscriptionStatus: companyDatamodel.SubscriptionTrial,
				TrialEndDate:       datePtr(today.AddDate(0, 0, -5)),
			}
			Expect(entitlement.HasActiveAccess(c, today)).To(BeFalse())
		})
	})
})

var _ = Describe("EffectiveLimits", func() {
	It("should return plan limits when no overrides are set", func() {
		c := &companyDatamodel.Company{SubscriptionPlan: string(entitlement.PlanBasic)}
		limits := entitlement.EffectiveLimits(c)
		Expect(limits.MaxUsers).To(Equal(5))
		Expect(limits.MaxEmployees).To(Equal(50))
		Expect(limits.MaxVehicles).To(Equal(20))
		Expect(limits.MaxDepartments).To(Equal(5))
	})

	It("should apply overrides per field, keeping plan values elsewhere", func() {
		c := &companyDatamodel.Company{
			SubscriptionPlan: string(entitlement.PlanPremium),
			MaxEmployees:     intPtr(500),
		}
		limits := entitlement.EffectiveLimits(c)
		Expect(limits.MaxEmployees).To(Equal(500))
		Expect(limits.MaxUsers).To(Equal(20))
	})

	It("should honor a zero override as a disabled resource", func() {
		c := &companyDatamodel.Company{
			SubscriptionPlan: string(entitlement.PlanEnterprise),
			MaxVehicles:      intPtr(0),
		}
		Expect(entitlement.EffectiveLimits(c).MaxVehicles).To(Equal(0))
	})

	It("should degrade unknown plans to the basic tier", func() {
		c := &companyDatamodel.Company{SubscriptionPlan: "platinum"}
		Expect(entitlement.EffectiveLimits(c).MaxUsers).To(Equal(5))
	})
})

var _ = Describe("Plan table", func() {
	It("should know the three tiers", func() {
		Expect(entitlement.ValidPlan(entitlement.PlanBasic)).To(BeTrue())
		Expect(entitlement.ValidPlan(entitlement.PlanPremium)).To(BeTrue())
		Expect(entitlement.ValidPlan(entitlement.PlanEnterprise)).To(BeTrue())
		Expect(entitlement.ValidPlan(entitlement.Plan("platinum"))).To(BeFalse())
	})

	It("should gate features per tier", func() {
		basic := entitlement.LimitsFor(entitlement.PlanBasic)
		Expect(basic.HasFeature("employees")).To(BeTrue())
		Expect(basic.HasFeature("vehicles")).To(BeFalse())

		premium := entitlement.LimitsFor(entitlement.PlanPremium)
		Expect(premium.HasFeature("vehicles")).To(BeTrue())
		Expect(premium.HasFeature("devices")).To(BeFalse())

		enterprise := entitlement.LimitsFor(entitlement.PlanEnterprise)
		Expect(enterprise.HasFeature("devices")).To(BeTrue())
	})
})

var _ = Describe("Entitlement Service", func() {
	var (
		counter *MockCounter
		service *entitlement.Service
		ctx     context.Context
	)

	BeforeEach(func() {
		counter = &MockCounter{}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = entitlement.NewService(counter, logger)
		ctx = context.Background()
	})

	Describe("CanAddEmployee", func() {
		company := &companyDatamodel.Company{ID: 1, SubscriptionPlan: string(entitlement.PlanBasic)}

		It("should allow below the ceiling", func() {
			counter.employees = 49
			ok, err := service.CanAddEmployee(ctx, company)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())
		})

		It("should deny at the ceiling", func() {
			counter.employees = 50
			ok, err := service.CanAddEmployee(ctx, company)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())
		})

		It("should deny without counting when the resource is disabled", func() {
			disabled := &companyDatamodel.Company{
				ID:               1,
				SubscriptionPlan: string(entitlement.PlanBasic),
				MaxEmployees:     intPtr(0),
			}
			counter.failError = errors.New("should not be called")
			ok, err := service.CanAddEmployee(ctx, disabled)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())
		})

		It("should propagate counter errors", func() {
			counter.failError = errors.New("database error")
			_, err := service.CanAddEmployee(ctx, company)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("UsageFor", func() {
		It("should pair live counts with effective limits", func() {
			counter.users = 3
			counter.employees = 42
			counter.vehicles = 7
			counter.departments = 2

			usage, err := service.UsageFor(ctx, &companyDatamodel.Company{
				ID:               1,
				SubscriptionPlan: string(entitlement.PlanBasic),
				MaxVehicles:      intPtr(10),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(usage.Users).To(Equal(entitlement.ResourceUsage{Current: 3, Limit: 5}))
			Expect(usage.Employees).To(Equal(entitlement.ResourceUsage{Current: 42, Limit: 50}))
			Expect(usage.Vehicles).To(Equal(entitlement.ResourceUsage{Current: 7, Limit: 10}))
			Expect(usage.Departments).To(Equal(entitlement.ResourceUsage{Current: 2, Limit: 5}))
		})
	})
})
