package expiry_test

import (
	"testing"
	"time"

	"github.com/alfarhan/hr-fleet-management/internal/expiry"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestExpiry(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Expiry Suite")
}

var _ = Describe("Classify", func() {
	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	days := func(n int) time.Time {
		return today.AddDate(0, 0, n)
	}

	Context("around the lower boundary", func() {
		It("should classify a date expiring today as expiring, not expired", func() {
			Expect(expiry.Classify(days(0), today, 30)).To(Equal(expiry.StatusExpiring))
		})

		It("should classify yesterday as expired", func() {
			Expect(expiry.Classify(days(-1), today, 30)).To(Equal(expiry.StatusExpired))
		})
	})

	Context("around the upper boundary", func() {
		It("should classify a date exactly windowDays out as expiring", func() {
			Expect(expiry.Classify(days(30), today, 30)).To(Equal(expiry.StatusExpiring))
		})

		It("should classify a date one day past the window as valid", func() {
			Expect(expiry.Classify(days(31), today, 30)).To(Equal(expiry.StatusValid))
		})
	})

	Context("with different windows over the same date", func() {
		expiryDate := days(45)

		It("should be valid for the 30-day dashboard window", func() {
			Expect(expiry.Classify(expiryDate, today, 30)).To(Equal(expiry.StatusValid))
		})

		It("should be expiring for the 60-day document window", func() {
			Expect(expiry.Classify(expiryDate, today, 60)).To(Equal(expiry.StatusExpiring))
		})

		It("should be expiring for the 90-day fee window", func() {
			Expect(expiry.Classify(expiryDate, today, 90)).To(Equal(expiry.StatusExpiring))
		})
	})

	Context("with time-of-day components", func() {
		It("should ignore the clock when comparing days", func() {
			lateToday := time.Date(2025, 6, 15, 23, 59, 0, 0, time.UTC)
			earlyExpiry := time.Date(2025, 6, 15, 0, 1, 0, 0, time.UTC)
			Expect(expiry.Classify(earlyExpiry, lateToday, 30)).To(Equal(expiry.StatusExpiring))
		})
	})
})

var _ = Describe("DaysRemaining", func() {
	today := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

	It("should return zero for a date expiring today", func() {
		sameDay := time.Date(2025, 6, 15, 2, 0, 0, 0, time.UTC)
		Expect(expiry.DaysRemaining(sameDay, today)).To(Equal(0))
	})

	It("should return positive counts for future dates", func() {
		Expect(expiry.DaysRemaining(today.AddDate(0, 0, 14), today)).To(Equal(14))
	})

	It("should return negative counts for past dates", func() {
		Expect(expiry.DaysRemaining(today.AddDate(0, 0, -3), today)).To(Equal(-3))
	})

	It("should count calendar days across shortened local days", func() {
		// A zone change between the two dates makes one local day shorter
		// than 24 hours; the count must still follow the calendar.
		before := time.FixedZone("before-shift", -12*3600)
		after := time.FixedZone("after-shift", 14*3600)
		start := time.Date(2025, 3, 30, 8, 0, 0, 0, before)
		end := time.Date(2025, 4, 9, 8, 0, 0, 0, after)
		Expect(expiry.DaysRemaining(end, start)).To(Equal(10))
	})

	It("should count calendar days between different locations", func() {
		riyadh := time.FixedZone("AST", 3*3600)
		utc := time.UTC
		Expect(expiry.DaysRemaining(
			time.Date(2025, 7, 1, 1, 0, 0, 0, riyadh),
			time.Date(2025, 6, 30, 23, 0, 0, 0, utc),
		)).To(Equal(1))
	})
})
