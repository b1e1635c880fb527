package entitlement

import (
	"time"

	companyDatamodel "github.com/alfarhan/hr-fleet-management/internal/core/datamodel/company"
)

// sameOrAfter compares calendar dates, ignoring time of day. The boundary is
// inclusive: a subscription ending today is still active today.
func sameOrAfter(d, today time.Time) bool {
	dy, dm, dd := d.Date()
	ty, tm, td := today.Date()
	if dy != ty {
		return dy > ty
	}
	if dm != tm {
		return dm > tm
	}
	return dd >= td
}

// IsSubscriptionActive reports whether the paid subscription window covers
// today. Both conditions must hold; no other company state overrides this.
func IsSubscriptionActive(c *companyDatamodel.Company, today time.Time) bool {
	if c.SubscriptionStatus != companyDatamodel.SubscriptionActive {
		return false
	}
	if c.SubscriptionEndDate == nil {
		return false
	}
	return sameOrAfter(*c.SubscriptionEndDate, today)
}

// IsTrialActive requires the trial flag, an unexpired trial window and the
// trial subscription status together.
func IsTrialActive(c *companyDatamodel.Company, today time.Time) bool {
	if !c.IsTrial || c.SubscriptionStatus != companyDatamodel.SubscriptionTrial {
		return false
	}
	if c.TrialEndDate == nil {
		return false
	}
	return sameOrAfter(*c.TrialEndDate, today)
}

// HasActiveAccess is the gate used by request middleware: an active paid
// subscription or an active trial.
func HasActiveAccess(c *companyDatamodel.Company, today time.Time) bool {
	return IsSubscriptionActive(c, today) || IsTrialActive(c, today)
}

// SubscriptionWindowCovers reports whether the paid window covers today,
// ignoring the stored status. Needed when restoring a suspended company,
// whose status no longer reflects the dates.
func SubscriptionWindowCovers(c *companyDatamodel.Company, today time.Time) bool {
	return c.SubscriptionEndDate != nil && sameOrAfter(*c.SubscriptionEndDate, today)
}

// TrialWindowCovers is the trial counterpart of SubscriptionWindowCovers.
func TrialWindowCovers(c *companyDatamodel.Company, today time.Time) bool {
	return c.IsTrial && c.TrialEndDate != nil && sameOrAfter(*c.TrialEndDate, today)
}

// EffectiveLimits resolves the company's ceilings: the plan table supplies
// the base values and any non-nil company override wins, including zero
// (zero disables the resource).
func EffectiveLimits(c *companyDatamodel.Company) Limits {
	l := LimitsFor(Plan(c.SubscriptionPlan))
	if c.MaxUsers != nil {
		l.MaxUsers = *c.MaxUsers
	}
	if c.MaxEmployees != nil {
		l.MaxEmployees = *c.MaxEmployees
	}
	if c.MaxVehicles != nil {
		l.MaxVehicles = *c.MaxVehicles
	}
	if c.MaxDepartments != nil {
		l.MaxDepartments = *c.MaxDepartments
	}
	return l
}
