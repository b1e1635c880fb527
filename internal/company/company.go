package company

import (
	"time"

	companyDatamodel "github.com/alfarhan/hr-fleet-management/internal/core/datamodel/company"
	"github.com/alfarhan/hr-fleet-management/internal/entitlement"
)

type Company struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`

	IsTrial        bool       `json:"is_trial"`
	TrialStartDate *time.Time `json:"trial_start_date,omitempty"`
	TrialEndDate   *time.Time `json:"trial_end_date,omitempty"`

	SubscriptionStatus    string     `json:"subscription_status"`
	SubscriptionPlan      string     `json:"subscription_plan"`
	SubscriptionStartDate *time.Time `json:"subscription_start_date,omitempty"`
	SubscriptionEndDate   *time.Time `json:"subscription_end_date,omitempty"`
	AutoRenew             bool       `json:"auto_renew"`

	Limits entitlement.Limits `json:"limits"`

	BillingEmail   string `json:"billing_email,omitempty"`
	BillingAddress string `json:"billing_address,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromDataModel(c *companyDatamodel.Company) *Company {
	return &Company{
		ID:                    c.ID,
		Name:                  c.Name,
		Status:                c.Status,
		IsTrial:               c.IsTrial,
		TrialStartDate:        c.TrialStartDate,
		TrialEndDate:          c.TrialEndDate,
		SubscriptionStatus:    c.SubscriptionStatus,
		SubscriptionPlan:      c.SubscriptionPlan,
		SubscriptionStartDate: c.SubscriptionStartDate,
		SubscriptionEndDate:   c.SubscriptionEndDate,
		AutoRenew:             c.AutoRenew,
		Limits:                entitlement.EffectiveLimits(c),
		BillingEmail:          c.BillingEmail,
		BillingAddress:        c.BillingAddress,
		CreatedAt:             c.CreatedAt,
		UpdatedAt:             c.UpdatedAt,
	}
}
