package company

import "time"

const (
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusSuspended = "suspended"
)

const (
	SubscriptionActive    = "active"
	SubscriptionTrial     = "trial"
	SubscriptionExpired   = "expired"
	SubscriptionSuspended = "suspended"
)

type Company struct {
	ID     int64  `gorm:"primaryKey"`
	Name   string `gorm:"column:name;not null"`
	Status string `gorm:"column:status;default:active"`

	IsTrial        bool       `gorm:"column:is_trial;default:false"`
	TrialStartDate *time.Time `gorm:"column:trial_start_date;type:date"`
	TrialEndDate   *time.Time `gorm:"column:trial_end_date;type:date"`

	SubscriptionStatus    string     `gorm:"column:subscription_status;default:trial"`
	SubscriptionPlan      string     `gorm:"column:subscription_plan;default:basic"`
	SubscriptionStartDate *time.Time `gorm:"column:subscription_start_date;type:date"`
	SubscriptionEndDate   *time.Time `gorm:"column:subscription_end_date;type:date"`
	AutoRenew             bool       `gorm:"column:auto_renew;default:false"`

	// Per-company ceiling overrides. Nil inherits the plan limit; zero
	// disables the resource entirely.
	MaxUsers       *int `gorm:"column:max_users"`
	MaxEmployees   *int `gorm:"column:max_employees"`
	MaxVehicles    *int `gorm:"column:max_vehicles"`
	MaxDepartments *int `gorm:"column:max_departments"`

	BillingEmail   string `gorm:"column:billing_email"`
	BillingAddress string `gorm:"column:billing_address"`

	CreatedAt time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt time.Time `gorm:"column:updated_at;default:now()"`
}

func (Company) TableName() string {
	return "companies"
}
