package company

import (
	"strings"

	"github.com/alfarhan/hr-fleet-management/internal/entitlement"
)

// DefaultTrialDays is the trial length granted to a new company.
const DefaultTrialDays = 14

type CreateCompanyDTO struct {
	Name           string `json:"name"`
	Plan           string `json:"plan"`
	BillingEmail   string `json:"billing_email"`
	BillingAddress string `json:"billing_address"`

	AdminName     string `json:"admin_name"`
	AdminEmail    string `json:"admin_email"`
	AdminPassword string `json:"admin_password"`
}

func (d *CreateCompanyDTO) Validate() error {
	d.Name = strings.TrimSpace(d.Name)
	d.AdminEmail = strings.TrimSpace(strings.ToLower(d.AdminEmail))

	if d.Name == "" {
		return &ValidationError{Field: "name", Message: "company name is required"}
	}
	if d.Plan != "" && !entitlement.ValidPlan(entitlement.Plan(d.Plan)) {
		return &ValidationError{Field: "plan", Message: "unknown subscription plan"}
	}
	if d.AdminEmail == "" {
		return &ValidationError{Field: "admin_email", Message: "admin email is required"}
	}
	if len(d.AdminPassword) < 8 {
		return &ValidationError{Field: "admin_password", Message: "admin password must be at least 8 characters"}
	}
	return nil
}

type ChangePlanDTO struct {
	Plan string `json:"plan"`
}

func (d *ChangePlanDTO) Validate() error {
	if !entitlement.ValidPlan(entitlement.Plan(d.Plan)) {
		return &ValidationError{Field: "plan", Message: "unknown subscription plan"}
	}
	return nil
}

type ExtendTrialDTO struct {
	Days int `json:"days"`
}

func (d *ExtendTrialDTO) Validate() error {
	if d.Days <= 0 || d.Days > 365 {
		return &ValidationError{Field: "days", Message: "days must be between 1 and 365"}
	}
	return nil
}

// OverrideLimitsDTO sets per-company ceilings. Nil leaves a ceiling on the
// plan default; zero disables the resource.
type OverrideLimitsDTO struct {
	MaxUsers       *int `json:"max_users"`
	MaxEmployees   *int `json:"max_employees"`
	MaxVehicles    *int `json:"max_vehicles"`
	MaxDepartments *int `json:"max_departments"`
}

func (d *OverrideLimitsDTO) Validate() error {
	for _, v := range []*int{d.MaxUsers, d.MaxEmployees, d.MaxVehicles, d.MaxDepartments} {
		if v != nil && *v < 0 {
			return &ValidationError{Field: "limits", Message: "limits cannot be negative"}
		}
	}
	return nil
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

type CompanyListResponse struct {
	Companies []*Company `json:"companies"`
	Total     int        `json:"total"`
}
