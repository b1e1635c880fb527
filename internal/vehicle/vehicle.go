package vehicle

import (
	"time"

	vehicleDatamodel "github.com/alfarhan/hr-fleet-management/internal/core/datamodel/vehicle"
	"github.com/alfarhan/hr-fleet-management/internal/expiry"
)

type Vehicle struct {
	ID           int64  `json:"id"`
	CompanyID    int64  `json:"company_id"`
	PlateNumber  string `json:"plate_number"`
	Make         string `json:"make,omitempty"`
	Model        string `json:"model,omitempty"`
	Year         int    `json:"year,omitempty"`
	Status       string `json:"status"`
	AssignedTo   *int64 `json:"assigned_to,omitempty"`
	DepartmentID *int64 `json:"department_id,omitempty"`

	RegistrationExpiry *time.Time `json:"registration_expiry,omitempty"`
	InsuranceExpiry    *time.Time `json:"insurance_expiry,omitempty"`
	InspectionExpiry   *time.Time `json:"inspection_expiry,omitempty"`

	RegistrationStatus expiry.Status `json:"registration_status,omitempty"`
	InsuranceStatus    expiry.Status `json:"insurance_status,omitempty"`
	InspectionStatus   expiry.Status `json:"inspection_status,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ClassifyExpiries fills the three expiry status fields against the given
// reference date and warning window.
func (v *Vehicle) ClassifyExpiries(today time.Time, windowDays int) {
	if v.RegistrationExpiry != nil {
		v.RegistrationStatus = expiry.Classify(*v.RegistrationExpiry, today, windowDays)
	}
	if v.InsuranceExpiry != nil {
		v.InsuranceStatus = expiry.Classify(*v.InsuranceExpiry, today, windowDays)
	}
	if v.InspectionExpiry != nil {
		v.InspectionStatus = expiry.Classify(*v.InspectionExpiry, today, windowDays)
	}
}

func FromDataModel(v *vehicleDatamodel.Vehicle) *Vehicle {
	return &Vehicle{
		ID:                 v.ID,
		CompanyID:          v.CompanyID,
		PlateNumber:        v.PlateNumber,
		Make:               v.Make,
		Model:              v.Model,
		Year:               v.Year,
		Status:             v.Status,
		AssignedTo:         v.AssignedTo,
		DepartmentID:       v.DepartmentID,
		RegistrationExpiry: v.RegistrationExpiry,
		InsuranceExpiry:    v.InsuranceExpiry,
		InspectionExpiry:   v.InspectionExpiry,
		CreatedAt:          v.CreatedAt,
		UpdatedAt:          v.UpdatedAt,
	}
}
