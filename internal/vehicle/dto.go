package vehicle

import (
	"strings"
	"time"

	vehicleDatamodel "github.com/alfarhan/hr-fleet-management/internal/core/datamodel/vehicle"
)

type CreateVehicleDTO struct {
	PlateNumber  string `json:"plate_number"`
	Make         string `json:"make"`
	Model        string `json:"model"`
	Year         int    `json:"year"`
	DepartmentID *int64 `json:"department_id"`

	RegistrationExpiry *time.Time `json:"registration_expiry"`
	InsuranceExpiry    *time.Time `json:"insurance_expiry"`
	InspectionExpiry   *time.Time `json:"inspection_expiry"`
}

func (d *CreateVehicleDTO) Validate() error {
	d.PlateNumber = strings.TrimSpace(d.PlateNumber)
	if d.PlateNumber == "" {
		return &ValidationError{Field: "plate_number", Message: "plate number is required"}
	}
	if d.Year != 0 && (d.Year < 1950 || d.Year > time.Now().Year()+1) {
		return &ValidationError{Field: "year", Message: "invalid vehicle year"}
	}
	return nil
}

type UpdateVehicleDTO struct {
	Make         *string `json:"make"`
	Model        *string `json:"model"`
	Year         *int    `json:"year"`
	Status       *string `json:"status"`
	AssignedTo   *int64  `json:"assigned_to"`
	DepartmentID *int64  `json:"department_id"`

	RegistrationExpiry *time.Time `json:"registration_expiry"`
	InsuranceExpiry    *time.Time `json:"insurance_expiry"`
	InspectionExpiry   *time.Time `json:"inspection_expiry"`
}

func (d *UpdateVehicleDTO) Validate() error {
	if d.Status != nil {
		switch *d.Status {
		case vehicleDatamodel.StatusAvailable, vehicleDatamodel.StatusRented,
			vehicleDatamodel.StatusWorkshop, vehicleDatamodel.StatusRetired:
		default:
			return &ValidationError{Field: "status", Message: "invalid vehicle status"}
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

type ListParams struct {
	Status string
	Search string
	Limit  int
	Offset int
}

type VehicleListResponse struct {
	Vehicles []*Vehicle `json:"vehicles"`
	Total    int64      `json:"total"`
}
