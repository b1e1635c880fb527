package employee

import (
	"strings"
	"time"

	employeeDatamodel "github.com/alfarhan/hr-fleet-management/internal/core/datamodel/employee"
	"github.com/shopspring/decimal"
)

type CreateEmployeeDTO struct {
	EmployeeCode string `json:"employee_code"`
	NationalID   string `json:"national_id"`
	Name         string `json:"name"`
	NameAr       string `json:"name_ar"`
	JobTitle     string `json:"job_title"`
	Phone        string `json:"phone"`
	DepartmentID *int64 `json:"department_id"`

	BasicSalary        decimal.Decimal `json:"basic_salary"`
	HousingAllowance   decimal.Decimal `json:"housing_allowance"`
	TransportAllowance decimal.Decimal `json:"transport_allowance"`

	HireDate *time.Time `json:"hire_date"`
}

func (d *CreateEmployeeDTO) Validate() error {
	d.EmployeeCode = strings.TrimSpace(d.EmployeeCode)
	d.NationalID = strings.TrimSpace(d.NationalID)
	d.Name = strings.TrimSpace(d.Name)

	if d.EmployeeCode == "" {
		return &ValidationError{Field: "employee_code", Message: "employee code is required"}
	}
	if d.NationalID == "" {
		return &ValidationError{Field: "national_id", Message: "national id is required"}
	}
	if d.Name == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if d.BasicSalary.IsNegative() || d.HousingAllowance.IsNegative() || d.TransportAllowance.IsNegative() {
		return &ValidationError{Field: "basic_salary", Message: "salary amounts cannot be negative"}
	}
	return nil
}

type UpdateEmployeeDTO struct {
	Name         *string `json:"name"`
	NameAr       *string `json:"name_ar"`
	JobTitle     *string `json:"job_title"`
	Phone        *string `json:"phone"`
	DepartmentID *int64  `json:"department_id"`
	Status       *string `json:"status"`

	BasicSalary        *decimal.Decimal `json:"basic_salary"`
	HousingAllowance   *decimal.Decimal `json:"housing_allowance"`
	TransportAllowance *decimal.Decimal `json:"transport_allowance"`
}

func (d *UpdateEmployeeDTO) Validate() error {
	if d.Name != nil && strings.TrimSpace(*d.Name) == "" {
		return &ValidationError{Field: "name", Message: "name cannot be empty"}
	}
	if d.Status != nil {
		switch *d.Status {
		case employeeDatamodel.StatusActive, employeeDatamodel.StatusOnLeave, employeeDatamodel.StatusTerminated:
		default:
			return &ValidationError{Field: "status", Message: "invalid employee status"}
		}
	}
	if d.BasicSalary != nil && d.BasicSalary.IsNegative() {
		return &ValidationError{Field: "basic_salary", Message: "salary amounts cannot be negative"}
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
	DepartmentID *int64
	Status       string
	Search       string
	Limit        int
	Offset       int
}

type EmployeeListResponse struct {
	Employees []*Employee `json:"employees"`
	Total     int64       `json:"total"`
}
