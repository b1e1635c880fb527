package employee

import (
	"time"

	employeeDatamodel "github.com/alfarhan/hr-fleet-management/internal/core/datamodel/employee"
	"github.com/shopspring/decimal"
)

type Employee struct {
	ID           int64  `json:"id"`
	CompanyID    int64  `json:"company_id"`
	EmployeeCode string `json:"employee_code"`
	NationalID   string `json:"national_id"`
	Name         string `json:"name"`
	NameAr       string `json:"name_ar,omitempty"`
	JobTitle     string `json:"job_title,omitempty"`
	Phone        string `json:"phone,omitempty"`
	DepartmentID *int64 `json:"department_id,omitempty"`

	BasicSalary        decimal.Decimal `json:"basic_salary"`
	HousingAllowance   decimal.Decimal `json:"housing_allowance"`
	TransportAllowance decimal.Decimal `json:"transport_allowance"`

	HireDate  *time.Time `json:"hire_date,omitempty"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TotalSalary is the monthly gross: basic plus allowances.
func (e *Employee) TotalSalary() decimal.Decimal {
	return e.BasicSalary.Add(e.HousingAllowance).Add(e.TransportAllowance)
}

func FromDataModel(e *employeeDatamodel.Employee) *Employee {
	return &Employee{
		ID:                 e.ID,
		CompanyID:          e.CompanyID,
		EmployeeCode:       e.EmployeeCode,
		NationalID:         e.NationalID,
		Name:               e.Name,
		NameAr:             e.NameAr,
		JobTitle:           e.JobTitle,
		Phone:              e.Phone,
		DepartmentID:       e.DepartmentID,
		BasicSalary:        e.BasicSalary,
		HousingAllowance:   e.HousingAllowance,
		TransportAllowance: e.TransportAllowance,
		HireDate:           e.HireDate,
		Status:             e.Status,
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
	}
}
