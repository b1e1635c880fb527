package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusActive     = "active"
	StatusOnLeave    = "on_leave"
	StatusTerminated = "terminated"
)

type Employee struct {
	ID           int64  `gorm:"primaryKey"`
	CompanyID    int64  `gorm:"column:company_id;not null;uniqueIndex:idx_employees_company_code;uniqueIndex:idx_employees_company_national_id"`
	EmployeeCode string `gorm:"column:employee_code;not null;uniqueIndex:idx_employees_company_code"`
	NationalID   string `gorm:"column:national_id;not null;uniqueIndex:idx_employees_company_national_id"`

	Name         string `gorm:"column:name;not null"`
	NameAr       string `gorm:"column:name_ar"`
	JobTitle     string `gorm:"column:job_title"`
	Phone        string `gorm:"column:phone"`
	DepartmentID *int64 `gorm:"column:department_id;index"`

	BasicSalary      decimal.Decimal `gorm:"column:basic_salary;type:numeric(12,2)"`
	HousingAllowance decimal.Decimal `gorm:"column:housing_allowance;type:numeric(12,2)"`
	TransportAllowance decimal.Decimal `gorm:"column:transport_allowance;type:numeric(12,2)"`

	HireDate *time.Time `gorm:"column:hire_date;type:date"`
	Status   string     `gorm:"column:status;default:active"`

	CreatedAt time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt time.Time `gorm:"column:updated_at;default:now()"`
}

func (Employee) TableName() string {
	return "employees"
}
