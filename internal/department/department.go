package department

import (
	"time"

	departmentDatamodel "github.com/alfarhan/hr-fleet-management/internal/core/datamodel/department"
)

type Department struct {
	ID        int64     `json:"id"`
	CompanyID int64     `json:"company_id"`
	Name      string    `json:"name"`
	NameAr    string    `json:"name_ar,omitempty"`
	ManagerID *int64    `json:"manager_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromDataModel(d *departmentDatamodel.Department) *Department {
	return &Department{
		ID:        d.ID,
		CompanyID: d.CompanyID,
		Name:      d.Name,
		NameAr:    d.NameAr,
		ManagerID: d.ManagerID,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func ToDataModel(d *Department) *departmentDatamodel.Department {
	return &departmentDatamodel.Department{
		ID:        d.ID,
		CompanyID: d.CompanyID,
		Name:      d.Name,
		NameAr:    d.NameAr,
		ManagerID: d.ManagerID,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
