package postgres

import (
	"context"

	employeeDatamodel "github.com/alfarhan/hr-fleet-management/internal/core/datamodel/employee"
	"github.com/alfarhan/hr-fleet-management/internal/database"
	"github.com/alfarhan/hr-fleet-management/internal/employee"
	"gorm.io/gorm"
)

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) employee.RepositoryAPI {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) conn(ctx context.Context) *gorm.DB {
	return database.FromContext(ctx, r.db)
}

// List filters by company and, when departmentIDs is non-nil, restricts rows
// to those departments. A nil slice means no department restriction.
func (r *EmployeeRepository) List(ctx context.Context, companyID int64, departmentIDs []int64, params employee.ListParams) ([]*employeeDatamodel.Employee, int64, error) {
	query := r.conn(ctx).Model(&employeeDatamodel.Employee{}).Where("company_id = ?", companyID)

	if departmentIDs != nil {
		query = query.Where("department_id IN ?", departmentIDs)
	}
	if params.DepartmentID != nil {
		query = query.Where("department_id = ?", *params.DepartmentID)
	}
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		query = query.Where("name LIKE ? OR name_ar LIKE ? OR employee_code LIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []*employeeDatamodel.Employee
	err := query.Order("name ASC").Limit(params.Limit).Offset(params.Offset).Find(&rows).Error
	return rows, total, err
}

func (r *EmployeeRepository) GetByID(ctx context.Context, companyID, id int64) (*employeeDatamodel.Employee, error) {
	var emp employeeDatamodel.Employee
	err := r.conn(ctx).Where("company_id = ? AND id = ?", companyID, id).First(&emp).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &emp, nil
}

func (r *EmployeeRepository) GetByCode(ctx context.Context, companyID int64, code string) (*employeeDatamodel.Employee, error) {
	var emp employeeDatamodel.Employee
	err := r.conn(ctx).Where("company_id = ? AND employee_code = ?", companyID, code).First(&emp).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &emp, nil
}

func (r *EmployeeRepository) GetByNationalID(ctx context.Context, companyID int64, nationalID string) (*employeeDatamodel.Employee, error) {
	var emp employeeDatamodel.Employee
	err := r.conn(ctx).Where("company_id = ? AND national_id = ?", companyID, nationalID).First(&emp).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &emp, nil
}

func (r *EmployeeRepository) Create(ctx context.Context, emp *employeeDatamodel.Employee) error {
	return r.conn(ctx).Create(emp).Error
}

func (r *EmployeeRepository) Update(ctx context.Context, emp *employeeDatamodel.Employee) error {
	return r.conn(ctx).Save(emp).Error
}

func (r *EmployeeRepository) Delete(ctx context.Context, companyID, id int64) error {
	return r.conn(ctx).Where("company_id = ? AND id = ?", companyID, id).Delete(&employeeDatamodel.Employee{}).Error
}
