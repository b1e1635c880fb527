package postgres

import (
	"context"

	departmentDatamodel "github.com/alfarhan/hr-fleet-management/internal/core/datamodel/department"
	"github.com/alfarhan/hr-fleet-management/internal/database"
	"github.com/alfarhan/hr-fleet-management/internal/department"
	"gorm.io/gorm"
)

type DepartmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) department.RepositoryAPI {
	return &DepartmentRepository{db: db}
}

func (r *DepartmentRepository) conn(ctx context.Context) *gorm.DB {
	return database.FromContext(ctx, r.db)
}

func (r *DepartmentRepository) GetByCompany(ctx context.Context, companyID int64) ([]*departmentDatamodel.Department, error) {
	var departments []*departmentDatamodel.Department
	err := r.conn(ctx).Where("company_id = ?", companyID).Order("name ASC").Find(&departments).Error
	return departments, err
}

func (r *DepartmentRepository) GetByID(ctx context.Context, companyID, id int64) (*departmentDatamodel.Department, error) {
	var dept departmentDatamodel.Department
	err := r.conn(ctx).Where("company_id = ? AND id = ?", companyID, id).First(&dept).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &dept, nil
}

func (r *DepartmentRepository) GetByName(ctx context.Context, companyID int64, name string) (*departmentDatamodel.Department, error) {
	var dept departmentDatamodel.Department
	err := r.conn(ctx).Where("company_id = ? AND name = ?", companyID, name).First(&dept).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &dept, nil
}

func (r *DepartmentRepository) Create(ctx context.Context, dept *departmentDatamodel.Department) error {
	return r.conn(ctx).Create(dept).Error
}

func (r *DepartmentRepository) Update(ctx context.Context, dept *departmentDatamodel.Department) error {
	return r.conn(ctx).Save(dept).Error
}

func (r *DepartmentRepository) Delete(ctx context.Context, companyID, id int64) error {
	return r.conn(ctx).Where("company_id = ? AND id = ?", companyID, id).Delete(&departmentDatamodel.Department{}).Error
}
