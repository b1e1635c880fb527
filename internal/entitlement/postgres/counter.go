package postgres

import (
	"context"

	"github.com/alfarhan/hr-fleet-management/internal/database"
	departmentDatamodel "github.com/alfarhan/hr-fleet-management/internal/core/datamodel/department"
	employeeDatamodel "github.com/alfarhan/hr-fleet-management/internal/core/datamodel/employee"
	userDatamodel "github.com/alfarhan/hr-fleet-management/internal/core/datamodel/user"
	vehicleDatamodel "github.com/alfarhan/hr-fleet-management/internal/core/datamodel/vehicle"
	"gorm.io/gorm"
)

// CounterRepository implements entitlement.Counter with live gorm counts.
// Counts go through the transaction in ctx when one is open, so quota checks
// inside a create transaction observe the pending insert.
type CounterRepository struct {
	db *gorm.DB
}

func NewCounterRepository(db *gorm.DB) *CounterRepository {
	return &CounterRepository{db: db}
}

func (r *CounterRepository) CountUsers(ctx context.Context, companyID int64) (int64, error) {
	var count int64
	err := database.FromContext(ctx, r.db).
		Model(&userDatamodel.User{}).
		Where("company_id = ?", companyID).
		Count(&count).Error
	return count, err
}

func (r *CounterRepository) CountEmployees(ctx context.Context, companyID int64) (int64, error) {
	var count int64
	err := database.FromContext(ctx, r.db).
		Model(&employeeDatamodel.Employee{}).
		Where("company_id = ?", companyID).
		Count(&count).Error
	return count, err
}

func (r *CounterRepository) CountVehicles(ctx context.Context, companyID int64) (int64, error) {
	var count int64
	err := database.FromContext(ctx, r.db).
		Model(&vehicleDatamodel.Vehicle{}).
		Where("company_id = ?", companyID).
		Count(&count).Error
	return count, err
}

func (r *CounterRepository) CountDepartments(ctx context.Context, companyID int64) (int64, error) {
	var count int64
	err := database.FromContext(ctx, r.db).
		Model(&departmentDatamodel.Department{}).
		Where("company_id = ?", companyID).
		Count(&count).Error
	return count, err
}
