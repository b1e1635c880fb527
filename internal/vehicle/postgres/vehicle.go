package postgres

import (
	"context"
	"time"

	vehicleDatamodel "github.com/alfarhan/hr-fleet-management/internal/core/datamodel/vehicle"
	"github.com/alfarhan/hr-fleet-management/internal/database"
	"github.com/alfarhan/hr-fleet-management/internal/vehicle"
	"gorm.io/gorm"
)

type VehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) vehicle.RepositoryAPI {
	return &VehicleRepository{db: db}
}

func (r *VehicleRepository) conn(ctx context.Context) *gorm.DB {
	return database.FromContext(ctx, r.db)
}

func (r *VehicleRepository) List(ctx context.Context, companyID int64, params vehicle.ListParams) ([]*vehicleDatamodel.Vehicle, int64, error) {
	query := r.conn(ctx).Model(&vehicleDatamodel.Vehicle{}).Where("company_id = ?", companyID)

	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		query = query.Where("plate_number LIKE ? OR make LIKE ? OR model LIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []*vehicleDatamodel.Vehicle
	err := query.Order("plate_number ASC").Limit(params.Limit).Offset(params.Offset).Find(&rows).Error
	return rows, total, err
}

func (r *VehicleRepository) GetByID(ctx context.Context, companyID, id int64) (*vehicleDatamodel.Vehicle, error) {
	var v vehicleDatamodel.Vehicle
	err := r.conn(ctx).Where("company_id = ? AND id = ?", companyID, id).First(&v).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

func (r *VehicleRepository) GetByPlate(ctx context.Context, companyID int64, plate string) (*vehicleDatamodel.Vehicle, error) {
	var v vehicleDatamodel.Vehicle
	err := r.conn(ctx).Where("company_id = ? AND plate_number = ?", companyID, plate).First(&v).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

// GetExpiringBefore returns vehicles where any tracked date falls on or
// before the cutoff. Retired vehicles are excluded.
func (r *VehicleRepository) GetExpiringBefore(ctx context.Context, companyID int64, cutoff time.Time) ([]*vehicleDatamodel.Vehicle, error) {
	var rows []*vehicleDatamodel.Vehicle
	err := r.conn(ctx).
		Where("company_id = ? AND status <> ?", companyID, vehicleDatamodel.StatusRetired).
		Where("registration_expiry <= ? OR insurance_expiry <= ? OR inspection_expiry <= ?", cutoff, cutoff, cutoff).
		Order("plate_number ASC").
		Find(&rows).Error
	return rows, err
}

// ScanExpiringBefore is the cross-company variant used by the background
// scanner. No company filter on purpose.
func (r *VehicleRepository) ScanExpiringBefore(ctx context.Context, cutoff time.Time) ([]*vehicleDatamodel.Vehicle, error) {
	var rows []*vehicleDatamodel.Vehicle
	err := r.conn(ctx).
		Where("status <> ?", vehicleDatamodel.StatusRetired).
		Where("registration_expiry <= ? OR insurance_expiry <= ? OR inspection_expiry <= ?", cutoff, cutoff, cutoff).
		Order("company_id ASC, plate_number ASC").
		Find(&rows).Error
	return rows, err
}

func (r *VehicleRepository) Create(ctx context.Context, v *vehicleDatamodel.Vehicle) error {
	return r.conn(ctx).Create(v).Error
}

func (r *VehicleRepository) Update(ctx context.Context, v *vehicleDatamodel.Vehicle) error {
	return r.conn(ctx).Save(v).Error
}

func (r *VehicleRepository) Delete(ctx context.Context, companyID, id int64) error {
	return r.conn(ctx).Where("company_id = ? AND id = ?", companyID, id).Delete(&vehicleDatamodel.Vehicle{}).Error
}
