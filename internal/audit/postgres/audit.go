package postgres

import (
	"context"

	auditDatamodel "github.com/alfarhan/hr-fleet-management/internal/core/datamodel/audit"
	"github.com/alfarhan/hr-fleet-management/internal/database"
	"gorm.io/gorm"
)

// AuditRepository is append-only: no update or delete methods exist.
type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Create(ctx context.Context, record *auditDatamodel.Record) error {
	return database.FromContext(ctx, r.db).Create(record).Error
}

func (r *AuditRepository) GetByEntity(ctx context.Context, entityType string, entityID int64, limit int) ([]*auditDatamodel.Record, error) {
	var records []*auditDatamodel.Record
	err := database.FromContext(ctx, r.db).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}

func (r *AuditRepository) GetByCompany(ctx context.Context, companyID int64, limit, offset int) ([]*auditDatamodel.Record, error) {
	var records []*auditDatamodel.Record
	err := database.FromContext(ctx, r.db).
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&records).Error
	return records, err
}
