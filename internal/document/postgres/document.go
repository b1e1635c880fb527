package postgres

import (
	"context"
	"time"

	documentDatamodel "github.com/alfarhan/hr-fleet-management/internal/core/datamodel/document"
	"github.com/alfarhan/hr-fleet-management/internal/database"
	"github.com/alfarhan/hr-fleet-management/internal/document"
	"gorm.io/gorm"
)

type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) document.RepositoryAPI {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) conn(ctx context.Context) *gorm.DB {
	return database.FromContext(ctx, r.db)
}

// scopedQuery restricts documents to employees inside the given departments.
// A nil slice means no restriction.
func (r *DocumentRepository) scopedQuery(ctx context.Context, companyID int64, departmentIDs []int64) *gorm.DB {
	query := r.conn(ctx).Model(&documentDatamodel.Document{}).Where("documents.company_id = ?", companyID)
	if departmentIDs != nil {
		query = query.
			Joins("JOIN employees ON employees.id = documents.employee_id").
			Where("employees.department_id IN ?", departmentIDs)
	}
	return query
}

func (r *DocumentRepository) List(ctx context.Context, companyID int64, departmentIDs []int64, params document.ListParams) ([]*documentDatamodel.Document, int64, error) {
	query := r.scopedQuery(ctx, companyID, departmentIDs)

	if params.EmployeeID != nil {
		query = query.Where("documents.employee_id = ?", *params.EmployeeID)
	}
	if params.Type != "" {
		query = query.Where("documents.type = ?", params.Type)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("documents.expiry_date ASC")
	if params.Limit > 0 {
		query = query.Limit(params.Limit).Offset(params.Offset)
	}

	var rows []*documentDatamodel.Document
	err := query.Find(&rows).Error
	return rows, total, err
}

func (r *DocumentRepository) GetByID(ctx context.Context, companyID, id int64) (*documentDatamodel.Document, error) {
	var doc documentDatamodel.Document
	err := r.conn(ctx).Where("company_id = ? AND id = ?", companyID, id).First(&doc).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &doc, nil
}

func (r *DocumentRepository) GetExpiringBefore(ctx context.Context, companyID int64, departmentIDs []int64, cutoff time.Time) ([]*documentDatamodel.Document, error) {
	var rows []*documentDatamodel.Document
	err := r.scopedQuery(ctx, companyID, departmentIDs).
		Where("documents.expiry_date IS NOT NULL AND documents.expiry_date <= ?", cutoff).
		Order("documents.expiry_date ASC").
		Find(&rows).Error
	return rows, err
}

// ScanExpiringBefore crosses company boundaries; only the background scanner
// calls it.
func (r *DocumentRepository) ScanExpiringBefore(ctx context.Context, cutoff time.Time) ([]*documentDatamodel.Document, error) {
	var rows []*documentDatamodel.Document
	err := r.conn(ctx).
		Where("expiry_date IS NOT NULL AND expiry_date <= ?", cutoff).
		Order("expiry_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *DocumentRepository) Create(ctx context.Context, doc *documentDatamodel.Document) error {
	return r.conn(ctx).Create(doc).Error
}

func (r *DocumentRepository) Update(ctx context.Context, doc *documentDatamodel.Document) error {
	return r.conn(ctx).Save(doc).Error
}

func (r *DocumentRepository) Delete(ctx context.Context, companyID, id int64) error {
	return r.conn(ctx).Where("company_id = ? AND id = ?", companyID, id).Delete(&documentDatamodel.Document{}).Error
}
