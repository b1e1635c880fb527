package postgres

import (
	"context"

	"github.com/alfarhan/hr-fleet-management/internal/company"
	companyDatamodel "github.com/alfarhan/hr-fleet-management/internal/core/datamodel/company"
	"github.com/alfarhan/hr-fleet-management/internal/database"
	"gorm.io/gorm"
)

type CompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) company.RepositoryAPI {
	return &CompanyRepository{db: db}
}

func (r *CompanyRepository) conn(ctx context.Context) *gorm.DB {
	return database.FromContext(ctx, r.db)
}

func (r *CompanyRepository) GetAll(ctx context.Context) ([]*companyDatamodel.Company, error) {
	var companies []*companyDatamodel.Company
	err := r.conn(ctx).Order("name ASC").Find(&companies).Error
	return companies, err
}

func (r *CompanyRepository) GetByID(ctx context.Context, id int64) (*companyDatamodel.Company, error) {
	var c companyDatamodel.Company
	err := r.conn(ctx).Where("id = ?", id).First(&c).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *CompanyRepository) Create(ctx context.Context, c *companyDatamodel.Company) error {
	return r.conn(ctx).Create(c).Error
}

func (r *CompanyRepository) Update(ctx context.Context, c *companyDatamodel.Company) error {
	return r.conn(ctx).Save(c).Error
}
