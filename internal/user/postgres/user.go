package postgres

import (
	"context"

	userDatamodel "github.com/alfarhan/hr-fleet-management/internal/core/datamodel/user"
	"github.com/alfarhan/hr-fleet-management/internal/database"
	"github.com/alfarhan/hr-fleet-management/internal/user"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.RepositoryAPI {
	return &UserRepository{db: db}
}

func (r *UserRepository) conn(ctx context.Context) *gorm.DB {
	return database.FromContext(ctx, r.db)
}

func (r *UserRepository) GetByCompany(ctx context.Context, companyID int64) ([]*userDatamodel.User, error) {
	var users []*userDatamodel.User
	err := r.conn(ctx).Where("company_id = ?", companyID).Order("name ASC").Find(&users).Error
	return users, err
}

func (r *UserRepository) GetByID(ctx context.Context, companyID, id int64) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.conn(ctx).Where("company_id = ? AND id = ?", companyID, id).First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, companyID int64, email string) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.conn(ctx).Where("company_id = ? AND email = ?", companyID, email).First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *userDatamodel.User) error {
	return r.conn(ctx).Create(u).Error
}

func (r *UserRepository) Update(ctx context.Context, u *userDatamodel.User) error {
	return r.conn(ctx).Save(u).Error
}

func (r *UserRepository) ListPermissions(ctx context.Context, userID int64) ([]*userDatamodel.ModulePermission, error) {
	var rows []*userDatamodel.ModulePermission
	err := r.conn(ctx).Where("user_id = ?", userID).Order("module ASC").Find(&rows).Error
	return rows, err
}

// UpsertPermission replaces the bitmask when a grant row already exists for
// the (user, module) pair.
func (r *UserRepository) UpsertPermission(ctx context.Context, p *userDatamodel.ModulePermission) error {
	return r.conn(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "module"}},
		DoUpdates: clause.AssignmentColumns([]string{"permissions", "granted_by", "updated_at"}),
	}).Create(p).Error
}

func (r *UserRepository) DeletePermission(ctx context.Context, userID int64, module string) error {
	return r.conn(ctx).
		Where("user_id = ? AND module = ?", userID, module).
		Delete(&userDatamodel.ModulePermission{}).Error
}

func (r *UserRepository) ListDepartmentAccess(ctx context.Context, userID int64) ([]*userDatamodel.DepartmentAccess, error) {
	var rows []*userDatamodel.DepartmentAccess
	err := r.conn(ctx).Where("user_id = ?", userID).Find(&rows).Error
	return rows, err
}

func (r *UserRepository) GrantDepartmentAccess(ctx context.Context, a *userDatamodel.DepartmentAccess) error {
	return r.conn(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "department_id"}},
		DoNothing: true,
	}).Create(a).Error
}

func (r *UserRepository) RevokeDepartmentAccess(ctx context.Context, userID, departmentID int64) error {
	return r.conn(ctx).
		Where("user_id = ? AND department_id = ?", userID, departmentID).
		Delete(&userDatamodel.DepartmentAccess{}).Error
}
