package postgres

import (
	"database/sql"
	"fmt"

	"github.com/alfarhan/hr-fleet-management/internal/auth"
	"github.com/alfarhan/hr-fleet-management/internal/permission"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

// GetCredentialsForEmail returns every login candidate for the email. The
// unique constraint on users is (company_id, email), so the same address can
// appear once per company and the service decides which row applies.
func (r *Repository) GetCredentialsForEmail(email string) ([]auth.Credentials, error) {
	query := `SELECT id, company_id, password_hash, is_active FROM users WHERE email = ?`

	rows, err := r.db.Raw(query, email).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var creds []auth.Credentials
	for rows.Next() {
		var c auth.Credentials
		if err := rows.Scan(&c.UserID, &c.CompanyID, &c.PasswordHash, &c.Active); err != nil {
			return nil, err
		}
		creds = append(creds, c)
	}
	if len(creds) == 0 {
		return nil, fmt.Errorf("user not found")
	}
	return creds, nil
}

func (r *Repository) GetUserWithPermissions(userID int64) (*auth.User, error) {
	var user auth.User

	query := `SELECT id, email, name, company_id, user_type, role, assigned_department_id
	          FROM users WHERE id = ? AND is_active = true`

	row := r.db.Raw(query, userID).Row()
	if err := row.Scan(&user.ID, &user.Email, &user.Name, &user.CompanyID,
		&user.UserType, &user.Role, &user.AssignedDepartmentID); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user not found")
		}
		return nil, err
	}

	permQuery := `SELECT module, permissions FROM user_module_permissions WHERE user_id = ?`

	rows, err := r.db.Raw(permQuery, userID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	grants := make(map[permission.Module]permission.CapabilitySet)
	for rows.Next() {
		var module string
		var mask int
		if err := rows.Scan(&module, &mask); err != nil {
			return nil, err
		}
		grants[permission.Module(module)] = permission.FromBitmask(mask)
	}
	user.Permissions = grants

	deptQuery := `SELECT department_id FROM user_department_access WHERE user_id = ?`

	deptRows, err := r.db.Raw(deptQuery, userID).Rows()
	if err != nil {
		return nil, err
	}
	defer deptRows.Close()

	var deptIDs []int64
	for deptRows.Next() {
		var id int64
		if err := deptRows.Scan(&id); err != nil {
			return nil, err
		}
		deptIDs = append(deptIDs, id)
	}
	user.DepartmentGrants = deptIDs

	return &user, nil
}
