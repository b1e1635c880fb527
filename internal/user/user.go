package user

import (
	"time"

	userDatamodel "github.com/alfarhan/hr-fleet-management/internal/core/datamodel/user"
)

type User struct {
	ID        int64  `json:"id"`
	CompanyID *int64 `json:"company_id,omitempty"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	UserType  string `json:"user_type"`
	Role      string `json:"role"`

	EmployeeID           *int64 `json:"employee_id,omitempty"`
	AssignedDepartmentID *int64 `json:"assigned_department_id,omitempty"`

	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Permissions maps module name to the capability names held on it.
	Permissions map[string][]string `json:"permissions,omitempty"`
	// DepartmentAccess lists explicitly granted department ids.
	DepartmentAccess []int64 `json:"department_access,omitempty"`
}

func FromDataModel(u *userDatamodel.User) *User {
	return &User{
		ID:                   u.ID,
		CompanyID:            u.CompanyID,
		Email:                u.Email,
		Name:                 u.Name,
		UserType:             u.UserType,
		Role:                 u.Role,
		EmployeeID:           u.EmployeeID,
		AssignedDepartmentID: u.AssignedDepartmentID,
		IsActive:             u.IsActive,
		CreatedAt:            u.CreatedAt,
		UpdatedAt:            u.UpdatedAt,
	}
}
