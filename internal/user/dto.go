package user

import (
	"strings"

	userDatamodel "github.com/alfarhan/hr-fleet-management/internal/core/datamodel/user"
	"github.com/alfarhan/hr-fleet-management/internal/permission"
)

type CreateUserDTO struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`

	EmployeeID           *int64 `json:"employee_id"`
	AssignedDepartmentID *int64 `json:"assigned_department_id"`
}

func (d *CreateUserDTO) Validate() error {
	d.Email = strings.TrimSpace(strings.ToLower(d.Email))
	d.Name = strings.TrimSpace(d.Name)

	if d.Email == "" || !strings.Contains(d.Email, "@") {
		return &ValidationError{Field: "email", Message: "a valid email is required"}
	}
	if d.Name == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if len(d.Password) < 8 {
		return &ValidationError{Field: "password", Message: "password must be at least 8 characters"}
	}
	if d.Role != "" && !validRole(d.Role) {
		return &ValidationError{Field: "role", Message: "unknown role"}
	}
	return nil
}

func validRole(role string) bool {
	switch role {
	case userDatamodel.RoleAdmin, userDatamodel.RoleManager, userDatamodel.RoleHR,
		userDatamodel.RoleFinance, userDatamodel.RoleFleet, userDatamodel.RoleUser:
		return true
	}
	return false
}

type UpdateUserDTO struct {
	Name                 *string `json:"name"`
	Role                 *string `json:"role"`
	IsActive             *bool   `json:"is_active"`
	AssignedDepartmentID *int64  `json:"assigned_department_id"`
}

func (d *UpdateUserDTO) Validate() error {
	if d.Name != nil && strings.TrimSpace(*d.Name) == "" {
		return &ValidationError{Field: "name", Message: "name cannot be empty"}
	}
	if d.Role != nil && !validRole(*d.Role) {
		return &ValidationError{Field: "role", Message: "unknown role"}
	}
	return nil
}

// GrantPermissionDTO replaces the capability set a user holds on one module.
type GrantPermissionDTO struct {
	Module       string   `json:"module"`
	Capabilities []string `json:"capabilities"`
}

func (d *GrantPermissionDTO) Validate() (permission.Module, permission.CapabilitySet, error) {
	m := permission.Module(d.Module)
	if !permission.ValidModule(m) {
		return "", nil, &ValidationError{Field: "module", Message: "unknown module"}
	}

	set := permission.NewCapabilitySet()
	for _, name := range d.Capabilities {
		c, ok := permission.ParseCapability(name)
		if !ok {
			return "", nil, &ValidationError{Field: "capabilities", Message: "unknown capability: " + name}
		}
		set.Add(c)
	}
	if set.IsEmpty() {
		return "", nil, &ValidationError{Field: "capabilities", Message: "at least one capability is required"}
	}
	return m, set, nil
}

type GrantDepartmentDTO struct {
	DepartmentID int64 `json:"department_id"`
}

func (d *GrantDepartmentDTO) Validate() error {
	if d.DepartmentID <= 0 {
		return &ValidationError{Field: "department_id", Message: "department id is required"}
	}
	return nil
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

type UserListResponse struct {
	Users []*User `json:"users"`
	Total int     `json:"total"`
}
