package user

import "time"

const (
	TypeSystemAdmin  = "system_admin"
	TypeCompanyAdmin = "company_admin"
	TypeEmployee     = "employee"
)

const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleHR      = "hr"
	RoleFinance = "finance"
	RoleFleet   = "fleet"
	RoleUser    = "user"
)

type User struct {
	ID           int64  `gorm:"primaryKey"`
	CompanyID    *int64 `gorm:"column:company_id;uniqueIndex:idx_users_company_email"`
	Email        string `gorm:"column:email;not null;uniqueIndex:idx_users_company_email"`
	Name         string `gorm:"column:name;not null"`
	PasswordHash string `gorm:"column:password_hash;not null"`
	UserType     string `gorm:"column:user_type;default:employee"`
	Role         string `gorm:"column:role;default:user"`

	EmployeeID           *int64 `gorm:"column:employee_id"`
	AssignedDepartmentID *int64 `gorm:"column:assigned_department_id"`
	CreatedBy            *int64 `gorm:"column:created_by"`

	IsActive  bool      `gorm:"column:is_active;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt time.Time `gorm:"column:updated_at;default:now()"`
}

func (User) TableName() string {
	return "users"
}

// ModulePermission is one grant row: the capability bitmask a user holds on a
// module. Absence of a row means no access to that module.
type ModulePermission struct {
	ID          int64     `gorm:"primaryKey"`
	UserID      int64     `gorm:"column:user_id;not null;uniqueIndex:idx_user_module"`
	Module      string    `gorm:"column:module;not null;uniqueIndex:idx_user_module"`
	Permissions int       `gorm:"column:permissions;not null;default:0"`
	GrantedBy   *int64    `gorm:"column:granted_by"`
	CreatedAt   time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt   time.Time `gorm:"column:updated_at;default:now()"`
}

func (ModulePermission) TableName() string {
	return "user_module_permissions"
}

// DepartmentAccess is an explicit department grant beyond the user's single
// assigned department.
type DepartmentAccess struct {
	ID           int64     `gorm:"primaryKey"`
	UserID       int64     `gorm:"column:user_id;not null;uniqueIndex:idx_user_department"`
	DepartmentID int64     `gorm:"column:department_id;not null;uniqueIndex:idx_user_department"`
	GrantedBy    *int64    `gorm:"column:granted_by"`
	CreatedAt    time.Time `gorm:"column:created_at;default:now()"`
}

func (DepartmentAccess) TableName() string {
	return "user_department_access"
}
