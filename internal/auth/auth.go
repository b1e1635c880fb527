package auth

import (
	"errors"
	"time"

	"github.com/alfarhan/hr-fleet-management/internal/permission"
	"github.com/alfarhan/hr-fleet-management/internal/scope"
	"github.com/golang-jwt/jwt/v5"
)

const (
	UserTypeSystemAdmin  = "system_admin"
	UserTypeCompanyAdmin = "company_admin"
	UserTypeEmployee     = "employee"

	RoleAdmin = "admin"
)

// User is the authenticated principal carried in request context. It holds
// everything the permission checker and department scoping need, loaded once
// per request by the auth middleware.
type User struct {
	ID                   int64                                          `json:"id"`
	Email                string                                         `json:"email"`
	Name                 string                                         `json:"name"`
	CompanyID            *int64                                         `json:"company_id,omitempty"`
	UserType             string                                         `json:"user_type"`
	Role                 string                                         `json:"role"`
	AssignedDepartmentID *int64                                         `json:"assigned_department_id,omitempty"`
	DepartmentGrants     []int64                                        `json:"department_grants,omitempty"`
	Permissions          map[permission.Module]permission.CapabilitySet `json:"-"`
}

// IsAdmin is the bypass rule: legacy admin role or system admin user type.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.UserType == UserTypeSystemAdmin
}

// ModuleGrant implements permission.Subject.
func (u *User) ModuleGrant(m permission.Module) (permission.CapabilitySet, bool) {
	grant, ok := u.Permissions[m]
	return grant, ok
}

// Scope computes the department visibility for this user.
func (u *User) Scope() scope.AccessScope {
	return scope.ForUser(u.IsAdmin(), u.AssignedDepartmentID, u.DepartmentGrants)
}

// PermissionsView renders the grant map for JSON responses.
func (u *User) PermissionsView() map[string][]string {
	out := make(map[string][]string, len(u.Permissions))
	for m, caps := range u.Permissions {
		out[string(m)] = caps.List()
	}
	return out
}

// TokenGenerator creates and validates tokens.
type TokenGenerator interface {
	GenerateAccessToken(userID string, email string) (token string, err error)
	GenerateRefreshToken(userID string, email string) (token string, err error)
	ValidateToken(tokenString string) (*Claims, error)
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Claims represents JWT token claims
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type JWTTokenGenerator struct {
	AccessTokenSecret  []byte
	RefreshTokenSecret []byte
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
}

// Credentials is one login candidate for an email address. Emails are unique
// per company, not globally, so a lookup can return one row per company.
type Credentials struct {
	UserID       int64
	CompanyID    *int64
	PasswordHash string
	Active       bool
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrUserInactive       = errors.New("user is inactive")
	ErrAmbiguousEmail     = errors.New("email is used in more than one company, company_id is required")
)
