package user

import (
	"context"
	"log/slog"
	"time"

	"github.com/alfarhan/hr-fleet-management/internal"
	"github.com/alfarhan/hr-fleet-management/internal/audit"
	"github.com/alfarhan/hr-fleet-management/internal/auth"
	companyDatamodel "github.com/alfarhan/hr-fleet-management/internal/core/datamodel/company"
	userDatamodel "github.com/alfarhan/hr-fleet-management/internal/core/datamodel/user"
	"github.com/alfarhan/hr-fleet-management/internal/database"
	"github.com/alfarhan/hr-fleet-management/internal/entitlement"
	"github.com/alfarhan/hr-fleet-management/internal/permission"
)

type RepositoryAPI interface {
	GetByCompany(ctx context.Context, companyID int64) ([]*userDatamodel.User, error)
	GetByID(ctx context.Context, companyID, id int64) (*userDatamodel.User, error)
	GetByEmail(ctx context.Context, companyID int64, email string) (*userDatamodel.User, error)
	Create(ctx context.Context, u *userDatamodel.User) error
	Update(ctx context.Context, u *userDatamodel.User) error

	ListPermissions(ctx context.Context, userID int64) ([]*userDatamodel.ModulePermission, error)
	UpsertPermission(ctx context.Context, p *userDatamodel.ModulePermission) error
	DeletePermission(ctx context.Context, userID int64, module string) error

	ListDepartmentAccess(ctx context.Context, userID int64) ([]*userDatamodel.DepartmentAccess, error)
	GrantDepartmentAccess(ctx context.Context, a *userDatamodel.DepartmentAccess) error
	RevokeDepartmentAccess(ctx context.Context, userID, departmentID int64) error
}

type CompanyGetter interface {
	GetByID(ctx context.Context, id int64) (*companyDatamodel.Company, error)
}

type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

type Service struct {
	repo        RepositoryAPI
	companies   CompanyGetter
	hasher      PasswordHasher
	entitlement *entitlement.Service
	auditor     *audit.Recorder
	tx          *database.TransactionManager
	logger      *slog.Logger
}

func NewService(repo RepositoryAPI, companies CompanyGetter, hasher PasswordHasher, ent *entitlement.Service, auditor *audit.Recorder, tx *database.TransactionManager, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		companies:   companies,
		hasher:      hasher,
		entitlement: ent,
		auditor:     auditor,
		tx:          tx,
		logger:      logger,
	}
}

func (s *Service) List(ctx context.Context, actor *auth.User) ([]*User, error) {
	if actor.CompanyID == nil {
		return nil, internal.ErrCompanyNotFound
	}

	rows, err := s.repo.GetByCompany(ctx, *actor.CompanyID)
	if err != nil {
		s.logger.Error("failed to list users", "error", err, "company_id", *actor.CompanyID)
		return nil, err
	}

	users := make([]*User, 0, len(rows))
	for _, row := range rows {
		users = append(users, FromDataModel(row))
	}
	return users, nil
}

func (s *Service) Get(ctx context.Context, actor *auth.User, id int64) (*User, error) {
	if actor.CompanyID == nil {
		return nil, internal.ErrCompanyNotFound
	}

	row, err := s.repo.GetByID(ctx, *actor.CompanyID, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, internal.ErrUserNotFound
	}

	u := FromDataModel(row)
	if err := s.attachGrants(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Create adds a company user, subject to the seat limit.
func (s *Service) Create(ctx context.Context, actor *auth.User, dto CreateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}
	if actor.CompanyID == nil {
		return nil, internal.ErrCompanyNotFound
	}
	companyID := *actor.CompanyID

	company, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, internal.ErrCompanyNotFound
	}

	hash, err := s.hasher.HashPassword(dto.Password)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	role := dto.Role
	if role == "" {
		role = userDatamodel.RoleUser
	}

	var created *userDatamodel.User
	err = s.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		ok, err := s.entitlement.CanAddUser(txCtx, company)
		if err != nil {
			return err
		}
		if !ok {
			return internal.ErrUserLimitReached
		}

		if existing, err := s.repo.GetByEmail(txCtx, companyID, dto.Email); err != nil {
			return err
		} else if existing != nil {
			return internal.ErrDuplicateEmail
		}

		now := time.Now()
		u := &userDatamodel.User{
			CompanyID:            &companyID,
			Email:                dto.Email,
			Name:                 dto.Name,
			PasswordHash:         hash,
			UserType:             userDatamodel.TypeEmployee,
			Role:                 role,
			EmployeeID:           dto.EmployeeID,
			AssignedDepartmentID: dto.AssignedDepartmentID,
			CreatedBy:            &actor.ID,
			IsActive:             true,
			CreatedAt:            now,
			UpdatedAt:            now,
		}
		if err := s.repo.Create(txCtx, u); err != nil {
			return err
		}

		_, err = s.auditor.Record(txCtx, audit.Entry{
			CompanyID:  &companyID,
			ActorID:    &actor.ID,
			Action:     audit.ActionCreate,
			EntityType: "user",
			EntityID:   u.ID,
			EntityName: u.Email,
			NewData:    sanitized(u),
		})
		if err != nil {
			return err
		}

		created = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user created", "user_id", created.ID, "company_id", companyID)
	return FromDataModel(created), nil
}

func (s *Service) Update(ctx context.Context, actor *auth.User, id int64, dto UpdateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}
	if actor.CompanyID == nil {
		return nil, internal.ErrCompanyNotFound
	}
	companyID := *actor.CompanyID

	var updated *userDatamodel.User
	err := s.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		u, err := s.repo.GetByID(txCtx, companyID, id)
		if err != nil {
			return err
		}
		if u == nil {
			return internal.ErrUserNotFound
		}

		previous := sanitized(u)
		if dto.Name != nil {
			u.Name = *dto.Name
		}
		if dto.Role != nil {
			u.Role = *dto.Role
		}
		if dto.IsActive != nil {
			u.IsActive = *dto.IsActive
		}
		if dto.AssignedDepartmentID != nil {
			u.AssignedDepartmentID = dto.AssignedDepartmentID
		}
		u.UpdatedAt = time.Now()

		if err := s.repo.Update(txCtx, u); err != nil {
			return err
		}

		_, err = s.auditor.Record(txCtx, audit.Entry{
			CompanyID:    &companyID,
			ActorID:      &actor.ID,
			Action:       audit.ActionUpdate,
			EntityType:   "user",
			EntityID:     u.ID,
			EntityName:   u.Email,
			PreviousData: previous,
			NewData:      sanitized(u),
		})
		if err != nil {
			return err
		}

		updated = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	return FromDataModel(updated), nil
}

// GrantPermission replaces the capability set the target user holds on one
// module. The grant persists as the legacy bitmask.
func (s *Service) GrantPermission(ctx context.Context, actor *auth.User, userID int64, dto GrantPermissionDTO) error {
	module, set, err := dto.Validate()
	if err != nil {
		return internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}
	if actor.CompanyID == nil {
		return internal.ErrCompanyNotFound
	}
	companyID := *actor.CompanyID

	return s.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		target, err := s.repo.GetByID(txCtx, companyID, userID)
		if err != nil {
			return err
		}
		if target == nil {
			return internal.ErrUserNotFound
		}

		now := time.Now()
		row := &userDatamodel.ModulePermission{
			UserID:      userID,
			Module:      string(module),
			Permissions: set.Bitmask(),
			GrantedBy:   &actor.ID,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.repo.UpsertPermission(txCtx, row); err != nil {
			return err
		}

		_, err = s.auditor.Record(txCtx, audit.Entry{
			CompanyID:  &companyID,
			ActorID:    &actor.ID,
			Action:     audit.ActionGrant,
			EntityType: "user",
			EntityID:   userID,
			EntityName: target.Email,
			Details:    string(module),
			NewData:    map[string]interface{}{"module": module, "capabilities": set.List()},
		})
		return err
	})
}

// RevokePermission removes the user's grant row for a module entirely.
func (s *Service) RevokePermission(ctx context.Context, actor *auth.User, userID int64, module string) error {
	m := permission.Module(module)
	if !permission.ValidModule(m) {
		return internal.NewValidationError("unknown module", internal.ErrCodeInvalidModule)
	}
	if actor.CompanyID == nil {
		return internal.ErrCompanyNotFound
	}
	companyID := *actor.CompanyID

	return s.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		target, err := s.repo.GetByID(txCtx, companyID, userID)
		if err != nil {
			return err
		}
		if target == nil {
			return internal.ErrUserNotFound
		}

		if err := s.repo.DeletePermission(txCtx, userID, module); err != nil {
			return err
		}

		_, err = s.auditor.Record(txCtx, audit.Entry{
			CompanyID:  &companyID,
			ActorID:    &actor.ID,
			Action:     audit.ActionRevoke,
			EntityType: "user",
			EntityID:   userID,
			EntityName: target.Email,
			Details:    module,
		})
		return err
	})
}

// GrantDepartment gives the target user explicit access to one department.
func (s *Service) GrantDepartment(ctx context.Context, actor *auth.User, userID int64, dto GrantDepartmentDTO) error {
	if err := dto.Validate(); err != nil {
		return internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}
	if actor.CompanyID == nil {
		return internal.ErrCompanyNotFound
	}
	companyID := *actor.CompanyID

	return s.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		target, err := s.repo.GetByID(txCtx, companyID, userID)
		if err != nil {
			return err
		}
		if target == nil {
			return internal.ErrUserNotFound
		}

		if err := s.repo.GrantDepartmentAccess(txCtx, &userDatamodel.DepartmentAccess{
			UserID:       userID,
			DepartmentID: dto.DepartmentID,
			GrantedBy:    &actor.ID,
			CreatedAt:    time.Now(),
		}); err != nil {
			return err
		}

		_, err = s.auditor.Record(txCtx, audit.Entry{
			CompanyID:  &companyID,
			ActorID:    &actor.ID,
			Action:     audit.ActionGrant,
			EntityType: "user",
			EntityID:   userID,
			EntityName: target.Email,
			NewData:    map[string]interface{}{"department_id": dto.DepartmentID},
		})
		return err
	})
}

func (s *Service) RevokeDepartment(ctx context.Context, actor *auth.User, userID, departmentID int64) error {
	if actor.CompanyID == nil {
		return internal.ErrCompanyNotFound
	}
	companyID := *actor.CompanyID

	return s.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		target, err := s.repo.GetByID(txCtx, companyID, userID)
		if err != nil {
			return err
		}
		if target == nil {
			return internal.ErrUserNotFound
		}

		if err := s.repo.RevokeDepartmentAccess(txCtx, userID, departmentID); err != nil {
			return err
		}

		_, err = s.auditor.Record(txCtx, audit.Entry{
			CompanyID:    &companyID,
			ActorID:      &actor.ID,
			Action:       audit.ActionRevoke,
			EntityType:   "user",
			EntityID:     userID,
			EntityName:   target.Email,
			PreviousData: map[string]interface{}{"department_id": departmentID},
		})
		return err
	})
}

func (s *Service) attachGrants(ctx context.Context, u *User) error {
	perms, err := s.repo.ListPermissions(ctx, u.ID)
	if err != nil {
		return err
	}
	if len(perms) > 0 {
		u.Permissions = make(map[string][]string, len(perms))
		for _, p := range perms {
			u.Permissions[p.Module] = permission.FromBitmask(p.Permissions).List()
		}
	}

	access, err := s.repo.ListDepartmentAccess(ctx, u.ID)
	if err != nil {
		return err
	}
	for _, a := range access {
		u.DepartmentAccess = append(u.DepartmentAccess, a.DepartmentID)
	}
	return nil
}

// sanitized strips the password hash from audit snapshots.
func sanitized(u *userDatamodel.User) map[string]interface{} {
	return map[string]interface{}{
		"id":                     u.ID,
		"company_id":             u.CompanyID,
		"email":                  u.Email,
		"name":                   u.Name,
		"user_type":              u.UserType,
		"role":                   u.Role,
		"employee_id":            u.EmployeeID,
		"assigned_department_id": u.AssignedDepartmentID,
		"is_active":              u.IsActive,
	}
}
