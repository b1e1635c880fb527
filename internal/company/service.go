package company

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
)

type RepositoryAPI interface {
	GetAll(ctx context.Context) ([]*companyDatamodel.Company, error)
	GetByID(ctx context.Context, id int64) (*companyDatamodel.Company, error)
	Create(ctx context.Context, c *companyDatamodel.Company) error
	Update(ctx context.Context, c *companyDatamodel.Company) error
}

// UserRepositoryAPI is the slice of the user store the company service needs
// to bootstrap the first admin account.
type UserRepositoryAPI interface {
	GetByEmail(ctx context.Context, companyID int64, email string) (*userDatamodel.User, error)
	Create(ctx context.Context, u *userDatamodel.User) error
}

type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

type Service struct {
	repo        RepositoryAPI
	users       UserRepositoryAPI
	hasher      PasswordHasher
	entitlement *entitlement.Service
	auditor     *audit.Recorder
	tx          *database.TransactionManager
	logger      *slog.Logger
}

func NewService(repo RepositoryAPI, users UserRepositoryAPI, hasher PasswordHasher, ent *entitlement.Service, auditor *audit.Recorder, tx *database.TransactionManager, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		users:       users,
		hasher:      hasher,
		entitlement: ent,
		auditor:     auditor,
		tx:          tx,
		logger:      logger,
	}
}

func requireSystemAdmin(actor *auth.User) error {
	if actor.UserType != userDatamodel.TypeSystemAdmin {
		return internal.ErrPermissionDenied
	}
	return nil
}

// List returns every company. System admin only.
func (s *Service) List(ctx context.Context, actor *auth.User) ([]*Company, error) {
	if err := requireSystemAdmin(actor); err != nil {
		return nil, err
	}

	rows, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to list companies", "error", err)
		return nil, err
	}

	companies := make([]*Company, 0, len(rows))
	for _, row := range rows {
		companies = append(companies, FromDataModel(row))
	}
	return companies, nil
}

// Get returns one company. Company users may only read their own.
func (s *Service) Get(ctx context.Context, actor *auth.User, id int64) (*Company, error) {
	if actor.UserType != userDatamodel.TypeSystemAdmin {
		if actor.CompanyID == nil || *actor.CompanyID != id {
			return nil, internal.ErrPermissionDenied
		}
	}

	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, internal.ErrCompanyNotFound
	}
	return FromDataModel(row), nil
}

// Create provisions a company on a trial together with its first admin
// account. Both rows and the audit records commit atomically.
func (s *Service) Create(ctx context.Context, actor *auth.User, dto CreateCompanyDTO) (*Company, error) {
	if err := requireSystemAdmin(actor); err != nil {
		return nil, err
	}
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	plan := dto.Plan
	if plan == "" {
		plan = string(entitlement.PlanBasic)
	}

	hash, err := s.hasher.HashPassword(dto.AdminPassword)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash admin password", err)
	}

	var created *companyDatamodel.Company
	err = s.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		now := time.Now()
		trialStart := now
		trialEnd := now.AddDate(0, 0, DefaultTrialDays)

		c := &companyDatamodel.Company{
			Name:               dto.Name,
			Status:             companyDatamodel.StatusActive,
			IsTrial:            true,
			TrialStartDate:     &trialStart,
			TrialEndDate:       &trialEnd,
			SubscriptionStatus: companyDatamodel.SubscriptionTrial,
			SubscriptionPlan:   plan,
			BillingEmail:       dto.BillingEmail,
			BillingAddress:     dto.BillingAddress,
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		if err := s.repo.Create(txCtx, c); err != nil {
			return err
		}

		if existing, err := s.users.GetByEmail(txCtx, c.ID, dto.AdminEmail); err != nil {
			return err
		} else if existing != nil {
			return internal.ErrDuplicateEmail
		}

		adminName := dto.AdminName
		if adminName == "" {
			adminName = dto.AdminEmail
		}
		admin := &userDatamodel.User{
			CompanyID:    &c.ID,
			Email:        dto.AdminEmail,
			Name:         adminName,
			PasswordHash: hash,
			UserType:     userDatamodel.TypeCompanyAdmin,
			Role:         userDatamodel.RoleAdmin,
			CreatedBy:    &actor.ID,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.users.Create(txCtx, admin); err != nil {
			return err
		}

		if _, err := s.auditor.Record(txCtx, audit.Entry{
			CompanyID:  &c.ID,
			ActorID:    &actor.ID,
			Action:     audit.ActionCreate,
			EntityType: "company",
			EntityID:   c.ID,
			EntityName: c.Name,
			NewData:    c,
		}); err != nil {
			return err
		}

		created = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("company provisioned", "company_id", created.ID, "plan", plan)
	return FromDataModel(created), nil
}

// Suspend blocks a company and its users from the product.
func (s *Service) Suspend(ctx context.Context, actor *auth.User, id int64) (*Company, error) {
	return s.transition(ctx, actor, id, "suspend", func(c *companyDatamodel.Company) {
		c.Status = companyDatamodel.StatusSuspended
		c.SubscriptionStatus = companyDatamodel.SubscriptionSuspended
	})
}

// Activate restores a suspended company. The restored subscription status is
// decided from the date windows alone: Suspend overwrote the stored status,
// so it cannot be trusted here.
func (s *Service) Activate(ctx context.Context, actor *auth.User, id int64) (*Company, error) {
	return s.transition(ctx, actor, id, "activate", func(c *companyDatamodel.Company) {
		c.Status = companyDatamodel.StatusActive
		now := time.Now()
		switch {
		case entitlement.SubscriptionWindowCovers(c, now):
			c.SubscriptionStatus = companyDatamodel.SubscriptionActive
		case entitlement.TrialWindowCovers(c, now):
			c.SubscriptionStatus = companyDatamodel.SubscriptionTrial
		default:
			c.SubscriptionStatus = companyDatamodel.SubscriptionExpired
		}
	})
}

// ExtendTrial pushes the trial end date forward. A trial that already lapsed
// restarts from today. A running paid subscription keeps its status; the
// longer trial window sits behind it.
func (s *Service) ExtendTrial(ctx context.Context, actor *auth.User, id int64, dto ExtendTrialDTO) (*Company, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	return s.transition(ctx, actor, id, "extend_trial", func(c *companyDatamodel.Company) {
		now := time.Now()
		base := now
		if c.TrialEndDate != nil && c.TrialEndDate.After(now) {
			base = *c.TrialEndDate
		}
		end := base.AddDate(0, 0, dto.Days)

		c.IsTrial = true
		if c.TrialStartDate == nil {
			c.TrialStartDate = &now
		}
		c.TrialEndDate = &end
		if c.Status == companyDatamodel.StatusActive && !entitlement.SubscriptionWindowCovers(c, now) {
			c.SubscriptionStatus = companyDatamodel.SubscriptionTrial
		}
	})
}

// ChangePlan moves the company to a paid plan for one year from today and
// ends any trial.
func (s *Service) ChangePlan(ctx context.Context, actor *auth.User, id int64, dto ChangePlanDTO) (*Company, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	return s.transition(ctx, actor, id, "change_plan", func(c *companyDatamodel.Company) {
		now := time.Now()
		end := now.AddDate(1, 0, 0)

		c.SubscriptionPlan = dto.Plan
		c.SubscriptionStatus = companyDatamodel.SubscriptionActive
		c.SubscriptionStartDate = &now
		c.SubscriptionEndDate = &end
		c.IsTrial = false
	})
}

// OverrideLimits sets per-company ceilings above or below the plan defaults.
func (s *Service) OverrideLimits(ctx context.Context, actor *auth.User, id int64, dto OverrideLimitsDTO) (*Company, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	return s.transition(ctx, actor, id, "override_limits", func(c *companyDatamodel.Company) {
		if dto.MaxUsers != nil {
			c.MaxUsers = dto.MaxUsers
		}
		if dto.MaxEmployees != nil {
			c.MaxEmployees = dto.MaxEmployees
		}
		if dto.MaxVehicles != nil {
			c.MaxVehicles = dto.MaxVehicles
		}
		if dto.MaxDepartments != nil {
			c.MaxDepartments = dto.MaxDepartments
		}
	})
}

// Usage reports the company's current consumption against its effective
// limits.
func (s *Service) Usage(ctx context.Context, actor *auth.User, id int64) (*entitlement.Usage, error) {
	if actor.UserType != userDatamodel.TypeSystemAdmin {
		if actor.CompanyID == nil || *actor.CompanyID != id {
			return nil, internal.ErrPermissionDenied
		}
	}

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, internal.ErrCompanyNotFound
	}

	return s.entitlement.UsageFor(ctx, c)
}

// CheckAccess reports whether the company currently has product access:
// active status plus a running subscription or trial.
func (s *Service) CheckAccess(ctx context.Context, companyID int64) error {
	c, err := s.repo.GetByID(ctx, companyID)
	if err != nil {
		return err
	}
	if c == nil {
		return internal.ErrCompanyNotFound
	}
	if c.Status != companyDatamodel.StatusActive {
		return internal.ErrCompanyInactive
	}
	if !entitlement.HasActiveAccess(c, time.Now()) {
		return internal.ErrSubscriptionExpired
	}
	return nil
}

func (s *Service) transition(ctx context.Context, actor *auth.User, id int64, action string, mutate func(*companyDatamodel.Company)) (*Company, error) {
	if err := requireSystemAdmin(actor); err != nil {
		return nil, err
	}

	var updated *companyDatamodel.Company
	err := s.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		c, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if c == nil {
			return internal.ErrCompanyNotFound
		}

		previous := *c
		mutate(c)
		c.UpdatedAt = time.Now()

		if err := s.repo.Update(txCtx, c); err != nil {
			return err
		}

		if _, err := s.auditor.Record(txCtx, audit.Entry{
			CompanyID:    &c.ID,
			ActorID:      &actor.ID,
			Action:       audit.ActionUpdate,
			EntityType:   "company",
			EntityID:     c.ID,
			EntityName:   c.Name,
			Details:      action,
			PreviousData: previous,
			NewData:      c,
		}); err != nil {
			return err
		}

		updated = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	return FromDataModel(updated), nil
}
