package department

import (
	"context"
	"log/slog"
	"time"

	"github.com/alfarhan/hr-fleet-management/internal"
	"github.com/alfarhan/hr-fleet-management/internal/audit"
	"github.com/alfarhan/hr-fleet-management/internal/auth"
	companyDatamodel "github.com/alfarhan/hr-fleet-management/internal/core/datamodel/company"
	departmentDatamodel "github.com/alfarhan/hr-fleet-management/internal/core/datamodel/department"
	"github.com/alfarhan/hr-fleet-management/internal/database"
	"github.com/alfarhan/hr-fleet-management/internal/entitlement"
)

type RepositoryAPI interface {
	GetByCompany(ctx context.Context, companyID int64) ([]*departmentDatamodel.Department, error)
	GetByID(ctx context.Context, companyID, id int64) (*departmentDatamodel.Department, error)
	GetByName(ctx context.Context, companyID int64, name string) (*departmentDatamodel.Department, error)
	Create(ctx context.Context, dept *departmentDatamodel.Department) error
	Update(ctx context.Context, dept *departmentDatamodel.Department) error
	Delete(ctx context.Context, companyID, id int64) error
}

type CompanyGetter interface {
	GetByID(ctx context.Context, id int64) (*companyDatamodel.Company, error)
}

type Service struct {
	repo        RepositoryAPI
	companies   CompanyGetter
	entitlement *entitlement.Service
	auditor     *audit.Recorder
	tx          *database.TransactionManager
	logger      *slog.Logger
}

func NewService(repo RepositoryAPI, companies CompanyGetter, ent *entitlement.Service, auditor *audit.Recorder, tx *database.TransactionManager, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		companies:   companies,
		entitlement: ent,
		auditor:     auditor,
		tx:          tx,
		logger:      logger,
	}
}

func (s *Service) List(ctx context.Context, companyID int64) ([]*Department, error) {
	rows, err := s.repo.GetByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("failed to list departments", "error", err, "company_id", companyID)
		return nil, err
	}

	departments := make([]*Department, 0, len(rows))
	for _, row := range rows {
		departments = append(departments, FromDataModel(row))
	}
	return departments, nil
}

func (s *Service) Get(ctx context.Context, companyID, id int64) (*Department, error) {
	row, err := s.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, internal.ErrDepartmentNotFound
	}
	return FromDataModel(row), nil
}

func (s *Service) Create(ctx context.Context, actor *auth.User, dto CreateDepartmentDTO) (*Department, error) {
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

	var created *departmentDatamodel.Department
	err = s.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		ok, err := s.entitlement.CanAddDepartment(txCtx, company)
		if err != nil {
			return err
		}
		if !ok {
			return internal.ErrDepartmentLimitReached
		}

		existing, err := s.repo.GetByName(txCtx, companyID, dto.Name)
		if err != nil {
			return err
		}
		if existing != nil {
			return internal.NewConflictError("department name already used in this company", internal.ErrCodeValidationFailed)
		}

		now := time.Now()
		dept := &departmentDatamodel.Department{
			CompanyID: companyID,
			Name:      dto.Name,
			NameAr:    dto.NameAr,
			ManagerID: dto.ManagerID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.repo.Create(txCtx, dept); err != nil {
			return err
		}

		_, err = s.auditor.Record(txCtx, audit.Entry{
			CompanyID:  &companyID,
			ActorID:    &actor.ID,
			Action:     audit.ActionCreate,
			EntityType: "department",
			EntityID:   dept.ID,
			EntityName: dept.Name,
			NewData:    dept,
		})
		if err != nil {
			return err
		}

		created = dept
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("department created", "department_id", created.ID, "company_id", companyID)
	return FromDataModel(created), nil
}

func (s *Service) Update(ctx context.Context, actor *auth.User, id int64, dto UpdateDepartmentDTO) (*Department, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}
	if actor.CompanyID == nil {
		return nil, internal.ErrCompanyNotFound
	}
	companyID := *actor.CompanyID

	var updated *departmentDatamodel.Department
	err := s.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		dept, err := s.repo.GetByID(txCtx, companyID, id)
		if err != nil {
			return err
		}
		if dept == nil {
			return internal.ErrDepartmentNotFound
		}

		previous := *dept
		if dto.Name != nil {
			dept.Name = *dto.Name
		}
		if dto.NameAr != nil {
			dept.NameAr = *dto.NameAr
		}
		if dto.ManagerID != nil {
			dept.ManagerID = dto.ManagerID
		}
		dept.UpdatedAt = time.Now()

		if err := s.repo.Update(txCtx, dept); err != nil {
			return err
		}

		_, err = s.auditor.Record(txCtx, audit.Entry{
			CompanyID:    &companyID,
			ActorID:      &actor.ID,
			Action:       audit.ActionUpdate,
			EntityType:   "department",
			EntityID:     dept.ID,
			EntityName:   dept.Name,
			PreviousData: previous,
			NewData:      dept,
		})
		if err != nil {
			return err
		}

		updated = dept
		return nil
	})
	if err != nil {
		return nil, err
	}

	return FromDataModel(updated), nil
}

func (s *Service) Delete(ctx context.Context, actor *auth.User, id int64) error {
	if actor.CompanyID == nil {
		return internal.ErrCompanyNotFound
	}
	companyID := *actor.CompanyID

	return s.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		dept, err := s.repo.GetByID(txCtx, companyID, id)
		if err != nil {
			return err
		}
		if dept == nil {
			return internal.ErrDepartmentNotFound
		}

		if err := s.repo.Delete(txCtx, companyID, id); err != nil {
			return err
		}

		_, err = s.auditor.Record(txCtx, audit.Entry{
			CompanyID:    &companyID,
			ActorID:      &actor.ID,
			Action:       audit.ActionDelete,
			EntityType:   "department",
			EntityID:     dept.ID,
			EntityName:   dept.Name,
			PreviousData: dept,
		})
		return err
	})
}
