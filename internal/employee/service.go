package employee

import (
	"context"
	"log/slog"
	"time"

	"github.com/alfarhan/hr-fleet-management/internal"
	"github.com/alfarhan/hr-fleet-management/internal/audit"
	"github.com/alfarhan/hr-fleet-management/internal/auth"
	companyDatamodel "github.com/alfarhan/hr-fleet-management/internal/core/datamodel/company"
	employeeDatamodel "github.com/alfarhan/hr-fleet-management/internal/core/datamodel/employee"
	"github.com/alfarhan/hr-fleet-management/internal/database"
	"github.com/alfarhan/hr-fleet-management/internal/entitlement"
	"github.com/alfarhan/hr-fleet-management/internal/scope"
)

type RepositoryAPI interface {
	List(ctx context.Context, companyID int64, departmentIDs []int64, params ListParams) ([]*employeeDatamodel.Employee, int64, error)
	GetByID(ctx context.Context, companyID, id int64) (*employeeDatamodel.Employee, error)
	GetByCode(ctx context.Context, companyID int64, code string) (*employeeDatamodel.Employee, error)
	GetByNationalID(ctx context.Context, companyID int64, nationalID string) (*employeeDatamodel.Employee, error)
	Create(ctx context.Context, emp *employeeDatamodel.Employee) error
	Update(ctx context.Context, emp *employeeDatamodel.Employee) error
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

// List returns employees visible to the actor. Department-scoped users only
// see employees inside their granted departments; an employee without a
// department is visible to unrestricted users only.
func (s *Service) List(ctx context.Context, actor *auth.User, params ListParams) (*EmployeeListResponse, error) {
	if actor.CompanyID == nil {
		return nil, internal.ErrCompanyNotFound
	}

	userScope := actor.Scope()
	if userScope.IsEmpty() {
		return &EmployeeListResponse{Employees: []*Employee{}, Total: 0}, nil
	}

	if params.DepartmentID != nil && !userScope.Contains(*params.DepartmentID) {
		return nil, internal.ErrDepartmentAccessDenied
	}

	rows, total, err := s.repo.List(ctx, *actor.CompanyID, userScope.DepartmentIDs(), params)
	if err != nil {
		s.logger.Error("failed to list employees", "error", err, "company_id", *actor.CompanyID)
		return nil, err
	}

	employees := make([]*Employee, 0, len(rows))
	for _, row := range rows {
		employees = append(employees, FromDataModel(row))
	}
	return &EmployeeListResponse{Employees: employees, Total: total}, nil
}

func (s *Service) Get(ctx context.Context, actor *auth.User, id int64) (*Employee, error) {
	if actor.CompanyID == nil {
		return nil, internal.ErrCompanyNotFound
	}

	row, err := s.repo.GetByID(ctx, *actor.CompanyID, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, internal.ErrEmployeeNotFound
	}

	if !scope.CanAccessEmployee(actor.Scope(), row.DepartmentID) {
		return nil, internal.ErrDepartmentAccessDenied
	}

	return FromDataModel(row), nil
}

func (s *Service) Create(ctx context.Context, actor *auth.User, dto CreateEmployeeDTO) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}
	if actor.CompanyID == nil {
		return nil, internal.ErrCompanyNotFound
	}
	companyID := *actor.CompanyID

	if dto.DepartmentID != nil && !actor.Scope().Contains(*dto.DepartmentID) {
		return nil, internal.ErrDepartmentAccessDenied
	}

	company, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, internal.ErrCompanyNotFound
	}

	var created *employeeDatamodel.Employee
	err = s.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		ok, err := s.entitlement.CanAddEmployee(txCtx, company)
		if err != nil {
			return err
		}
		if !ok {
			return internal.ErrEmployeeLimitReached
		}

		if existing, err := s.repo.GetByCode(txCtx, companyID, dto.EmployeeCode); err != nil {
			return err
		} else if existing != nil {
			return internal.ErrDuplicateEmployeeCode
		}

		if existing, err := s.repo.GetByNationalID(txCtx, companyID, dto.NationalID); err != nil {
			return err
		} else if existing != nil {
			return internal.ErrDuplicateNationalID
		}

		now := time.Now()
		emp := &employeeDatamodel.Employee{
			CompanyID:          companyID,
			EmployeeCode:       dto.EmployeeCode,
			NationalID:         dto.NationalID,
			Name:               dto.Name,
			NameAr:             dto.NameAr,
			JobTitle:           dto.JobTitle,
			Phone:              dto.Phone,
			DepartmentID:       dto.DepartmentID,
			BasicSalary:        dto.BasicSalary,
			HousingAllowance:   dto.HousingAllowance,
			TransportAllowance: dto.TransportAllowance,
			HireDate:           dto.HireDate,
			Status:             employeeDatamodel.StatusActive,
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		if err := s.repo.Create(txCtx, emp); err != nil {
			return err
		}

		_, err = s.auditor.Record(txCtx, audit.Entry{
			CompanyID:  &companyID,
			ActorID:    &actor.ID,
			Action:     audit.ActionCreate,
			EntityType: "employee",
			EntityID:   emp.ID,
			EntityName: emp.Name,
			NewData:    emp,
		})
		if err != nil {
			return err
		}

		created = emp
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("employee created", "employee_id", created.ID, "company_id", companyID)
	return FromDataModel(created), nil
}

func (s *Service) Update(ctx context.Context, actor *auth.User, id int64, dto UpdateEmployeeDTO) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}
	if actor.CompanyID == nil {
		return nil, internal.ErrCompanyNotFound
	}
	companyID := *actor.CompanyID

	var updated *employeeDatamodel.Employee
	err := s.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		emp, err := s.repo.GetByID(txCtx, companyID, id)
		if err != nil {
			return err
		}
		if emp == nil {
			return internal.ErrEmployeeNotFound
		}

		if !scope.CanAccessEmployee(actor.Scope(), emp.DepartmentID) {
			return internal.ErrDepartmentAccessDenied
		}
		if dto.DepartmentID != nil && !actor.Scope().Contains(*dto.DepartmentID) {
			return internal.ErrDepartmentAccessDenied
		}

		previous := *emp
		if dto.Name != nil {
			emp.Name = *dto.Name
		}
		if dto.NameAr != nil {
			emp.NameAr = *dto.NameAr
		}
		if dto.JobTitle != nil {
			emp.JobTitle = *dto.JobTitle
		}
		if dto.Phone != nil {
			emp.Phone = *dto.Phone
		}
		if dto.DepartmentID != nil {
			emp.DepartmentID = dto.DepartmentID
		}
		if dto.Status != nil {
			emp.Status = *dto.Status
		}
		if dto.BasicSalary != nil {
			emp.BasicSalary = *dto.BasicSalary
		}
		if dto.HousingAllowance != nil {
			emp.HousingAllowance = *dto.HousingAllowance
		}
		if dto.TransportAllowance != nil {
			emp.TransportAllowance = *dto.TransportAllowance
		}
		emp.UpdatedAt = time.Now()

		if err := s.repo.Update(txCtx, emp); err != nil {
			return err
		}

		_, err = s.auditor.Record(txCtx, audit.Entry{
			CompanyID:    &companyID,
			ActorID:      &actor.ID,
			Action:       audit.ActionUpdate,
			EntityType:   "employee",
			EntityID:     emp.ID,
			EntityName:   emp.Name,
			PreviousData: previous,
			NewData:      emp,
		})
		if err != nil {
			return err
		}

		updated = emp
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
		emp, err := s.repo.GetByID(txCtx, companyID, id)
		if err != nil {
			return err
		}
		if emp == nil {
			return internal.ErrEmployeeNotFound
		}

		if !scope.CanAccessEmployee(actor.Scope(), emp.DepartmentID) {
			return internal.ErrDepartmentAccessDenied
		}

		if err := s.repo.Delete(txCtx, companyID, id); err != nil {
			return err
		}

		_, err = s.auditor.Record(txCtx, audit.Entry{
			CompanyID:    &companyID,
			ActorID:      &actor.ID,
			Action:       audit.ActionDelete,
			EntityType:   "employee",
			EntityID:     emp.ID,
			EntityName:   emp.Name,
			PreviousData: emp,
		})
		return err
	})
}
