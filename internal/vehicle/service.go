package vehicle

import (
	"context"
	"log/slog"
	"time"

	"github.com/alfarhan/hr-fleet-management/internal"
	"github.com/alfarhan/hr-fleet-management/internal/audit"
	"github.com/alfarhan/hr-fleet-management/internal/auth"
	companyDatamodel "github.com/alfarhan/hr-fleet-management/internal/core/datamodel/company"
	vehicleDatamodel "github.com/alfarhan/hr-fleet-management/internal/core/datamodel/vehicle"
	"github.com/alfarhan/hr-fleet-management/internal/database"
	"github.com/alfarhan/hr-fleet-management/internal/entitlement"
	"github.com/alfarhan/hr-fleet-management/internal/expiry"
)

type RepositoryAPI interface {
	List(ctx context.Context, companyID int64, params ListParams) ([]*vehicleDatamodel.Vehicle, int64, error)
	GetByID(ctx context.Context, companyID, id int64) (*vehicleDatamodel.Vehicle, error)
	GetByPlate(ctx context.Context, companyID int64, plate string) (*vehicleDatamodel.Vehicle, error)
	GetExpiringBefore(ctx context.Context, companyID int64, cutoff time.Time) ([]*vehicleDatamodel.Vehicle, error)
	ScanExpiringBefore(ctx context.Context, cutoff time.Time) ([]*vehicleDatamodel.Vehicle, error)
	Create(ctx context.Context, v *vehicleDatamodel.Vehicle) error
	Update(ctx context.Context, v *vehicleDatamodel.Vehicle) error
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
	windowDays  int
	logger      *slog.Logger
}

func NewService(repo RepositoryAPI, companies CompanyGetter, ent *entitlement.Service, auditor *audit.Recorder, tx *database.TransactionManager, windowDays int, logger *slog.Logger) *Service {
	if windowDays <= 0 {
		windowDays = expiry.DefaultWindowDays
	}
	return &Service{
		repo:        repo,
		companies:   companies,
		entitlement: ent,
		auditor:     auditor,
		tx:          tx,
		windowDays:  windowDays,
		logger:      logger,
	}
}

func (s *Service) List(ctx context.Context, actor *auth.User, params ListParams, windowDays int) (*VehicleListResponse, error) {
	if actor.CompanyID == nil {
		return nil, internal.ErrCompanyNotFound
	}
	if windowDays <= 0 {
		windowDays = s.windowDays
	}

	rows, total, err := s.repo.List(ctx, *actor.CompanyID, params)
	if err != nil {
		s.logger.Error("failed to list vehicles", "error", err, "company_id", *actor.CompanyID)
		return nil, err
	}

	today := time.Now()
	vehicles := make([]*Vehicle, 0, len(rows))
	for _, row := range rows {
		v := FromDataModel(row)
		v.ClassifyExpiries(today, windowDays)
		vehicles = append(vehicles, v)
	}
	return &VehicleListResponse{Vehicles: vehicles, Total: total}, nil
}

func (s *Service) Get(ctx context.Context, actor *auth.User, id int64, windowDays int) (*Vehicle, error) {
	if actor.CompanyID == nil {
		return nil, internal.ErrCompanyNotFound
	}
	if windowDays <= 0 {
		windowDays = s.windowDays
	}

	row, err := s.repo.GetByID(ctx, *actor.CompanyID, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, internal.ErrVehicleNotFound
	}

	v := FromDataModel(row)
	v.ClassifyExpiries(time.Now(), windowDays)
	return v, nil
}

func (s *Service) Create(ctx context.Context, actor *auth.User, dto CreateVehicleDTO) (*Vehicle, error) {
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

	var created *vehicleDatamodel.Vehicle
	err = s.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		ok, err := s.entitlement.CanAddVehicle(txCtx, company)
		if err != nil {
			return err
		}
		if !ok {
			return internal.ErrVehicleLimitReached
		}

		if existing, err := s.repo.GetByPlate(txCtx, companyID, dto.PlateNumber); err != nil {
			return err
		} else if existing != nil {
			return internal.ErrDuplicatePlateNumber
		}

		now := time.Now()
		v := &vehicleDatamodel.Vehicle{
			CompanyID:          companyID,
			PlateNumber:        dto.PlateNumber,
			Make:               dto.Make,
			Model:              dto.Model,
			Year:               dto.Year,
			Status:             vehicleDatamodel.StatusAvailable,
			DepartmentID:       dto.DepartmentID,
			RegistrationExpiry: dto.RegistrationExpiry,
			InsuranceExpiry:    dto.InsuranceExpiry,
			InspectionExpiry:   dto.InspectionExpiry,
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		if err := s.repo.Create(txCtx, v); err != nil {
			return err
		}

		_, err = s.auditor.Record(txCtx, audit.Entry{
			CompanyID:  &companyID,
			ActorID:    &actor.ID,
			Action:     audit.ActionCreate,
			EntityType: "vehicle",
			EntityID:   v.ID,
			EntityName: v.PlateNumber,
			NewData:    v,
		})
		if err != nil {
			return err
		}

		created = v
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("vehicle created", "vehicle_id", created.ID, "company_id", companyID)
	return FromDataModel(created), nil
}

func (s *Service) Update(ctx context.Context, actor *auth.User, id int64, dto UpdateVehicleDTO) (*Vehicle, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}
	if actor.CompanyID == nil {
		return nil, internal.ErrCompanyNotFound
	}
	companyID := *actor.CompanyID

	var updated *vehicleDatamodel.Vehicle
	err := s.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		v, err := s.repo.GetByID(txCtx, companyID, id)
		if err != nil {
			return err
		}
		if v == nil {
			return internal.ErrVehicleNotFound
		}

		previous := *v
		if dto.Make != nil {
			v.Make = *dto.Make
		}
		if dto.Model != nil {
			v.Model = *dto.Model
		}
		if dto.Year != nil {
			v.Year = *dto.Year
		}
		if dto.Status != nil {
			v.Status = *dto.Status
		}
		if dto.AssignedTo != nil {
			v.AssignedTo = dto.AssignedTo
		}
		if dto.DepartmentID != nil {
			v.DepartmentID = dto.DepartmentID
		}
		if dto.RegistrationExpiry != nil {
			v.RegistrationExpiry = dto.RegistrationExpiry
		}
		if dto.InsuranceExpiry != nil {
			v.InsuranceExpiry = dto.InsuranceExpiry
		}
		if dto.InspectionExpiry != nil {
			v.InspectionExpiry = dto.InspectionExpiry
		}
		v.UpdatedAt = time.Now()

		if err := s.repo.Update(txCtx, v); err != nil {
			return err
		}

		_, err = s.auditor.Record(txCtx, audit.Entry{
			CompanyID:    &companyID,
			ActorID:      &actor.ID,
			Action:       audit.ActionUpdate,
			EntityType:   "vehicle",
			EntityID:     v.ID,
			EntityName:   v.PlateNumber,
			PreviousData: previous,
			NewData:      v,
		})
		if err != nil {
			return err
		}

		updated = v
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
		v, err := s.repo.GetByID(txCtx, companyID, id)
		if err != nil {
			return err
		}
		if v == nil {
			return internal.ErrVehicleNotFound
		}

		if err := s.repo.Delete(txCtx, companyID, id); err != nil {
			return err
		}

		_, err = s.auditor.Record(txCtx, audit.Entry{
			CompanyID:    &companyID,
			ActorID:      &actor.ID,
			Action:       audit.ActionDelete,
			EntityType:   "vehicle",
			EntityID:     v.ID,
			EntityName:   v.PlateNumber,
			PreviousData: v,
		})
		return err
	})
}

// ExpiringDocuments lists vehicles with any fee or document date inside the
// window, classified against today.
func (s *Service) ExpiringDocuments(ctx context.Context, actor *auth.User, windowDays int) ([]*Vehicle, error) {
	if actor.CompanyID == nil {
		return nil, internal.ErrCompanyNotFound
	}
	if windowDays <= 0 {
		windowDays = s.windowDays
	}

	today := time.Now()
	cutoff := today.AddDate(0, 0, windowDays)

	rows, err := s.repo.GetExpiringBefore(ctx, *actor.CompanyID, cutoff)
	if err != nil {
		return nil, err
	}

	vehicles := make([]*Vehicle, 0, len(rows))
	for _, row := range rows {
		v := FromDataModel(row)
		v.ClassifyExpiries(today, windowDays)
		vehicles = append(vehicles, v)
	}
	return vehicles, nil
}

// ScanExpiring returns vehicles across all companies with any tracked date
// inside the window. Used by the background scanner.
func (s *Service) ScanExpiring(ctx context.Context, windowDays int) ([]*Vehicle, error) {
	if windowDays <= 0 {
		windowDays = s.windowDays
	}

	today := time.Now()
	cutoff := today.AddDate(0, 0, windowDays)

	rows, err := s.repo.ScanExpiringBefore(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	vehicles := make([]*Vehicle, 0, len(rows))
	for _, row := range rows {
		v := FromDataModel(row)
		v.ClassifyExpiries(today, windowDays)
		vehicles = append(vehicles, v)
	}
	return vehicles, nil
}
