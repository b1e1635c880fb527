package document

import (
	"context"
	"log/slog"
	"time"

	"github.com/alfarhan/hr-fleet-management/internal"
	"github.com/alfarhan/hr-fleet-management/internal/audit"
	"github.com/alfarhan/hr-fleet-management/internal/auth"
	documentDatamodel "github.com/alfarhan/hr-fleet-management/internal/core/datamodel/document"
	employeeDatamodel "github.com/alfarhan/hr-fleet-management/internal/core/datamodel/employee"
	"github.com/alfarhan/hr-fleet-management/internal/database"
	"github.com/alfarhan/hr-fleet-management/internal/expiry"
	"github.com/alfarhan/hr-fleet-management/internal/scope"
)

type RepositoryAPI interface {
	List(ctx context.Context, companyID int64, departmentIDs []int64, params ListParams) ([]*documentDatamodel.Document, int64, error)
	GetByID(ctx context.Context, companyID, id int64) (*documentDatamodel.Document, error)
	GetExpiringBefore(ctx context.Context, companyID int64, departmentIDs []int64, cutoff time.Time) ([]*documentDatamodel.Document, error)
	ScanExpiringBefore(ctx context.Context, cutoff time.Time) ([]*documentDatamodel.Document, error)
	Create(ctx context.Context, doc *documentDatamodel.Document) error
	Update(ctx context.Context, doc *documentDatamodel.Document) error
	Delete(ctx context.Context, companyID, id int64) error
}

type EmployeeGetter interface {
	GetByID(ctx context.Context, companyID, id int64) (*employeeDatamodel.Employee, error)
}

type Service struct {
	repo       RepositoryAPI
	employees  EmployeeGetter
	auditor    *audit.Recorder
	tx         *database.TransactionManager
	windowDays int
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, employees EmployeeGetter, auditor *audit.Recorder, tx *database.TransactionManager, windowDays int, logger *slog.Logger) *Service {
	if windowDays <= 0 {
		windowDays = expiry.DefaultWindowDays
	}
	return &Service{
		repo:       repo,
		employees:  employees,
		auditor:    auditor,
		tx:         tx,
		windowDays: windowDays,
		logger:     logger,
	}
}

// List returns documents for employees the actor can see, classified against
// the given window. windowDays <= 0 falls back to the configured default.
func (s *Service) List(ctx context.Context, actor *auth.User, params ListParams, windowDays int) (*DocumentListResponse, error) {
	if actor.CompanyID == nil {
		return nil, internal.ErrCompanyNotFound
	}
	if windowDays <= 0 {
		windowDays = s.windowDays
	}

	userScope := actor.Scope()
	if userScope.IsEmpty() {
		return &DocumentListResponse{Documents: []*Document{}, Total: 0}, nil
	}

	rows, total, err := s.repo.List(ctx, *actor.CompanyID, userScope.DepartmentIDs(), params)
	if err != nil {
		s.logger.Error("failed to list documents", "error", err, "company_id", *actor.CompanyID)
		return nil, err
	}

	today := time.Now()
	documents := make([]*Document, 0, len(rows))
	for _, row := range rows {
		d := FromDataModel(row)
		d.Classify(today, windowDays)
		documents = append(documents, d)
	}
	return &DocumentListResponse{Documents: documents, Total: total}, nil
}

func (s *Service) Get(ctx context.Context, actor *auth.User, id int64, windowDays int) (*Document, error) {
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
		return nil, internal.ErrDocumentNotFound
	}

	if err := s.checkEmployeeAccess(ctx, actor, row.EmployeeID); err != nil {
		return nil, err
	}

	d := FromDataModel(row)
	d.Classify(time.Now(), windowDays)
	return d, nil
}

func (s *Service) Create(ctx context.Context, actor *auth.User, dto CreateDocumentDTO) (*Document, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}
	if actor.CompanyID == nil {
		return nil, internal.ErrCompanyNotFound
	}
	companyID := *actor.CompanyID

	if err := s.checkEmployeeAccess(ctx, actor, dto.EmployeeID); err != nil {
		return nil, err
	}

	var created *documentDatamodel.Document
	err := s.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		now := time.Now()
		doc := &documentDatamodel.Document{
			CompanyID:  companyID,
			EmployeeID: dto.EmployeeID,
			Type:       dto.Type,
			Number:     dto.Number,
			Title:      dto.Title,
			IssueDate:  dto.IssueDate,
			ExpiryDate: dto.ExpiryDate,
			FileURL:    dto.FileURL,
			FileName:   dto.FileName,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := s.repo.Create(txCtx, doc); err != nil {
			return err
		}

		_, err := s.auditor.Record(txCtx, audit.Entry{
			CompanyID:  &companyID,
			ActorID:    &actor.ID,
			Action:     audit.ActionCreate,
			EntityType: "document",
			EntityID:   doc.ID,
			EntityName: doc.Type,
			NewData:    doc,
		})
		if err != nil {
			return err
		}

		created = doc
		return nil
	})
	if err != nil {
		return nil, err
	}

	return FromDataModel(created), nil
}

func (s *Service) Update(ctx context.Context, actor *auth.User, id int64, dto UpdateDocumentDTO) (*Document, error) {
	if actor.CompanyID == nil {
		return nil, internal.ErrCompanyNotFound
	}
	companyID := *actor.CompanyID

	var updated *documentDatamodel.Document
	err := s.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		doc, err := s.repo.GetByID(txCtx, companyID, id)
		if err != nil {
			return err
		}
		if doc == nil {
			return internal.ErrDocumentNotFound
		}

		if err := s.checkEmployeeAccess(txCtx, actor, doc.EmployeeID); err != nil {
			return err
		}

		previous := *doc
		if dto.Number != nil {
			doc.Number = *dto.Number
		}
		if dto.Title != nil {
			doc.Title = *dto.Title
		}
		if dto.IssueDate != nil {
			doc.IssueDate = dto.IssueDate
		}
		if dto.ExpiryDate != nil {
			doc.ExpiryDate = dto.ExpiryDate
		}
		if dto.FileURL != nil {
			doc.FileURL = dto.FileURL
		}
		if dto.FileName != nil {
			doc.FileName = dto.FileName
		}
		doc.UpdatedAt = time.Now()

		if err := s.repo.Update(txCtx, doc); err != nil {
			return err
		}

		_, err = s.auditor.Record(txCtx, audit.Entry{
			CompanyID:    &companyID,
			ActorID:      &actor.ID,
			Action:       audit.ActionUpdate,
			EntityType:   "document",
			EntityID:     doc.ID,
			EntityName:   doc.Type,
			PreviousData: previous,
			NewData:      doc,
		})
		if err != nil {
			return err
		}

		updated = doc
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
		doc, err := s.repo.GetByID(txCtx, companyID, id)
		if err != nil {
			return err
		}
		if doc == nil {
			return internal.ErrDocumentNotFound
		}

		if err := s.checkEmployeeAccess(txCtx, actor, doc.EmployeeID); err != nil {
			return err
		}

		if err := s.repo.Delete(txCtx, companyID, id); err != nil {
			return err
		}

		_, err = s.auditor.Record(txCtx, audit.Entry{
			CompanyID:    &companyID,
			ActorID:      &actor.ID,
			Action:       audit.ActionDelete,
			EntityType:   "document",
			EntityID:     doc.ID,
			EntityName:   doc.Type,
			PreviousData: doc,
		})
		return err
	})
}

// Expiring lists documents inside the warning window plus already expired
// ones, newest deadline first per the repository ordering.
func (s *Service) Expiring(ctx context.Context, actor *auth.User, windowDays int) ([]*Document, error) {
	if actor.CompanyID == nil {
		return nil, internal.ErrCompanyNotFound
	}
	if windowDays <= 0 {
		windowDays = s.windowDays
	}

	userScope := actor.Scope()
	if userScope.IsEmpty() {
		return []*Document{}, nil
	}

	today := time.Now()
	cutoff := today.AddDate(0, 0, windowDays)

	rows, err := s.repo.GetExpiringBefore(ctx, *actor.CompanyID, userScope.DepartmentIDs(), cutoff)
	if err != nil {
		return nil, err
	}

	documents := make([]*Document, 0, len(rows))
	for _, row := range rows {
		d := FromDataModel(row)
		d.Classify(today, windowDays)
		documents = append(documents, d)
	}
	return documents, nil
}

// Summary buckets the actor's visible documents by expiry status for the
// dashboard.
func (s *Service) Summary(ctx context.Context, actor *auth.User, windowDays int) (*ExpirySummary, error) {
	if actor.CompanyID == nil {
		return nil, internal.ErrCompanyNotFound
	}
	if windowDays <= 0 {
		windowDays = expiry.DashboardWindowDays
	}

	userScope := actor.Scope()
	if userScope.IsEmpty() {
		return &ExpirySummary{WindowDays: windowDays}, nil
	}

	rows, _, err := s.repo.List(ctx, *actor.CompanyID, userScope.DepartmentIDs(), ListParams{Limit: -1})
	if err != nil {
		return nil, err
	}

	today := time.Now()
	summary := &ExpirySummary{WindowDays: windowDays}
	for _, row := range rows {
		if row.ExpiryDate == nil {
			continue
		}
		summary.Total++
		switch expiry.Classify(*row.ExpiryDate, today, windowDays) {
		case expiry.StatusExpired:
			summary.Expired++
		case expiry.StatusExpiring:
			summary.Expiring++
		default:
			summary.Valid++
		}
	}
	return summary, nil
}

// ScanExpiring returns all documents across companies whose expiry date falls
// on or before today+windowDays. Used by the background scanner.
func (s *Service) ScanExpiring(ctx context.Context, windowDays int) ([]*Document, error) {
	if windowDays <= 0 {
		windowDays = s.windowDays
	}

	today := time.Now()
	cutoff := today.AddDate(0, 0, windowDays)

	rows, err := s.repo.ScanExpiringBefore(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	documents := make([]*Document, 0, len(rows))
	for _, row := range rows {
		d := FromDataModel(row)
		d.Classify(today, windowDays)
		documents = append(documents, d)
	}
	return documents, nil
}

func (s *Service) checkEmployeeAccess(ctx context.Context, actor *auth.User, employeeID int64) error {
	if actor.CompanyID == nil {
		return internal.ErrCompanyNotFound
	}

	emp, err := s.employees.GetByID(ctx, *actor.CompanyID, employeeID)
	if err != nil {
		return err
	}
	if emp == nil {
		return internal.ErrEmployeeNotFound
	}
	if !scope.CanAccessEmployee(actor.Scope(), emp.DepartmentID) {
		return internal.ErrDepartmentAccessDenied
	}
	return nil
}
