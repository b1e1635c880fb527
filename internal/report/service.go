package report

import (
	"context"
	"log/slog"

	"github.com/alfarhan/hr-fleet-management/internal"
	"github.com/alfarhan/hr-fleet-management/internal/auth"
	companyDatamodel "github.com/alfarhan/hr-fleet-management/internal/core/datamodel/company"
	"github.com/alfarhan/hr-fleet-management/internal/document"
	"github.com/alfarhan/hr-fleet-management/internal/employee"
	"github.com/alfarhan/hr-fleet-management/internal/expiry"
)

type EmployeeLister interface {
	List(ctx context.Context, actor *auth.User, params employee.ListParams) (*employee.EmployeeListResponse, error)
}

type DocumentLister interface {
	Expiring(ctx context.Context, actor *auth.User, windowDays int) ([]*document.Document, error)
}

type CompanyGetter interface {
	GetByID(ctx context.Context, id int64) (*companyDatamodel.Company, error)
}

type Service struct {
	employees EmployeeLister
	documents DocumentLister
	companies CompanyGetter
	pdf       *PDFGenerator
	excel     *ExcelGenerator
	logger    *slog.Logger
}

func NewService(employees EmployeeLister, documents DocumentLister, companies CompanyGetter, logger *slog.Logger) *Service {
	return &Service{
		employees: employees,
		documents: documents,
		companies: companies,
		pdf:       NewPDFGenerator(),
		excel:     NewExcelGenerator(),
		logger:    logger,
	}
}

func (s *Service) companyName(ctx context.Context, actor *auth.User) (string, error) {
	if actor.CompanyID == nil {
		return "", internal.ErrCompanyNotFound
	}
	c, err := s.companies.GetByID(ctx, *actor.CompanyID)
	if err != nil {
		return "", err
	}
	if c == nil {
		return "", internal.ErrCompanyNotFound
	}
	return c.Name, nil
}

func (s *Service) allVisibleEmployees(ctx context.Context, actor *auth.User) ([]*employee.Employee, error) {
	const pageSize = 200
	var all []*employee.Employee
	for offset := 0; ; offset += pageSize {
		page, err := s.employees.List(ctx, actor, employee.ListParams{Limit: pageSize, Offset: offset})
		if err != nil {
			return nil, err
		}
		all = append(all, page.Employees...)
		if len(all) >= int(page.Total) || len(page.Employees) == 0 {
			return all, nil
		}
	}
}

// EmployeeRosterPDF renders the actor's visible employees as a PDF roster.
func (s *Service) EmployeeRosterPDF(ctx context.Context, actor *auth.User) ([]byte, error) {
	name, err := s.companyName(ctx, actor)
	if err != nil {
		return nil, err
	}

	employees, err := s.allVisibleEmployees(ctx, actor)
	if err != nil {
		return nil, err
	}

	s.logger.Info("generating employee roster pdf", "company_id", *actor.CompanyID, "employees", len(employees))
	return s.pdf.EmployeeRoster(name, employees)
}

// EmployeeSalariesExcel exports salary breakdowns as an xlsx workbook.
func (s *Service) EmployeeSalariesExcel(ctx context.Context, actor *auth.User) ([]byte, error) {
	employees, err := s.allVisibleEmployees(ctx, actor)
	if err != nil {
		return nil, err
	}

	return s.excel.EmployeeSalaries(employees)
}

// ExpiringDocumentsPDF renders documents inside the warning window.
func (s *Service) ExpiringDocumentsPDF(ctx context.Context, actor *auth.User, windowDays int) ([]byte, error) {
	if windowDays <= 0 {
		windowDays = expiry.DefaultWindowDays
	}

	name, err := s.companyName(ctx, actor)
	if err != nil {
		return nil, err
	}

	documents, err := s.documents.Expiring(ctx, actor, windowDays)
	if err != nil {
		return nil, err
	}

	return s.pdf.ExpiringDocuments(name, windowDays, documents)
}
