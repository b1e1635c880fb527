package employee_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/alfarhan/hr-fleet-management/internal"
	"github.com/alfarhan/hr-fleet-management/internal/audit"
	"github.com/alfarhan/hr-fleet-management/internal/auth"
	auditDatamodel "github.com/alfarhan/hr-fleet-management/internal/core/datamodel/audit"
	companyDatamodel "github.com/alfarhan/hr-fleet-management/internal/core/datamodel/company"
	employeeDatamodel "github.com/alfarhan/hr-fleet-management/internal/core/datamodel/employee"
	"github.com/alfarhan/hr-fleet-management/internal/database"
	"github.com/alfarhan/hr-fleet-management/internal/employee"
	"github.com/alfarhan/hr-fleet-management/internal/entitlement"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestEmployeeService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Employee Service Suite")
}

func int64Ptr(v int64) *int64 { return &v }

// MockRepository implements employee.RepositoryAPI for testing
type MockRepository struct {
	employees map[int64]*employeeDatamodel.Employee
	nextID    int64

	lastDepartmentIDs []int64
	listCalled        bool
}

func NewMockRepository() *MockRepository {
	return &MockRepository{employees: make(map[int64]*employeeDatamodel.Employee), nextID: 1}
}

func (m *MockRepository) List(ctx context.Context, companyID int64, departmentIDs []int64, params employee.ListParams) ([]*employeeDatamodel.Employee, int64, error) {
	m.listCalled = true
	m.lastDepartmentIDs = departmentIDs

	allowed := func(emp *employeeDatamodel.Employee) bool {
		if departmentIDs == nil {
			return true
		}
		if emp.DepartmentID == nil {
			return false
		}
		for _, id := range departmentIDs {
			if id == *emp.DepartmentID {
				return true
			}
		}
		return false
	}

	var out []*employeeDatamodel.Employee
	for _, emp := range m.employees {
		if emp.CompanyID == companyID && allowed(emp) {
			out = append(out, emp)
		}
	}
	return out, int64(len(out)), nil
}

func (m *MockRepository) GetByID(ctx context.Context, companyID, id int64) (*employeeDatamodel.Employee, error) {
	emp, ok := m.employees[id]
	if !ok || emp.CompanyID != companyID {
		return nil, nil
	}
	return emp, nil
}

func (m *MockRepository) GetByCode(ctx context.Context, companyID int64, code string) (*employeeDatamodel.Employee, error) {
	for _, emp := range m.employees {
		if emp.CompanyID == companyID && emp.EmployeeCode == code {
			return emp, nil
		}
	}
	return nil, nil
}

func (m *MockRepository) GetByNationalID(ctx context.Context, companyID int64, nationalID string) (*employeeDatamodel.Employee, error) {
	for _, emp := range m.employees {
		if emp.CompanyID == companyID && emp.NationalID == nationalID {
			return emp, nil
		}
	}
	return nil, nil
}

func (m *MockRepository) Create(ctx context.Context, emp *employeeDatamodel.Employee) error {
	emp.ID = m.nextID
	m.nextID++
	m.employees[emp.ID] = emp
	return nil
}

func (m *MockRepository) Update(ctx context.Context, emp *employeeDatamodel.Employee) error {
	m.employees[emp.ID] = emp
	return nil
}

func (m *MockRepository) Delete(ctx context.Context, companyID, id int64) error {
	delete(m.employees, id)
	return nil
}

// MockCompanyGetter implements employee.CompanyGetter for testing
type MockCompanyGetter struct {
	company *companyDatamodel.Company
}

func (m *MockCompanyGetter) GetByID(ctx context.Context, id int64) (*companyDatamodel.Company, error) {
	return m.company, nil
}

// MockCounter implements entitlement.Counter for testing
type MockCounter struct {
	employees int64
}

func (m *MockCounter) CountUsers(ctx context.Context, companyID int64) (int64, error) { return 0, nil }
func (m *MockCounter) CountEmployees(ctx context.Context, companyID int64) (int64, error) {
	return m.employees, nil
}
func (m *MockCounter) CountVehicles(ctx context.Context, companyID int64) (int64, error) {
	return 0, nil
}
func (m *MockCounter) CountDepartments(ctx context.Context, companyID int64) (int64, error) {
	return 0, nil
}

// MockAuditRepository implements audit.RepositoryAPI for testing
type MockAuditRepository struct {
	records []*auditDatamodel.Record
}

func (m *MockAuditRepository) Create(ctx context.Context, record *auditDatamodel.Record) error {
	m.records = append(m.records, record)
	return nil
}

func (m *MockAuditRepository) GetByEntity(ctx context.Context, entityType string, entityID int64, limit int) ([]*auditDatamodel.Record, error) {
	return nil, nil
}

func (m *MockAuditRepository) GetByCompany(ctx context.Context, companyID int64, limit, offset int) ([]*auditDatamodel.Record, error) {
	return nil, nil
}

var _ = Describe("Employee Service", func() {
	var (
		repo      *MockRepository
		counter   *MockCounter
		auditRepo *MockAuditRepository
		service   *employee.Service
		ctx       context.Context

		admin      *auth.User
		restricted *auth.User
	)

	companyID := int64(1)

	BeforeEach(func() {
		repo = NewMockRepository()
		counter = &MockCounter{}
		auditRepo = &MockAuditRepository{}

		log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		service = employee.NewService(
			repo,
			&MockCompanyGetter{company: &companyDatamodel.Company{ID: companyID, SubscriptionPlan: string(entitlement.PlanBasic)}},
			entitlement.NewService(counter, log),
			audit.NewRecorder(auditRepo, log),
			database.NewTransactionManager(db),
			log,
		)
		ctx = context.Background()

		admin = &auth.User{ID: 10, CompanyID: &companyID, UserType: auth.UserTypeCompanyAdmin, Role: auth.RoleAdmin}
		restricted = &auth.User{ID: 11, CompanyID: &companyID, UserType: auth.UserTypeEmployee, Role: "hr", AssignedDepartmentID: int64Ptr(5)}
	})

	seed := func(id int64, code string, departmentID *int64) {
		repo.employees[id] = &employeeDatamodel.Employee{
			ID: id, CompanyID: companyID, EmployeeCode: code,
			NationalID: "N" + code, Name: "Employee " + code,
			DepartmentID: departmentID, Status: employeeDatamodel.StatusActive,
		}
	}

	Describe("List", func() {
		BeforeEach(func() {
			seed(1, "EMP-001", int64Ptr(5))
			seed(2, "EMP-002", int64Ptr(6))
			seed(3, "EMP-003", nil)
		})

		Context("for an admin", func() {
			It("should return every employee including those without a department", func() {
				resp, err := service.List(ctx, admin, employee.ListParams{})
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.Total).To(Equal(int64(3)))
				Expect(repo.lastDepartmentIDs).To(BeNil())
			})
		})

		Context("for a department-scoped user", func() {
			It("should only return employees inside the scope", func() {
				resp, err := service.List(ctx, restricted, employee.ListParams{})
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.Total).To(Equal(int64(1)))
				Expect(resp.Employees[0].EmployeeCode).To(Equal("EMP-001"))
			})

			It("should deny an explicit department filter outside the scope", func() {
				_, err := service.List(ctx, restricted, employee.ListParams{DepartmentID: int64Ptr(6)})
				Expect(err).To(Equal(internal.ErrDepartmentAccessDenied))
			})

			It("should allow an explicit department filter inside the scope", func() {
				resp, err := service.List(ctx, restricted, employee.ListParams{DepartmentID: int64Ptr(5)})
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.Total).To(Equal(int64(1)))
			})
		})

		Context("for a user with no departments at all", func() {
			It("should return an empty list without touching the repository", func() {
				nobody := &auth.User{ID: 12, CompanyID: &companyID, UserType: auth.UserTypeEmployee, Role: "hr"}
				resp, err := service.List(ctx, nobody, employee.ListParams{})
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.Total).To(Equal(int64(0)))
				Expect(repo.listCalled).To(BeFalse())
			})
		})
	})

	Describe("Get", func() {
		BeforeEach(func() {
			seed(1, "EMP-001", int64Ptr(5))
			seed(2, "EMP-002", int64Ptr(6))
			seed(3, "EMP-003", nil)
		})

		It("should return an employee inside the scope", func() {
			emp, err := service.Get(ctx, restricted, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(emp.EmployeeCode).To(Equal("EMP-001"))
		})

		It("should deny an employee outside the scope", func() {
			_, err := service.Get(ctx, restricted, 2)
			Expect(err).To(Equal(internal.ErrDepartmentAccessDenied))
		})

		It("should deny an employee without a department to scoped users", func() {
			_, err := service.Get(ctx, restricted, 3)
			Expect(err).To(Equal(internal.ErrDepartmentAccessDenied))
		})

		It("should allow an employee without a department to admins", func() {
			emp, err := service.Get(ctx, admin, 3)
			Expect(err).NotTo(HaveOccurred())
			Expect(emp.DepartmentID).To(BeNil())
		})

		It("should return not found for unknown ids", func() {
			_, err := service.Get(ctx, admin, 999)
			Expect(err).To(Equal(internal.ErrEmployeeNotFound))
		})
	})

	Describe("Create", func() {
		dto := func() employee.CreateEmployeeDTO {
			return employee.CreateEmployeeDTO{
				EmployeeCode: "EMP-100",
				NationalID:   "2400000000",
				Name:         "New Employee",
				DepartmentID: int64Ptr(5),
			}
		}

		It("should create the employee and write an audit record", func() {
			emp, err := service.Create(ctx, admin, dto())
			Expect(err).NotTo(HaveOccurred())
			Expect(emp.Status).To(Equal(employeeDatamodel.StatusActive))
			Expect(auditRepo.records).To(HaveLen(1))
			Expect(auditRepo.records[0].Action).To(Equal(audit.ActionCreate))
			Expect(auditRepo.records[0].EntityType).To(Equal("employee"))
		})

		It("should reject a department outside the actor's scope", func() {
			d := dto()
			d.DepartmentID = int64Ptr(6)
			_, err := service.Create(ctx, restricted, d)
			Expect(err).To(Equal(internal.ErrDepartmentAccessDenied))
		})

		It("should enforce the employee ceiling", func() {
			counter.employees = 50
			_, err := service.Create(ctx, admin, dto())
			Expect(err).To(Equal(internal.ErrEmployeeLimitReached))
		})

		It("should reject duplicate employee codes within the company", func() {
			seed(1, "EMP-100", int64Ptr(5))
			_, err := service.Create(ctx, admin, dto())
			Expect(err).To(Equal(internal.ErrDuplicateEmployeeCode))
		})

		It("should reject duplicate national ids within the company", func() {
			repo.employees[1] = &employeeDatamodel.Employee{
				ID: 1, CompanyID: companyID, EmployeeCode: "EMP-001", NationalID: "2400000000",
			}
			_, err := service.Create(ctx, admin, dto())
			Expect(err).To(Equal(internal.ErrDuplicateNationalID))
		})

		It("should reject invalid payloads", func() {
			_, err := service.Create(ctx, admin, employee.CreateEmployeeDTO{Name: "No Code"})
			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeValidationFailed))
		})
	})

	Describe("Update", func() {
		BeforeEach(func() {
			seed(1, "EMP-001", int64Ptr(5))
			seed(2, "EMP-002", int64Ptr(6))
		})

		It("should patch only the supplied fields", func() {
			name := "Renamed"
			emp, err := service.Update(ctx, admin, 1, employee.UpdateEmployeeDTO{Name: &name})
			Expect(err).NotTo(HaveOccurred())
			Expect(emp.Name).To(Equal("Renamed"))
			Expect(emp.EmployeeCode).To(Equal("EMP-001"))
			Expect(auditRepo.records).To(HaveLen(1))
			Expect(auditRepo.records[0].Action).To(Equal(audit.ActionUpdate))
		})

		It("should deny moving an employee into a department outside the scope", func() {
			_, err := service.Update(ctx, restricted, 1, employee.UpdateEmployeeDTO{DepartmentID: int64Ptr(6)})
			Expect(err).To(Equal(internal.ErrDepartmentAccessDenied))
		})

		It("should deny updating an employee outside the scope", func() {
			name := "Renamed"
			_, err := service.Update(ctx, restricted, 2, employee.UpdateEmployeeDTO{Name: &name})
			Expect(err).To(Equal(internal.ErrDepartmentAccessDenied))
		})

		It("should reject invalid status values", func() {
			bad := "vanished"
			_, err := service.Update(ctx, admin, 1, employee.UpdateEmployeeDTO{Status: &bad})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Delete", func() {
		BeforeEach(func() {
			seed(1, "EMP-001", int64Ptr(5))
			seed(2, "EMP-002", int64Ptr(6))
		})

		It("should delete and write an audit record with the previous snapshot", func() {
			Expect(service.Delete(ctx, admin, 1)).To(Succeed())
			Expect(repo.employees).NotTo(HaveKey(int64(1)))
			Expect(auditRepo.records).To(HaveLen(1))
			Expect(auditRepo.records[0].Action).To(Equal(audit.ActionDelete))
			Expect(auditRepo.records[0].PreviousData).NotTo(BeNil())
		})

		It("should deny deleting outside the scope", func() {
			Expect(service.Delete(ctx, restricted, 2)).To(Equal(internal.ErrDepartmentAccessDenied))
			Expect(repo.employees).To(HaveKey(int64(2)))
		})
	})
})
