package user_test

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
	userDatamodel "github.com/alfarhan/hr-fleet-management/internal/core/datamodel/user"
	"github.com/alfarhan/hr-fleet-management/internal/database"
	"github.com/alfarhan/hr-fleet-management/internal/entitlement"
	"github.com/alfarhan/hr-fleet-management/internal/user"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestUserService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Service Suite")
}

// MockRepository implements user.RepositoryAPI for testing
type MockRepository struct {
	users       map[int64]*userDatamodel.User
	permissions map[int64]map[string]*userDatamodel.ModulePermission
	departments map[int64]map[int64]*userDatamodel.DepartmentAccess
	nextID      int64
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		users:       make(map[int64]*userDatamodel.User),
		permissions: make(map[int64]map[string]*userDatamodel.ModulePermission),
		departments: make(map[int64]map[int64]*userDatamodel.DepartmentAccess),
		nextID:      1,
	}
}

func (m *MockRepository) GetByCompany(ctx context.Context, companyID int64) ([]*userDatamodel.User, error) {
	var out []*userDatamodel.User
	for _, u := range m.users {
		if u.CompanyID != nil && *u.CompanyID == companyID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *MockRepository) GetByID(ctx context.Context, companyID, id int64) (*userDatamodel.User, error) {
	u, ok := m.users[id]
	if !ok || u.CompanyID == nil || *u.CompanyID != companyID {
		return nil, nil
	}
	return u, nil
}

func (m *MockRepository) GetByEmail(ctx context.Context, companyID int64, email string) (*userDatamodel.User, error) {
	for _, u := range m.users {
		if u.CompanyID != nil && *u.CompanyID == companyID && u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *MockRepository) Create(ctx context.Context, u *userDatamodel.User) error {
	u.ID = m.nextID
	m.nextID++
	m.users[u.ID] = u
	return nil
}

func (m *MockRepository) Update(ctx context.Context, u *userDatamodel.User) error {
	m.users[u.ID] = u
	return nil
}

func (m *MockRepository) ListPermissions(ctx context.Context, userID int64) ([]*userDatamodel.ModulePermission, error) {
	var out []*userDatamodel.ModulePermission
	for _, p := range m.permissions[userID] {
		out = append(out, p)
	}
	return out, nil
}

func (m *MockRepository) UpsertPermission(ctx context.Context, p *userDatamodel.ModulePermission) error {
	if m.permissions[p.UserID] == nil {
		m.permissions[p.UserID] = make(map[string]*userDatamodel.ModulePermission)
	}
	m.permissions[p.UserID][p.Module] = p
	return nil
}

func (m *MockRepository) DeletePermission(ctx context.Context, userID int64, module string) error {
	delete(m.permissions[userID], module)
	return nil
}

func (m *MockRepository) ListDepartmentAccess(ctx context.Context, userID int64) ([]*userDatamodel.DepartmentAccess, error) {
	var out []*userDatamodel.DepartmentAccess
	for _, a := range m.departments[userID] {
		out = append(out, a)
	}
	return out, nil
}

func (m *MockRepository) GrantDepartmentAccess(ctx context.Context, a *userDatamodel.DepartmentAccess) error {
	if m.departments[a.UserID] == nil {
		m.departments[a.UserID] = make(map[int64]*userDatamodel.DepartmentAccess)
	}
	m.departments[a.UserID][a.DepartmentID] = a
	return nil
}

func (m *MockRepository) RevokeDepartmentAccess(ctx context.Context, userID, departmentID int64) error {
	delete(m.departments[userID], departmentID)
	return nil
}

// MockCompanyGetter implements user.CompanyGetter for testing
type MockCompanyGetter struct {
	company *companyDatamodel.Company
}

func (m *MockCompanyGetter) GetByID(ctx context.Context, id int64) (*companyDatamodel.Company, error) {
	return m.company, nil
}

// MockHasher implements user.PasswordHasher for testing
type MockHasher struct{}

func (MockHasher) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

// MockCounter implements entitlement.Counter for testing
type MockCounter struct {
	users int64
}

func (m *MockCounter) CountUsers(ctx context.Context, companyID int64) (int64, error) {
	return m.users, nil
}
func (m *MockCounter) CountEmployees(ctx context.Context, companyID int64) (int64, error) {
	return 0, nil
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

var _ = Describe("User Service", func() {
	var (
		repo      *MockRepository
		counter   *MockCounter
		auditRepo *MockAuditRepository
		service   *user.Service
		ctx       context.Context
		actor     *auth.User
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

		service = user.NewService(
			repo,
			&MockCompanyGetter{company: &companyDatamodel.Company{ID: companyID, SubscriptionPlan: string(entitlement.PlanBasic)}},
			MockHasher{},
			entitlement.NewService(counter, log),
			audit.NewRecorder(auditRepo, log),
			database.NewTransactionManager(db),
			log,
		)
		ctx = context.Background()

		actor = &auth.User{ID: 1, CompanyID: &companyID, UserType: userDatamodel.TypeCompanyAdmin, Role: userDatamodel.RoleAdmin}
	})

	seedUser := func(id int64, email string) *userDatamodel.User {
		u := &userDatamodel.User{
			ID: id, CompanyID: &companyID, Email: email, Name: "User " + email,
			UserType: userDatamodel.TypeEmployee, Role: userDatamodel.RoleUser, IsActive: true,
		}
		repo.users[id] = u
		if id >= repo.nextID {
			repo.nextID = id + 1
		}
		return u
	}

	Describe("Create", func() {
		dto := func() user.CreateUserDTO {
			return user.CreateUserDTO{
				Email:    "new@company.example",
				Name:     "New User",
				Password: "long-enough-password",
				Role:     userDatamodel.RoleHR,
			}
		}

		It("should create an employee-type user and audit without the password hash", func() {
			created, err := service.Create(ctx, actor, dto())
			Expect(err).NotTo(HaveOccurred())
			Expect(created.Email).To(Equal("new@company.example"))
			Expect(created.Role).To(Equal(userDatamodel.RoleHR))

			Expect(auditRepo.records).To(HaveLen(1))
			Expect(string(auditRepo.records[0].NewData)).NotTo(ContainSubstring("hashed:"))
		})

		It("should default the role", func() {
			d := dto()
			d.Role = ""
			created, err := service.Create(ctx, actor, d)
			Expect(err).NotTo(HaveOccurred())
			Expect(created.Role).To(Equal(userDatamodel.RoleUser))
		})

		It("should enforce the seat limit", func() {
			counter.users = 5
			_, err := service.Create(ctx, actor, dto())
			Expect(err).To(Equal(internal.ErrUserLimitReached))
		})

		It("should reject duplicate emails within the company", func() {
			seedUser(2, "new@company.example")
			_, err := service.Create(ctx, actor, dto())
			Expect(err).To(Equal(internal.ErrDuplicateEmail))
		})

		It("should reject short passwords and unknown roles", func() {
			d := dto()
			d.Password = "short"
			_, err := service.Create(ctx, actor, d)
			Expect(err).To(HaveOccurred())

			d = dto()
			d.Role = "superuser"
			_, err = service.Create(ctx, actor, d)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("GrantPermission", func() {
		BeforeEach(func() {
			seedUser(2, "target@company.example")
		})

		It("should persist the capability set as a bitmask", func() {
			err := service.GrantPermission(ctx, actor, 2, user.GrantPermissionDTO{
				Module:       "employees",
				Capabilities: []string{"view", "create", "edit"},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.permissions[2]["employees"].Permissions).To(Equal(7))
			Expect(auditRepo.records).To(HaveLen(1))
			Expect(auditRepo.records[0].Action).To(Equal(audit.ActionGrant))
		})

		It("should persist admin as the full bitmask", func() {
			err := service.GrantPermission(ctx, actor, 2, user.GrantPermissionDTO{
				Module:       "settings",
				Capabilities: []string{"admin"},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.permissions[2]["settings"].Permissions).To(Equal(255))
		})

		It("should replace an existing grant rather than accumulate", func() {
			Expect(service.GrantPermission(ctx, actor, 2, user.GrantPermissionDTO{
				Module: "employees", Capabilities: []string{"view", "create"},
			})).To(Succeed())
			Expect(service.GrantPermission(ctx, actor, 2, user.GrantPermissionDTO{
				Module: "employees", Capabilities: []string{"view"},
			})).To(Succeed())
			Expect(repo.permissions[2]["employees"].Permissions).To(Equal(1))
		})

		It("should reject unknown modules and capabilities", func() {
			err := service.GrantPermission(ctx, actor, 2, user.GrantPermissionDTO{
				Module: "payroll", Capabilities: []string{"view"},
			})
			Expect(err).To(HaveOccurred())

			err = service.GrantPermission(ctx, actor, 2, user.GrantPermissionDTO{
				Module: "employees", Capabilities: []string{"fly"},
			})
			Expect(err).To(HaveOccurred())
		})

		It("should reject an empty capability list", func() {
			err := service.GrantPermission(ctx, actor, 2, user.GrantPermissionDTO{Module: "employees"})
			Expect(err).To(HaveOccurred())
		})

		It("should fail for unknown target users", func() {
			err := service.GrantPermission(ctx, actor, 99, user.GrantPermissionDTO{
				Module: "employees", Capabilities: []string{"view"},
			})
			Expect(err).To(Equal(internal.ErrUserNotFound))
		})
	})

	Describe("RevokePermission", func() {
		BeforeEach(func() {
			seedUser(2, "target@company.example")
			Expect(service.GrantPermission(ctx, actor, 2, user.GrantPermissionDTO{
				Module: "documents", Capabilities: []string{"view"},
			})).To(Succeed())
		})

		It("should delete the grant row entirely", func() {
			Expect(service.RevokePermission(ctx, actor, 2, "documents")).To(Succeed())
			Expect(repo.permissions[2]).NotTo(HaveKey("documents"))
		})

		It("should reject unknown modules", func() {
			Expect(service.RevokePermission(ctx, actor, 2, "payroll")).To(HaveOccurred())
		})
	})

	Describe("Department access", func() {
		BeforeEach(func() {
			seedUser(2, "target@company.example")
		})

		It("should grant and revoke explicit department access", func() {
			Expect(service.GrantDepartment(ctx, actor, 2, user.GrantDepartmentDTO{DepartmentID: 5})).To(Succeed())
			Expect(repo.departments[2]).To(HaveKey(int64(5)))

			Expect(service.RevokeDepartment(ctx, actor, 2, 5)).To(Succeed())
			Expect(repo.departments[2]).NotTo(HaveKey(int64(5)))
		})

		It("should reject non-positive department ids", func() {
			Expect(service.GrantDepartment(ctx, actor, 2, user.GrantDepartmentDTO{})).To(HaveOccurred())
		})
	})

	Describe("Get", func() {
		It("should attach decoded grants and department access", func() {
			seedUser(2, "target@company.example")
			Expect(service.GrantPermission(ctx, actor, 2, user.GrantPermissionDTO{
				Module: "employees", Capabilities: []string{"view", "delete"},
			})).To(Succeed())
			Expect(service.GrantDepartment(ctx, actor, 2, user.GrantDepartmentDTO{DepartmentID: 7})).To(Succeed())

			got, err := service.Get(ctx, actor, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Permissions).To(HaveKeyWithValue("employees", []string{"delete", "view"}))
			Expect(got.DepartmentAccess).To(ConsistOf(int64(7)))
		})

		It("should return not found for users of other companies", func() {
			other := int64(2)
			repo.users[9] = &userDatamodel.User{ID: 9, CompanyID: &other, Email: "other@co.example"}
			_, err := service.Get(ctx, actor, 9)
			Expect(err).To(Equal(internal.ErrUserNotFound))
		})
	})
})
