package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/alfarhan/hr-fleet-management/internal/audit"
	"github.com/alfarhan/hr-fleet-management/internal/auth"
	"github.com/alfarhan/hr-fleet-management/internal/company"
	"github.com/alfarhan/hr-fleet-management/internal/department"
	"github.com/alfarhan/hr-fleet-management/internal/document"
	"github.com/alfarhan/hr-fleet-management/internal/employee"
	"github.com/alfarhan/hr-fleet-management/internal/permission"
	"github.com/alfarhan/hr-fleet-management/internal/report"
	"github.com/alfarhan/hr-fleet-management/internal/transport/middleware"
	"github.com/alfarhan/hr-fleet-management/internal/transport/swagger"
	"github.com/alfarhan/hr-fleet-management/internal/user"
	"github.com/alfarhan/hr-fleet-management/internal/vehicle"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth       *auth.Handler
	User       *user.Handler
	Company    *company.Handler
	Department *department.Handler
	Employee   *employee.Handler
	Vehicle    *vehicle.Handler
	Document   *document.Handler
	Report     *report.Handler
	Audit      *audit.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, accessChecker middleware.AccessChecker, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", h.Auth.Login)
			sr.Post("/refresh", h.Auth.RefreshToken)
			sr.Post("/logout", h.Auth.Logout)
		})

		// Protected routes
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Get("/users/me", h.User.GetCurrentUser)

			// Platform administration, not gated on company access
			pr.Route("/companies", func(cr chi.Router) {
				cr.Get("/", h.Company.ListCompanies)
				cr.Post("/", h.Company.CreateCompany)
				cr.Get("/{id}", h.Company.GetCompany)
				cr.Get("/{id}/usage", h.Company.CompanyUsage)
				cr.Patch("/{id}/suspend", h.Company.SuspendCompany)
				cr.Patch("/{id}/activate", h.Company.ActivateCompany)
				cr.Patch("/{id}/trial", h.Company.ExtendTrial)
				cr.Patch("/{id}/plan", h.Company.ChangePlan)
				cr.Patch("/{id}/limits", h.Company.OverrideLimits)
			})

			// Tenant routes require a live subscription or trial
			pr.Group(func(tr chi.Router) {
				tr.Use(middleware.RequireActiveCompany(accessChecker))

				tr.Route("/users", func(ur chi.Router) {
					ur.Use(middleware.RequireModuleAccess(permission.ModuleSettings))
					ur.Get("/", h.User.ListUsers)
					ur.Post("/", h.User.CreateUser)
					ur.Get("/{id}", h.User.GetUser)
					ur.Patch("/{id}", h.User.UpdateUser)
					ur.Post("/{id}/permissions", h.User.GrantPermission)
					ur.Delete("/{id}/permissions/{module}", h.User.RevokePermission)
					ur.Post("/{id}/departments", h.User.GrantDepartment)
					ur.Delete("/{id}/departments/{departmentID}", h.User.RevokeDepartment)
				})

				tr.Route("/departments", func(dr chi.Router) {
					dr.Use(middleware.RequireModuleAccess(permission.ModuleDepartments))
					dr.Get("/", h.Department.ListDepartments)
					dr.Get("/{id}", h.Department.GetDepartment)

					dr.Group(func(mr chi.Router) {
						mr.Use(middleware.RequirePermission(permission.ModuleDepartments, permission.CapabilityCreate))
						mr.Post("/", h.Department.CreateDepartment)
					})
					dr.Group(func(mr chi.Router) {
						mr.Use(middleware.RequirePermission(permission.ModuleDepartments, permission.CapabilityEdit))
						mr.Patch("/{id}", h.Department.UpdateDepartment)
					})
					dr.Group(func(mr chi.Router) {
						mr.Use(middleware.RequirePermission(permission.ModuleDepartments, permission.CapabilityDelete))
						mr.Delete("/{id}", h.Department.DeleteDepartment)
					})
				})

				tr.Route("/employees", func(er chi.Router) {
					er.Use(middleware.RequireModuleAccess(permission.ModuleEmployees))

					er.Group(func(mr chi.Router) {
						mr.Use(middleware.RequirePermission(permission.ModuleEmployees, permission.CapabilityView))
						mr.Get("/", h.Employee.ListEmployees)
						mr.Get("/{id}", h.Employee.GetEmployee)
					})
					er.Group(func(mr chi.Router) {
						mr.Use(middleware.RequirePermission(permission.ModuleEmployees, permission.CapabilityCreate))
						mr.Post("/", h.Employee.CreateEmployee)
					})
					er.Group(func(mr chi.Router) {
						mr.Use(middleware.RequirePermission(permission.ModuleEmployees, permission.CapabilityEdit))
						mr.Patch("/{id}", h.Employee.UpdateEmployee)
					})
					er.Group(func(mr chi.Router) {
						mr.Use(middleware.RequirePermission(permission.ModuleEmployees, permission.CapabilityDelete))
						mr.Delete("/{id}", h.Employee.DeleteEmployee)
					})
				})

				tr.Route("/vehicles", func(vr chi.Router) {
					vr.Use(middleware.RequireModuleAccess(permission.ModuleVehicles))

					vr.Group(func(mr chi.Router) {
						mr.Use(middleware.RequirePermission(permission.ModuleVehicles, permission.CapabilityView))
						mr.Get("/", h.Vehicle.ListVehicles)
						mr.Get("/expiring", h.Vehicle.ExpiringDocuments)
						mr.Get("/{id}", h.Vehicle.GetVehicle)
					})
					vr.Group(func(mr chi.Router) {
						mr.Use(middleware.RequirePermission(permission.ModuleVehicles, permission.CapabilityCreate))
						mr.Post("/", h.Vehicle.CreateVehicle)
					})
					vr.Group(func(mr chi.Router) {
						mr.Use(middleware.RequirePermission(permission.ModuleVehicles, permission.CapabilityEdit))
						mr.Patch("/{id}", h.Vehicle.UpdateVehicle)
					})
					vr.Group(func(mr chi.Router) {
						mr.Use(middleware.RequirePermission(permission.ModuleVehicles, permission.CapabilityDelete))
						mr.Delete("/{id}", h.Vehicle.DeleteVehicle)
					})
				})

				tr.Route("/documents", func(dr chi.Router) {
					dr.Use(middleware.RequireModuleAccess(permission.ModuleDocuments))

					dr.Group(func(mr chi.Router) {
						mr.Use(middleware.RequirePermission(permission.ModuleDocuments, permission.CapabilityView))
						mr.Get("/", h.Document.ListDocuments)
						mr.Get("/expiring", h.Document.ExpiringDocuments)
						mr.Get("/summary", h.Document.ExpirySummary)
						mr.Get("/{id}", h.Document.GetDocument)
					})
					dr.Group(func(mr chi.Router) {
						mr.Use(middleware.RequirePermission(permission.ModuleDocuments, permission.CapabilityCreate))
						mr.Post("/", h.Document.CreateDocument)
					})
					dr.Group(func(mr chi.Router) {
						mr.Use(middleware.RequirePermission(permission.ModuleDocuments, permission.CapabilityEdit))
						mr.Patch("/{id}", h.Document.UpdateDocument)
					})
					dr.Group(func(mr chi.Router) {
						mr.Use(middleware.RequirePermission(permission.ModuleDocuments, permission.CapabilityDelete))
						mr.Delete("/{id}", h.Document.DeleteDocument)
					})
				})

				tr.Route("/reports", func(rr chi.Router) {
					rr.Use(middleware.RequireModuleAccess(permission.ModuleReports))
					rr.Use(middleware.RequirePermission(permission.ModuleReports, permission.CapabilityView))
					rr.Get("/employees.pdf", h.Report.EmployeeRosterPDF)
					rr.Get("/employee-salaries.xlsx", h.Report.EmployeeSalariesExcel)
					rr.Get("/expiring-documents.pdf", h.Report.ExpiringDocumentsPDF)
				})

				tr.Route("/audit", func(ar chi.Router) {
					ar.Use(middleware.RequirePermission(permission.ModuleSettings, permission.CapabilityManage))
					ar.Get("/", h.Audit.CompanyTrail)
					ar.Get("/{entityType}/{entityID}", h.Audit.EntityHistory)
				})
			})
		})
	})
}
