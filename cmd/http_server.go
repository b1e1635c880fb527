package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alfarhan/hr-fleet-management/internal"
	"github.com/alfarhan/hr-fleet-management/internal/audit"
	auditPostgres "github.com/alfarhan/hr-fleet-management/internal/audit/postgres"
	"github.com/alfarhan/hr-fleet-management/internal/auth"
	authPostgres "github.com/alfarhan/hr-fleet-management/internal/auth/postgres"
	"github.com/alfarhan/hr-fleet-management/internal/company"
	companyPostgres "github.com/alfarhan/hr-fleet-management/internal/company/postgres"
	"github.com/alfarhan/hr-fleet-management/internal/database"
	"github.com/alfarhan/hr-fleet-management/internal/department"
	departmentPostgres "github.com/alfarhan/hr-fleet-management/internal/department/postgres"
	"github.com/alfarhan/hr-fleet-management/internal/document"
	documentPostgres "github.com/alfarhan/hr-fleet-management/internal/document/postgres"
	"github.com/alfarhan/hr-fleet-management/internal/employee"
	employeePostgres "github.com/alfarhan/hr-fleet-management/internal/employee/postgres"
	"github.com/alfarhan/hr-fleet-management/internal/entitlement"
	entitlementPostgres "github.com/alfarhan/hr-fleet-management/internal/entitlement/postgres"
	"github.com/alfarhan/hr-fleet-management/internal/report"
	"github.com/alfarhan/hr-fleet-management/internal/transport"
	"github.com/alfarhan/hr-fleet-management/internal/transport/rest"
	"github.com/alfarhan/hr-fleet-management/internal/user"
	userPostgres "github.com/alfarhan/hr-fleet-management/internal/user/postgres"
	"github.com/alfarhan/hr-fleet-management/internal/vehicle"
	vehiclePostgres "github.com/alfarhan/hr-fleet-management/internal/vehicle/postgres"
	"github.com/alfarhan/hr-fleet-management/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	GormDB *gorm.DB
	Router *chi.Mux
	Logger *slog.Logger

	CompanyService *company.Service
	Handlers       rest.Handlers
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, deps.Handlers, deps.CompanyService, deps.Logger)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	cfg, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(cfg.Observability.Logging.Format)
	log := logger.LoggerWrapper()

	db, err := initDB(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	txManager := database.NewTransactionManager(gormDB)
	baseHandler := transport.NewBaseHandler(log)

	auditRecorder := audit.NewRecorder(auditPostgres.NewAuditRepository(gormDB), log)
	entitlementService := entitlement.NewService(entitlementPostgres.NewCounterRepository(gormDB), log)

	tokenGen := auth.NewJWTTokenGenerator(
		cfg.Security.AccessTokenSecret,
		cfg.Security.RefreshTokenSecret,
		cfg.Security.AccessTokenDuration,
		cfg.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(authPostgres.NewRepository(gormDB), tokenGen, cfg.Security.BCryptCost)
	authHandler := auth.NewHandler(authService)

	companyRepo := companyPostgres.NewCompanyRepository(gormDB)
	userRepo := userPostgres.NewUserRepository(gormDB)

	companyService := company.NewService(companyRepo, userRepo, authService, entitlementService, auditRecorder, txManager, log)
	userService := user.NewService(userRepo, companyRepo, authService, entitlementService, auditRecorder, txManager, log)

	departmentService := department.NewService(
		departmentPostgres.NewDepartmentRepository(gormDB),
		companyRepo, entitlementService, auditRecorder, txManager, log)

	employeeRepo := employeePostgres.NewEmployeeRepository(gormDB)
	employeeService := employee.NewService(employeeRepo, companyRepo, entitlementService, auditRecorder, txManager, log)

	vehicleService := vehicle.NewService(
		vehiclePostgres.NewVehicleRepository(gormDB),
		companyRepo, entitlementService, auditRecorder, txManager,
		cfg.Expiry.FeeWindowDays, log)

	documentService := document.NewService(
		documentPostgres.NewDocumentRepository(gormDB),
		employeeRepo, auditRecorder, txManager,
		cfg.Expiry.DocumentWindowDays, log)

	reportService := report.NewService(employeeService, documentService, companyRepo, log)

	handlers := rest.Handlers{
		Auth:       authHandler,
		User:       user.NewHandler(baseHandler, userService),
		Company:    company.NewHandler(baseHandler, companyService),
		Department: department.NewHandler(baseHandler, departmentService),
		Employee:   employee.NewHandler(baseHandler, employeeService),
		Vehicle:    vehicle.NewHandler(baseHandler, vehicleService),
		Document:   document.NewHandler(baseHandler, documentService),
		Report:     report.NewHandler(baseHandler, reportService),
		Audit:      audit.NewHandler(baseHandler, auditRecorder),
	}

	return &Dependencies{
		Config:         cfg,
		DB:             db,
		GormDB:         gormDB,
		Router:         chi.NewRouter(),
		Logger:         log,
		CompanyService: companyService,
		Handlers:       handlers,
	}, nil
}

func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
