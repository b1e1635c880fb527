package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alfarhan/hr-fleet-management/internal"
	"github.com/alfarhan/hr-fleet-management/internal/audit"
	auditPostgres "github.com/alfarhan/hr-fleet-management/internal/audit/postgres"
	companyPostgres "github.com/alfarhan/hr-fleet-management/internal/company/postgres"
	"github.com/alfarhan/hr-fleet-management/internal/core/events"
	"github.com/alfarhan/hr-fleet-management/internal/database"
	"github.com/alfarhan/hr-fleet-management/internal/document"
	documentPostgres "github.com/alfarhan/hr-fleet-management/internal/document/postgres"
	employeePostgres "github.com/alfarhan/hr-fleet-management/internal/employee/postgres"
	"github.com/alfarhan/hr-fleet-management/internal/entitlement"
	entitlementPostgres "github.com/alfarhan/hr-fleet-management/internal/entitlement/postgres"
	"github.com/alfarhan/hr-fleet-management/internal/expiry"
	"github.com/alfarhan/hr-fleet-management/internal/vehicle"
	vehiclePostgres "github.com/alfarhan/hr-fleet-management/internal/vehicle/postgres"
	"github.com/alfarhan/hr-fleet-management/pkg/logger"

	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start background workers",
	Long:  `Start and manage background workers such as the expiry scanner.`,
}

var expiryWorkerCmd = &cobra.Command{
	Use:   "expiry",
	Short: "Start the document expiry scanner",
	Long:  `Periodically scans employee documents and vehicle dates across all companies and publishes expiry events.`,
	Run: func(cmd *cobra.Command, args []string) {
		startExpiryWorker()
	},
}

var (
	scanInterval   time.Duration
	scanWindowDays int
)

func startExpiryWorker() {
	cfg, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Observability.Logging.Format)
	log := logger.LoggerWrapper()

	db, err := initDB(cfg.Database)
	if err != nil {
		log.Error("failed to init db", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		log.Error("failed to init orm", "error", err)
		os.Exit(1)
	}

	txManager := database.NewTransactionManager(gormDB)
	auditRecorder := audit.NewRecorder(auditPostgres.NewAuditRepository(gormDB), log)
	entitlementService := entitlement.NewService(entitlementPostgres.NewCounterRepository(gormDB), log)
	companyRepo := companyPostgres.NewCompanyRepository(gormDB)

	documentService := document.NewService(
		documentPostgres.NewDocumentRepository(gormDB),
		employeePostgres.NewEmployeeRepository(gormDB),
		auditRecorder, txManager,
		cfg.Expiry.DocumentWindowDays, log)

	vehicleService := vehicle.NewService(
		vehiclePostgres.NewVehicleRepository(gormDB),
		companyRepo, entitlementService, auditRecorder, txManager,
		cfg.Expiry.FeeWindowDays, log)

	eventBus := events.NewEventBus(log)
	for _, eventType := range []string{
		events.EventTypeDocumentExpiring,
		events.EventTypeDocumentExpired,
		events.EventTypeVehicleExpiring,
	} {
		eventBus.Subscribe(eventType, func(ctx context.Context, event events.Event) error {
			log.Info("expiry event",
				"event_id", event.EventID(),
				"event_type", event.EventType(),
				"payload", event.Payload())
			return nil
		})
	}

	scanner := &expiryScanner{
		documents: documentService,
		vehicles:  vehicleService,
		bus:       eventBus,
		window:    scanWindowDays,
		log:       log,
	}

	log.Info("expiry scanner started", "interval", scanInterval, "window_days", scanWindowDays)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(scanInterval)
	defer ticker.Stop()

	scanner.scanOnce(ctx)

	for {
		select {
		case <-ticker.C:
			scanner.scanOnce(ctx)
		case sig := <-sigChan:
			log.Info("received signal, shutting down expiry scanner", "signal", sig)
			return
		}
	}
}

type expiryScanner struct {
	documents *document.Service
	vehicles  *vehicle.Service
	bus       *events.EventBus
	window    int
	log       *slog.Logger
}

func (s *expiryScanner) scanOnce(parent context.Context) {
	ctx, cancel := internal.WithTimeout(parent, 5*time.Minute)
	defer cancel()

	documents, err := s.documents.ScanExpiring(ctx, s.window)
	if err != nil {
		s.log.Error("document scan failed", "error", err)
	} else {
		for _, d := range documents {
			days := 0
			if d.DaysRemaining != nil {
				days = *d.DaysRemaining
			}
			s.bus.Publish(ctx, events.NewDocumentExpiringEvent(d.ID, d.CompanyID, d.EmployeeID, d.Type, days))
		}
		s.log.Info("document scan complete", "matched", len(documents))
	}

	vehicles, err := s.vehicles.ScanExpiring(ctx, s.window)
	if err != nil {
		s.log.Error("vehicle scan failed", "error", err)
		return
	}
	today := time.Now()
	published := 0
	for _, v := range vehicles {
		for _, d := range []struct {
			kind   string
			date   *time.Time
			status expiry.Status
		}{
			{"registration", v.RegistrationExpiry, v.RegistrationStatus},
			{"insurance", v.InsuranceExpiry, v.InsuranceStatus},
			{"inspection", v.InspectionExpiry, v.InspectionStatus},
		} {
			if d.date == nil || d.status == expiry.StatusValid {
				continue
			}
			s.bus.Publish(ctx, events.NewVehicleExpiringEvent(v.ID, v.CompanyID, v.PlateNumber, d.kind, expiry.DaysRemaining(*d.date, today)))
			published++
		}
	}
	s.log.Info("vehicle scan complete", "matched", len(vehicles), "events", published)
}

func init() {
	expiryWorkerCmd.Flags().DurationVar(&scanInterval, "interval", 24*time.Hour, "Time between scans")
	expiryWorkerCmd.Flags().IntVar(&scanWindowDays, "window-days", 0, "Warning window in days (0 uses config defaults)")

	workerCmd.AddCommand(expiryWorkerCmd)
}
