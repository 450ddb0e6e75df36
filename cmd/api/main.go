package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/harborline/caseflow-api/docs"
	"github.com/harborline/caseflow-api/internal/auth"
	"github.com/harborline/caseflow-api/internal/bus"
	"github.com/harborline/caseflow-api/internal/config"
	"github.com/harborline/caseflow-api/internal/database"
	"github.com/harborline/caseflow-api/internal/http/handler"
	"github.com/harborline/caseflow-api/internal/http/middleware"
	"github.com/harborline/caseflow-api/internal/http/router"
	"github.com/harborline/caseflow-api/internal/jobs"
	"github.com/harborline/caseflow-api/internal/legacy"
	"github.com/harborline/caseflow-api/internal/logger"
	"github.com/harborline/caseflow-api/internal/repository"
	"github.com/harborline/caseflow-api/internal/service"
	"github.com/harborline/caseflow-api/internal/storage"
	"github.com/harborline/caseflow-api/internal/workspace"
	"go.uber.org/zap"
)

// @title Harborline Caseflow API
// @version 1.0
// @description Back-office API for freight forwarding case management: quotations, bookings, finance and document generation
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@harborline.io

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name x-api-key
// @description API Key for system operations
// @Security BearerAuth
// @Security ApiKeyAuth

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	// Configure Swagger host based on environment
	switch basicCfg.App.Environment {
	case "staging":
		docs.SwaggerInfo.Host = "caseflow-staging.harborline.io"
	case "production":
		docs.SwaggerInfo.Host = "api.harborline.io"
	default:
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)
	}

	// Load full configuration with secrets
	// In development: uses environment variables
	// In staging/production: fetches from Azure Key Vault
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	// Connect to database
	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Initialize storage for rendered documents
	fileStorage, err := storage.NewStorage(&cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	log.Info("Storage initialized", zap.String("mode", cfg.Storage.Mode))

	// Initialize the legacy TMS warehouse connection (optional, read-only).
	// The application continues without it if not configured; customer
	// import simply becomes unavailable.
	var legacyClient *legacy.Client
	if cfg.LegacyWarehouse.Enabled {
		legacyClient, err = legacy.NewClient(&cfg.LegacyWarehouse, log)
		if err != nil {
			log.Warn("Legacy warehouse connection failed, continuing without it",
				zap.Error(err),
			)
		} else if legacyClient != nil {
			log.Info("Legacy warehouse connected successfully",
				zap.Int("max_open_conns", cfg.LegacyWarehouse.MaxOpenConns),
				zap.Int("query_timeout_seconds", cfg.LegacyWarehouse.QueryTimeout),
			)
		}
	} else {
		log.Info("Legacy warehouse not configured, skipping",
			zap.Bool("enabled", cfg.LegacyWarehouse.Enabled),
		)
	}

	// Event bus and per-user workspaces
	eventBus := bus.New(log)
	workspaceManager := workspace.NewManager(eventBus, log)

	// Initialize repositories
	caseRepo := repository.NewCaseRepository(db)
	caseHistoryRepo := repository.NewCaseStatusHistoryRepository(db)
	caseFinanceRepo := repository.NewCaseFinanceRepository(db)
	caseDocumentRepo := repository.NewCaseDocumentRepository(db)
	documentTemplateRepo := repository.NewDocumentTemplateRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	portRepo := repository.NewPortRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	numberSequenceRepo := repository.NewNumberSequenceRepository(db)

	// Initialize services
	numberSequenceService := service.NewNumberSequenceService(numberSequenceRepo, log)
	caseService := service.NewCaseService(caseRepo, caseHistoryRepo, numberSequenceService, eventBus, log)
	customerService := service.NewCustomerService(customerRepo, legacyClient, eventBus, log)
	portService := service.NewPortService(portRepo, log)
	supplierService := service.NewSupplierService(supplierRepo, log)
	catalogService := service.NewCatalogService(serviceRepo, log)
	financeService := service.NewFinanceService(caseFinanceRepo, caseRepo, serviceRepo, log)
	documentService := service.NewDocumentService(caseDocumentRepo, documentTemplateRepo, caseRepo, fileStorage, eventBus, log)

	// Initialize middleware
	authMiddleware := auth.NewMiddleware(cfg, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Initialize handlers
	caseHandler := handler.NewCaseHandler(caseService, log)
	customerHandler := handler.NewCustomerHandler(customerService, log)
	portHandler := handler.NewPortHandler(portService, log)
	supplierHandler := handler.NewSupplierHandler(supplierService, log)
	catalogHandler := handler.NewCatalogHandler(catalogService, log)
	financeHandler := handler.NewFinanceHandler(financeService, log)
	documentHandler := handler.NewDocumentHandler(documentService, log)
	workspaceHandler := handler.NewWorkspaceHandler(workspaceManager, caseService, customerService, log)
	eventsHandler := handler.NewEventsHandler(eventBus, log)

	// Setup router
	rt := router.NewRouter(
		cfg,
		log,
		db,
		legacyClient,
		authMiddleware,
		rateLimiter,
		caseHandler,
		customerHandler,
		portHandler,
		supplierHandler,
		catalogHandler,
		financeHandler,
		documentHandler,
		workspaceHandler,
		eventsHandler,
	)

	// Initialize and start scheduler for background jobs
	var scheduler *jobs.Scheduler
	if cfg.Jobs.QuotationExpiryEnabled {
		scheduler = jobs.NewScheduler(log)

		if err := jobs.RegisterQuotationExpiryJob(
			scheduler,
			caseService,
			log,
			cfg.Jobs.QuotationExpirySchedule,
		); err != nil {
			log.Error("Failed to register quotation expiry job", zap.Error(err))
		} else {
			scheduler.Start()
			log.Info("Scheduler started with quotation expiry job",
				zap.String("cron_expr", cfg.Jobs.QuotationExpirySchedule),
			)
		}
	} else {
		log.Info("Quotation expiry sweep disabled",
			zap.Bool("enabled", cfg.Jobs.QuotationExpiryEnabled),
		)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		// Stop scheduler if running
		if scheduler != nil {
			ctx := scheduler.Stop()
			<-ctx.Done()
			log.Info("Scheduler stopped")
		}

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		// Stop workspace event subscriptions
		workspaceManager.Close()

		// Close legacy warehouse connection if initialized
		if legacyClient != nil {
			if err := legacyClient.Close(); err != nil {
				log.Warn("Error closing legacy warehouse connection", zap.Error(err))
			}
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
