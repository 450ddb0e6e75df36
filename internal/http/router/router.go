package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/harborline/caseflow-api/internal/auth"
	"github.com/harborline/caseflow-api/internal/config"
	"github.com/harborline/caseflow-api/internal/database"
	"github.com/harborline/caseflow-api/internal/http/handler"
	"github.com/harborline/caseflow-api/internal/http/middleware"
	"github.com/harborline/caseflow-api/internal/legacy"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/harborline/caseflow-api/docs" // Import generated swagger docs
)

type Router struct {
	cfg              *config.Config
	logger           *zap.Logger
	db               *gorm.DB
	legacyClient     *legacy.Client
	authMiddleware   *auth.Middleware
	rateLimiter      *middleware.RateLimiter
	caseHandler      *handler.CaseHandler
	customerHandler  *handler.CustomerHandler
	portHandler      *handler.PortHandler
	supplierHandler  *handler.SupplierHandler
	catalogHandler   *handler.CatalogHandler
	financeHandler   *handler.FinanceHandler
	documentHandler  *handler.DocumentHandler
	workspaceHandler *handler.WorkspaceHandler
	eventsHandler    *handler.EventsHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	legacyClient *legacy.Client,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	caseHandler *handler.CaseHandler,
	customerHandler *handler.CustomerHandler,
	portHandler *handler.PortHandler,
	supplierHandler *handler.SupplierHandler,
	catalogHandler *handler.CatalogHandler,
	financeHandler *handler.FinanceHandler,
	documentHandler *handler.DocumentHandler,
	workspaceHandler *handler.WorkspaceHandler,
	eventsHandler *handler.EventsHandler,
) *Router {
	return &Router{
		cfg:              cfg,
		logger:           logger,
		db:               db,
		legacyClient:     legacyClient,
		authMiddleware:   authMiddleware,
		rateLimiter:      rateLimiter,
		caseHandler:      caseHandler,
		customerHandler:  customerHandler,
		portHandler:      portHandler,
		supplierHandler:  supplierHandler,
		catalogHandler:   catalogHandler,
		financeHandler:   financeHandler,
		documentHandler:  documentHandler,
		workspaceHandler: workspaceHandler,
		eventsHandler:    eventsHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP) // Apply IP-based rate limiting globally

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Database health check (readiness probe with detailed stats)
	r.Get("/health/db", func(w http.ResponseWriter, r *http.Request) {
		stats, err := database.HealthCheckWithStats(rt.db)
		if err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  "unhealthy",
				"error":   err.Error(),
				"service": "database",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "healthy",
			"service": "database",
			"stats": map[string]interface{}{
				"max_open_connections": stats.MaxOpenConnections,
				"open_connections":     stats.OpenConnections,
				"in_use":               stats.InUse,
				"idle":                 stats.Idle,
				"wait_count":           stats.WaitCount,
				"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
				"max_idle_closed":      stats.MaxIdleClosed,
				"max_lifetime_closed":  stats.MaxLifetimeClosed,
			},
		})
	})

	// Combined readiness check (checks all dependencies)
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		checks := make(map[string]interface{})
		allHealthy := true

		// Check database
		if err := database.HealthCheck(rt.db); err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			checks["database"] = map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			}
			allHealthy = false
		} else {
			checks["database"] = map[string]interface{}{
				"status": "healthy",
			}
		}

		// Legacy warehouse is optional; report but never fail readiness on it
		if rt.legacyClient != nil {
			checks["legacy_warehouse"] = rt.legacyClient.HealthCheck(r.Context())
		}

		w.Header().Set("Content-Type", "application/json")
		if allHealthy {
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "healthy",
				"checks": checks,
			})
		} else {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "unhealthy",
				"checks": checks,
			})
		}
	})

	// Swagger documentation
	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(rt.authMiddleware.Authenticate)

			// Cases
			r.Route("/cases", func(r chi.Router) {
				r.Get("/", rt.caseHandler.List)
				r.Post("/", rt.caseHandler.Create)
				r.Get("/{id}", rt.caseHandler.GetByID)
				r.Patch("/{id}", rt.caseHandler.Update)
				r.Delete("/{id}", rt.caseHandler.Delete)
				r.Put("/{id}/status", rt.caseHandler.ChangeStatus)
				r.Get("/{id}/history", rt.caseHandler.History)

				// Finance ledger
				r.Get("/{id}/finance", rt.financeHandler.GetLedger)
				r.Post("/{id}/finance", rt.financeHandler.AddRow)
				r.Patch("/{id}/finance/{rowId}", rt.financeHandler.UpdateRow)
				r.Delete("/{id}/finance/{rowId}", rt.financeHandler.DeleteRow)

				// Documents
				r.Get("/{id}/documents", rt.documentHandler.ListByCase)
				r.Post("/{id}/documents", rt.documentHandler.Create)
			})

			// Customers
			r.Route("/customers", func(r chi.Router) {
				r.Get("/", rt.customerHandler.List)
				r.Post("/", rt.customerHandler.Create)
				r.Get("/options", rt.customerHandler.Options)
				r.Post("/import-legacy", rt.customerHandler.ImportLegacy)
				r.Get("/{id}", rt.customerHandler.GetByID)
				r.Put("/{id}", rt.customerHandler.Update)
				r.Delete("/{id}", rt.customerHandler.Delete)
			})

			// Ports
			r.Route("/ports", func(r chi.Router) {
				r.Get("/", rt.portHandler.List)
				r.Post("/", rt.portHandler.Create)
				r.Get("/options", rt.portHandler.Options)
				r.Post("/adhoc", rt.portHandler.CreateAdhoc)
				r.Get("/{id}", rt.portHandler.GetByID)
				r.Put("/{id}", rt.portHandler.Update)
				r.Delete("/{id}", rt.portHandler.Delete)
			})

			// Suppliers
			r.Route("/suppliers", func(r chi.Router) {
				r.Get("/", rt.supplierHandler.List)
				r.Post("/", rt.supplierHandler.Create)
				r.Get("/options", rt.supplierHandler.Options)
				r.Get("/{id}", rt.supplierHandler.GetByID)
				r.Put("/{id}", rt.supplierHandler.Update)
				r.Delete("/{id}", rt.supplierHandler.Delete)
			})

			// Service catalog
			r.Route("/services", func(r chi.Router) {
				r.Get("/", rt.catalogHandler.List)
				r.Post("/", rt.catalogHandler.Create)
				r.Get("/options", rt.catalogHandler.Options)
				r.Get("/{id}", rt.catalogHandler.GetByID)
				r.Put("/{id}", rt.catalogHandler.Update)
				r.Delete("/{id}", rt.catalogHandler.Delete)
			})

			// Documents
			r.Get("/templates", rt.documentHandler.ListTemplates)
			r.Get("/documents/{id}/download", rt.documentHandler.Download)
			r.Delete("/documents/{id}", rt.documentHandler.Delete)

			// Workspace panels
			r.Route("/workspace", func(r chi.Router) {
				r.Get("/", rt.workspaceHandler.List)
				r.Post("/panels/case", rt.workspaceHandler.OpenCasePanel)
				r.Post("/panels/customer", rt.workspaceHandler.OpenCustomerPanel)
				r.Post("/panels/document", rt.workspaceHandler.OpenDocumentPanel)
				r.Delete("/panels/{panelId}", rt.workspaceHandler.ClosePanel)
				r.Put("/panels/{panelId}/minimized", rt.workspaceHandler.SetMinimized)
			})

			// Event stream
			r.Get("/events", rt.eventsHandler.Stream)
		})
	})

	return r
}
