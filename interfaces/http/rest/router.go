package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	querybus "riskreport-backend/application/queries/bus"
	"riskreport-backend/domain/report"
	"riskreport-backend/infrastructure/config"
	"riskreport-backend/interfaces/http/rest/handlers"
	"riskreport-backend/interfaces/http/rest/middleware"
	"riskreport-backend/pkg/common"
	apperrors "riskreport-backend/pkg/errors"
	"riskreport-backend/pkg/observability"
)

// Router creates and configures the HTTP router
type Router struct {
	queryBus *querybus.QueryBus
	config   *config.Config
	metrics  *observability.Collector
	logger   *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	queryBus *querybus.QueryBus,
	cfg *config.Config,
	metrics *observability.Collector,
	logger *zap.Logger,
) *Router {
	return &Router{
		queryBus: queryBus,
		config:   cfg,
		metrics:  metrics,
		logger:   logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	errorHandler := apperrors.NewErrorHandler(rt.logger, rt.config.IsDevelopment())

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(errorHandler.Middleware)
	router.Use(middleware.Logger(rt.logger))
	if rt.config.EnableMetrics {
		router.Use(middleware.Metrics(rt.metrics))
	}

	// CORS configuration
	if rt.config.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: rt.config.CORSOrigins,
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
	}

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		errorHandler.HandleStatus(w, r, http.StatusNotFound, "endpoint not found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		errorHandler.HandleStatus(w, r, http.StatusMethodNotAllowed, "method not allowed")
	})

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	if rt.config.EnableMetrics {
		router.Handle("/metrics", rt.metrics.Handler())
	}

	router.Route("/api", func(r chi.Router) {
		endpointsHandler := handlers.NewEndpointsHandler(rt.logger)
		r.Get("/endpoints", endpointsHandler.List)

		r.Route("/accounts/{accountID}", func(r chi.Router) {
			reportHandler := handlers.NewReportHandler(rt.queryBus, errorHandler, rt.logger)
			r.Get("/data", reportHandler.GetDocument)
			r.Get("/transactions", reportHandler.Section(report.SectionTransactions))
			r.Get("/money-flow", reportHandler.Section(report.SectionMoneyFlow))
			r.Get("/money-usage", reportHandler.Section(report.SectionMoneyUsage))
			r.Get("/high-cash", reportHandler.Section(report.SectionHighCash))
			r.Get("/business-pattern", reportHandler.Section(report.SectionBusinessPattern))
			r.Get("/public-info", reportHandler.Section(report.SectionPublicInfo))
			r.Get("/public-address", reportHandler.Section(report.SectionPublicAddress))
			r.Get("/wire-usage", reportHandler.Section(report.SectionWireUsage))
			r.Get("/transactions-usage", reportHandler.Section(report.SectionUsageDict))

			graphHandler := handlers.NewGraphHandler(rt.queryBus, errorHandler, rt.logger)
			r.Get("/linkage/subgraph", graphHandler.GetSubgraph)
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	common.RespondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	common.RespondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
