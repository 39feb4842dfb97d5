package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/protostack-io/protostack/internal/api/handlers"
	"github.com/protostack-io/protostack/internal/api/middleware"
	"github.com/protostack-io/protostack/internal/config"
	"github.com/protostack-io/protostack/internal/pkg/logger"
	"github.com/protostack-io/protostack/internal/pkg/metrics"
)

type Handlers struct {
	Health    *handlers.HealthHandler
	Resource  *handlers.ResourceHandler
	Prototype *handlers.PrototypeHandler
	Logs      *handlers.LogsHandler
}

func New(cfg *config.Config, log *logger.Logger, h *Handlers) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.DefaultCORS(cfg.Server.FrontendURL))
	r.Use(middleware.RateLimit(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst))
	r.Use(metrics.Middleware)

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Health checks and metrics
	r.Get("/health", h.Health.Healthz)
	r.Get("/healthz", h.Health.Healthz)
	r.Get("/readyz", h.Health.Readyz)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	// Resources
	r.Route("/api/v1/resources", func(r chi.Router) {
		r.Get("/", h.Resource.List)
		r.Post("/", h.Resource.Provision)
		r.Get("/{id}", h.Resource.Get)
		r.Put("/{id}", h.Resource.Update)
		r.Delete("/{id}", h.Resource.Delete)
	})

	// Prototype registry
	r.Route("/api/v1/prototypes", func(r chi.Router) {
		r.Get("/", h.Prototype.List)
		r.Post("/", h.Prototype.Create)
		r.Post("/search", h.Prototype.Search)
		r.Get("/statistics", h.Prototype.Statistics)
		r.Get("/categories", h.Prototype.Categories)
		r.Get("/{id}", h.Prototype.Get)
		r.Post("/{id}/clone", h.Prototype.Clone)
		r.Delete("/{id}", h.Prototype.Delete)
	})

	// Activity log
	r.Get("/api/v1/logs", h.Logs.List)

	return r
}
