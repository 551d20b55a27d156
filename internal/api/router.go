// Package api provides the HTTP API for the journey planner.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/kone-app/route-planner/internal/api/handler"
	"github.com/kone-app/route-planner/internal/api/middleware"
	"github.com/kone-app/route-planner/internal/provider/resilience"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version   string
	BuildTime string
	Logger    zerolog.Logger
	Journeys  handler.JourneyPlanner
	Registry  *resilience.Registry
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.ContentTypeJSON)      // JSON content type

	journeyHandler := handler.NewJourneyHandler(cfg.Journeys)
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.Registry)

	// Journey planning fans out to two upstream providers per request,
	// so it gets the strict limit.
	expensiveRateLimit := middleware.RateLimitByIP(middleware.ExpensiveRateLimit)

	r.With(expensiveRateLimit).Get("/journeys", journeyHandler.GetJourneys)

	r.Route("/ops", func(r chi.Router) {
		r.Get("/health", opsHandler.HealthCheck)
		r.Get("/status", opsHandler.SystemStatus)
	})

	return r
}
