// Package main provides the entrypoint for the journey planner API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/kone-app/route-planner/internal/api"
	"github.com/kone-app/route-planner/internal/config"
	geodigitransit "github.com/kone-app/route-planner/internal/geocode/digitransit"
	"github.com/kone-app/route-planner/internal/journey"
	"github.com/kone-app/route-planner/internal/notify"
	plandigitransit "github.com/kone-app/route-planner/internal/planner/digitransit"
	"github.com/kone-app/route-planner/internal/provider/resilience"
	"github.com/kone-app/route-planner/internal/scheduler"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "route-planner-api"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting journey planner API")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Provider transports share one registry so the ops status endpoint
	// can report circuit health per upstream.
	registry := resilience.NewRegistry()

	geoTransportCfg := resilience.DefaultClientConfig(geodigitransit.ProviderName)
	geoTransportCfg.Registry = registry
	geocoder := geodigitransit.NewClient(geodigitransit.ClientConfig{
		APIKey:     cfg.APIKey,
		BaseURL:    cfg.GeocodingURL,
		HTTPClient: resilience.NewClient(geoTransportCfg),
		Logger:     log,
	})

	planTransportCfg := resilience.DefaultClientConfig(plandigitransit.ProviderName)
	planTransportCfg.Registry = registry
	tripPlanner := plandigitransit.NewClient(plandigitransit.ClientConfig{
		APIKey:     cfg.APIKey,
		BaseURL:    cfg.RoutingURL,
		HTTPClient: resilience.NewClient(planTransportCfg),
		Logger:     log,
	})

	mailer := notify.NewMailer(notify.MailerConfig{
		From:     cfg.FromEmail,
		To:       cfg.ToEmail,
		Password: cfg.MailPassword,
		Logger:   log,
	})

	journeyService := journey.NewService(journey.ServiceConfig{
		Geocoder:     geocoder,
		Planner:      tripPlanner,
		Notifier:     mailer,
		JourneyCount: cfg.JourneyCount,
		Logger:       log,
	})
	log.Info().Int("journey_count", cfg.JourneyCount).Msg("journey service initialized")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Schedule.Enabled {
		sched := scheduler.New(cfg.Schedule, journeyService, log)
		sched.Start(ctx)
		defer sched.Stop()
	}

	router := api.NewRouter(api.RouterConfig{
		Version:   Version,
		BuildTime: BuildTime,
		Logger:    log,
		Journeys:  journeyService,
		Registry:  registry,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
