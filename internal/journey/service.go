// Package journey implements the core trip report pipeline: arrival
// normalization, itinerary selection and formatting, and the
// orchestration of the geocoding, planning and notification steps.
package journey

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/kone-app/route-planner/internal/geocode"
	"github.com/kone-app/route-planner/internal/planner"
)

// Geocoder resolves free-text place names to coordinates.
type Geocoder interface {
	Resolve(ctx context.Context, origin, destination string) (geocode.Coordinate, geocode.Coordinate, error)
}

// TripPlanner queries itineraries arriving no later than latestArrival
// (YYYYMMDDHHMMSS).
type TripPlanner interface {
	PlanTrips(ctx context.Context, origin, destination geocode.Coordinate, latestArrival string) ([]planner.Itinerary, error)
}

// Notifier delivers a rendered report. It reports the outcome as a
// status string and never fails the pipeline.
type Notifier interface {
	Send(ctx context.Context, lines []string) string
}

// Result is the outcome of one journey request.
type Result struct {
	// Journeys is the rendered report, one line per element.
	Journeys []string `json:"Journeys"`

	// EmailStatus is the notifier outcome ("Email Sent" / "Email Failed").
	EmailStatus string `json:"Email Status"`
}

// ServiceConfig holds dependencies for the journey service.
type ServiceConfig struct {
	Geocoder Geocoder
	Planner  TripPlanner
	Notifier Notifier

	// JourneyCount caps itineraries per report. Default: 5.
	JourneyCount int

	// Logger for pipeline operations.
	Logger zerolog.Logger
}

// Service runs the journey report pipeline.
type Service struct {
	geocoder     Geocoder
	planner      TripPlanner
	notifier     Notifier
	journeyCount int
	logger       zerolog.Logger
}

// NewService creates a new journey service.
func NewService(cfg ServiceConfig) *Service {
	journeyCount := cfg.JourneyCount
	if journeyCount <= 0 {
		journeyCount = 5
	}

	return &Service{
		geocoder:     cfg.Geocoder,
		planner:      cfg.Planner,
		notifier:     cfg.Notifier,
		journeyCount: journeyCount,
		logger:       cfg.Logger,
	}
}

// Plan runs one synchronous pass: normalize the arrival, geocode both
// places, query itineraries, format the report and email it. Every stage
// failure propagates except notification, which is absorbed into the
// result's EmailStatus.
func (s *Service) Plan(ctx context.Context, origin, destination, arriveBy string) (*Result, error) {
	normalized, err := NormalizeArrival(arriveBy)
	if err != nil {
		return nil, err
	}
	if normalized != arriveBy {
		s.logger.Info().
			Str("requested", arriveBy).
			Str("normalized", normalized).
			Msg("weekend arrival shifted to next weekday")
	}

	originCoord, destCoord, err := s.geocoder.Resolve(ctx, origin, destination)
	if err != nil {
		return nil, err
	}

	itineraries, err := s.planner.PlanTrips(ctx, originCoord, destCoord, normalized)
	if err != nil {
		return nil, err
	}

	lines := FormatReport(itineraries, origin, destination, s.journeyCount)
	emailStatus := s.notifier.Send(ctx, lines)

	s.logger.Info().
		Str("origin", origin).
		Str("destination", destination).
		Int("itinerary_count", len(itineraries)).
		Str("email_status", emailStatus).
		Msg("journey report completed")

	return &Result{Journeys: lines, EmailStatus: emailStatus}, nil
}
