// Package config provides environment-sourced configuration for the journey service.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Default endpoints for the Digitransit APIs.
const (
	DefaultGeocodingURL = "https://api.digitransit.fi/geocoding/v1/search"
	DefaultRoutingURL   = "https://api.digitransit.fi/routing/v2/hsl/gtfs/v1"
)

// Config holds all service configuration, loaded once at startup.
type Config struct {
	// Env is the deployment environment name (dev, prod).
	Env string

	// Port is the HTTP listen port.
	Port string

	// APIKey is the Digitransit subscription key, shared by the
	// geocoding and routing clients.
	APIKey string

	// GeocodingURL is the Digitransit geocoding search endpoint.
	GeocodingURL string

	// RoutingURL is the Digitransit GraphQL routing endpoint.
	RoutingURL string

	// FromEmail is the sender address for journey reports.
	FromEmail string

	// ToEmail is the fixed recipient address.
	ToEmail string

	// MailPassword is the SMTP app password for FromEmail.
	MailPassword string

	// JourneyCount caps how many itineraries appear in a report.
	JourneyCount int

	// Schedule configures the optional daily trigger.
	Schedule ScheduleConfig
}

// ScheduleConfig configures the built-in weekday scheduler.
type ScheduleConfig struct {
	// Enabled turns the scheduler on (ENABLE_SCHEDULE=true).
	Enabled bool

	// Hour and Minute give the daily fire time in local time.
	Hour   int
	Minute int

	// Origin and Destination are the fixed places for scheduled runs.
	Origin      string
	Destination string

	// ArriveByTime is the HH:MM:SS time-of-day used to build the
	// scheduled request's arriveBy for the current day.
	ArriveByTime string
}

// Load reads configuration from the environment. A .env.<ENV> file is
// loaded first when present, so local runs behave like the deployed
// container without exporting every variable by hand.
func Load() (*Config, error) {
	env := getEnvOrDefault("ENV", "dev")

	dotenvPath := ".env." + env
	if _, err := os.Stat(dotenvPath); err == nil {
		if err := godotenv.Load(dotenvPath); err != nil {
			return nil, fmt.Errorf("loading %s: %w", dotenvPath, err)
		}
	}

	journeyCount, err := strconv.Atoi(getEnvOrDefault("JOURNEY_COUNT", "5"))
	if err != nil {
		return nil, fmt.Errorf("parsing JOURNEY_COUNT: %w", err)
	}
	if journeyCount <= 0 {
		return nil, fmt.Errorf("JOURNEY_COUNT must be positive, got %d", journeyCount)
	}

	hour, err := strconv.Atoi(getEnvOrDefault("CRON_HOUR", "3"))
	if err != nil {
		return nil, fmt.Errorf("parsing CRON_HOUR: %w", err)
	}
	minute, err := strconv.Atoi(getEnvOrDefault("CRON_MINUTE", "0"))
	if err != nil {
		return nil, fmt.Errorf("parsing CRON_MINUTE: %w", err)
	}

	return &Config{
		Env:          env,
		Port:         getEnvOrDefault("APP_PORT", "8080"),
		APIKey:       os.Getenv("DIGITRANSIT_API_KEY"),
		GeocodingURL: getEnvOrDefault("GEO_CODING_URL", DefaultGeocodingURL),
		RoutingURL:   getEnvOrDefault("ROUTING_URL", DefaultRoutingURL),
		FromEmail:    os.Getenv("FROM_EMAIL"),
		ToEmail:      os.Getenv("TO_EMAIL"),
		MailPassword: os.Getenv("GMAIL_APP_PASSWORD"),
		JourneyCount: journeyCount,
		Schedule: ScheduleConfig{
			Enabled:      os.Getenv("ENABLE_SCHEDULE") == "true",
			Hour:         hour,
			Minute:       minute,
			Origin:       os.Getenv("SCHEDULE_ORIGIN"),
			Destination:  os.Getenv("SCHEDULE_DESTINATION"),
			ArriveByTime: getEnvOrDefault("SCHEDULE_ARRIVE_BY_TIME", "09:00:00"),
		},
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
