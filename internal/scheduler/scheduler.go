// Package scheduler runs the weekday journey report on a daily timer.
package scheduler

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/kone-app/route-planner/internal/config"
	"github.com/kone-app/route-planner/internal/journey"
)

// JourneyPlanner plans journeys and emails the report.
type JourneyPlanner interface {
	Plan(ctx context.Context, origin, destination, arriveBy string) (*journey.Result, error)
}

// Scheduler fires the configured commute journey once per day at the
// configured hour and minute, Monday through Friday. Failures are
// logged and retried the next day; the scheduler itself never stops on
// a planning error.
type Scheduler struct {
	cfg     config.ScheduleConfig
	planner JourneyPlanner
	logger  zerolog.Logger

	mu         sync.Mutex
	lastRunDay time.Time

	stopCh chan struct{}
	wg     sync.WaitGroup
}

// New creates a scheduler for the given schedule configuration.
func New(cfg config.ScheduleConfig, planner JourneyPlanner, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		cfg:     cfg,
		planner: planner,
		logger:  logger,
		stopCh:  make(chan struct{}),
	}
}

// Start launches the scheduler loop in a background goroutine.
func (s *Scheduler) Start(ctx context.Context) {
	s.wg.Add(1)
	go s.run(ctx)
}

// Stop signals the loop to exit and waits for it to finish.
func (s *Scheduler) Stop() {
	close(s.stopCh)
	s.wg.Wait()
}

func (s *Scheduler) run(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	s.logger.Info().
		Int("hour", s.cfg.Hour).
		Int("minute", s.cfg.Minute).
		Str("origin", s.cfg.Origin).
		Str("destination", s.cfg.Destination).
		Msg("journey schedule active Mon-Fri")

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("scheduler stopped: context cancelled")
			return
		case <-s.stopCh:
			s.logger.Info().Msg("scheduler stopped: stop signal received")
			return
		case <-ticker.C:
			s.tick(ctx, time.Now())
		}
	}
}

func (s *Scheduler) tick(ctx context.Context, now time.Time) {
	if !s.due(now) {
		return
	}

	s.mu.Lock()
	s.lastRunDay = truncateToDay(now)
	s.mu.Unlock()

	arriveBy := s.arriveByFor(now)

	s.logger.Info().
		Str("arrive_by", arriveBy).
		Msg("running scheduled journey report")

	result, err := s.planner.Plan(ctx, s.cfg.Origin, s.cfg.Destination, arriveBy)
	if err != nil {
		s.logger.Error().Err(err).Msg("scheduled journey report failed")
		return
	}

	s.logger.Info().
		Int("journey_lines", len(result.Journeys)).
		Str("email_status", result.EmailStatus).
		Msg("scheduled journey report completed")
}

// due reports whether the daily run should fire now: a weekday, at or
// shortly past the configured time, and not already run today.
func (s *Scheduler) due(now time.Time) bool {
	switch now.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}

	target := time.Date(now.Year(), now.Month(), now.Day(), s.cfg.Hour, s.cfg.Minute, 0, 0, now.Location())
	diff := now.Sub(target)
	if diff < 0 || diff >= 2*time.Minute {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.lastRunDay.Equal(truncateToDay(now))
}

// arriveByFor builds the YYYYMMDDHHMMSS deadline from today's date and
// the configured arrival time of day.
func (s *Scheduler) arriveByFor(now time.Time) string {
	clock := strings.ReplaceAll(s.cfg.ArriveByTime, ":", "")
	return now.Format("20060102") + clock
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
