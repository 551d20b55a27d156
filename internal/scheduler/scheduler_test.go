package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/kone-app/route-planner/internal/config"
	"github.com/kone-app/route-planner/internal/journey"
)

type recordingPlanner struct {
	calls    int
	arriveBy string
}

func (p *recordingPlanner) Plan(_ context.Context, _, _, arriveBy string) (*journey.Result, error) {
	p.calls++
	p.arriveBy = arriveBy
	return &journey.Result{EmailStatus: "Email Sent"}, nil
}

func testScheduler(planner JourneyPlanner) *Scheduler {
	return New(config.ScheduleConfig{
		Enabled:      true,
		Hour:         3,
		Minute:       0,
		Origin:       "Otaniemi",
		Destination:  "Keilaniemi",
		ArriveByTime: "09:00:00",
	}, planner, zerolog.Nop())
}

func TestScheduler_DueOnWeekdayAtConfiguredTime(t *testing.T) {
	s := testScheduler(&recordingPlanner{})

	// Monday 2025-09-15 03:00:30
	now := time.Date(2025, 9, 15, 3, 0, 30, 0, time.UTC)
	assert.True(t, s.due(now))
}

func TestScheduler_NotDueBeforeConfiguredTime(t *testing.T) {
	s := testScheduler(&recordingPlanner{})

	now := time.Date(2025, 9, 15, 2, 59, 30, 0, time.UTC)
	assert.False(t, s.due(now))
}

func TestScheduler_NotDueLongAfterConfiguredTime(t *testing.T) {
	s := testScheduler(&recordingPlanner{})

	now := time.Date(2025, 9, 15, 3, 5, 0, 0, time.UTC)
	assert.False(t, s.due(now))
}

func TestScheduler_NotDueOnWeekend(t *testing.T) {
	s := testScheduler(&recordingPlanner{})

	saturday := time.Date(2025, 9, 13, 3, 0, 30, 0, time.UTC)
	sunday := time.Date(2025, 9, 14, 3, 0, 30, 0, time.UTC)
	assert.False(t, s.due(saturday))
	assert.False(t, s.due(sunday))
}

func TestScheduler_RunsOncePerDay(t *testing.T) {
	planner := &recordingPlanner{}
	s := testScheduler(planner)

	now := time.Date(2025, 9, 15, 3, 0, 30, 0, time.UTC)
	s.tick(context.Background(), now)
	s.tick(context.Background(), now.Add(30*time.Second))

	assert.Equal(t, 1, planner.calls)

	// Next weekday fires again
	nextDay := now.AddDate(0, 0, 1)
	s.tick(context.Background(), nextDay)
	assert.Equal(t, 2, planner.calls)
}

func TestScheduler_BuildsArriveByFromTodayAndConfiguredTime(t *testing.T) {
	planner := &recordingPlanner{}
	s := testScheduler(planner)

	now := time.Date(2025, 9, 15, 3, 0, 30, 0, time.UTC)
	s.tick(context.Background(), now)

	assert.Equal(t, "20250915090000", planner.arriveBy)
}

func TestScheduler_StartStop(t *testing.T) {
	s := testScheduler(&recordingPlanner{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s.Start(ctx)
	s.Stop()
}
