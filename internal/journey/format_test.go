package journey_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kone-app/route-planner/internal/journey"
	"github.com/kone-app/route-planner/internal/planner"
)

func makeLeg(start, end time.Time, mode, from, to string) planner.Leg {
	return planner.Leg{
		From:     from,
		To:       to,
		Start:    start.Format(time.RFC3339),
		End:      end.Format(time.RFC3339),
		Mode:     mode,
		Duration: int(end.Sub(start).Seconds()),
	}
}

func makeItinerary(start time.Time, legs ...planner.Leg) planner.Itinerary {
	return planner.Itinerary{
		Start: start.Format(time.RFC3339),
		Legs:  legs,
	}
}

func helsinkiTime(hour, minute int) time.Time {
	loc := time.FixedZone("EEST", 3*60*60)
	return time.Date(2025, 9, 15, hour, minute, 0, 0, loc)
}

func totalDurationLines(lines []string) []string {
	var totals []string
	for _, line := range lines {
		if strings.HasPrefix(line, "Total Journey Duration") {
			totals = append(totals, line)
		}
	}
	return totals
}

func TestFormatReport_Empty(t *testing.T) {
	lines := journey.FormatReport(nil, "Aalto-yliopisto", "Keilaniemi", 10)

	require.Len(t, lines, 1)
	assert.Equal(t, journey.ReportHeader, lines[0])
}

func TestFormatReport_SortsAscendingByStart(t *testing.T) {
	now := helsinkiTime(7, 30)

	later := makeItinerary(now.Add(10*time.Minute),
		makeLeg(now.Add(10*time.Minute), now.Add(20*time.Minute), "BUS", "Origin", "Stop A"))
	earlier := makeItinerary(now.Add(5*time.Minute),
		makeLeg(now.Add(5*time.Minute), now.Add(15*time.Minute), "TRAM", "Origin", "Destination"))

	lines := journey.FormatReport([]planner.Itinerary{later, earlier}, "MyOrigin", "MyDestination", 10)

	// The itinerary departing at T+5m renders before the one at T+10m.
	tramIdx, busIdx := -1, -1
	for i, line := range lines {
		if strings.Contains(line, "TRAM") {
			tramIdx = i
		}
		if strings.Contains(line, "BUS") {
			busIdx = i
		}
	}
	require.NotEqual(t, -1, tramIdx)
	require.NotEqual(t, -1, busIdx)
	assert.Less(t, tramIdx, busIdx)
}

func TestFormatReport_SubstitutesEndpointLabels(t *testing.T) {
	now := helsinkiTime(8, 0)
	itinerary := makeItinerary(now,
		makeLeg(now, now.Add(10*time.Minute), "BUS", "Origin", "Stop A"),
		makeLeg(now.Add(10*time.Minute), now.Add(20*time.Minute), "TRAM", "Stop A", "Destination"))

	lines := journey.FormatReport([]planner.Itinerary{itinerary}, "MyOrigin", "MyDestination", 10)
	report := strings.Join(lines, "\n")

	assert.Contains(t, report, "MyOrigin")
	assert.Contains(t, report, "MyDestination")
	assert.Contains(t, report, "Stop A")
	assert.NotContains(t, report, "Departing from Origin at")
	assert.NotContains(t, report, "--TO--> Destination:")
}

func TestFormatReport_LegLineShape(t *testing.T) {
	now := helsinkiTime(8, 45)
	itinerary := makeItinerary(now,
		makeLeg(now, now.Add(5*time.Minute), "WALK", "Origin", "Aalto-yliopisto (M)"))

	lines := journey.FormatReport([]planner.Itinerary{itinerary}, "Otaniemi", "Keilaniemi", 10)

	require.Len(t, lines, 6)
	assert.Equal(t, journey.ReportHeader, lines[0])
	assert.Equal(t, "Departing from Otaniemi at 08:45:00", lines[1])
	assert.Equal(t, "Otaniemi:08:45:00 --TO--> Aalto-yliopisto (M):08:50:00 BY--> WALK 0:05:00 min", lines[2])
	assert.Equal(t, "Total Journey Duration = 0:05:00 min", lines[3])
	assert.Equal(t, "", lines[4])
	assert.Equal(t, "", lines[5])
}

func TestFormatReport_AccumulatesLegDurations(t *testing.T) {
	now := helsinkiTime(8, 0)
	itinerary := makeItinerary(now,
		makeLeg(now, now.Add(5*time.Minute), "WALK", "Origin", "Stop B"),
		makeLeg(now.Add(5*time.Minute), now.Add(15*time.Minute), "BUS", "Stop B", "Destination"))

	lines := journey.FormatReport([]planner.Itinerary{itinerary}, "CustomOrigin", "CustomDestination", 10)

	totals := totalDurationLines(lines)
	require.Len(t, totals, 1)
	assert.Equal(t, "Total Journey Duration = 0:15:00 min", totals[0])
}

func TestFormatReport_LongDurationUsesUnpaddedHours(t *testing.T) {
	now := helsinkiTime(6, 0)
	itinerary := makeItinerary(now,
		makeLeg(now, now.Add(90*time.Minute), "RAIL", "Origin", "Destination"))

	lines := journey.FormatReport([]planner.Itinerary{itinerary}, "A", "B", 10)

	totals := totalDurationLines(lines)
	require.Len(t, totals, 1)
	assert.Equal(t, "Total Journey Duration = 1:30:00 min", totals[0])
}

func TestFormatReport_CapsToLatestStarts(t *testing.T) {
	now := helsinkiTime(7, 0)

	var itineraries []planner.Itinerary
	for i := 0; i < 7; i++ {
		start := now.Add(time.Duration(i) * 10 * time.Minute)
		itineraries = append(itineraries, makeItinerary(start,
			makeLeg(start, start.Add(10*time.Minute), fmt.Sprintf("BUS-%d", i), "Origin", "Destination")))
	}

	lines := journey.FormatReport(itineraries, "A", "B", 5)
	report := strings.Join(lines, "\n")

	assert.Len(t, totalDurationLines(lines), 5)
	// The two earliest departures are dropped; the five latest stay in
	// ascending order.
	assert.NotContains(t, report, "BUS-0")
	assert.NotContains(t, report, "BUS-1")
	for i := 2; i < 7; i++ {
		assert.Contains(t, report, fmt.Sprintf("BUS-%d", i))
	}
	assert.Less(t, strings.Index(report, "BUS-2"), strings.Index(report, "BUS-6"))
}

func TestFormatReport_ZeroLegItinerary(t *testing.T) {
	itinerary := planner.Itinerary{Start: helsinkiTime(9, 0).Format(time.RFC3339)}

	lines := journey.FormatReport([]planner.Itinerary{itinerary}, "A", "B", 10)

	require.Len(t, lines, 4)
	assert.Equal(t, journey.ReportHeader, lines[0])
	assert.Equal(t, "Total Journey Duration = 0:00:00 min", lines[1])
	assert.Equal(t, "", lines[2])
	assert.Equal(t, "", lines[3])
}

func TestFormatReport_Deterministic(t *testing.T) {
	now := helsinkiTime(8, 30)
	itineraries := []planner.Itinerary{
		makeItinerary(now.Add(10*time.Minute),
			makeLeg(now.Add(10*time.Minute), now.Add(25*time.Minute), "BUS", "Origin", "Destination")),
		makeItinerary(now,
			makeLeg(now, now.Add(12*time.Minute), "TRAM", "Origin", "Destination")),
	}

	first := journey.FormatReport(itineraries, "A", "B", 10)
	second := journey.FormatReport(itineraries, "A", "B", 10)

	assert.Equal(t, first, second)
}
