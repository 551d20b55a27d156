package journey

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/kone-app/route-planner/internal/planner"
)

// ReportHeader is the first line of every journey report.
const ReportHeader = "Route Details :-"

// Placeholder endpoint names used by the routing API for the trip ends.
const (
	placeholderOrigin      = "Origin"
	placeholderDestination = "Destination"
)

// FormatReport renders itineraries as a human-readable report. The
// itineraries are sorted ascending by start time (stable, so upstream
// relevance order breaks ties) and the last limit entries are kept: the
// planner already filters by the latest-arrival bound, so the tail of the
// ascending order is the set of departures closest to the deadline.
func FormatReport(itineraries []planner.Itinerary, originLabel, destinationLabel string, limit int) []string {
	sorted := make([]planner.Itinerary, len(itineraries))
	copy(sorted, itineraries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return startInstant(sorted[i]).Before(startInstant(sorted[j]))
	})

	if limit > 0 && len(sorted) > limit {
		sorted = sorted[len(sorted)-limit:]
	}

	lines := []string{ReportHeader}

	for _, itinerary := range sorted {
		totalSeconds := 0
		for _, leg := range itinerary.Legs {
			from := substituteLabel(leg.From, originLabel, destinationLabel)
			to := substituteLabel(leg.To, originLabel, destinationLabel)
			start := clockTime(leg.Start)
			end := clockTime(leg.End)

			lines = append(lines,
				fmt.Sprintf("Departing from %s at %s", from, start),
				fmt.Sprintf("%s:%s --TO--> %s:%s BY--> %s %s min",
					from, start, to, end, leg.Mode, formatDuration(leg.Duration)),
			)
			totalSeconds += leg.Duration
		}

		lines = append(lines,
			fmt.Sprintf("Total Journey Duration = %s min", formatDuration(totalSeconds)),
			"",
			"",
		)
	}

	return lines
}

// startInstant parses an itinerary start for ordering. Unparseable
// starts sort to the front in their original order.
func startInstant(itinerary planner.Itinerary) time.Time {
	parsed, err := time.Parse(time.RFC3339, itinerary.Start)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

// substituteLabel replaces the planner's placeholder endpoint names with
// the caller-supplied place names. Every other stop name passes through
// verbatim.
func substituteLabel(name, originLabel, destinationLabel string) string {
	switch name {
	case placeholderOrigin:
		return originLabel
	case placeholderDestination:
		return destinationLabel
	}
	return name
}

// clockTime renders a scheduled time as HH:MM:SS, stripping any timezone
// suffix first. Values that still do not parse are passed through.
func clockTime(scheduled string) string {
	trimmed := stripOffset(scheduled)
	parsed, err := time.Parse("2006-01-02T15:04:05", trimmed)
	if err != nil {
		return trimmed
	}
	return parsed.Format("15:04:05")
}

// stripOffset removes a trailing Z or ±HH:MM offset from an ISO-8601
// timestamp. Only separators after the time marker count, so date
// hyphens are untouched.
func stripOffset(value string) string {
	timeStart := strings.IndexByte(value, 'T')
	if timeStart < 0 {
		return value
	}
	clock := value[timeStart:]
	if i := strings.IndexAny(clock, "+-"); i >= 0 {
		return value[:timeStart+i]
	}
	return strings.TrimSuffix(value, "Z")
}

// formatDuration renders seconds as H:MM:SS with unpadded hours.
func formatDuration(seconds int) string {
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60
	return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
}
