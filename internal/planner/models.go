// Package planner defines the trip planning domain model.
package planner

import "errors"

// ErrUpstream is returned when the routing provider rejects a query.
var ErrUpstream = errors.New("routing provider request failed")

// Itinerary is one complete trip option returned by the routing API.
type Itinerary struct {
	// Start is the itinerary departure instant as reported upstream
	// (ISO-8601 with offset).
	Start string

	// End is the itinerary arrival instant.
	End string

	// Legs are the ordered trip segments.
	Legs []Leg
}

// Leg is one continuous segment of a trip on a single transport mode.
type Leg struct {
	// From and To are stop names. The planner uses the placeholder
	// names "Origin" and "Destination" for the trip endpoints.
	From string
	To   string

	// Start and End are scheduled times (ISO-8601 with offset).
	Start string
	End   string

	// Mode is the transit mode tag (WALK, BUS, TRAM, RAIL, ...).
	Mode string

	// Duration is the leg duration in seconds.
	Duration int

	// RealtimeState is the upstream realtime tag for the leg.
	RealtimeState string
}
