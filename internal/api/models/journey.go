package models

import "github.com/kone-app/route-planner/internal/journey"

// JourneyResponse wraps a planned journey result in the message envelope
// returned by GET /journeys.
type JourneyResponse struct {
	Message *journey.Result `json:"message"`
}
