// Package handler provides HTTP handlers for the journey API.
package handler

import (
	"context"
	"net/http"

	"github.com/kone-app/route-planner/internal/api/models"
	"github.com/kone-app/route-planner/internal/api/response"
	"github.com/kone-app/route-planner/internal/journey"
)

// JourneyPlanner plans journeys and emails the report.
type JourneyPlanner interface {
	Plan(ctx context.Context, origin, destination, arriveBy string) (*journey.Result, error)
}

// JourneyHandler handles journey planning endpoints.
type JourneyHandler struct {
	planner JourneyPlanner
}

// NewJourneyHandler creates a new JourneyHandler.
func NewJourneyHandler(planner JourneyPlanner) *JourneyHandler {
	return &JourneyHandler{planner: planner}
}

// GetJourneys handles GET /journeys - plan journeys arriving by a deadline.
func (h *JourneyHandler) GetJourneys(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	origin := q.Get("origin")
	destination := q.Get("destination")
	arriveBy := q.Get("arriveBy")

	var fieldErrors []models.FieldError
	if origin == "" {
		fieldErrors = append(fieldErrors, models.FieldError{Field: "origin", Message: "required", Code: "REQUIRED"})
	}
	if destination == "" {
		fieldErrors = append(fieldErrors, models.FieldError{Field: "destination", Message: "required", Code: "REQUIRED"})
	}
	if arriveBy == "" {
		fieldErrors = append(fieldErrors, models.FieldError{Field: "arriveBy", Message: "required", Code: "REQUIRED"})
	}
	if len(fieldErrors) > 0 {
		response.BadRequest(w, r, "origin, destination and arriveBy query parameters are required", fieldErrors)
		return
	}

	result, err := h.planner.Plan(r.Context(), origin, destination, arriveBy)
	if err != nil {
		response.InternalError(w, r, err.Error())
		return
	}

	response.JSON(w, r, http.StatusOK, models.JourneyResponse{Message: result})
}
