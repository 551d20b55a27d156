package handler

import (
	"net/http"
	"time"

	"github.com/kone-app/route-planner/internal/api/models"
	"github.com/kone-app/route-planner/internal/api/response"
	"github.com/kone-app/route-planner/internal/provider/resilience"
)

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	registry  *resilience.Registry
}

// NewOpsHandler creates a new OpsHandler.
func NewOpsHandler(version, buildTime string, registry *resilience.Registry) *OpsHandler {
	return &OpsHandler{
		version:   version,
		buildTime: buildTime,
		registry:  registry,
	}
}

// HealthCheck handles GET /ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]interface{}{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// SystemStatus handles GET /ops/status - upstream provider status.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	now := models.Timestamp(time.Now())
	status := models.SystemStatus{
		Status: models.HealthStatusOK,
		Time:   now,
	}

	if h.registry != nil {
		for _, ph := range h.registry.GetAllHealth() {
			provider := models.ProviderStatus{
				Provider:     ph.Name,
				Status:       models.HealthStatusOK,
				CircuitState: ph.CircuitState.String(),
			}
			if !ph.IsHealthy() {
				provider.Status = models.HealthStatusDegraded
				status.Status = models.HealthStatusDegraded
			}
			if ph.LastSuccessAt != nil {
				ts := models.Timestamp(*ph.LastSuccessAt)
				provider.LastSuccessAt = &ts
			}
			if ph.LastFailureAt != nil {
				ts := models.Timestamp(*ph.LastFailureAt)
				provider.LastFailureAt = &ts
			}
			if ph.LastError != "" {
				msg := ph.LastError
				provider.Message = &msg
			}
			status.Providers = append(status.Providers, provider)
		}
	}

	response.JSON(w, r, http.StatusOK, status)
}
