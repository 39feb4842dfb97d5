// Package handlers implements the HTTP endpoints
package handlers

import (
	"net/http"
	"time"

	"github.com/protostack-io/protostack/internal/pkg/logger"
	"github.com/protostack-io/protostack/internal/pkg/utils"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	logger    *logger.Logger
	startedAt time.Time
	version   string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(log *logger.Logger, version string) *HealthHandler {
	return &HealthHandler{
		logger:    log,
		startedAt: time.Now(),
		version:   version,
	}
}

// Healthz handles liveness probe
// @Summary Liveness probe
// @Description Check if the application is alive
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string "Application is alive"
// @Router /health [get]
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	utils.WriteSuccess(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": h.version,
	})
}

// Readyz handles readiness probe. All state is in memory, so the
// process is ready as soon as it serves requests.
// @Summary Readiness probe
// @Description Check if the application is ready to serve requests
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string "Application is ready"
// @Router /readyz [get]
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	utils.WriteSuccess(w, http.StatusOK, map[string]string{
		"status": "ready",
		"uptime": time.Since(h.startedAt).Round(time.Second).String(),
	})
}
