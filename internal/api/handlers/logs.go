package handlers

import (
	"net/http"
	"strconv"

	"github.com/protostack-io/protostack/internal/api/dto"
	"github.com/protostack-io/protostack/internal/domain/audit"
	"github.com/protostack-io/protostack/internal/pkg/logger"
	"github.com/protostack-io/protostack/internal/pkg/utils"
)

// LogsHandler exposes the in-memory activity log
type LogsHandler struct {
	recorder audit.Recorder
	logger   *logger.Logger
}

// NewLogsHandler creates a new logs handler
func NewLogsHandler(recorder audit.Recorder, log *logger.Logger) *LogsHandler {
	return &LogsHandler{recorder: recorder, logger: log}
}

// List returns recent activity-log entries, newest first
// @Summary List activity log
// @Description Get recent audit events for resource and prototype operations
// @Tags Logs
// @Produce json
// @Param limit query int false "Maximum number of events (default: all retained)"
// @Success 200 {object} utils.SuccessResponse{data=[]dto.AuditEventDTO} "Activity log"
// @Router /logs [get]
func (h *LogsHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	events := h.recorder.List(r.Context(), limit)

	utils.WriteSuccess(w, http.StatusOK, dto.NewAuditEventDTOs(events))
}
