package dto

import (
	"time"

	"github.com/protostack-io/protostack/internal/domain/audit"
)

// AuditEventDTO represents one activity-log entry in API responses
type AuditEventDTO struct {
	ID          string    `json:"id"`
	Action      string    `json:"action"`
	ResourceID  string    `json:"resourceId,omitempty"`
	PrototypeID string    `json:"prototypeId,omitempty"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewAuditEventDTOs maps audit events to their API shape
func NewAuditEventDTOs(events []audit.Event) []AuditEventDTO {
	dtos := make([]AuditEventDTO, len(events))
	for i, e := range events {
		dtos[i] = AuditEventDTO{
			ID:          e.ID,
			Action:      string(e.Action),
			ResourceID:  e.ResourceID,
			PrototypeID: e.PrototypeID,
			Message:     e.Message,
			CreatedAt:   e.CreatedAt,
		}
	}
	return dtos
}
