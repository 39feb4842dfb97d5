package audit

import (
	"context"
	"time"
)

// Action names the operation an event records
type Action string

// Audited actions
const (
	ActionProvision         Action = "resource.provision"
	ActionResourceUpdate    Action = "resource.update"
	ActionResourceDelete    Action = "resource.delete"
	ActionPrototypeRegister Action = "prototype.register"
	ActionPrototypeClone    Action = "prototype.clone"
	ActionPrototypeDelete   Action = "prototype.delete"
)

// Event is one entry in the in-memory activity log
type Event struct {
	ID          string    `json:"id"`
	Action      Action    `json:"action"`
	ResourceID  string    `json:"resource_id,omitempty"`
	PrototypeID string    `json:"prototype_id,omitempty"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"created_at"`
}

// Recorder collects audit events. Implementations are bounded; old
// events are discarded once the limit is reached.
type Recorder interface {
	// Record appends an event to the log
	Record(ctx context.Context, event Event)

	// List returns the most recent events, newest first, up to limit
	// (0 means all retained events)
	List(ctx context.Context, limit int) []Event
}
