package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/protostack-io/protostack/internal/domain/audit"
)

// AuditLog is a bounded in-memory audit.Recorder. Once maxEvents is
// reached the oldest event is dropped for each new one recorded.
type AuditLog struct {
	mu        sync.Mutex
	events    []audit.Event
	maxEvents int
}

// NewAuditLog creates a recorder retaining at most maxEvents entries
func NewAuditLog(maxEvents int) *AuditLog {
	if maxEvents <= 0 {
		maxEvents = 1000
	}
	return &AuditLog{maxEvents: maxEvents}
}

// Record appends an event, assigning an ID and timestamp when missing
func (a *AuditLog) Record(ctx context.Context, event audit.Event) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.events = append(a.events, event)
	if len(a.events) > a.maxEvents {
		a.events = a.events[len(a.events)-a.maxEvents:]
	}
}

// List returns the most recent events, newest first
func (a *AuditLog) List(ctx context.Context, limit int) []audit.Event {
	a.mu.Lock()
	defer a.mu.Unlock()

	n := len(a.events)
	if limit <= 0 || limit > n {
		limit = n
	}

	out := make([]audit.Event, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, a.events[i])
	}
	return out
}
