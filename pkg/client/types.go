package client

import "time"

// Resource represents a simulated infrastructure resource
type Resource struct {
	ID           string                 `json:"id"`
	Name         string                 `json:"name"`
	Provider     string                 `json:"provider"`
	Kind         string                 `json:"kind"`
	Type         string                 `json:"type"`
	Region       string                 `json:"region"`
	Status       string                 `json:"status"`
	Spec         map[string]interface{} `json:"spec"`
	Tags         map[string]string      `json:"tags"`
	PrototypeID  string                 `json:"prototypeId"`
	IsPrototype  bool                   `json:"isPrototype"`
	ClonedFrom   string                 `json:"clonedFrom,omitempty"`
	CloneCount   int                    `json:"cloneCount"`
	CreatedAt    time.Time              `json:"createdAt"`
	LastClonedAt *time.Time             `json:"lastClonedAt,omitempty"`
}

// Prototype represents a registered prototype with its metadata
type Prototype struct {
	PrototypeID string            `json:"prototypeId"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Category    string            `json:"category"`
	Tags        map[string]string `json:"tags"`
	CreatedAt   time.Time         `json:"createdAt"`
	UsageCount  int               `json:"usageCount"`
	Resource    Resource          `json:"resource"`
}

// Statistics summarizes prototype registry usage
type Statistics struct {
	TotalPrototypes    int                      `json:"totalPrototypes"`
	TotalClonesCreated int                      `json:"totalClonesCreated"`
	Categories         map[string]CategoryStats `json:"categories"`
	MostUsedPrototype  *MostUsedPrototype       `json:"mostUsedPrototype,omitempty"`
}

// CategoryStats aggregates per-category statistics
type CategoryStats struct {
	Count       int `json:"count"`
	TotalClones int `json:"totalClones"`
}

// MostUsedPrototype identifies the most cloned prototype
type MostUsedPrototype struct {
	PrototypeID string `json:"prototypeId"`
	Name        string `json:"name"`
	UsageCount  int    `json:"usageCount"`
}

// AuditEvent is one activity-log entry
type AuditEvent struct {
	ID          string    `json:"id"`
	Action      string    `json:"action"`
	ResourceID  string    `json:"resourceId,omitempty"`
	PrototypeID string    `json:"prototypeId,omitempty"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"createdAt"`
}

// PaginatedResources is a page of resources
type PaginatedResources struct {
	Data       []Resource `json:"data"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalItems int64      `json:"total_items"`
	TotalPages int        `json:"total_pages"`
}

// ListOptions contains common pagination options
type ListOptions struct {
	Page     int
	PageSize int
}
