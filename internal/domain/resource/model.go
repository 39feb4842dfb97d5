package resource

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Provider identifies the simulated cloud provider of a resource
type Provider string

// Supported providers
const (
	ProviderAWS    Provider = "aws"
	ProviderGCP    Provider = "gcp"
	ProviderOnPrem Provider = "onprem"
)

// Kind identifies the resource kind, independent of provider
type Kind string

// Resource kinds
const (
	KindVM           Kind = "vm"
	KindDatabase     Kind = "database"
	KindLoadBalancer Kind = "loadbalancer"
	KindStorage      Kind = "storage"
	KindNetwork      Kind = "network"
)

// Status is the lifecycle status of a resource
type Status string

// Lifecycle statuses
const (
	StatusCreating Status = "creating"
	StatusRunning  Status = "running"
	StatusStopped  Status = "stopped"
	StatusDeleting Status = "deleting"
	StatusError    Status = "error"
)

// Resource represents one simulated infrastructure object. It carries
// its provider-specific configuration in the Spec bag and embeds the
// prototype metadata used by the cloning subsystem.
type Resource struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Provider Provider          `json:"provider"`
	Kind     Kind              `json:"kind"`
	Type     string            `json:"type"` // provider resource type, e.g. "AWS::EC2::Instance"
	Region   string            `json:"region"`
	Status   Status            `json:"status"`
	Spec     map[string]any    `json:"spec"`
	Tags     map[string]string `json:"tags"`

	// Prototype metadata
	PrototypeID  string     `json:"prototype_id"`
	IsPrototype  bool       `json:"is_prototype"`
	ClonedFrom   string     `json:"cloned_from,omitempty"`
	CloneCount   int        `json:"clone_count"`
	CreatedAt    time.Time  `json:"created_at"`
	LastClonedAt *time.Time `json:"last_cloned_at,omitempty"`
}

// New creates a resource with a freshly generated, prefix-qualified ID
// and prototype ID. Resources start in status creating.
func New(idPrefix string, provider Provider, kind Kind, typ, name, region string) *Resource {
	return &Resource{
		ID:          NewID(idPrefix),
		Name:        name,
		Provider:    provider,
		Kind:        kind,
		Type:        typ,
		Region:      region,
		Status:      StatusCreating,
		Spec:        make(map[string]any),
		Tags:        make(map[string]string),
		PrototypeID: NewPrototypeID(),
		CreatedAt:   time.Now(),
	}
}

// NewID generates a provider-style identifier: "<prefix>-<8 hex chars>"
func NewID(prefix string) string {
	u := uuid.New()
	return fmt.Sprintf("%s-%x", prefix, u[:4])
}

// NewPrototypeID generates a fresh prototype identifier
func NewPrototypeID() string {
	return NewID("proto")
}

// IDPrefix returns the prefix portion of the resource ID, i.e.
// everything before the final dash ("i-abc12345" -> "i",
// "onprem-vm-abc12345" -> "onprem-vm")
func (r *Resource) IDPrefix() string {
	if idx := strings.LastIndex(r.ID, "-"); idx > 0 {
		return r.ID[:idx]
	}
	return r.ID
}

// IsCloneable reports whether the resource's lifecycle status allows
// it to serve as a clone source
func (r *Resource) IsCloneable() bool {
	switch r.Status {
	case StatusCreating, StatusRunning, StatusStopped:
		return true
	default:
		return false
	}
}

// MarkAsPrototype flags the resource as a reusable template,
// optionally updating its display name
func (r *Resource) MarkAsPrototype(name string) {
	r.IsPrototype = true
	if name != "" {
		r.Name = name
	}
}

// DeepCopy returns an independent copy of the resource. All nested
// maps and slices are copied by value, so mutating the copy never
// affects the original.
func (r *Resource) DeepCopy() *Resource {
	cp := *r

	cp.Spec = copySpec(r.Spec)
	cp.Tags = copyTags(r.Tags)

	if r.LastClonedAt != nil {
		t := *r.LastClonedAt
		cp.LastClonedAt = &t
	}

	return &cp
}

func copyTags(tags map[string]string) map[string]string {
	cp := make(map[string]string, len(tags))
	for k, v := range tags {
		cp[k] = v
	}
	return cp
}

func copySpec(spec map[string]any) map[string]any {
	cp := make(map[string]any, len(spec))
	for k, v := range spec {
		cp[k] = copyValue(v)
	}
	return cp
}

// copyValue deep-copies the container types a spec bag can hold.
// Scalars are returned as-is.
func copyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return copySpec(val)
	case map[string]string:
		return copyTags(val)
	case []any:
		cp := make([]any, len(val))
		for i, item := range val {
			cp[i] = copyValue(item)
		}
		return cp
	case []string:
		cp := make([]string, len(val))
		copy(cp, val)
		return cp
	case []map[string]any:
		cp := make([]map[string]any, len(val))
		for i, item := range val {
			cp[i] = copySpec(item)
		}
		return cp
	default:
		return v
	}
}
