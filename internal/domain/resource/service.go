package resource

import "context"

// ProvisionRequest describes a resource to simulate-provision through
// a provider catalog
type ProvisionRequest struct {
	Provider Provider
	Kind     Kind
	Name     string
	Region   string
	// Tier selects a preset sizing for VMs (small, medium, large,
	// xlarge); ignored for other kinds
	Tier string
	// Spec carries kind-specific configuration overrides
	Spec map[string]any
	Tags map[string]string
}

// Service defines the interface for resource business logic
type Service interface {
	// Provision creates a simulated resource via the provider catalog
	Provision(ctx context.Context, req ProvisionRequest) (*Resource, error)

	// Get retrieves a resource by ID
	Get(ctx context.Context, id string) (*Resource, error)

	// List retrieves resources with filters and pagination
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Resource, int64, error)

	// Update applies name/status/tag updates to a resource
	Update(ctx context.Context, id string, updates map[string]interface{}) (*Resource, error)

	// Delete removes a resource
	Delete(ctx context.Context, id string) error
}
