package resource

import "context"

// Filter contains resource filtering options
type Filter struct {
	Provider Provider
	Kind     Kind
	Region   string
	Status   Status
}

// Store defines the interface for resource persistence. Both live
// resources and cloned products are held here, keyed by resource ID.
type Store interface {
	// Save stores a resource, overwriting any previous entry with
	// the same ID
	Save(ctx context.Context, res *Resource) error

	// Get retrieves a resource by ID
	Get(ctx context.Context, id string) (*Resource, error)

	// Delete removes a resource by ID
	Delete(ctx context.Context, id string) error

	// List retrieves resources matching the filter, in insertion
	// order, with pagination
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Resource, int64, error)
}
