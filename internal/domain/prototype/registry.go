package prototype

import (
	"context"

	"github.com/protostack-io/protostack/internal/domain/resource"
)

// Registry defines the interface for the centralized prototype store.
// Implementations must serialize all operations relative to each
// other: a clone through the registry (lookup, copy, usage-count
// increment) is a single atomic step, so concurrent clones of the
// same prototype can never lose a counter update.
type Registry interface {
	// Register adds a resource as a prototype and returns its new
	// prototype ID. The resource is marked as a prototype and takes
	// the given display name.
	Register(ctx context.Context, res *resource.Resource, name, description string, category Category, tags map[string]string) (string, error)

	// Get retrieves a prototype entry by ID
	Get(ctx context.Context, id string) (Entry, error)

	// Clone performs the clone operation on a registered prototype,
	// optionally overriding the clone's display name, and increments
	// the prototype's registry usage count. The clone is returned but
	// not registered as a prototype itself.
	Clone(ctx context.Context, id, newName string) (*resource.Resource, error)

	// List returns prototypes in registration order, optionally
	// restricted to one category
	List(ctx context.Context, category Category) []Entry

	// Search returns prototypes matching the query
	Search(ctx context.Context, q SearchQuery) []Entry

	// Remove deletes a prototype and its metadata; it reports false
	// if the ID was never registered
	Remove(ctx context.Context, id string) bool

	// Statistics summarizes registry usage
	Statistics(ctx context.Context) Statistics

	// Categories lists the categories that currently hold at least
	// one prototype, in first-use order
	Categories(ctx context.Context) []Category
}

// Service defines the prototype business logic consumed by the API
// layer, orchestrating the registry and the resource store
type Service interface {
	// CreateFromResource registers an existing stored resource as a
	// prototype
	CreateFromResource(ctx context.Context, resourceID, name, description string, category Category, tags map[string]string) (Entry, error)

	// Get retrieves a prototype entry by ID
	Get(ctx context.Context, id string) (Entry, error)

	// Clone clones a prototype, merges extraTags onto the clone, and
	// saves the clone in the resource store
	Clone(ctx context.Context, id, newName string, extraTags map[string]string) (*resource.Resource, error)

	// List returns prototypes, optionally filtered by category
	List(ctx context.Context, category Category) ([]Entry, error)

	// Search returns prototypes matching the query
	Search(ctx context.Context, q SearchQuery) ([]Entry, error)

	// Delete removes a prototype by ID
	Delete(ctx context.Context, id string) error

	// Statistics summarizes registry usage
	Statistics(ctx context.Context) (Statistics, error)

	// Categories lists categories in first-use order
	Categories(ctx context.Context) ([]Category, error)
}
