package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/protostack-io/protostack/internal/domain/prototype"
	"github.com/protostack-io/protostack/internal/domain/resource"
	"github.com/protostack-io/protostack/internal/pkg/errors"
)

// Registry is the in-memory implementation of prototype.Registry. A
// single mutex guards every operation, so a registry-mediated clone
// (lookup, deep copy, counter increments) is one critical section and
// concurrent clones of the same prototype always observe each other's
// counter updates. Registered resources are deep-copied in, and
// entries carry deep copies out, so no caller ever holds a pointer
// the registry mutates under its lock.
type Registry struct {
	mu         sync.Mutex
	prototypes map[string]*resource.Resource
	metadata   map[string]*prototype.Metadata
	categories map[prototype.Category][]string
	// order preserves registration order for listings and for the
	// most-used statistic's tie-break
	order         []string
	categoryOrder []prototype.Category
}

// NewRegistry creates an empty prototype registry
func NewRegistry() *Registry {
	return &Registry{
		prototypes: make(map[string]*resource.Resource),
		metadata:   make(map[string]*prototype.Metadata),
		categories: make(map[prototype.Category][]string),
	}
}

// Register adds a resource as a prototype and returns its prototype ID
func (r *Registry) Register(ctx context.Context, res *resource.Resource, name, description string, category prototype.Category, tags map[string]string) (string, error) {
	if res == nil || res.ID == "" {
		return "", errors.ValidationError("prototype resource must have an id", nil)
	}
	if category == "" {
		category = prototype.CategoryGeneral
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := resource.NewPrototypeID()
	res.PrototypeID = id
	res.MarkAsPrototype(name)

	tagsCopy := make(map[string]string, len(tags))
	for k, v := range tags {
		tagsCopy[k] = v
	}

	r.prototypes[id] = res.DeepCopy()
	r.metadata[id] = &prototype.Metadata{
		Name:        name,
		Description: description,
		Category:    category,
		Tags:        tagsCopy,
		CreatedAt:   time.Now(),
	}

	if _, exists := r.categories[category]; !exists {
		r.categoryOrder = append(r.categoryOrder, category)
	}
	r.categories[category] = append(r.categories[category], id)
	r.order = append(r.order, id)

	return id, nil
}

// Get retrieves a prototype entry by ID
func (r *Registry) Get(ctx context.Context, id string) (prototype.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.entryLocked(id)
}

func (r *Registry) entryLocked(id string) (prototype.Entry, error) {
	res, ok := r.prototypes[id]
	if !ok {
		return prototype.Entry{}, errors.NotFound("prototype " + id)
	}

	meta := *r.metadata[id]
	tags := make(map[string]string, len(meta.Tags))
	for k, v := range meta.Tags {
		tags[k] = v
	}
	meta.Tags = tags

	return prototype.Entry{
		PrototypeID: id,
		Resource:    res.DeepCopy(),
		Metadata:    &meta,
	}, nil
}

// Clone clones a registered prototype and increments its registry
// usage count. Lookup, copy, and both counter updates happen under
// the registry lock.
func (r *Registry) Clone(ctx context.Context, id, newName string) (*resource.Resource, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	src, ok := r.prototypes[id]
	if !ok {
		return nil, errors.NotFound("prototype " + id)
	}

	clone, err := resource.Clone(src, newName, time.Now())
	if err != nil {
		return nil, err
	}

	r.metadata[id].UsageCount++

	return clone, nil
}

// List returns prototypes in registration order, optionally
// restricted to one category
func (r *Registry) List(ctx context.Context, category prototype.Category) []prototype.Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := r.order
	if category != "" {
		ids = r.categories[category]
	}

	entries := make([]prototype.Entry, 0, len(ids))
	for _, id := range ids {
		if entry, err := r.entryLocked(id); err == nil {
			entries = append(entries, entry)
		}
	}
	return entries
}

// Search returns prototypes matching the query, in registration order.
// The query is a case-insensitive substring match against name OR
// description; every supplied tag key must match exactly.
func (r *Registry) Search(ctx context.Context, q prototype.SearchQuery) []prototype.Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := strings.ToLower(q.Query)

	var results []prototype.Entry
	for _, id := range r.order {
		meta := r.metadata[id]

		if q.Category != "" && meta.Category != q.Category {
			continue
		}

		if query != "" &&
			!strings.Contains(strings.ToLower(meta.Name), query) &&
			!strings.Contains(strings.ToLower(meta.Description), query) {
			continue
		}

		if !tagsMatch(meta.Tags, q.Tags) {
			continue
		}

		if entry, err := r.entryLocked(id); err == nil {
			results = append(results, entry)
		}
	}
	return results
}

func tagsMatch(have, want map[string]string) bool {
	for k, v := range want {
		if have[k] != v {
			return false
		}
	}
	return true
}

// Remove deletes a prototype and its metadata; it reports false if
// the ID was never registered. Resources previously cloned from the
// prototype are unaffected.
func (r *Registry) Remove(ctx context.Context, id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.prototypes[id]; !ok {
		return false
	}

	if meta := r.metadata[id]; meta != nil {
		ids := r.categories[meta.Category]
		for i, pid := range ids {
			if pid == id {
				r.categories[meta.Category] = append(ids[:i], ids[i+1:]...)
				break
			}
		}
	}
	for i, pid := range r.order {
		if pid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	delete(r.prototypes, id)
	delete(r.metadata, id)

	return true
}

// Statistics summarizes registry usage
func (r *Registry) Statistics(ctx context.Context) prototype.Statistics {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats := prototype.Statistics{
		TotalPrototypes: len(r.prototypes),
		Categories:      make(map[prototype.Category]prototype.CategoryStats),
	}

	for _, res := range r.prototypes {
		stats.TotalClonesCreated += res.CloneCount
	}

	for category, ids := range r.categories {
		cs := prototype.CategoryStats{Count: len(ids)}
		for _, id := range ids {
			if res, ok := r.prototypes[id]; ok {
				cs.TotalClones += res.CloneCount
			}
		}
		stats.Categories[category] = cs
	}

	// Registration order breaks ties; all-zero usage yields nil
	maxUsage := 0
	for _, id := range r.order {
		meta := r.metadata[id]
		if meta.UsageCount > maxUsage {
			maxUsage = meta.UsageCount
			stats.MostUsedPrototype = &prototype.MostUsed{
				PrototypeID: id,
				Name:        meta.Name,
				UsageCount:  meta.UsageCount,
			}
		}
	}

	return stats
}

// Categories lists the categories holding at least one prototype, in
// first-use order
func (r *Registry) Categories(ctx context.Context) []prototype.Category {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]prototype.Category, 0, len(r.categoryOrder))
	for _, category := range r.categoryOrder {
		if len(r.categories[category]) > 0 {
			out = append(out, category)
		}
	}
	return out
}
