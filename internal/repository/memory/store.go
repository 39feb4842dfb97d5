// Package memory holds the process-lifetime repositories backing the
// API: a resource store, the prototype registry, and the audit log.
// Nothing here survives a restart.
package memory

import (
	"context"
	"sync"

	"github.com/protostack-io/protostack/internal/domain/resource"
	"github.com/protostack-io/protostack/internal/pkg/errors"
)

// Store is an in-memory implementation of resource.Store. Entries
// keep insertion order for stable listings. Resources are deep-copied
// on the way in and out, so callers never share pointers with the
// store and mutations outside the store lock cannot corrupt it.
type Store struct {
	mu        sync.RWMutex
	resources map[string]*resource.Resource
	order     []string
}

// NewStore creates an empty resource store
func NewStore() *Store {
	return &Store{
		resources: make(map[string]*resource.Resource),
	}
}

// Save stores a deep copy of the resource, overwriting any previous
// entry with the same ID
func (s *Store) Save(ctx context.Context, res *resource.Resource) error {
	if res == nil || res.ID == "" {
		return errors.ValidationError("resource must have an id", nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.resources[res.ID]; !exists {
		s.order = append(s.order, res.ID)
	}
	s.resources[res.ID] = res.DeepCopy()

	return nil
}

// Get retrieves a deep copy of a resource by ID
func (s *Store) Get(ctx context.Context, id string) (*resource.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res, ok := s.resources[id]
	if !ok {
		return nil, errors.NotFound("resource " + id)
	}
	return res.DeepCopy(), nil
}

// Delete removes a resource by ID
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.resources[id]; !ok {
		return errors.NotFound("resource " + id)
	}

	delete(s.resources, id)
	for i, key := range s.order {
		if key == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	return nil
}

// List retrieves resources matching the filter, in insertion order,
// with pagination
func (s *Store) List(ctx context.Context, filter resource.Filter, limit, offset int) ([]*resource.Resource, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []*resource.Resource
	for _, id := range s.order {
		res := s.resources[id]
		if !matches(res, filter) {
			continue
		}
		matched = append(matched, res)
	}

	total := int64(len(matched))

	if offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}

	page := make([]*resource.Resource, len(matched))
	for i, res := range matched {
		page[i] = res.DeepCopy()
	}

	return page, total, nil
}

func matches(res *resource.Resource, filter resource.Filter) bool {
	if filter.Provider != "" && res.Provider != filter.Provider {
		return false
	}
	if filter.Kind != "" && res.Kind != filter.Kind {
		return false
	}
	if filter.Region != "" && res.Region != filter.Region {
		return false
	}
	if filter.Status != "" && res.Status != filter.Status {
		return false
	}
	return true
}
