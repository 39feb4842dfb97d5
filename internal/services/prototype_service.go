package services

import (
	"context"
	"fmt"

	"github.com/protostack-io/protostack/internal/domain/audit"
	"github.com/protostack-io/protostack/internal/domain/prototype"
	"github.com/protostack-io/protostack/internal/domain/resource"
	"github.com/protostack-io/protostack/internal/pkg/errors"
	"github.com/protostack-io/protostack/internal/pkg/logger"
	"github.com/protostack-io/protostack/internal/pkg/metrics"
)

// PrototypeService implements prototype.Service, orchestrating the
// registry and the resource store
type PrototypeService struct {
	registry prototype.Registry
	store    resource.Store
	recorder audit.Recorder
	log      *logger.Logger
}

// NewPrototypeService creates a prototype service
func NewPrototypeService(registry prototype.Registry, store resource.Store, recorder audit.Recorder, log *logger.Logger) *PrototypeService {
	return &PrototypeService{
		registry: registry,
		store:    store,
		recorder: recorder,
		log:      log,
	}
}

// CreateFromResource registers an existing stored resource as a
// prototype. The resource must be in a cloneable status.
func (s *PrototypeService) CreateFromResource(ctx context.Context, resourceID, name, description string, category prototype.Category, tags map[string]string) (prototype.Entry, error) {
	res, err := s.store.Get(ctx, resourceID)
	if err != nil {
		return prototype.Entry{}, err
	}
	if !res.IsCloneable() {
		return prototype.Entry{}, errors.InvalidState(res.ID, string(res.Status))
	}
	if category != "" && !category.Valid() {
		return prototype.Entry{}, errors.ValidationError("unknown category: "+string(category), nil)
	}

	id, err := s.registry.Register(ctx, res, name, description, category, tags)
	if err != nil {
		return prototype.Entry{}, err
	}

	// persist the prototype marking on the stored record
	if err := s.store.Save(ctx, res); err != nil {
		return prototype.Entry{}, err
	}

	metrics.RecordPrototypeRegistered(string(category))
	s.recorder.Record(ctx, audit.Event{
		Action:      audit.ActionPrototypeRegister,
		ResourceID:  resourceID,
		PrototypeID: id,
		Message:     fmt.Sprintf("registered prototype %q from resource %s", name, resourceID),
	})
	s.log.WithFields(map[string]interface{}{
		"prototype_id": id,
		"resource_id":  resourceID,
	}).Info("prototype registered")

	return s.registry.Get(ctx, id)
}

// Get retrieves a prototype entry by ID
func (s *PrototypeService) Get(ctx context.Context, id string) (prototype.Entry, error) {
	return s.registry.Get(ctx, id)
}

// Clone clones a prototype through the registry, merges extraTags
// onto the clone, and saves the clone in the resource store
func (s *PrototypeService) Clone(ctx context.Context, id, newName string, extraTags map[string]string) (*resource.Resource, error) {
	clone, err := s.registry.Clone(ctx, id, newName)
	if err != nil {
		metrics.RecordCloneFailure(cloneFailureReason(err))
		return nil, err
	}

	for k, v := range extraTags {
		clone.Tags[k] = v
	}

	if err := s.store.Save(ctx, clone); err != nil {
		metrics.RecordCloneFailure("store")
		return nil, err
	}

	metrics.RecordClone(string(clone.Provider), string(clone.Kind))
	s.recorder.Record(ctx, audit.Event{
		Action:      audit.ActionPrototypeClone,
		ResourceID:  clone.ID,
		PrototypeID: id,
		Message:     fmt.Sprintf("cloned prototype %s into resource %s (%q)", id, clone.ID, clone.Name),
	})
	s.log.WithFields(map[string]interface{}{
		"prototype_id": id,
		"clone_id":     clone.ID,
	}).Info("prototype cloned")

	return clone, nil
}

// List returns prototypes, optionally filtered by category
func (s *PrototypeService) List(ctx context.Context, category prototype.Category) ([]prototype.Entry, error) {
	if category != "" && !category.Valid() {
		return nil, errors.ValidationError("unknown category: "+string(category), nil)
	}
	return s.registry.List(ctx, category), nil
}

// Search returns prototypes matching the query
func (s *PrototypeService) Search(ctx context.Context, q prototype.SearchQuery) ([]prototype.Entry, error) {
	if q.Category != "" && !q.Category.Valid() {
		return nil, errors.ValidationError("unknown category: "+string(q.Category), nil)
	}
	return s.registry.Search(ctx, q), nil
}

// Delete removes a prototype from the registry. Clones made from it
// keep their lineage and remain in the resource store.
func (s *PrototypeService) Delete(ctx context.Context, id string) error {
	if !s.registry.Remove(ctx, id) {
		return errors.NotFound("prototype " + id)
	}

	s.recorder.Record(ctx, audit.Event{
		Action:      audit.ActionPrototypeDelete,
		PrototypeID: id,
		Message:     "removed prototype " + id,
	})
	s.log.With("prototype_id", id).Info("prototype removed")

	return nil
}

// Statistics summarizes registry usage
func (s *PrototypeService) Statistics(ctx context.Context) (prototype.Statistics, error) {
	return s.registry.Statistics(ctx), nil
}

// Categories lists categories in first-use order
func (s *PrototypeService) Categories(ctx context.Context) ([]prototype.Category, error) {
	return s.registry.Categories(ctx), nil
}

func cloneFailureReason(err error) string {
	switch {
	case errors.IsNotFound(err):
		return "not_found"
	case errors.IsInvalidState(err):
		return "invalid_state"
	default:
		return "internal"
	}
}
