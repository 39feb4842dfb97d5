// Package services wires the domain interfaces to their concrete
// collaborators: provider catalogs, the in-memory stores, the
// prototype registry, and the audit log.
package services

import (
	"context"
	"fmt"

	"github.com/protostack-io/protostack/internal/domain/audit"
	"github.com/protostack-io/protostack/internal/domain/resource"
	"github.com/protostack-io/protostack/internal/pkg/errors"
	"github.com/protostack-io/protostack/internal/pkg/logger"
	"github.com/protostack-io/protostack/internal/pkg/metrics"
	"github.com/protostack-io/protostack/internal/providers"
)

// ResourceService implements resource.Service on top of the provider
// catalogs and the resource store
type ResourceService struct {
	store    resource.Store
	catalogs providers.Catalogs
	recorder audit.Recorder
	log      *logger.Logger
}

// NewResourceService creates a resource service
func NewResourceService(store resource.Store, catalogs providers.Catalogs, recorder audit.Recorder, log *logger.Logger) *ResourceService {
	return &ResourceService{
		store:    store,
		catalogs: catalogs,
		recorder: recorder,
		log:      log,
	}
}

// Provision constructs a resource through the provider catalog and
// stores it. Provisioning is simulated, so the resource reaches
// status running immediately.
func (s *ResourceService) Provision(ctx context.Context, req resource.ProvisionRequest) (*resource.Resource, error) {
	var (
		res *resource.Resource
		err error
	)

	if req.Kind == resource.KindVM && req.Tier != "" {
		res, err = providers.NewVMBuilder(s.catalogs).
			Provider(req.Provider).
			Name(req.Name).
			Region(req.Region).
			Tier(providers.Tier(req.Tier)).
			Spec(req.Spec).
			Build()
	} else {
		res, err = s.catalogs.Build(req.Provider, req.Kind, req.Name, req.Region, req.Spec)
	}
	if err != nil {
		return nil, err
	}

	for k, v := range req.Tags {
		res.Tags[k] = v
	}

	// simulated readiness
	res.Status = resource.StatusRunning

	if err := s.store.Save(ctx, res); err != nil {
		return nil, err
	}

	s.updateResourceGauge(ctx, res.Provider, res.Kind)
	s.recorder.Record(ctx, audit.Event{
		Action:     audit.ActionProvision,
		ResourceID: res.ID,
		Message:    fmt.Sprintf("provisioned %s %s %q in %s", res.Provider, res.Kind, res.Name, res.Region),
	})
	s.log.WithFields(map[string]interface{}{
		"id":       res.ID,
		"provider": string(res.Provider),
		"kind":     string(res.Kind),
	}).Info("resource provisioned")

	return res, nil
}

// Get retrieves a resource by ID
func (s *ResourceService) Get(ctx context.Context, id string) (*resource.Resource, error) {
	return s.store.Get(ctx, id)
}

// List retrieves resources with filters and pagination
func (s *ResourceService) List(ctx context.Context, filter resource.Filter, limit, offset int) ([]*resource.Resource, int64, error) {
	return s.store.List(ctx, filter, limit, offset)
}

// Update applies name, status, and tag updates to a resource. Keys
// other than name, status, and tags are rejected. The updates run
// against a copy and are saved only when every field validates, so a
// failed update leaves the stored resource unchanged.
func (s *ResourceService) Update(ctx context.Context, id string, updates map[string]interface{}) (*resource.Resource, error) {
	res, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	for key, value := range updates {
		switch key {
		case "name":
			name, ok := value.(string)
			if !ok || name == "" {
				return nil, errors.ValidationError("name must be a non-empty string", nil)
			}
			res.Name = name
		case "status":
			raw, ok := value.(string)
			if !ok {
				return nil, errors.ValidationError("status must be a string", nil)
			}
			status := resource.Status(raw)
			switch status {
			case resource.StatusCreating, resource.StatusRunning, resource.StatusStopped,
				resource.StatusDeleting, resource.StatusError:
				res.Status = status
			default:
				return nil, errors.ValidationError("unknown status: "+raw, nil)
			}
		case "tags":
			tags, ok := value.(map[string]interface{})
			if !ok {
				return nil, errors.ValidationError("tags must be an object of strings", nil)
			}
			for k, v := range tags {
				str, ok := v.(string)
				if !ok {
					return nil, errors.ValidationError("tag values must be strings", nil)
				}
				res.Tags[k] = str
			}
		default:
			return nil, errors.ValidationError("unknown update field: "+key, nil)
		}
	}

	if err := s.store.Save(ctx, res); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, audit.Event{
		Action:     audit.ActionResourceUpdate,
		ResourceID: res.ID,
		Message:    fmt.Sprintf("updated resource %q", res.Name),
	})

	return res, nil
}

// Delete removes a resource
func (s *ResourceService) Delete(ctx context.Context, id string) error {
	res, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	s.updateResourceGauge(ctx, res.Provider, res.Kind)
	s.recorder.Record(ctx, audit.Event{
		Action:     audit.ActionResourceDelete,
		ResourceID: id,
		Message:    fmt.Sprintf("deleted %s %s %q", res.Provider, res.Kind, res.Name),
	})
	s.log.With("id", id).Info("resource deleted")

	return nil
}

func (s *ResourceService) updateResourceGauge(ctx context.Context, provider resource.Provider, kind resource.Kind) {
	_, total, err := s.store.List(ctx, resource.Filter{Provider: provider, Kind: kind}, 1, 0)
	if err != nil {
		return
	}
	metrics.SetResourceCount(string(provider), string(kind), float64(total))
}
