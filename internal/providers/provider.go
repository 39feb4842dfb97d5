// Package providers holds the per-provider resource catalogs. Each
// catalog knows how to construct every resource kind for its
// provider, with provider-style IDs, type identifiers, and default
// spec bags. The catalogs simulate provisioning; nothing talks to a
// real cloud API.
package providers

import (
	"strings"

	"github.com/protostack-io/protostack/internal/domain/resource"
	"github.com/protostack-io/protostack/internal/pkg/errors"
	"github.com/protostack-io/protostack/internal/pkg/logger"
)

// Catalog constructs the resource kinds of one provider. Caller-
// supplied spec values override the catalog's defaults key by key.
type Catalog interface {
	Provider() resource.Provider

	VirtualMachine(name, region string, spec map[string]any) *resource.Resource
	Database(name, region string, spec map[string]any) *resource.Resource
	LoadBalancer(name, region string, spec map[string]any) *resource.Resource
	Storage(name, region string, spec map[string]any) *resource.Resource
	NetworkInterface(name, region string, spec map[string]any) *resource.Resource
}

// Catalogs maps providers to their catalog
type Catalogs map[resource.Provider]Catalog

// NewCatalogs builds the full catalog set
func NewCatalogs(log *logger.Logger) Catalogs {
	return Catalogs{
		resource.ProviderAWS:    NewAWSCatalog(log),
		resource.ProviderGCP:    NewGCPCatalog(log),
		resource.ProviderOnPrem: NewOnPremCatalog(log),
	}
}

// Build dispatches to the right catalog and constructor for the given
// provider and kind
func (c Catalogs) Build(provider resource.Provider, kind resource.Kind, name, region string, spec map[string]any) (*resource.Resource, error) {
	catalog, ok := c[provider]
	if !ok {
		return nil, errors.BadRequest("unsupported provider: " + string(provider))
	}

	switch kind {
	case resource.KindVM:
		return catalog.VirtualMachine(name, region, spec), nil
	case resource.KindDatabase:
		return catalog.Database(name, region, spec), nil
	case resource.KindLoadBalancer:
		return catalog.LoadBalancer(name, region, spec), nil
	case resource.KindStorage:
		return catalog.Storage(name, region, spec), nil
	case resource.KindNetwork:
		return catalog.NetworkInterface(name, region, spec), nil
	default:
		return nil, errors.BadRequest("unsupported resource kind: " + string(kind))
	}
}

func sanitizeName(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", "-"))
}

// mergeSpec lays caller overrides over the catalog defaults
func mergeSpec(defaults, overrides map[string]any) map[string]any {
	merged := make(map[string]any, len(defaults)+len(overrides))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return merged
}

func logBuilt(log *logger.Logger, res *resource.Resource) {
	if log == nil {
		return
	}
	log.WithFields(map[string]interface{}{
		"id":       res.ID,
		"provider": string(res.Provider),
		"kind":     string(res.Kind),
		"type":     res.Type,
		"region":   res.Region,
	}).Debug("resource constructed")
}
