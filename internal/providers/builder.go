package providers

import (
	"github.com/protostack-io/protostack/internal/domain/resource"
	"github.com/protostack-io/protostack/internal/pkg/errors"
)

// Tier is a named VM sizing shortcut
type Tier string

// VM tiers
const (
	TierSmall  Tier = "small"
	TierMedium Tier = "medium"
	TierLarge  Tier = "large"
	TierXLarge Tier = "xlarge"
)

// tierSizings maps a tier to its per-provider machine sizing. AWS and
// GCP sizings are instance type names; onprem sizings are explicit
// cpu/ram pairs.
var tierSizings = map[Tier]struct {
	aws    string
	gcp    string
	cpu    int
	ramGB  int
	diskGB int
}{
	TierSmall:  {aws: "t3.micro", gcp: "e2-small", cpu: 1, ramGB: 2, diskGB: 20},
	TierMedium: {aws: "t3.medium", gcp: "e2-standard-2", cpu: 2, ramGB: 4, diskGB: 50},
	TierLarge:  {aws: "m5.large", gcp: "e2-standard-4", cpu: 4, ramGB: 16, diskGB: 100},
	TierXLarge: {aws: "m5.xlarge", gcp: "e2-standard-8", cpu: 8, ramGB: 32, diskGB: 200},
}

// Valid reports whether t names a known tier
func (t Tier) Valid() bool {
	_, ok := tierSizings[t]
	return ok
}

// VMBuilder assembles a VM provisioning request step by step. Use the
// chained setters, then Build to construct the resource through the
// provider's catalog.
type VMBuilder struct {
	catalogs Catalogs
	provider resource.Provider
	name     string
	region   string
	spec     map[string]any
	tags     map[string]string
	err      error
}

// NewVMBuilder starts a builder against the given catalog set
func NewVMBuilder(catalogs Catalogs) *VMBuilder {
	return &VMBuilder{
		catalogs: catalogs,
		spec:     make(map[string]any),
		tags:     make(map[string]string),
	}
}

// Provider sets the target provider
func (b *VMBuilder) Provider(p resource.Provider) *VMBuilder {
	b.provider = p
	return b
}

// Name sets the display name
func (b *VMBuilder) Name(name string) *VMBuilder {
	b.name = name
	return b
}

// Region sets the region or datacenter
func (b *VMBuilder) Region(region string) *VMBuilder {
	b.region = region
	return b
}

// SpecValue sets one spec override
func (b *VMBuilder) SpecValue(key string, value any) *VMBuilder {
	b.spec[key] = value
	return b
}

// Spec merges a block of spec overrides
func (b *VMBuilder) Spec(spec map[string]any) *VMBuilder {
	for k, v := range spec {
		b.spec[k] = v
	}
	return b
}

// Tag adds a tag
func (b *VMBuilder) Tag(key, value string) *VMBuilder {
	b.tags[key] = value
	return b
}

// Tier applies a named sizing preset for the builder's provider.
// Explicit SpecValue calls made after Tier still win.
func (b *VMBuilder) Tier(t Tier) *VMBuilder {
	sizing, ok := tierSizings[t]
	if !ok {
		b.err = errors.BadRequest("unknown vm tier: " + string(t))
		return b
	}

	switch b.provider {
	case resource.ProviderAWS:
		b.spec["instance_type"] = sizing.aws
	case resource.ProviderGCP:
		b.spec["machine_type"] = sizing.gcp
	case resource.ProviderOnPrem:
		b.spec["cpu_cores"] = sizing.cpu
		b.spec["ram_gb"] = sizing.ramGB
		b.spec["disk_gb"] = sizing.diskGB
	default:
		b.err = errors.BadRequest("set the provider before choosing a tier")
	}
	return b
}

// Build constructs the VM through the provider's catalog
func (b *VMBuilder) Build() (*resource.Resource, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.name == "" {
		return nil, errors.ValidationError("vm name is required", nil)
	}
	if b.region == "" {
		return nil, errors.ValidationError("vm region is required", nil)
	}

	catalog, ok := b.catalogs[b.provider]
	if !ok {
		return nil, errors.BadRequest("unsupported provider: " + string(b.provider))
	}

	res := catalog.VirtualMachine(b.name, b.region, b.spec)
	for k, v := range b.tags {
		res.Tags[k] = v
	}
	return res, nil
}
