package providers

import (
	"fmt"

	"github.com/protostack-io/protostack/internal/domain/resource"
	"github.com/protostack-io/protostack/internal/pkg/logger"
)

// GCPCatalog constructs GCP-flavored resources: Compute Engine
// instances, Cloud SQL databases, cloud load balancers, Cloud Storage
// buckets, and network interfaces.
type GCPCatalog struct {
	log *logger.Logger
}

// NewGCPCatalog creates the GCP catalog
func NewGCPCatalog(log *logger.Logger) *GCPCatalog {
	return &GCPCatalog{log: log}
}

// Provider returns gcp
func (c *GCPCatalog) Provider() resource.Provider {
	return resource.ProviderGCP
}

// VirtualMachine constructs a Compute Engine instance
func (c *GCPCatalog) VirtualMachine(name, region string, spec map[string]any) *resource.Resource {
	res := resource.New("gcp-vm", resource.ProviderGCP, resource.KindVM, "gcp.compute.instance", name, region)
	res.Spec = mergeSpec(map[string]any{
		"machine_type":   "e2-standard-2",
		"zone":           region + "-a",
		"boot_disk_size": 20,
		"project_id":     "my-gcp-project",
		"private_ip":     "",
		"public_ip":      "",
	}, spec)
	logBuilt(c.log, res)
	return res
}

// Database constructs a Cloud SQL instance; its connection name
// follows the project:region:name convention
func (c *GCPCatalog) Database(name, region string, spec map[string]any) *resource.Resource {
	res := resource.New("gcp-db", resource.ProviderGCP, resource.KindDatabase, "gcp.cloudsql.instance", name, region)

	merged := mergeSpec(map[string]any{
		"engine":         "postgres",
		"engine_version": "13",
		"tier":           "db-standard-1",
		"storage_size":   20,
		"project_id":     "my-gcp-project",
	}, spec)

	if _, ok := merged["connection_name"]; !ok {
		project, _ := merged["project_id"].(string)
		merged["connection_name"] = fmt.Sprintf("%s:%s:%s", project, region, name)
	}

	res.Spec = merged
	logBuilt(c.log, res)
	return res
}

// LoadBalancer constructs a cloud load balancer
func (c *GCPCatalog) LoadBalancer(name, region string, spec map[string]any) *resource.Resource {
	res := resource.New("gcp-lb", resource.ProviderGCP, resource.KindLoadBalancer, "gcp.loadbalancer", name, region)
	res.Spec = mergeSpec(map[string]any{
		"type":             "HTTP(S)",
		"frontend_ip":      "",
		"backend_services": []string{},
		"listeners":        []map[string]any{},
	}, spec)
	logBuilt(c.log, res)
	return res
}

// Storage constructs a Cloud Storage bucket
func (c *GCPCatalog) Storage(name, region string, spec map[string]any) *resource.Resource {
	res := resource.New("gcp-storage", resource.ProviderGCP, resource.KindStorage, "gcp.storage.bucket", name, region)
	res.Spec = mergeSpec(map[string]any{
		"bucket_name":        name,
		"location":           "US",
		"storage_class":      "STANDARD",
		"versioning_enabled": false,
		"objects":            []string{},
		"object_count":       0,
	}, spec)
	logBuilt(c.log, res)
	return res
}

// NetworkInterface constructs a VPC network interface
func (c *GCPCatalog) NetworkInterface(name, region string, spec map[string]any) *resource.Resource {
	res := resource.New("gcp-net", resource.ProviderGCP, resource.KindNetwork, "gcp.compute.network_interface", name, region)
	res.Spec = mergeSpec(map[string]any{
		"network":    "default",
		"subnetwork": "default",
		"private_ip": "",
		"public_ip":  "",
	}, spec)
	logBuilt(c.log, res)
	return res
}
