package providers

import (
	"fmt"

	"github.com/protostack-io/protostack/internal/domain/resource"
	"github.com/protostack-io/protostack/internal/pkg/logger"
)

// OnPremCatalog constructs on-premises resources: hypervisor VMs,
// bare-metal databases, software load balancers, and NFS shares. The
// region is a datacenter identifier.
type OnPremCatalog struct {
	log *logger.Logger
}

// NewOnPremCatalog creates the on-premises catalog
func NewOnPremCatalog(log *logger.Logger) *OnPremCatalog {
	return &OnPremCatalog{log: log}
}

// Provider returns onprem
func (c *OnPremCatalog) Provider() resource.Provider {
	return resource.ProviderOnPrem
}

// VirtualMachine constructs a hypervisor-hosted VM
func (c *OnPremCatalog) VirtualMachine(name, region string, spec map[string]any) *resource.Resource {
	res := resource.New("onprem-vm", resource.ProviderOnPrem, resource.KindVM, "onprem.virtual_machine", name, region)
	res.Spec = mergeSpec(map[string]any{
		"cpu_cores":   2,
		"ram_gb":      4,
		"disk_gb":     50,
		"hypervisor":  "vmware",
		"host_server": "esxi-01.company.local",
		"datastore":   "datastore1",
		"private_ip":  "",
		"public_ip":   "",
	}, spec)
	logBuilt(c.log, res)
	return res
}

// Database constructs a bare-metal database server. The endpoint is
// derived from the name and configured port.
func (c *OnPremCatalog) Database(name, region string, spec map[string]any) *resource.Resource {
	res := resource.New("onprem-db", resource.ProviderOnPrem, resource.KindDatabase, "onprem.database", name, region)

	merged := mergeSpec(map[string]any{
		"engine":          "postgresql",
		"version":         "13.0",
		"port":            5432,
		"host_server":     "db-server-01.company.local",
		"data_directory":  "/var/lib/postgresql/data",
		"max_connections": 100,
	}, spec)

	if _, ok := merged["endpoint"]; !ok {
		merged["endpoint"] = fmt.Sprintf("%s.db.internal:%v", sanitizeName(name), merged["port"])
	}

	res.Spec = merged
	logBuilt(c.log, res)
	return res
}

// LoadBalancer constructs a software load balancer
func (c *OnPremCatalog) LoadBalancer(name, region string, spec map[string]any) *resource.Resource {
	res := resource.New("onprem-lb", resource.ProviderOnPrem, resource.KindLoadBalancer, "onprem.loadbalancer", name, region)
	res.Spec = mergeSpec(map[string]any{
		"type":        "haproxy",
		"listen_port": 80,
		"algorithm":   "round_robin",
		"host_server": "lb-server-01.company.local",
		"virtual_ip":  "",
		"targets":     []string{},
		"listeners":   []map[string]any{},
	}, spec)
	logBuilt(c.log, res)
	return res
}

// Storage constructs a network share
func (c *OnPremCatalog) Storage(name, region string, spec map[string]any) *resource.Resource {
	res := resource.New("onprem-storage", resource.ProviderOnPrem, resource.KindStorage, "onprem.storage", name, region)
	res.Spec = mergeSpec(map[string]any{
		"bucket_name":      name,
		"storage_type":     "nfs",
		"mount_point":      "/mnt/" + name,
		"capacity_gb":      1000,
		"host_server":      "storage-server-01.company.local",
		"protocol_version": "4.1",
		"permissions":      "rw",
		"objects":          []string{},
		"object_count":     0,
	}, spec)
	logBuilt(c.log, res)
	return res
}

// NetworkInterface constructs a datacenter NIC allocation
func (c *OnPremCatalog) NetworkInterface(name, region string, spec map[string]any) *resource.Resource {
	res := resource.New("onprem-net", resource.ProviderOnPrem, resource.KindNetwork, "onprem.network_interface", name, region)
	res.Spec = mergeSpec(map[string]any{
		"vlan":       100,
		"interface":  "eth0",
		"private_ip": "",
		"public_ip":  "",
	}, spec)
	logBuilt(c.log, res)
	return res
}
