package providers

import (
	"fmt"
	"strings"

	"github.com/protostack-io/protostack/internal/domain/resource"
	"github.com/protostack-io/protostack/internal/pkg/logger"
)

// AWSCatalog constructs AWS-flavored resources: EC2 instances, RDS
// databases, application load balancers, S3 buckets, and elastic
// network interfaces.
type AWSCatalog struct {
	log *logger.Logger
}

// NewAWSCatalog creates the AWS catalog
func NewAWSCatalog(log *logger.Logger) *AWSCatalog {
	return &AWSCatalog{log: log}
}

// Provider returns aws
func (c *AWSCatalog) Provider() resource.Provider {
	return resource.ProviderAWS
}

// VirtualMachine constructs an EC2 instance
func (c *AWSCatalog) VirtualMachine(name, region string, spec map[string]any) *resource.Resource {
	res := resource.New("i", resource.ProviderAWS, resource.KindVM, "AWS::EC2::Instance", name, region)
	res.Spec = mergeSpec(map[string]any{
		"instance_type":   "t3.micro",
		"ami":             "ami-0c55b159cbfafe1f0",
		"vpc_id":          "vpc-default",
		"security_groups": []string{},
		"key_pair":        "",
		"private_ip":      "",
		"public_ip":       "",
	}, spec)
	logBuilt(c.log, res)
	return res
}

// Database constructs an RDS instance. The connection endpoint and
// port follow the engine.
func (c *AWSCatalog) Database(name, region string, spec map[string]any) *resource.Resource {
	res := resource.New("db", resource.ProviderAWS, resource.KindDatabase, "AWS::RDS::DBInstance", name, region)

	defaults := map[string]any{
		"engine":            "postgres",
		"instance_class":    "db.t3.micro",
		"allocated_storage": 20,
	}
	merged := mergeSpec(defaults, spec)

	engine, _ := merged["engine"].(string)
	port := 5432
	if engine == "mysql" {
		port = 3306
	}
	if _, ok := merged["port"]; !ok {
		merged["port"] = port
	}
	if _, ok := merged["endpoint"]; !ok {
		merged["endpoint"] = fmt.Sprintf("%s.%s.rds.amazonaws.com", name, region)
	}

	res.Spec = merged
	logBuilt(c.log, res)
	return res
}

// LoadBalancer constructs an application load balancer with a DNS
// name derived from the name and resource ID
func (c *AWSCatalog) LoadBalancer(name, region string, spec map[string]any) *resource.Resource {
	res := resource.New("alb", resource.ProviderAWS, resource.KindLoadBalancer, "AWS::ElasticLoadBalancingV2::LoadBalancer", name, region)

	short := res.ID
	if idx := strings.LastIndex(short, "-"); idx >= 0 {
		short = short[idx+1:]
	}

	res.Spec = mergeSpec(map[string]any{
		"vpc_id":    "vpc-default",
		"scheme":    "internet-facing",
		"dns_name":  fmt.Sprintf("%s-%s.%s.elb.amazonaws.com", name, short, region),
		"targets":   []string{},
		"listeners": []map[string]any{},
	}, spec)
	logBuilt(c.log, res)
	return res
}

// Storage constructs an S3 bucket named after the resource
func (c *AWSCatalog) Storage(name, region string, spec map[string]any) *resource.Resource {
	res := resource.New("s3", resource.ProviderAWS, resource.KindStorage, "AWS::S3::Bucket", name, region)
	res.Spec = mergeSpec(map[string]any{
		"bucket_name":        name,
		"storage_class":      "STANDARD",
		"versioning_enabled": false,
		"objects":            []string{},
		"object_count":       0,
	}, spec)
	logBuilt(c.log, res)
	return res
}

// NetworkInterface constructs an elastic network interface
func (c *AWSCatalog) NetworkInterface(name, region string, spec map[string]any) *resource.Resource {
	res := resource.New("eni", resource.ProviderAWS, resource.KindNetwork, "AWS::EC2::NetworkInterface", name, region)
	res.Spec = mergeSpec(map[string]any{
		"security_groups": []string{},
		"private_ip":      "",
		"public_ip":       "",
	}, spec)
	logBuilt(c.log, res)
	return res
}
