package resource

import (
	"fmt"
	"strings"
	"time"

	"github.com/protostack-io/protostack/internal/pkg/errors"
)

// resetRule declares how a clone's spec diverges from its source.
// Keys in clear are emptied, and regen rewrites endpoint and address
// values for the clone. Security groups and listener lists carry over
// unchanged.
type resetRule struct {
	clear []string
	regen func(c *Resource)
}

var cloneResets = map[Kind]resetRule{
	KindVM:           {clear: []string{"private_ip", "public_ip"}},
	KindDatabase:     {regen: regenDatabaseEndpoint},
	KindLoadBalancer: {clear: []string{"targets", "backend_services"}, regen: regenLoadBalancerAddress},
	KindStorage:      {clear: []string{"objects", "object_count"}, regen: regenBucketName},
	KindNetwork:      {clear: []string{"public_ip", "private_ip"}},
}

// Clone produces an independent deep copy of src with identity and
// lineage fields rewritten. The clone receives a fresh resource ID
// (same prefix as the source) and prototype ID, starts with a zero
// clone count, and has its network-addressable spec fields cleared or
// regenerated per kind. On success the source's clone count is
// incremented and its last-cloned timestamp set; on failure the source
// is left unmodified.
func Clone(src *Resource, newName string, now time.Time) (*Resource, error) {
	if !src.IsCloneable() {
		return nil, errors.InvalidState(src.ID, string(src.Status))
	}

	clone := src.DeepCopy()

	clone.ID = NewID(src.IDPrefix())
	clone.PrototypeID = NewPrototypeID()
	clone.IsPrototype = false
	clone.ClonedFrom = src.PrototypeID
	clone.CloneCount = 0
	clone.CreatedAt = now
	clone.LastClonedAt = nil

	if newName != "" {
		clone.Name = newName
	}

	if rule, ok := cloneResets[src.Kind]; ok {
		for _, key := range rule.clear {
			clearSpecKey(clone.Spec, key)
		}
		if rule.regen != nil {
			rule.regen(clone)
		}
	}

	src.CloneCount++
	cloned := now
	src.LastClonedAt = &cloned

	return clone, nil
}

// clearSpecKey empties a spec value while preserving its shape, so a
// cleared field still marshals with the type callers expect
func clearSpecKey(spec map[string]any, key string) {
	v, ok := spec[key]
	if !ok {
		return
	}
	switch v.(type) {
	case string:
		spec[key] = ""
	case []any:
		spec[key] = []any{}
	case []string:
		spec[key] = []string{}
	case []map[string]any:
		spec[key] = []map[string]any{}
	case map[string]any:
		spec[key] = map[string]any{}
	case int:
		spec[key] = 0
	case float64:
		spec[key] = float64(0)
	default:
		spec[key] = nil
	}
}

// regenDatabaseEndpoint rewrites the connection endpoint so the clone
// cannot collide with the source instance
func regenDatabaseEndpoint(c *Resource) {
	switch c.Provider {
	case ProviderAWS:
		if _, ok := c.Spec["endpoint"]; ok {
			c.Spec["endpoint"] = fmt.Sprintf("%s.%s.rds.amazonaws.com", c.Name, c.Region)
		}
	case ProviderGCP:
		if _, ok := c.Spec["connection_name"]; ok {
			project, _ := c.Spec["project_id"].(string)
			if project == "" {
				project = "default-project"
			}
			c.Spec["connection_name"] = fmt.Sprintf("%s:%s:%s", project, c.Region, c.Name)
		}
	case ProviderOnPrem:
		if _, ok := c.Spec["endpoint"]; ok {
			port := c.Spec["port"]
			if port == nil {
				port = 5432
			}
			c.Spec["endpoint"] = fmt.Sprintf("%s.db.internal:%v", sanitizeHostname(c.Name), port)
		}
	}
}

// regenLoadBalancerAddress gives the clone its own frontend address;
// a clone must never receive traffic intended for the source
func regenLoadBalancerAddress(c *Resource) {
	switch c.Provider {
	case ProviderAWS:
		if _, ok := c.Spec["dns_name"]; ok {
			short := c.ID
			if idx := strings.LastIndex(short, "-"); idx >= 0 {
				short = short[idx+1:]
			}
			c.Spec["dns_name"] = fmt.Sprintf("%s-%s.%s.elb.amazonaws.com", c.Name, short, c.Region)
		}
	case ProviderGCP:
		clearSpecKey(c.Spec, "frontend_ip")
	case ProviderOnPrem:
		clearSpecKey(c.Spec, "virtual_ip")
	}
}

// regenBucketName keeps bucket naming unique: the clone's bucket
// follows the clone's display name
func regenBucketName(c *Resource) {
	if _, ok := c.Spec["bucket_name"]; ok {
		c.Spec["bucket_name"] = c.Name
	}
}

func sanitizeHostname(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", "-"))
}
