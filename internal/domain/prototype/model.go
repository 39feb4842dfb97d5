package prototype

import (
	"time"

	"github.com/protostack-io/protostack/internal/domain/resource"
)

// Category classifies a prototype within the registry
type Category string

// Prototype categories
const (
	CategoryVM           Category = "vm"
	CategoryDatabase     Category = "database"
	CategoryLoadBalancer Category = "loadbalancer"
	CategoryStorage      Category = "storage"
	CategoryNetwork      Category = "network"
	CategoryGeneral      Category = "general"
)

// AllCategories lists every valid category, in a fixed order
var AllCategories = []Category{
	CategoryVM,
	CategoryDatabase,
	CategoryLoadBalancer,
	CategoryStorage,
	CategoryNetwork,
	CategoryGeneral,
}

// Valid reports whether c is a known category
func (c Category) Valid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Metadata is the registry-side record attached to every prototype.
// UsageCount counts clones performed through the registry, which is a
// distinct counter from the resource's own clone count.
type Metadata struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Category    Category          `json:"category"`
	Tags        map[string]string `json:"tags"`
	CreatedAt   time.Time         `json:"created_at"`
	UsageCount  int               `json:"usage_count"`
}

// Entry pairs a registered prototype with its metadata
type Entry struct {
	PrototypeID string             `json:"prototype_id"`
	Resource    *resource.Resource `json:"resource"`
	Metadata    *Metadata          `json:"metadata"`
}

// SearchQuery describes a prototype search. An empty Query matches
// everything; Category and Tags narrow the result further.
type SearchQuery struct {
	Query    string
	Category Category
	Tags     map[string]string
}

// CategoryStats aggregates per-category statistics
type CategoryStats struct {
	Count       int `json:"count"`
	TotalClones int `json:"total_clones"`
}

// MostUsed identifies the prototype with the highest registry usage
// count
type MostUsed struct {
	PrototypeID string `json:"prototype_id"`
	Name        string `json:"name"`
	UsageCount  int    `json:"usage_count"`
}

// Statistics summarizes registry usage. TotalClonesCreated sums each
// stored prototype's own clone count; MostUsedPrototype ranks by
// registry usage count and is nil when every usage count is zero.
type Statistics struct {
	TotalPrototypes    int                        `json:"total_prototypes"`
	TotalClonesCreated int                        `json:"total_clones_created"`
	Categories         map[Category]CategoryStats `json:"categories"`
	MostUsedPrototype  *MostUsed                  `json:"most_used_prototype"`
}
