package dto

import (
	"time"

	"github.com/protostack-io/protostack/internal/domain/prototype"
)

// PrototypeDTO represents a registered prototype in API responses
type PrototypeDTO struct {
	PrototypeID string            `json:"prototypeId"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Category    string            `json:"category"`
	Tags        map[string]string `json:"tags"`
	CreatedAt   time.Time         `json:"createdAt"`
	UsageCount  int               `json:"usageCount"`
	Resource    ResourceDTO       `json:"resource"`
}

// NewPrototypeDTO maps a registry entry to its API shape
func NewPrototypeDTO(entry prototype.Entry) PrototypeDTO {
	return PrototypeDTO{
		PrototypeID: entry.PrototypeID,
		Name:        entry.Metadata.Name,
		Description: entry.Metadata.Description,
		Category:    string(entry.Metadata.Category),
		Tags:        entry.Metadata.Tags,
		CreatedAt:   entry.Metadata.CreatedAt,
		UsageCount:  entry.Metadata.UsageCount,
		Resource:    NewResourceDTO(entry.Resource),
	}
}

// NewPrototypeDTOs maps a slice of registry entries
func NewPrototypeDTOs(entries []prototype.Entry) []PrototypeDTO {
	dtos := make([]PrototypeDTO, len(entries))
	for i, entry := range entries {
		dtos[i] = NewPrototypeDTO(entry)
	}
	return dtos
}

// CreatePrototypeRequest registers an existing resource as a prototype
type CreatePrototypeRequest struct {
	ResourceID  string            `json:"resourceId" validate:"required"`
	Name        string            `json:"name" validate:"required,min=1,max=128"`
	Description string            `json:"description,omitempty" validate:"max=512"`
	Category    string            `json:"category,omitempty" validate:"omitempty,oneof=vm database loadbalancer storage network general"`
	Tags        map[string]string `json:"tags,omitempty"`
}

// ClonePrototypeRequest represents a clone request. Name overrides
// the clone's display name; Tags are merged onto the clone.
type ClonePrototypeRequest struct {
	Name string            `json:"name,omitempty" validate:"omitempty,min=1,max=128"`
	Tags map[string]string `json:"tags,omitempty"`
}

// SearchPrototypesRequest represents a prototype search
type SearchPrototypesRequest struct {
	Query    string            `json:"query,omitempty"`
	Category string            `json:"category,omitempty" validate:"omitempty,oneof=vm database loadbalancer storage network general"`
	Tags     map[string]string `json:"tags,omitempty"`
}

// StatisticsDTO summarizes registry usage
type StatisticsDTO struct {
	TotalPrototypes    int                         `json:"totalPrototypes"`
	TotalClonesCreated int                         `json:"totalClonesCreated"`
	Categories         map[string]CategoryStatsDTO `json:"categories"`
	MostUsedPrototype  *MostUsedPrototypeDTO       `json:"mostUsedPrototype,omitempty"`
}

// CategoryStatsDTO aggregates per-category statistics
type CategoryStatsDTO struct {
	Count       int `json:"count"`
	TotalClones int `json:"totalClones"`
}

// MostUsedPrototypeDTO identifies the most cloned prototype
type MostUsedPrototypeDTO struct {
	PrototypeID string `json:"prototypeId"`
	Name        string `json:"name"`
	UsageCount  int    `json:"usageCount"`
}

// NewStatisticsDTO maps registry statistics to their API shape
func NewStatisticsDTO(stats prototype.Statistics) StatisticsDTO {
	out := StatisticsDTO{
		TotalPrototypes:    stats.TotalPrototypes,
		TotalClonesCreated: stats.TotalClonesCreated,
		Categories:         make(map[string]CategoryStatsDTO, len(stats.Categories)),
	}
	for category, cs := range stats.Categories {
		out.Categories[string(category)] = CategoryStatsDTO{
			Count:       cs.Count,
			TotalClones: cs.TotalClones,
		}
	}
	if stats.MostUsedPrototype != nil {
		out.MostUsedPrototype = &MostUsedPrototypeDTO{
			PrototypeID: stats.MostUsedPrototype.PrototypeID,
			Name:        stats.MostUsedPrototype.Name,
			UsageCount:  stats.MostUsedPrototype.UsageCount,
		}
	}
	return out
}
