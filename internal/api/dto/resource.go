package dto

import (
	"time"

	"github.com/protostack-io/protostack/internal/domain/resource"
)

// ResourceDTO represents a resource in API responses
// Uses camelCase for frontend compatibility
type ResourceDTO struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Provider     string            `json:"provider"`
	Kind         string            `json:"kind"`
	Type         string            `json:"type"`
	Region       string            `json:"region"`
	Status       string            `json:"status"`
	Spec         map[string]any    `json:"spec"`
	Tags         map[string]string `json:"tags"`
	PrototypeID  string            `json:"prototypeId"`
	IsPrototype  bool              `json:"isPrototype"`
	ClonedFrom   string            `json:"clonedFrom,omitempty"`
	CloneCount   int               `json:"cloneCount"`
	CreatedAt    time.Time         `json:"createdAt"`
	LastClonedAt *time.Time        `json:"lastClonedAt,omitempty"`
}

// NewResourceDTO maps a domain resource to its API shape
func NewResourceDTO(res *resource.Resource) ResourceDTO {
	return ResourceDTO{
		ID:           res.ID,
		Name:         res.Name,
		Provider:     string(res.Provider),
		Kind:         string(res.Kind),
		Type:         res.Type,
		Region:       res.Region,
		Status:       string(res.Status),
		Spec:         res.Spec,
		Tags:         res.Tags,
		PrototypeID:  res.PrototypeID,
		IsPrototype:  res.IsPrototype,
		ClonedFrom:   res.ClonedFrom,
		CloneCount:   res.CloneCount,
		CreatedAt:    res.CreatedAt,
		LastClonedAt: res.LastClonedAt,
	}
}

// NewResourceDTOs maps a slice of domain resources
func NewResourceDTOs(resources []*resource.Resource) []ResourceDTO {
	dtos := make([]ResourceDTO, len(resources))
	for i, res := range resources {
		dtos[i] = NewResourceDTO(res)
	}
	return dtos
}

// ProvisionResourceRequest represents a resource provisioning request
type ProvisionResourceRequest struct {
	Provider string            `json:"provider" validate:"required,oneof=aws gcp onprem"`
	Kind     string            `json:"kind" validate:"required,oneof=vm database loadbalancer storage network"`
	Name     string            `json:"name" validate:"required,min=1,max=128"`
	Region   string            `json:"region" validate:"required,min=1,max=64"`
	Tier     string            `json:"tier,omitempty" validate:"omitempty,oneof=small medium large xlarge"`
	Spec     map[string]any    `json:"spec,omitempty"`
	Tags     map[string]string `json:"tags,omitempty"`
}

// UpdateResourceRequest represents a resource update request
type UpdateResourceRequest struct {
	Name   *string           `json:"name,omitempty"`
	Status *string           `json:"status,omitempty"`
	Tags   map[string]string `json:"tags,omitempty"`
}
