package client

import (
	"context"
	"net/url"
	"strconv"
)

// ResourceService handles resource API calls
type ResourceService struct {
	client *Client
}

// ProvisionResourceRequest represents a provisioning request
type ProvisionResourceRequest struct {
	Provider string                 `json:"provider"`
	Kind     string                 `json:"kind"`
	Name     string                 `json:"name"`
	Region   string                 `json:"region"`
	Tier     string                 `json:"tier,omitempty"`
	Spec     map[string]interface{} `json:"spec,omitempty"`
	Tags     map[string]string      `json:"tags,omitempty"`
}

// UpdateResourceRequest represents a resource update request
type UpdateResourceRequest struct {
	Name   *string           `json:"name,omitempty"`
	Status *string           `json:"status,omitempty"`
	Tags   map[string]string `json:"tags,omitempty"`
}

// ResourceListOptions contains options for listing resources
type ResourceListOptions struct {
	ListOptions
	Provider string
	Kind     string
	Region   string
	Status   string
}

// List retrieves a page of resources
func (s *ResourceService) List(ctx context.Context, opts *ResourceListOptions) (*PaginatedResources, error) {
	query := url.Values{}

	if opts != nil {
		if opts.Page > 0 {
			query.Set("page", strconv.Itoa(opts.Page))
		}
		if opts.PageSize > 0 {
			query.Set("page_size", strconv.Itoa(opts.PageSize))
		}
		if opts.Provider != "" {
			query.Set("provider", opts.Provider)
		}
		if opts.Kind != "" {
			query.Set("kind", opts.Kind)
		}
		if opts.Region != "" {
			query.Set("region", opts.Region)
		}
		if opts.Status != "" {
			query.Set("status", opts.Status)
		}
	}

	path := "/api/v1/resources"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var page PaginatedResources
	if err := s.client.doRequest(ctx, "GET", path, nil, &page); err != nil {
		return nil, err
	}

	return &page, nil
}

// Get retrieves a single resource by ID
func (s *ResourceService) Get(ctx context.Context, id string) (*Resource, error) {
	var res Resource
	if err := s.client.doRequest(ctx, "GET", "/api/v1/resources/"+id, nil, &res); err != nil {
		return nil, err
	}

	return &res, nil
}

// Provision creates a simulated resource
func (s *ResourceService) Provision(ctx context.Context, req ProvisionResourceRequest) (*Resource, error) {
	var res Resource
	if err := s.client.doRequest(ctx, "POST", "/api/v1/resources", req, &res); err != nil {
		return nil, err
	}

	return &res, nil
}

// Update modifies a resource's name, status, or tags
func (s *ResourceService) Update(ctx context.Context, id string, req UpdateResourceRequest) (*Resource, error) {
	var res Resource
	if err := s.client.doRequest(ctx, "PUT", "/api/v1/resources/"+id, req, &res); err != nil {
		return nil, err
	}

	return &res, nil
}

// Delete removes a resource
func (s *ResourceService) Delete(ctx context.Context, id string) error {
	return s.client.doRequest(ctx, "DELETE", "/api/v1/resources/"+id, nil, nil)
}
