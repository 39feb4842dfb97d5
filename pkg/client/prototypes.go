package client

import (
	"context"
	"net/url"
	"strconv"
)

// PrototypeService handles prototype registry API calls
type PrototypeService struct {
	client *Client
}

// CreatePrototypeRequest registers an existing resource as a prototype
type CreatePrototypeRequest struct {
	ResourceID  string            `json:"resourceId"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Category    string            `json:"category,omitempty"`
	Tags        map[string]string `json:"tags,omitempty"`
}

// ClonePrototypeRequest represents a clone request
type ClonePrototypeRequest struct {
	Name string            `json:"name,omitempty"`
	Tags map[string]string `json:"tags,omitempty"`
}

// SearchPrototypesRequest represents a prototype search
type SearchPrototypesRequest struct {
	Query    string            `json:"query,omitempty"`
	Category string            `json:"category,omitempty"`
	Tags     map[string]string `json:"tags,omitempty"`
}

// Create registers a stored resource as a prototype
func (s *PrototypeService) Create(ctx context.Context, req CreatePrototypeRequest) (*Prototype, error) {
	var proto Prototype
	if err := s.client.doRequest(ctx, "POST", "/api/v1/prototypes", req, &proto); err != nil {
		return nil, err
	}

	return &proto, nil
}

// List retrieves prototypes, optionally filtered by category
func (s *PrototypeService) List(ctx context.Context, category string) ([]Prototype, error) {
	path := "/api/v1/prototypes"
	if category != "" {
		path += "?category=" + url.QueryEscape(category)
	}

	var prototypes []Prototype
	if err := s.client.doRequest(ctx, "GET", path, nil, &prototypes); err != nil {
		return nil, err
	}

	return prototypes, nil
}

// Search finds prototypes by name, description, category, and tags
func (s *PrototypeService) Search(ctx context.Context, req SearchPrototypesRequest) ([]Prototype, error) {
	var prototypes []Prototype
	if err := s.client.doRequest(ctx, "POST", "/api/v1/prototypes/search", req, &prototypes); err != nil {
		return nil, err
	}

	return prototypes, nil
}

// Get retrieves a single prototype by ID
func (s *PrototypeService) Get(ctx context.Context, id string) (*Prototype, error) {
	var proto Prototype
	if err := s.client.doRequest(ctx, "GET", "/api/v1/prototypes/"+id, nil, &proto); err != nil {
		return nil, err
	}

	return &proto, nil
}

// Clone deep-copies a prototype into a new resource
func (s *PrototypeService) Clone(ctx context.Context, id string, req ClonePrototypeRequest) (*Resource, error) {
	var res Resource
	if err := s.client.doRequest(ctx, "POST", "/api/v1/prototypes/"+id+"/clone", req, &res); err != nil {
		return nil, err
	}

	return &res, nil
}

// Delete removes a prototype from the registry
func (s *PrototypeService) Delete(ctx context.Context, id string) error {
	return s.client.doRequest(ctx, "DELETE", "/api/v1/prototypes/"+id, nil, nil)
}

// Statistics retrieves registry usage statistics
func (s *PrototypeService) Statistics(ctx context.Context) (*Statistics, error) {
	var stats Statistics
	if err := s.client.doRequest(ctx, "GET", "/api/v1/prototypes/statistics", nil, &stats); err != nil {
		return nil, err
	}

	return &stats, nil
}

// Categories retrieves categories that currently hold prototypes
func (s *PrototypeService) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := s.client.doRequest(ctx, "GET", "/api/v1/prototypes/categories", nil, &categories); err != nil {
		return nil, err
	}

	return categories, nil
}

// LogsService handles activity-log API calls
type LogsService struct {
	client *Client
}

// List retrieves recent audit events, newest first
func (s *LogsService) List(ctx context.Context, limit int) ([]AuditEvent, error) {
	path := "/api/v1/logs"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}

	var events []AuditEvent
	if err := s.client.doRequest(ctx, "GET", path, nil, &events); err != nil {
		return nil, err
	}

	return events, nil
}
