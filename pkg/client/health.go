package client

import "context"

// HealthService handles health and readiness probes
type HealthService struct {
	client *Client
}

// HealthResponse is the health probe payload
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Uptime  string `json:"uptime,omitempty"`
}

// Check checks the liveness of the API
func (s *HealthService) Check(ctx context.Context) (*HealthResponse, error) {
	var health HealthResponse
	if err := s.client.doRequest(ctx, "GET", "/healthz", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// Ready checks the readiness of the API
func (s *HealthService) Ready(ctx context.Context) (*HealthResponse, error) {
	var health HealthResponse
	if err := s.client.doRequest(ctx, "GET", "/readyz", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// Ping is a simple connectivity test
func (s *HealthService) Ping(ctx context.Context) error {
	_, err := s.Check(ctx)
	return err
}
