package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/protostack-io/protostack/internal/domain/resource"
	"github.com/protostack-io/protostack/internal/pkg/logger"
	"github.com/protostack-io/protostack/internal/pkg/validator"
	"github.com/protostack-io/protostack/internal/providers"
	"github.com/protostack-io/protostack/internal/repository/memory"
	"github.com/protostack-io/protostack/internal/services"
)

func newResourceTestRouter(t *testing.T) (chi.Router, *services.ResourceService) {
	t.Helper()

	log := logger.New(logger.Config{Level: "error", Format: "json"})
	store := memory.NewStore()
	service := services.NewResourceService(store, providers.NewCatalogs(log), memory.NewAuditLog(100), log)
	handler := NewResourceHandler(service, log, validator.New())

	r := chi.NewRouter()
	r.Route("/api/v1/resources", func(r chi.Router) {
		r.Get("/", handler.List)
		r.Post("/", handler.Provision)
		r.Get("/{id}", handler.Get)
		r.Put("/{id}", handler.Update)
		r.Delete("/{id}", handler.Delete)
	})
	return r, service
}

func decodeResponse(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var response map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return response
}

func TestResourceHandler_Provision(t *testing.T) {
	router, _ := newResourceTestRouter(t)

	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{
			name:           "valid vm",
			body:           `{"provider":"aws","kind":"vm","name":"web-server","region":"us-east-1","tier":"small"}`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "valid database with spec",
			body:           `{"provider":"gcp","kind":"database","name":"orders","region":"us-central1","spec":{"engine":"mysql"}}`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "unknown provider",
			body:           `{"provider":"azure","kind":"vm","name":"x","region":"r"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing name",
			body:           `{"provider":"aws","kind":"vm","region":"us-east-1"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid tier",
			body:           `{"provider":"aws","kind":"vm","name":"x","region":"r","tier":"huge"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed json",
			body:           `{"provider":`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/resources", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d (body: %s)", rr.Code, tt.expectedStatus, rr.Body.String())
			}
		})
	}
}

func TestResourceHandler_ProvisionResponseShape(t *testing.T) {
	router, _ := newResourceTestRouter(t)

	body := `{"provider":"aws","kind":"vm","name":"web","region":"us-east-1","tags":{"env":"prod"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/resources", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body: %s)", rr.Code, rr.Body.String())
	}

	response := decodeResponse(t, rr)
	if response["success"] != true {
		t.Error("response should have success=true")
	}
	data, ok := response["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("data missing from response: %v", response)
	}
	if data["provider"] != "aws" || data["kind"] != "vm" || data["status"] != "running" {
		t.Errorf("data = %v, want aws/vm/running", data)
	}
	if data["isPrototype"] != false {
		t.Error("new resource should not be a prototype")
	}
}

func TestResourceHandler_GetAndDelete(t *testing.T) {
	router, service := newResourceTestRouter(t)

	res, err := service.Provision(httptest.NewRequest(http.MethodGet, "/", nil).Context(), resource.ProvisionRequest{
		Provider: resource.ProviderAWS,
		Kind:     resource.KindStorage,
		Name:     "assets",
		Region:   "us-east-1",
	})
	if err != nil {
		t.Fatalf("Provision() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/resources/"+res.ID, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("GET status = %d, want 200", rr.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/resources/s3-missing1", nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Errorf("GET missing status = %d, want 404", rr.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/resources/"+res.ID, nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("DELETE status = %d, want 200", rr.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/resources/"+res.ID, nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Errorf("second DELETE status = %d, want 404", rr.Code)
	}
}

func TestResourceHandler_Update(t *testing.T) {
	router, service := newResourceTestRouter(t)

	res, err := service.Provision(httptest.NewRequest(http.MethodGet, "/", nil).Context(), resource.ProvisionRequest{
		Provider: resource.ProviderAWS,
		Kind:     resource.KindVM,
		Name:     "web",
		Region:   "us-east-1",
	})
	if err != nil {
		t.Fatalf("Provision() error = %v", err)
	}

	body := `{"name":"web-renamed","status":"stopped"}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/resources/"+res.ID, bytes.NewBufferString(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("PUT status = %d, want 200 (body: %s)", rr.Code, rr.Body.String())
	}
	response := decodeResponse(t, rr)
	data := response["data"].(map[string]interface{})
	if data["name"] != "web-renamed" || data["status"] != "stopped" {
		t.Errorf("data = %v, want web-renamed/stopped", data)
	}

	req = httptest.NewRequest(http.MethodPut, "/api/v1/resources/"+res.ID, bytes.NewBufferString(`{}`))
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("empty PUT status = %d, want 400", rr.Code)
	}
}

func TestResourceHandler_ListFilters(t *testing.T) {
	router, service := newResourceTestRouter(t)
	ctx := httptest.NewRequest(http.MethodGet, "/", nil).Context()

	seed := []resource.ProvisionRequest{
		{Provider: resource.ProviderAWS, Kind: resource.KindVM, Name: "a", Region: "us-east-1"},
		{Provider: resource.ProviderAWS, Kind: resource.KindDatabase, Name: "b", Region: "us-east-1"},
		{Provider: resource.ProviderGCP, Kind: resource.KindVM, Name: "c", Region: "us-central1"},
	}
	for _, req := range seed {
		if _, err := service.Provision(ctx, req); err != nil {
			t.Fatalf("Provision() error = %v", err)
		}
	}

	tests := []struct {
		name          string
		query         string
		expectedCount int
	}{
		{"all", "", 3},
		{"by provider", "?provider=aws", 2},
		{"by kind", "?kind=vm", 2},
		{"by provider and kind", "?provider=gcp&kind=vm", 1},
		{"paginated", "?page=1&page_size=2", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/resources"+tt.query, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			if rr.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rr.Code)
			}
			response := decodeResponse(t, rr)
			page := response["data"].(map[string]interface{})
			items := page["data"].([]interface{})
			if len(items) != tt.expectedCount {
				t.Errorf("returned %d resources, want %d", len(items), tt.expectedCount)
			}
		})
	}
}
