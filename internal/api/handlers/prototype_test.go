package handlers

import (
	"bytes"
	"context"
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

type prototypeTestEnv struct {
	router     chi.Router
	resources  *services.ResourceService
	prototypes *services.PrototypeService
}

func newPrototypeTestEnv(t *testing.T) *prototypeTestEnv {
	t.Helper()

	log := logger.New(logger.Config{Level: "error", Format: "json"})
	store := memory.NewStore()
	recorder := memory.NewAuditLog(100)
	resourceSvc := services.NewResourceService(store, providers.NewCatalogs(log), recorder, log)
	prototypeSvc := services.NewPrototypeService(memory.NewRegistry(), store, recorder, log)

	handler := NewPrototypeHandler(prototypeSvc, log, validator.New())
	logsHandler := NewLogsHandler(recorder, log)

	r := chi.NewRouter()
	r.Route("/api/v1/prototypes", func(r chi.Router) {
		r.Get("/", handler.List)
		r.Post("/", handler.Create)
		r.Post("/search", handler.Search)
		r.Get("/statistics", handler.Statistics)
		r.Get("/categories", handler.Categories)
		r.Get("/{id}", handler.Get)
		r.Post("/{id}/clone", handler.Clone)
		r.Delete("/{id}", handler.Delete)
	})
	r.Get("/api/v1/logs", logsHandler.List)

	return &prototypeTestEnv{router: r, resources: resourceSvc, prototypes: prototypeSvc}
}

func (e *prototypeTestEnv) provision(t *testing.T, kind resource.Kind, name string) *resource.Resource {
	t.Helper()

	res, err := e.resources.Provision(context.Background(), resource.ProvisionRequest{
		Provider: resource.ProviderAWS,
		Kind:     kind,
		Name:     name,
		Region:   "us-east-1",
	})
	if err != nil {
		t.Fatalf("Provision(%s) error = %v", name, err)
	}
	return res
}

func (e *prototypeTestEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func TestPrototypeHandler_Create(t *testing.T) {
	env := newPrototypeTestEnv(t)
	res := env.provision(t, resource.KindVM, "web")

	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{
			name:           "valid",
			body:           `{"resourceId":"` + res.ID + `","name":"web-template","category":"vm"}`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing resource",
			body:           `{"resourceId":"i-missing1","name":"x"}`,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "missing name",
			body:           `{"resourceId":"` + res.ID + `"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown category",
			body:           `{"resourceId":"` + res.ID + `","name":"x","category":"cluster"}`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := env.do(t, http.MethodPost, "/api/v1/prototypes", tt.body)
			if rr.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d (body: %s)", rr.Code, tt.expectedStatus, rr.Body.String())
			}
		})
	}
}

func TestPrototypeHandler_CreateConflictOnBadStatus(t *testing.T) {
	env := newPrototypeTestEnv(t)
	res := env.provision(t, resource.KindVM, "dying")

	if _, err := env.resources.Update(context.Background(), res.ID, map[string]interface{}{"status": "error"}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	rr := env.do(t, http.MethodPost, "/api/v1/prototypes", `{"resourceId":"`+res.ID+`","name":"x"}`)
	if rr.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409 (body: %s)", rr.Code, rr.Body.String())
	}
}

func TestPrototypeHandler_CloneFlow(t *testing.T) {
	env := newPrototypeTestEnv(t)
	res := env.provision(t, resource.KindDatabase, "orders")

	rr := env.do(t, http.MethodPost, "/api/v1/prototypes",
		`{"resourceId":"`+res.ID+`","name":"orders-template","category":"database"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create status = %d (body: %s)", rr.Code, rr.Body.String())
	}

	var created struct {
		Data struct {
			PrototypeID string `json:"prototypeId"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	protoID := created.Data.PrototypeID

	// clone with a new name
	rr = env.do(t, http.MethodPost, "/api/v1/prototypes/"+protoID+"/clone", `{"name":"orders-copy","tags":{"env":"dev"}}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("clone status = %d (body: %s)", rr.Code, rr.Body.String())
	}

	var cloned struct {
		Data struct {
			ID         string            `json:"id"`
			Name       string            `json:"name"`
			ClonedFrom string            `json:"clonedFrom"`
			Tags       map[string]string `json:"tags"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&cloned); err != nil {
		t.Fatalf("decode clone response: %v", err)
	}
	if cloned.Data.Name != "orders-copy" {
		t.Errorf("clone name = %s, want orders-copy", cloned.Data.Name)
	}
	if cloned.Data.ClonedFrom != protoID {
		t.Errorf("clone lineage = %s, want %s", cloned.Data.ClonedFrom, protoID)
	}
	if cloned.Data.Tags["env"] != "dev" {
		t.Errorf("clone tags = %v, want env=dev", cloned.Data.Tags)
	}

	// clone without a body keeps the prototype's name
	rr = env.do(t, http.MethodPost, "/api/v1/prototypes/"+protoID+"/clone", "")
	if rr.Code != http.StatusCreated {
		t.Fatalf("bodyless clone status = %d (body: %s)", rr.Code, rr.Body.String())
	}

	// statistics reflect both clones
	rr = env.do(t, http.MethodGet, "/api/v1/prototypes/statistics", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("statistics status = %d", rr.Code)
	}
	var stats struct {
		Data struct {
			TotalPrototypes    int `json:"totalPrototypes"`
			TotalClonesCreated int `json:"totalClonesCreated"`
			MostUsedPrototype  *struct {
				PrototypeID string `json:"prototypeId"`
			} `json:"mostUsedPrototype"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&stats); err != nil {
		t.Fatalf("decode statistics: %v", err)
	}
	if stats.Data.TotalPrototypes != 1 || stats.Data.TotalClonesCreated != 2 {
		t.Errorf("statistics = %+v, want 1 prototype and 2 clones", stats.Data)
	}
	if stats.Data.MostUsedPrototype == nil || stats.Data.MostUsedPrototype.PrototypeID != protoID {
		t.Errorf("most used = %+v, want %s", stats.Data.MostUsedPrototype, protoID)
	}

	// clone of a missing prototype
	rr = env.do(t, http.MethodPost, "/api/v1/prototypes/proto-missing1/clone", "")
	if rr.Code != http.StatusNotFound {
		t.Errorf("missing clone status = %d, want 404", rr.Code)
	}
}

func TestPrototypeHandler_ListSearchDelete(t *testing.T) {
	env := newPrototypeTestEnv(t)

	web := env.provision(t, resource.KindVM, "web")
	db := env.provision(t, resource.KindDatabase, "orders")

	rr := env.do(t, http.MethodPost, "/api/v1/prototypes",
		`{"resourceId":"`+web.ID+`","name":"web-template","description":"nginx front","category":"vm","tags":{"env":"prod"}}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create status = %d", rr.Code)
	}
	rr = env.do(t, http.MethodPost, "/api/v1/prototypes",
		`{"resourceId":"`+db.ID+`","name":"orders-template","category":"database"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create status = %d", rr.Code)
	}

	listCount := func(t *testing.T, path, body, method string) int {
		t.Helper()
		rr := env.do(t, method, path, body)
		if rr.Code != http.StatusOK {
			t.Fatalf("status = %d for %s (body: %s)", rr.Code, path, rr.Body.String())
		}
		var response struct {
			Data []json.RawMessage `json:"data"`
		}
		if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
			t.Fatalf("decode: %v", err)
		}
		return len(response.Data)
	}

	if got := listCount(t, "/api/v1/prototypes", "", http.MethodGet); got != 2 {
		t.Errorf("list all = %d, want 2", got)
	}
	if got := listCount(t, "/api/v1/prototypes?category=vm", "", http.MethodGet); got != 1 {
		t.Errorf("list vm = %d, want 1", got)
	}
	if got := listCount(t, "/api/v1/prototypes/search", `{"query":"WEB"}`, http.MethodPost); got != 1 {
		t.Errorf("search WEB = %d, want 1", got)
	}
	if got := listCount(t, "/api/v1/prototypes/search", `{"tags":{"env":"prod"}}`, http.MethodPost); got != 1 {
		t.Errorf("search by tag = %d, want 1", got)
	}
	if got := listCount(t, "/api/v1/prototypes/search", `{}`, http.MethodPost); got != 2 {
		t.Errorf("empty search = %d, want 2", got)
	}

	rr = env.do(t, http.MethodGet, "/api/v1/prototypes?category=cluster", "")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("unknown category status = %d, want 400", rr.Code)
	}

	// categories in first-use order
	rr = env.do(t, http.MethodGet, "/api/v1/prototypes/categories", "")
	var categories struct {
		Data []string `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&categories); err != nil {
		t.Fatalf("decode categories: %v", err)
	}
	if len(categories.Data) != 2 || categories.Data[0] != "vm" || categories.Data[1] != "database" {
		t.Errorf("categories = %v, want [vm database]", categories.Data)
	}

	// delete the vm prototype
	rr = env.do(t, http.MethodGet, "/api/v1/prototypes?category=vm", "")
	var vmList struct {
		Data []struct {
			PrototypeID string `json:"prototypeId"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&vmList); err != nil {
		t.Fatalf("decode vm list: %v", err)
	}
	protoID := vmList.Data[0].PrototypeID

	rr = env.do(t, http.MethodDelete, "/api/v1/prototypes/"+protoID, "")
	if rr.Code != http.StatusOK {
		t.Errorf("delete status = %d, want 200", rr.Code)
	}
	rr = env.do(t, http.MethodDelete, "/api/v1/prototypes/"+protoID, "")
	if rr.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", rr.Code)
	}
}

func TestLogsHandler_List(t *testing.T) {
	env := newPrototypeTestEnv(t)

	env.provision(t, resource.KindVM, "web")
	env.provision(t, resource.KindDatabase, "orders")

	rr := env.do(t, http.MethodGet, "/api/v1/logs?limit=1", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var response struct {
		Data []struct {
			Action  string `json:"action"`
			Message string `json:"message"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(response.Data) != 1 {
		t.Fatalf("returned %d events, want 1", len(response.Data))
	}
	if response.Data[0].Action != "resource.provision" {
		t.Errorf("action = %s, want resource.provision", response.Data[0].Action)
	}
}
