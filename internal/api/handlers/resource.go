package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/protostack-io/protostack/internal/api/dto"
	"github.com/protostack-io/protostack/internal/domain/resource"
	"github.com/protostack-io/protostack/internal/pkg/errors"
	"github.com/protostack-io/protostack/internal/pkg/logger"
	"github.com/protostack-io/protostack/internal/pkg/utils"
	"github.com/protostack-io/protostack/internal/pkg/validator"
)

// ResourceHandler handles resource endpoints
type ResourceHandler struct {
	service   resource.Service
	logger    *logger.Logger
	validator *validator.Validator
}

// NewResourceHandler creates a new resource handler
func NewResourceHandler(service resource.Service, log *logger.Logger, val *validator.Validator) *ResourceHandler {
	return &ResourceHandler{service: service, logger: log, validator: val}
}

// Provision creates a simulated resource
// @Summary Provision resource
// @Description Construct a simulated infrastructure resource through the provider catalog
// @Tags Resources
// @Accept json
// @Produce json
// @Param request body dto.ProvisionResourceRequest true "Resource details"
// @Success 201 {object} dto.ResourceDTO "Resource created"
// @Failure 400 {object} utils.ErrorResponse "Invalid request or validation error"
// @Failure 500 {object} utils.ErrorResponse "Internal server error"
// @Router /resources [post]
func (h *ResourceHandler) Provision(w http.ResponseWriter, r *http.Request) {
	var req dto.ProvisionResourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if errs := h.validator.Validate(req); len(errs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", errs))
		return
	}

	res, err := h.service.Provision(r.Context(), resource.ProvisionRequest{
		Provider: resource.Provider(req.Provider),
		Kind:     resource.Kind(req.Kind),
		Name:     req.Name,
		Region:   req.Region,
		Tier:     req.Tier,
		Spec:     req.Spec,
		Tags:     req.Tags,
	})
	if err != nil {
		utils.WriteAppError(w, err, "Failed to provision resource")
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, dto.NewResourceDTO(res))
}

// List returns resources with filters and pagination
// @Summary List resources
// @Description Get a paginated list of resources with optional filtering
// @Tags Resources
// @Produce json
// @Param provider query string false "Filter by provider (aws, gcp, onprem)"
// @Param kind query string false "Filter by kind (vm, database, loadbalancer, storage, network)"
// @Param region query string false "Filter by region"
// @Param status query string false "Filter by status"
// @Param page query int false "Page number (default: 1)"
// @Param page_size query int false "Page size (default: 20, max: 100)"
// @Success 200 {object} utils.PaginatedResponse{data=[]dto.ResourceDTO} "List of resources"
// @Failure 500 {object} utils.ErrorResponse "Internal server error"
// @Router /resources [get]
func (h *ResourceHandler) List(w http.ResponseWriter, r *http.Request) {
	params := utils.ParsePaginationParams(r)

	filter := resource.Filter{
		Provider: resource.Provider(r.URL.Query().Get("provider")),
		Kind:     resource.Kind(r.URL.Query().Get("kind")),
		Region:   r.URL.Query().Get("region"),
		Status:   resource.Status(r.URL.Query().Get("status")),
	}

	resources, total, err := h.service.List(r.Context(), filter, params.PageSize, params.Offset)
	if err != nil {
		utils.WriteAppError(w, err, "Failed to list resources")
		return
	}

	utils.WriteSuccess(w, http.StatusOK,
		utils.NewPaginatedResponse(dto.NewResourceDTOs(resources), params.Page, params.PageSize, total))
}

// Get returns a single resource by ID
// @Summary Get resource by ID
// @Description Get detailed information about a resource
// @Tags Resources
// @Produce json
// @Param id path string true "Resource ID"
// @Success 200 {object} dto.ResourceDTO "Resource details"
// @Failure 404 {object} utils.ErrorResponse "Resource not found"
// @Router /resources/{id} [get]
func (h *ResourceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	res, err := h.service.Get(r.Context(), id)
	if err != nil {
		utils.WriteAppError(w, err, "Failed to get resource")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.NewResourceDTO(res))
}

// Update modifies a resource's name, status, or tags
// @Summary Update resource
// @Description Update a resource's name, status, or tags
// @Tags Resources
// @Accept json
// @Produce json
// @Param id path string true "Resource ID"
// @Param request body dto.UpdateResourceRequest true "Update details"
// @Success 200 {object} dto.ResourceDTO "Updated resource"
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Failure 404 {object} utils.ErrorResponse "Resource not found"
// @Router /resources/{id} [put]
func (h *ResourceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.UpdateResourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.Tags != nil {
		tags := make(map[string]interface{}, len(req.Tags))
		for k, v := range req.Tags {
			tags[k] = v
		}
		updates["tags"] = tags
	}
	if len(updates) == 0 {
		utils.WriteError(w, errors.BadRequest("No updates provided"))
		return
	}

	res, err := h.service.Update(r.Context(), id, updates)
	if err != nil {
		utils.WriteAppError(w, err, "Failed to update resource")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.NewResourceDTO(res))
}

// Delete removes a resource
// @Summary Delete resource
// @Description Remove a resource from the store
// @Tags Resources
// @Produce json
// @Param id path string true "Resource ID"
// @Success 200 {object} utils.SuccessResponse "Resource deleted"
// @Failure 404 {object} utils.ErrorResponse "Resource not found"
// @Router /resources/{id} [delete]
func (h *ResourceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		utils.WriteAppError(w, err, "Failed to delete resource")
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Resource deleted", nil)
}
