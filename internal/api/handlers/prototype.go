package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/protostack-io/protostack/internal/api/dto"
	"github.com/protostack-io/protostack/internal/domain/prototype"
	"github.com/protostack-io/protostack/internal/pkg/errors"
	"github.com/protostack-io/protostack/internal/pkg/logger"
	"github.com/protostack-io/protostack/internal/pkg/utils"
	"github.com/protostack-io/protostack/internal/pkg/validator"
)

// PrototypeHandler handles prototype registry endpoints
type PrototypeHandler struct {
	service   prototype.Service
	logger    *logger.Logger
	validator *validator.Validator
}

// NewPrototypeHandler creates a new prototype handler
func NewPrototypeHandler(service prototype.Service, log *logger.Logger, val *validator.Validator) *PrototypeHandler {
	return &PrototypeHandler{service: service, logger: log, validator: val}
}

// Create registers an existing resource as a prototype
// @Summary Register prototype
// @Description Register a stored resource as a reusable prototype
// @Tags Prototypes
// @Accept json
// @Produce json
// @Param request body dto.CreatePrototypeRequest true "Prototype details"
// @Success 201 {object} dto.PrototypeDTO "Prototype registered"
// @Failure 400 {object} utils.ErrorResponse "Invalid request or validation error"
// @Failure 404 {object} utils.ErrorResponse "Resource not found"
// @Failure 409 {object} utils.ErrorResponse "Resource not in a cloneable status"
// @Router /prototypes [post]
func (h *PrototypeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePrototypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if errs := h.validator.Validate(req); len(errs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", errs))
		return
	}

	entry, err := h.service.CreateFromResource(r.Context(), req.ResourceID, req.Name, req.Description, prototype.Category(req.Category), req.Tags)
	if err != nil {
		utils.WriteAppError(w, err, "Failed to register prototype")
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, dto.NewPrototypeDTO(entry))
}

// List returns registered prototypes
// @Summary List prototypes
// @Description Get registered prototypes in registration order, optionally filtered by category
// @Tags Prototypes
// @Produce json
// @Param category query string false "Filter by category"
// @Success 200 {object} utils.SuccessResponse{data=[]dto.PrototypeDTO} "List of prototypes"
// @Failure 400 {object} utils.ErrorResponse "Unknown category"
// @Router /prototypes [get]
func (h *PrototypeHandler) List(w http.ResponseWriter, r *http.Request) {
	category := prototype.Category(r.URL.Query().Get("category"))

	entries, err := h.service.List(r.Context(), category)
	if err != nil {
		utils.WriteAppError(w, err, "Failed to list prototypes")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.NewPrototypeDTOs(entries))
}

// Search finds prototypes by name, description, category, and tags
// @Summary Search prototypes
// @Description Search prototypes by a case-insensitive name/description substring, category, and tags
// @Tags Prototypes
// @Accept json
// @Produce json
// @Param request body dto.SearchPrototypesRequest true "Search query"
// @Success 200 {object} utils.SuccessResponse{data=[]dto.PrototypeDTO} "Matching prototypes"
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Router /prototypes/search [post]
func (h *PrototypeHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req dto.SearchPrototypesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if errs := h.validator.Validate(req); len(errs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", errs))
		return
	}

	entries, err := h.service.Search(r.Context(), prototype.SearchQuery{
		Query:    req.Query,
		Category: prototype.Category(req.Category),
		Tags:     req.Tags,
	})
	if err != nil {
		utils.WriteAppError(w, err, "Failed to search prototypes")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.NewPrototypeDTOs(entries))
}

// Statistics summarizes registry usage
// @Summary Registry statistics
// @Description Get prototype counts, clone totals, and the most used prototype
// @Tags Prototypes
// @Produce json
// @Success 200 {object} dto.StatisticsDTO "Registry statistics"
// @Router /prototypes/statistics [get]
func (h *PrototypeHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Statistics(r.Context())
	if err != nil {
		utils.WriteAppError(w, err, "Failed to compute statistics")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.NewStatisticsDTO(stats))
}

// Categories lists categories holding at least one prototype
// @Summary List categories
// @Description Get the categories that currently hold prototypes, in first-use order
// @Tags Prototypes
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]string} "Categories"
// @Router /prototypes/categories [get]
func (h *PrototypeHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.Categories(r.Context())
	if err != nil {
		utils.WriteAppError(w, err, "Failed to list categories")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, categories)
}

// Get returns a single prototype by ID
// @Summary Get prototype by ID
// @Description Get a registered prototype with its metadata
// @Tags Prototypes
// @Produce json
// @Param id path string true "Prototype ID"
// @Success 200 {object} dto.PrototypeDTO "Prototype details"
// @Failure 404 {object} utils.ErrorResponse "Prototype not found"
// @Router /prototypes/{id} [get]
func (h *PrototypeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	entry, err := h.service.Get(r.Context(), id)
	if err != nil {
		utils.WriteAppError(w, err, "Failed to get prototype")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.NewPrototypeDTO(entry))
}

// Clone clones a prototype into a new stored resource
// @Summary Clone prototype
// @Description Deep-copy a prototype into a new independent resource
// @Tags Prototypes
// @Accept json
// @Produce json
// @Param id path string true "Prototype ID"
// @Param request body dto.ClonePrototypeRequest false "Clone options"
// @Success 201 {object} dto.ResourceDTO "Cloned resource"
// @Failure 404 {object} utils.ErrorResponse "Prototype not found"
// @Failure 409 {object} utils.ErrorResponse "Prototype not in a cloneable status"
// @Router /prototypes/{id}/clone [post]
func (h *PrototypeHandler) Clone(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	// the body is optional; an empty clone request keeps the
	// prototype's name
	var req dto.ClonePrototypeRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.WriteError(w, errors.BadRequest("Invalid request body"))
			return
		}
	}

	clone, err := h.service.Clone(r.Context(), id, req.Name, req.Tags)
	if err != nil {
		utils.WriteAppError(w, err, "Failed to clone prototype")
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, dto.NewResourceDTO(clone))
}

// Delete removes a prototype from the registry
// @Summary Delete prototype
// @Description Remove a prototype; resources cloned from it are unaffected
// @Tags Prototypes
// @Produce json
// @Param id path string true "Prototype ID"
// @Success 200 {object} utils.SuccessResponse "Prototype deleted"
// @Failure 404 {object} utils.ErrorResponse "Prototype not found"
// @Router /prototypes/{id} [delete]
func (h *PrototypeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		utils.WriteAppError(w, err, "Failed to delete prototype")
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Prototype deleted", nil)
}
