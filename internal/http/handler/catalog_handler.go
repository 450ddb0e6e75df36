package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/harborline/caseflow-api/internal/domain"
	"github.com/harborline/caseflow-api/internal/service"
	"go.uber.org/zap"
)

// CatalogHandler serves the billable service catalog
type CatalogHandler struct {
	catalogService *service.CatalogService
	logger         *zap.Logger
}

func NewCatalogHandler(catalogService *service.CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// List godoc
// @Summary List catalog services
// @Tags Services
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Param search query string false "Search by name"
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.ServiceDTO}
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /services [get]
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
	if pageSize < 1 {
		pageSize = 20
	}

	result, err := h.catalogService.List(r.Context(), page, pageSize, r.URL.Query().Get("search"))
	if err != nil {
		h.logger.Error("failed to list services", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to list services",
		})
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Options godoc
// @Summary Service search-select options
// @Description Get catalog service candidates for the search-select widget on the finance form
// @Tags Services
// @Produce json
// @Param search query string false "Filter candidates"
// @Success 200 {array} picker.Candidate
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /services/options [get]
func (h *CatalogHandler) Options(w http.ResponseWriter, r *http.Request) {
	options, err := h.catalogService.Options(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		h.logger.Error("failed to load service options", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to load service options",
		})
		return
	}

	respondJSON(w, http.StatusOK, options)
}

// GetByID godoc
// @Summary Get catalog service by ID
// @Tags Services
// @Produce json
// @Param id path string true "Service ID" format(uuid)
// @Success 200 {object} domain.ServiceDTO
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /services/{id} [get]
func (h *CatalogHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid service ID format",
		})
		return
	}

	svc, err := h.catalogService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Service not found",
			})
			return
		}
		h.logger.Error("failed to get service", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to get service",
		})
		return
	}

	respondJSON(w, http.StatusOK, svc)
}

// Create godoc
// @Summary Create catalog service
// @Tags Services
// @Accept json
// @Produce json
// @Param request body domain.CreateServiceRequest true "Service data"
// @Success 201 {object} domain.ServiceDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /services [post]
func (h *CatalogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid request body",
		})
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	svc, err := h.catalogService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create service", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to create service",
		})
		return
	}

	respondJSON(w, http.StatusCreated, svc)
}

// Update godoc
// @Summary Update catalog service
// @Tags Services
// @Accept json
// @Produce json
// @Param id path string true "Service ID" format(uuid)
// @Param request body domain.CreateServiceRequest true "Service data"
// @Success 200 {object} domain.ServiceDTO
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /services/{id} [put]
func (h *CatalogHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid service ID format",
		})
		return
	}

	var req domain.CreateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid request body",
		})
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	svc, err := h.catalogService.Update(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Service not found",
			})
			return
		}
		h.logger.Error("failed to update service", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to update service",
		})
		return
	}

	respondJSON(w, http.StatusOK, svc)
}

// Delete godoc
// @Summary Delete catalog service
// @Tags Services
// @Param id path string true "Service ID" format(uuid)
// @Success 204 "No Content"
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /services/{id} [delete]
func (h *CatalogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid service ID format",
		})
		return
	}

	if err := h.catalogService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Service not found",
			})
			return
		}
		h.logger.Error("failed to delete service", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to delete service",
		})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
