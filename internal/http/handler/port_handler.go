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

type PortHandler struct {
	portService *service.PortService
	logger      *zap.Logger
}

func NewPortHandler(portService *service.PortService, logger *zap.Logger) *PortHandler {
	return &PortHandler{
		portService: portService,
		logger:      logger,
	}
}

// List godoc
// @Summary List ports
// @Tags Ports
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Param search query string false "Search by name, code or country"
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.PortDTO}
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /ports [get]
func (h *PortHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
	if pageSize < 1 {
		pageSize = 20
	}

	result, err := h.portService.List(r.Context(), page, pageSize, r.URL.Query().Get("search"))
	if err != nil {
		h.logger.Error("failed to list ports", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to list ports",
		})
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Options godoc
// @Summary Port search-select options
// @Tags Ports
// @Produce json
// @Param search query string false "Filter candidates"
// @Success 200 {array} picker.Candidate
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /ports/options [get]
func (h *PortHandler) Options(w http.ResponseWriter, r *http.Request) {
	options, err := h.portService.Options(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		h.logger.Error("failed to load port options", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to load port options",
		})
		return
	}

	respondJSON(w, http.StatusOK, options)
}

// GetByID godoc
// @Summary Get port by ID
// @Tags Ports
// @Produce json
// @Param id path string true "Port ID" format(uuid)
// @Success 200 {object} domain.PortDTO
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /ports/{id} [get]
func (h *PortHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid port ID format",
		})
		return
	}

	port, err := h.portService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Port not found",
			})
			return
		}
		h.logger.Error("failed to get port", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to get port",
		})
		return
	}

	respondJSON(w, http.StatusOK, port)
}

// Create godoc
// @Summary Create port
// @Tags Ports
// @Accept json
// @Produce json
// @Param request body domain.CreatePortRequest true "Port data"
// @Success 201 {object} domain.PortDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /ports [post]
func (h *PortHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreatePortRequest
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

	port, err := h.portService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create port", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to create port",
		})
		return
	}

	respondJSON(w, http.StatusCreated, port)
}

// CreateAdhoc godoc
// @Summary Create ad-hoc port from free text
// @Description Create a port from a name typed into the route form. The code is derived from the name (uppercase letters, max 5), the city mirrors the name and the country is set to Unknown. Typing the same name again returns the existing port.
// @Tags Ports
// @Accept json
// @Produce json
// @Param request body domain.AdhocPortRequest true "Port name"
// @Success 201 {object} domain.PortDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /ports/adhoc [post]
func (h *PortHandler) CreateAdhoc(w http.ResponseWriter, r *http.Request) {
	var req domain.AdhocPortRequest
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

	port, err := h.portService.CreateAdhoc(r.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
				Error:   "Bad Request",
				Message: err.Error(),
			})
			return
		}
		h.logger.Error("failed to create ad-hoc port", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to create port",
		})
		return
	}

	respondJSON(w, http.StatusCreated, port)
}

// Update godoc
// @Summary Update port
// @Tags Ports
// @Accept json
// @Produce json
// @Param id path string true "Port ID" format(uuid)
// @Param request body domain.CreatePortRequest true "Port data"
// @Success 200 {object} domain.PortDTO
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /ports/{id} [put]
func (h *PortHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid port ID format",
		})
		return
	}

	var req domain.CreatePortRequest
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

	port, err := h.portService.Update(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Port not found",
			})
			return
		}
		h.logger.Error("failed to update port", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to update port",
		})
		return
	}

	respondJSON(w, http.StatusOK, port)
}

// Delete godoc
// @Summary Delete port
// @Tags Ports
// @Param id path string true "Port ID" format(uuid)
// @Success 204 "No Content"
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /ports/{id} [delete]
func (h *PortHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid port ID format",
		})
		return
	}

	if err := h.portService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Port not found",
			})
			return
		}
		h.logger.Error("failed to delete port", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to delete port",
		})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
