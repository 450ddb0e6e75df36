package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/harborline/caseflow-api/internal/domain"
	"github.com/harborline/caseflow-api/internal/repository"
	"github.com/harborline/caseflow-api/internal/service"
	"go.uber.org/zap"
)

type CaseHandler struct {
	caseService *service.CaseService
	logger      *zap.Logger
}

func NewCaseHandler(caseService *service.CaseService, logger *zap.Logger) *CaseHandler {
	return &CaseHandler{
		caseService: caseService,
		logger:      logger,
	}
}

// List godoc
// @Summary List cases
// @Description Get paginated list of cases with optional filters
// @Tags Cases
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Param search query string false "Search by case number, customer name or cargo description"
// @Param status query string false "Filter by status" Enums(draft, active, completed, cancelled, on_hold, archived)
// @Param caseType query string false "Filter by type" Enums(quotation, booking)
// @Param sortBy query string false "Sort field" Enums(createdAt, updatedAt, caseNumber, status, pickupDate)
// @Param sortOrder query string false "Sort direction" Enums(asc, desc)
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.CaseDTO}
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /cases [get]
func (h *CaseHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
	if pageSize < 1 {
		pageSize = 20
	}

	filters := &repository.CaseFilters{
		Search: r.URL.Query().Get("search"),
	}
	if status := r.URL.Query().Get("status"); status != "" {
		s := domain.CaseStatus(status)
		if !s.IsValid() {
			respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
				Error:   "Bad Request",
				Message: "Unknown status filter",
			})
			return
		}
		filters.Status = &s
	}
	if caseType := r.URL.Query().Get("caseType"); caseType != "" {
		t := domain.CaseType(caseType)
		if !t.IsValid() {
			respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
				Error:   "Bad Request",
				Message: "Unknown case type filter",
			})
			return
		}
		filters.CaseType = &t
	}

	sort := repository.DefaultSortConfig()
	if field := r.URL.Query().Get("sortBy"); field != "" {
		sort.Field = field
	}
	if order := r.URL.Query().Get("sortOrder"); order != "" {
		sort.Order = repository.ParseSortOrder(order)
	}

	result, err := h.caseService.List(r.Context(), page, pageSize, filters, sort)
	if err != nil {
		h.logger.Error("failed to list cases", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to list cases",
		})
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetByID godoc
// @Summary Get case by ID
// @Description Get a case with customer and ports expanded
// @Tags Cases
// @Accept json
// @Produce json
// @Param id path string true "Case ID" format(uuid)
// @Success 200 {object} domain.CaseDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /cases/{id} [get]
func (h *CaseHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid case ID format",
		})
		return
	}

	c, err := h.caseService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Case not found",
			})
			return
		}
		h.logger.Error("failed to get case", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to get case",
		})
		return
	}

	respondJSON(w, http.StatusOK, c)
}

// Create godoc
// @Summary Create case
// @Description Create a new case in draft status with a generated case number
// @Tags Cases
// @Accept json
// @Produce json
// @Param request body domain.CreateCaseRequest true "Case data"
// @Success 201 {object} domain.CaseDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /cases [post]
func (h *CaseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateCaseRequest
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

	c, err := h.caseService.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
				Error:   "Bad Request",
				Message: err.Error(),
			})
			return
		}
		h.logger.Error("failed to create case", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to create case",
		})
		return
	}

	w.Header().Set("Location", "/api/v1/cases/"+c.ID.String())
	respondJSON(w, http.StatusCreated, c)
}

// Update godoc
// @Summary Update case
// @Description Partially update a case. Only fields present in the body change; the case number and status are immutable through this endpoint. Returns the full updated record.
// @Tags Cases
// @Accept json
// @Produce json
// @Param id path string true "Case ID" format(uuid)
// @Param request body domain.UpdateCaseRequest true "Fields to update"
// @Success 200 {object} domain.CaseDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /cases/{id} [patch]
func (h *CaseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid case ID format",
		})
		return
	}

	var req domain.UpdateCaseRequest
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

	c, err := h.caseService.Update(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Case not found",
			})
			return
		}
		if errors.Is(err, service.ErrInvalidInput) {
			respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
				Error:   "Bad Request",
				Message: err.Error(),
			})
			return
		}
		h.logger.Error("failed to update case", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to update case",
		})
		return
	}

	respondJSON(w, http.StatusOK, c)
}

// ChangeStatus godoc
// @Summary Change case status
// @Description Move a case to a new status. A history entry is recorded atomically with the change.
// @Tags Cases
// @Accept json
// @Produce json
// @Param id path string true "Case ID" format(uuid)
// @Param request body domain.UpdateCaseStatusRequest true "New status and optional reason"
// @Success 200 {object} domain.CaseDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /cases/{id}/status [put]
func (h *CaseHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid case ID format",
		})
		return
	}

	var req domain.UpdateCaseStatusRequest
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

	c, err := h.caseService.ChangeStatus(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Case not found",
			})
			return
		}
		if errors.Is(err, service.ErrInvalidStatus) {
			respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
				Error:   "Bad Request",
				Message: err.Error(),
			})
			return
		}
		h.logger.Error("failed to change case status", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to change case status",
		})
		return
	}

	respondJSON(w, http.StatusOK, c)
}

// History godoc
// @Summary Case status history
// @Description Get the append-only status history for a case, newest first
// @Tags Cases
// @Accept json
// @Produce json
// @Param id path string true "Case ID" format(uuid)
// @Success 200 {array} domain.CaseStatusHistoryDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /cases/{id}/history [get]
func (h *CaseHandler) History(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid case ID format",
		})
		return
	}

	history, err := h.caseService.GetHistory(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Case not found",
			})
			return
		}
		h.logger.Error("failed to get case history", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to get case history",
		})
		return
	}

	respondJSON(w, http.StatusOK, history)
}

// Delete godoc
// @Summary Delete case
// @Description Remove a case together with its finance rows, documents and status history
// @Tags Cases
// @Accept json
// @Produce json
// @Param id path string true "Case ID" format(uuid)
// @Success 204 "No Content"
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /cases/{id} [delete]
func (h *CaseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid case ID format",
		})
		return
	}

	if err := h.caseService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Case not found",
			})
			return
		}
		h.logger.Error("failed to delete case", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to delete case",
		})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
