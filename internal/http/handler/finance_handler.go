package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/harborline/caseflow-api/internal/domain"
	"github.com/harborline/caseflow-api/internal/service"
	"go.uber.org/zap"
)

// FinanceHandler serves the per-case finance ledger. Every mutation
// responds with the full recomputed ledger so clients never derive totals
// themselves.
type FinanceHandler struct {
	financeService *service.FinanceService
	logger         *zap.Logger
}

func NewFinanceHandler(financeService *service.FinanceService, logger *zap.Logger) *FinanceHandler {
	return &FinanceHandler{
		financeService: financeService,
		logger:         logger,
	}
}

// GetLedger godoc
// @Summary Get case finance ledger
// @Description Get all finance rows for a case with the derived summary (totals, profit, margin)
// @Tags Finance
// @Produce json
// @Param id path string true "Case ID" format(uuid)
// @Success 200 {object} domain.FinanceLedgerDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /cases/{id}/finance [get]
func (h *FinanceHandler) GetLedger(w http.ResponseWriter, r *http.Request) {
	caseID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid case ID format",
		})
		return
	}

	ledger, err := h.financeService.GetLedger(r.Context(), caseID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Case not found",
			})
			return
		}
		h.logger.Error("failed to get finance ledger", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to get finance ledger",
		})
		return
	}

	respondJSON(w, http.StatusOK, ledger)
}

// AddRow godoc
// @Summary Add finance row
// @Description Add a cost/revenue row to a case. Referencing a catalog service prefills missing prices from its defaults. Returns the recomputed ledger.
// @Tags Finance
// @Accept json
// @Produce json
// @Param id path string true "Case ID" format(uuid)
// @Param request body domain.CreateFinanceRowRequest true "Row data"
// @Success 201 {object} domain.FinanceLedgerDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /cases/{id}/finance [post]
func (h *FinanceHandler) AddRow(w http.ResponseWriter, r *http.Request) {
	caseID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid case ID format",
		})
		return
	}

	var req domain.CreateFinanceRowRequest
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

	ledger, err := h.financeService.AddRow(r.Context(), caseID, &req)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: err.Error(),
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
		h.logger.Error("failed to add finance row", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to add finance row",
		})
		return
	}

	respondJSON(w, http.StatusCreated, ledger)
}

// UpdateRow godoc
// @Summary Update finance row
// @Description Partially update a finance row. Returns the recomputed ledger.
// @Tags Finance
// @Accept json
// @Produce json
// @Param id path string true "Case ID" format(uuid)
// @Param rowId path string true "Finance row ID" format(uuid)
// @Param request body domain.UpdateFinanceRowRequest true "Fields to update"
// @Success 200 {object} domain.FinanceLedgerDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /cases/{id}/finance/{rowId} [patch]
func (h *FinanceHandler) UpdateRow(w http.ResponseWriter, r *http.Request) {
	caseID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid case ID format",
		})
		return
	}
	rowID, err := uuid.Parse(chi.URLParam(r, "rowId"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid finance row ID format",
		})
		return
	}

	var req domain.UpdateFinanceRowRequest
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

	ledger, err := h.financeService.UpdateRow(r.Context(), caseID, rowID, &req)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Finance row not found",
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
		h.logger.Error("failed to update finance row", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to update finance row",
		})
		return
	}

	respondJSON(w, http.StatusOK, ledger)
}

// DeleteRow godoc
// @Summary Delete finance row
// @Description Remove a finance row. Returns the recomputed ledger.
// @Tags Finance
// @Produce json
// @Param id path string true "Case ID" format(uuid)
// @Param rowId path string true "Finance row ID" format(uuid)
// @Success 200 {object} domain.FinanceLedgerDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /cases/{id}/finance/{rowId} [delete]
func (h *FinanceHandler) DeleteRow(w http.ResponseWriter, r *http.Request) {
	caseID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid case ID format",
		})
		return
	}
	rowID, err := uuid.Parse(chi.URLParam(r, "rowId"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid finance row ID format",
		})
		return
	}

	ledger, err := h.financeService.DeleteRow(r.Context(), caseID, rowID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Finance row not found",
			})
			return
		}
		h.logger.Error("failed to delete finance row", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to delete finance row",
		})
		return
	}

	respondJSON(w, http.StatusOK, ledger)
}
