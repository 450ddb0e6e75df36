package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/harborline/caseflow-api/internal/auth"
	"github.com/harborline/caseflow-api/internal/domain"
	"github.com/harborline/caseflow-api/internal/service"
	"github.com/harborline/caseflow-api/internal/workspace"
	"go.uber.org/zap"
)

// WorkspaceHandler exposes the per-user panel workspace. Panels are opened
// through the injected controller, never by mutating shared state directly.
type WorkspaceHandler struct {
	manager         *workspace.Manager
	caseService     *service.CaseService
	customerService *service.CustomerService
	logger          *zap.Logger
}

func NewWorkspaceHandler(
	manager *workspace.Manager,
	caseService *service.CaseService,
	customerService *service.CustomerService,
	logger *zap.Logger,
) *WorkspaceHandler {
	return &WorkspaceHandler{
		manager:         manager,
		caseService:     caseService,
		customerService: customerService,
		logger:          logger,
	}
}

// workspaceFor resolves the calling user's workspace from the auth context
func (h *WorkspaceHandler) workspaceFor(r *http.Request) *workspace.Workspace {
	user, ok := auth.FromContext(r.Context())
	if !ok {
		user = &auth.SystemUser
	}
	return h.manager.ForUser(user.UserID.String())
}

// List godoc
// @Summary List open panels
// @Description Get the calling user's open panel descriptors in order
// @Tags Workspace
// @Produce json
// @Success 200 {array} workspace.Panel
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /workspace [get]
func (h *WorkspaceHandler) List(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.workspaceFor(r).Panels())
}

// OpenCasePanel godoc
// @Summary Open case panel
// @Description Open a panel for a case. At most one case panel exists per case: reopening moves the existing panel to the end of the list and un-minimizes it.
// @Tags Workspace
// @Accept json
// @Produce json
// @Param request body domain.OpenCasePanelRequest true "Case to open"
// @Success 200 {object} workspace.Panel
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /workspace/panels/case [post]
func (h *WorkspaceHandler) OpenCasePanel(w http.ResponseWriter, r *http.Request) {
	var req domain.OpenCasePanelRequest
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

	c, err := h.caseService.GetByID(r.Context(), req.CaseID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Case not found",
			})
			return
		}
		h.logger.Error("failed to load case for panel", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to open case panel",
		})
		return
	}

	panel := h.workspaceFor(r).OpenCasePanel(*c)
	respondJSON(w, http.StatusOK, panel)
}

// OpenCustomerPanel godoc
// @Summary Open customer panel
// @Description Open a customer panel, for viewing/editing an existing customer or for creating a new one. Customer panels never deduplicate; each request appends a new panel.
// @Tags Workspace
// @Accept json
// @Produce json
// @Param request body domain.OpenCustomerPanelRequest true "Customer to open, or empty for a creation panel"
// @Success 200 {object} workspace.Panel
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /workspace/panels/customer [post]
func (h *WorkspaceHandler) OpenCustomerPanel(w http.ResponseWriter, r *http.Request) {
	var req domain.OpenCustomerPanelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid request body",
		})
		return
	}

	var customer *domain.CustomerDTO
	if req.CustomerID != nil {
		var err error
		customer, err = h.customerService.GetByID(r.Context(), *req.CustomerID)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
					Error:   "Not Found",
					Message: "Customer not found",
				})
				return
			}
			h.logger.Error("failed to load customer for panel", zap.Error(err))
			respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
				Error:   "Internal Server Error",
				Message: "Failed to open customer panel",
			})
			return
		}
	}

	panel := h.workspaceFor(r).OpenCustomerPanel(customer, req.IsEdit)
	respondJSON(w, http.StatusOK, panel)
}

// OpenDocumentPanel godoc
// @Summary Open document creation panel
// @Description Open a document creation panel bound to a case. Document panels never deduplicate.
// @Tags Workspace
// @Accept json
// @Produce json
// @Param request body domain.OpenDocumentPanelRequest true "Case to create a document for"
// @Success 200 {object} workspace.Panel
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /workspace/panels/document [post]
func (h *WorkspaceHandler) OpenDocumentPanel(w http.ResponseWriter, r *http.Request) {
	var req domain.OpenDocumentPanelRequest
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

	c, err := h.caseService.GetByID(r.Context(), req.CaseID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Case not found",
			})
			return
		}
		h.logger.Error("failed to load case for document panel", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to open document panel",
		})
		return
	}

	panel := h.workspaceFor(r).OpenDocumentPanel(*c)
	respondJSON(w, http.StatusOK, panel)
}

// ClosePanel godoc
// @Summary Close panel
// @Description Remove exactly the panel with the given ID
// @Tags Workspace
// @Param panelId path string true "Panel ID" format(uuid)
// @Success 204 "No Content"
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /workspace/panels/{panelId} [delete]
func (h *WorkspaceHandler) ClosePanel(w http.ResponseWriter, r *http.Request) {
	panelID, err := uuid.Parse(chi.URLParam(r, "panelId"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid panel ID format",
		})
		return
	}

	if !h.workspaceFor(r).Close(panelID) {
		respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
			Error:   "Not Found",
			Message: "Panel not found",
		})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SetMinimized godoc
// @Summary Minimize or restore panel
// @Tags Workspace
// @Accept json
// @Param panelId path string true "Panel ID" format(uuid)
// @Param request body domain.SetPanelMinimizedRequest true "Minimized flag"
// @Success 204 "No Content"
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /workspace/panels/{panelId}/minimized [put]
func (h *WorkspaceHandler) SetMinimized(w http.ResponseWriter, r *http.Request) {
	panelID, err := uuid.Parse(chi.URLParam(r, "panelId"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid panel ID format",
		})
		return
	}

	var req domain.SetPanelMinimizedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid request body",
		})
		return
	}

	if !h.workspaceFor(r).SetMinimized(panelID, req.Minimized) {
		respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
			Error:   "Not Found",
			Message: "Panel not found",
		})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
