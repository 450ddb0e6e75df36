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

type DocumentHandler struct {
	documentService *service.DocumentService
	logger          *zap.Logger
}

func NewDocumentHandler(documentService *service.DocumentService, logger *zap.Logger) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		logger:          logger,
	}
}

// ListTemplates godoc
// @Summary List document templates
// @Tags Documents
// @Produce json
// @Success 200 {array} domain.DocumentTemplateDTO
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /templates [get]
func (h *DocumentHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.documentService.ListTemplates(r.Context())
	if err != nil {
		h.logger.Error("failed to list templates", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to list templates",
		})
		return
	}

	respondJSON(w, http.StatusOK, templates)
}

// ListByCase godoc
// @Summary List case documents
// @Tags Documents
// @Produce json
// @Param id path string true "Case ID" format(uuid)
// @Success 200 {array} domain.CaseDocumentDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /cases/{id}/documents [get]
func (h *DocumentHandler) ListByCase(w http.ResponseWriter, r *http.Request) {
	caseID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid case ID format",
		})
		return
	}

	docs, err := h.documentService.ListByCase(r.Context(), caseID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Case not found",
			})
			return
		}
		h.logger.Error("failed to list documents", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to list documents",
		})
		return
	}

	respondJSON(w, http.StatusOK, docs)
}

// Create godoc
// @Summary Generate case document
// @Description Render a document for a case from a template or from raw content. Placeholders like {{case_number}} and {{customer_name}} are substituted against the case before the document is stored.
// @Tags Documents
// @Accept json
// @Produce json
// @Param id path string true "Case ID" format(uuid)
// @Param request body domain.CreateDocumentRequest true "Document data"
// @Success 201 {object} domain.CaseDocumentDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /cases/{id}/documents [post]
func (h *DocumentHandler) Create(w http.ResponseWriter, r *http.Request) {
	caseID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid case ID format",
		})
		return
	}

	var req domain.CreateDocumentRequest
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

	doc, err := h.documentService.Create(r.Context(), caseID, &req)
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
		h.logger.Error("failed to create document", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to create document",
		})
		return
	}

	respondJSON(w, http.StatusCreated, doc)
}

// Download godoc
// @Summary Download document
// @Description Download the rendered document as a standalone .html attachment
// @Tags Documents
// @Produce html
// @Param id path string true "Document ID" format(uuid)
// @Success 200 {string} string "HTML content"
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /documents/{id}/download [get]
func (h *DocumentHandler) Download(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid document ID format",
		})
		return
	}

	filename, content, err := h.documentService.Download(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Document not found",
			})
			return
		}
		h.logger.Error("failed to download document", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to download document",
		})
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(content)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(content))
}

// Delete godoc
// @Summary Delete document
// @Tags Documents
// @Param id path string true "Document ID" format(uuid)
// @Success 204 "No Content"
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /documents/{id} [delete]
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid document ID format",
		})
		return
	}

	if err := h.documentService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Document not found",
			})
			return
		}
		h.logger.Error("failed to delete document", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to delete document",
		})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
