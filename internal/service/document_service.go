package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harborline/caseflow-api/internal/bus"
	"github.com/harborline/caseflow-api/internal/domain"
	"github.com/harborline/caseflow-api/internal/mapper"
	"github.com/harborline/caseflow-api/internal/repository"
	"github.com/harborline/caseflow-api/internal/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DocumentService renders documents from templates and case data.
// Rendered documents are immutable; the only write operations after
// creation are download and delete.
type DocumentService struct {
	repo         *repository.CaseDocumentRepository
	templateRepo *repository.DocumentTemplateRepository
	caseRepo     *repository.CaseRepository
	store        storage.Storage
	bus          *bus.Bus
	logger       *zap.Logger
}

// NewDocumentService creates a new DocumentService. store may be nil, in
// which case rendered documents live only on the database row.
func NewDocumentService(
	repo *repository.CaseDocumentRepository,
	templateRepo *repository.DocumentTemplateRepository,
	caseRepo *repository.CaseRepository,
	store storage.Storage,
	eventBus *bus.Bus,
	logger *zap.Logger,
) *DocumentService {
	return &DocumentService{
		repo:         repo,
		templateRepo: templateRepo,
		caseRepo:     caseRepo,
		store:        store,
		bus:          eventBus,
		logger:       logger,
	}
}

// ListTemplates returns all available document templates
func (s *DocumentService) ListTemplates(ctx context.Context) ([]domain.DocumentTemplateDTO, error) {
	templates, err := s.templateRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	dtos := make([]domain.DocumentTemplateDTO, len(templates))
	for i := range templates {
		dtos[i] = mapper.ToDocumentTemplateDTO(&templates[i])
	}
	return dtos, nil
}

// ListByCase returns all documents generated for a case, newest first
func (s *DocumentService) ListByCase(ctx context.Context, caseID uuid.UUID) ([]domain.CaseDocumentDTO, error) {
	if _, err := s.caseRepo.GetByID(ctx, caseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get case: %w", err)
	}

	docs, err := s.repo.ListByCase(ctx, caseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	dtos := make([]domain.CaseDocumentDTO, len(docs))
	for i := range docs {
		dtos[i] = mapper.ToCaseDocumentDTO(&docs[i])
	}
	return dtos, nil
}

// Create renders a document for a case. The content comes from the
// referenced template, or from the raw content in the request when no
// template is given. Placeholders are substituted against the case before
// the row is stored.
func (s *DocumentService) Create(ctx context.Context, caseID uuid.UUID, req *domain.CreateDocumentRequest) (*domain.CaseDocumentDTO, error) {
	c, err := s.caseRepo.GetByID(ctx, caseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get case: %w", err)
	}

	content := req.Content
	documentType := req.DocumentType

	if req.TemplateID != nil {
		tmpl, err := s.templateRepo.GetByID(ctx, *req.TemplateID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: template %s", ErrNotFound, req.TemplateID)
			}
			return nil, fmt.Errorf("failed to get template: %w", err)
		}
		content = tmpl.Content
		if documentType == "" {
			documentType = tmpl.DocumentType
		}
	}
	if content == "" {
		return nil, fmt.Errorf("%w: neither template nor content provided", ErrInvalidInput)
	}
	if documentType == "" {
		documentType = "general"
	}

	rendered := RenderPlaceholders(content, c)

	doc := &domain.CaseDocument{
		CaseID:       caseID,
		Name:         req.Name,
		DocumentType: documentType,
		HTMLContent:  rendered,
	}

	if s.store != nil {
		path, _, err := s.store.Upload(ctx, doc.Name+".html", "text/html", strings.NewReader(rendered))
		if err != nil {
			// The database row is still the source of truth
			s.logger.Warn("failed to write rendered document to storage",
				zap.String("caseID", caseID.String()),
				zap.Error(err))
		} else {
			doc.StoragePath = path
		}
	}

	if err := s.repo.Create(ctx, doc); err != nil {
		s.logger.Error("failed to create document",
			zap.String("caseID", caseID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to create document: %w", err)
	}

	s.logger.Info("document created",
		zap.String("documentID", doc.ID.String()),
		zap.String("caseID", caseID.String()),
		zap.String("documentType", documentType))

	if s.bus != nil {
		s.bus.Publish(bus.DocumentCreated{CaseID: caseID})
	}

	dto := mapper.ToCaseDocumentDTO(doc)
	return &dto, nil
}

// Download returns a document's rendered content and a filename suitable
// for a standalone .html attachment
func (s *DocumentService) Download(ctx context.Context, id uuid.UUID) (string, string, error) {
	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", ErrNotFound
		}
		return "", "", fmt.Errorf("failed to get document: %w", err)
	}

	filename := doc.Name
	if !strings.HasSuffix(filename, ".html") {
		filename += ".html"
	}
	return filename, doc.HTMLContent, nil
}

// Delete removes a document and its stored copy
func (s *DocumentService) Delete(ctx context.Context, id uuid.UUID) error {
	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get document: %w", err)
	}

	if s.store != nil && doc.StoragePath != "" {
		if err := s.store.Delete(ctx, doc.StoragePath); err != nil {
			s.logger.Warn("failed to delete stored document copy",
				zap.String("documentID", id.String()),
				zap.String("storagePath", doc.StoragePath),
				zap.Error(err))
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	s.logger.Info("document deleted", zap.String("documentID", id.String()))
	return nil
}

// RenderPlaceholders substitutes {{name}} placeholders in content with
// values from the case. Unknown placeholders are left untouched. Missing
// values render as empty strings.
func RenderPlaceholders(content string, c *domain.Case) string {
	values := map[string]string{
		"case_number":        c.CaseNumber,
		"customer_reference": c.CustomerReference,
		"cargo_description":  c.CargoDescription,
		"container_type":     c.ContainerType,
		"vessel_name":        c.VesselName,
		"carrier":            c.Carrier,
		"voyage_number":      c.VoyageNumber,
		"incoterms":          c.Incoterms,
		"payment_terms":      c.PaymentTerms,
		"current_date":       time.Now().Format("2006-01-02"),
	}

	if c.Customer != nil {
		values["customer_name"] = c.Customer.CompanyName
	} else {
		values["customer_name"] = ""
	}
	if c.LoadingPort != nil {
		values["loading_port"] = c.LoadingPort.Name
	} else {
		values["loading_port"] = ""
	}
	if c.DischargePort != nil {
		values["discharge_port"] = c.DischargePort.Name
	} else {
		values["discharge_port"] = ""
	}

	if c.ContainerQuantity != nil {
		values["container_quantity"] = strconv.Itoa(*c.ContainerQuantity)
	} else {
		values["container_quantity"] = ""
	}
	if c.WeightKg != nil {
		values["weight_kg"] = strconv.FormatFloat(*c.WeightKg, 'f', -1, 64)
	} else {
		values["weight_kg"] = ""
	}

	dates := map[string]*time.Time{
		"pickup_date":      c.PickupDate,
		"delivery_date":    c.DeliveryDate,
		"standard_closing": c.StandardClosing,
		"vwm_closing":      c.VWMClosing,
		"cy_closing":       c.CYClosing,
	}
	for name, value := range dates {
		if value != nil {
			values[name] = value.Format("2006-01-02")
		} else {
			values[name] = ""
		}
	}

	rendered := content
	for name, value := range values {
		rendered = strings.ReplaceAll(rendered, "{{"+name+"}}", value)
	}
	return rendered
}
