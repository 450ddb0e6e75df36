package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/harborline/caseflow-api/internal/domain"
	"gorm.io/gorm"
)

// DocumentTemplateRepository handles read access to document templates.
// Templates are seeded by migration and treated as read-only by the API.
type DocumentTemplateRepository struct {
	db *gorm.DB
}

// NewDocumentTemplateRepository creates a new template repository instance
func NewDocumentTemplateRepository(db *gorm.DB) *DocumentTemplateRepository {
	return &DocumentTemplateRepository{db: db}
}

// GetByID retrieves a template by its ID
func (r *DocumentTemplateRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.DocumentTemplate, error) {
	var tmpl domain.DocumentTemplate
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&tmpl).Error
	if err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// List returns all templates ordered by name
func (r *DocumentTemplateRepository) List(ctx context.Context) ([]domain.DocumentTemplate, error) {
	var templates []domain.DocumentTemplate
	err := r.db.WithContext(ctx).Order("name ASC").Find(&templates).Error
	return templates, err
}
