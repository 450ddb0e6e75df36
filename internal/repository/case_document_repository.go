package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/harborline/caseflow-api/internal/domain"
	"gorm.io/gorm"
)

// CaseDocumentRepository handles generated document data access
type CaseDocumentRepository struct {
	db *gorm.DB
}

// NewCaseDocumentRepository creates a new case document repository instance
func NewCaseDocumentRepository(db *gorm.DB) *CaseDocumentRepository {
	return &CaseDocumentRepository{db: db}
}

// Create stores a rendered document. Documents are immutable once created,
// so there is no Update.
func (r *CaseDocumentRepository) Create(ctx context.Context, doc *domain.CaseDocument) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

// GetByID retrieves a document by its ID
func (r *CaseDocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.CaseDocument, error) {
	var doc domain.CaseDocument
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&doc).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Delete removes a document
func (r *CaseDocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.CaseDocument{}, "id = ?", id).Error
}

// ListByCase returns all documents for a case, newest first
func (r *CaseDocumentRepository) ListByCase(ctx context.Context, caseID uuid.UUID) ([]domain.CaseDocument, error) {
	var docs []domain.CaseDocument
	err := r.db.WithContext(ctx).
		Where("case_id = ?", caseID).
		Order("created_at DESC").
		Find(&docs).Error
	return docs, err
}
