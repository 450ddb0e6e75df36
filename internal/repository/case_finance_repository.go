package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/harborline/caseflow-api/internal/domain"
	"gorm.io/gorm"
)

// CaseFinanceRepository handles ledger row data access for cases
type CaseFinanceRepository struct {
	db *gorm.DB
}

// NewCaseFinanceRepository creates a new case finance repository instance
func NewCaseFinanceRepository(db *gorm.DB) *CaseFinanceRepository {
	return &CaseFinanceRepository{db: db}
}

// Create creates a new ledger row
func (r *CaseFinanceRepository) Create(ctx context.Context, row *domain.CaseFinance) error {
	return r.db.WithContext(ctx).Create(row).Error
}

// GetByID retrieves a ledger row with its service and supplier expanded
func (r *CaseFinanceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.CaseFinance, error) {
	var row domain.CaseFinance
	err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Supplier").
		Where("id = ?", id).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Update persists all fields of a ledger row
func (r *CaseFinanceRepository) Update(ctx context.Context, row *domain.CaseFinance) error {
	return r.db.WithContext(ctx).Save(row).Error
}

// Delete removes a ledger row
func (r *CaseFinanceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.CaseFinance{}, "id = ?", id).Error
}

// ListByCase returns all ledger rows for a case in creation order.
// The full row set is needed so the summary can be recomputed, so no
// pagination here.
func (r *CaseFinanceRepository) ListByCase(ctx context.Context, caseID uuid.UUID) ([]domain.CaseFinance, error) {
	var rows []domain.CaseFinance
	err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Supplier").
		Where("case_id = ?", caseID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}
