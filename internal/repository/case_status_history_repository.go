package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/harborline/caseflow-api/internal/domain"
	"gorm.io/gorm"
)

type CaseStatusHistoryRepository struct {
	db *gorm.DB
}

func NewCaseStatusHistoryRepository(db *gorm.DB) *CaseStatusHistoryRepository {
	return &CaseStatusHistoryRepository{db: db}
}

// Create records a new status transition. History is append-only; there is
// no update or single-row delete. The transition time is stamped here rather
// than by the database default, whose second precision cannot order quick
// consecutive transitions.
func (r *CaseStatusHistoryRepository) Create(ctx context.Context, entry *domain.CaseStatusHistory) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	return r.db.WithContext(ctx).Create(entry).Error
}

// GetByCaseID returns all status history for a case, newest first
func (r *CaseStatusHistoryRepository) GetByCaseID(ctx context.Context, caseID uuid.UUID) ([]domain.CaseStatusHistory, error) {
	var history []domain.CaseStatusHistory
	err := r.db.WithContext(ctx).
		Where("case_id = ?", caseID).
		Order("created_at DESC").
		Find(&history).Error
	return history, err
}

// GetLatestByCaseID returns the most recent transition for a case
func (r *CaseStatusHistoryRepository) GetLatestByCaseID(ctx context.Context, caseID uuid.UUID) (*domain.CaseStatusHistory, error) {
	var entry domain.CaseStatusHistory
	err := r.db.WithContext(ctx).
		Where("case_id = ?", caseID).
		Order("created_at DESC").
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// RecordTransition is a convenience method to create a history record
func (r *CaseStatusHistoryRepository) RecordTransition(
	ctx context.Context,
	caseID uuid.UUID,
	oldStatus *domain.CaseStatus,
	newStatus domain.CaseStatus,
	changedBy string,
	reason string,
) error {
	entry := &domain.CaseStatusHistory{
		CaseID:       caseID,
		OldStatus:    oldStatus,
		NewStatus:    newStatus,
		ChangedBy:    changedBy,
		ChangeReason: reason,
	}
	return r.Create(ctx, entry)
}
