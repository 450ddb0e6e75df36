package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harborline/caseflow-api/internal/domain"
	"gorm.io/gorm"
)

// CaseFilters defines filter options for case listing
type CaseFilters struct {
	Search   string
	Status   *domain.CaseStatus
	CaseType *domain.CaseType
}

// caseSortableFields maps API field names to database column names.
// Only fields in this map can be used for sorting (whitelist approach).
var caseSortableFields = map[string]string{
	"createdAt":  "cases.created_at",
	"updatedAt":  "cases.updated_at",
	"caseNumber": "cases.case_number",
	"status":     "cases.status",
	"pickupDate": "cases.pickup_date",
}

// CaseRepository handles case data access operations
type CaseRepository struct {
	db *gorm.DB
}

// NewCaseRepository creates a new case repository instance
func NewCaseRepository(db *gorm.DB) *CaseRepository {
	return &CaseRepository{db: db}
}

// Create creates a new case in the database
func (r *CaseRepository) Create(ctx context.Context, c *domain.Case) error {
	return r.db.WithContext(ctx).Create(c).Error
}

// GetByID retrieves a case with its customer and ports expanded
func (r *CaseRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Case, error) {
	var c domain.Case
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("LoadingPort").
		Preload("DischargePort").
		Where("id = ?", id).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetByCaseNumber retrieves a case by its human-readable number
func (r *CaseRepository) GetByCaseNumber(ctx context.Context, caseNumber string) (*domain.Case, error) {
	var c domain.Case
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("LoadingPort").
		Preload("DischargePort").
		Where("case_number = ?", caseNumber).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Update persists all fields of a case
func (r *CaseRepository) Update(ctx context.Context, c *domain.Case) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// UpdateFields applies a partial column update to a case
func (r *CaseRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&domain.Case{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// Delete removes a case; finance rows, documents and history cascade
func (r *CaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Case{}, "id = ?", id).Error
}

// List returns a paginated list of cases with relations expanded.
// Search matches case number, customer company name and cargo description
// case-insensitively.
func (r *CaseRepository) List(ctx context.Context, page, pageSize int, filters *CaseFilters, sort SortConfig) ([]domain.Case, int64, error) {
	var cases []domain.Case
	var total int64

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	query := r.db.WithContext(ctx).Model(&domain.Case{}).
		Joins("LEFT JOIN customers ON customers.id = cases.customer_id")

	if filters != nil {
		if filters.Search != "" {
			searchPattern := "%" + strings.ToLower(filters.Search) + "%"
			query = query.Where(
				"LOWER(cases.case_number) LIKE ? OR LOWER(customers.company_name) LIKE ? OR LOWER(cases.cargo_description) LIKE ?",
				searchPattern, searchPattern, searchPattern)
		}
		if filters.Status != nil {
			query = query.Where("cases.status = ?", *filters.Status)
		}
		if filters.CaseType != nil {
			query = query.Where("cases.case_type = ?", *filters.CaseType)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderClause := BuildOrderClause(sort, caseSortableFields, "cases.created_at")

	offset := (page - 1) * pageSize
	err := query.
		Preload("Customer").
		Preload("LoadingPort").
		Preload("DischargePort").
		Offset(offset).
		Limit(pageSize).
		Order(orderClause).
		Find(&cases).Error

	return cases, total, err
}

// ChangeStatus records the transition in the history log and applies the
// new status in a single transaction so the two never diverge.
func (r *CaseRepository) ChangeStatus(
	ctx context.Context,
	caseID uuid.UUID,
	oldStatus *domain.CaseStatus,
	newStatus domain.CaseStatus,
	changedBy string,
	reason string,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Stamped in Go so history keeps its order even when transitions
		// land within the same database timestamp tick
		entry := &domain.CaseStatusHistory{
			BaseModel:    domain.BaseModel{CreatedAt: time.Now().UTC()},
			CaseID:       caseID,
			OldStatus:    oldStatus,
			NewStatus:    newStatus,
			ChangedBy:    changedBy,
			ChangeReason: reason,
		}
		if err := tx.Create(entry).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Case{}).
			Where("id = ?", caseID).
			Update("status", newStatus).Error
	})
}

// FindExpiredQuotations returns active quotations whose validity ended
// before the given cutoff
func (r *CaseRepository) FindExpiredQuotations(ctx context.Context, cutoff time.Time) ([]domain.Case, error) {
	var cases []domain.Case
	err := r.db.WithContext(ctx).
		Where("case_type = ?", domain.CaseTypeQuotation).
		Where("status = ?", domain.CaseStatusActive).
		Where("validity_to IS NOT NULL AND validity_to < ?", cutoff).
		Find(&cases).Error
	return cases, err
}
