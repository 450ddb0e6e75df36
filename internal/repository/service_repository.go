package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/harborline/caseflow-api/internal/domain"
	"gorm.io/gorm"
)

// ServiceRepository handles access to the billable service catalog
type ServiceRepository struct {
	db *gorm.DB
}

// NewServiceRepository creates a new service repository instance
func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

// Create creates a new catalog service
func (r *ServiceRepository) Create(ctx context.Context, svc *domain.Service) error {
	return r.db.WithContext(ctx).Create(svc).Error
}

// GetByID retrieves a catalog service by its ID
func (r *ServiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	var svc domain.Service
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&svc).Error
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

// Update updates an existing catalog service
func (r *ServiceRepository) Update(ctx context.Context, svc *domain.Service) error {
	return r.db.WithContext(ctx).Save(svc).Error
}

// Delete removes a catalog service
func (r *ServiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Service{}, "id = ?", id).Error
}

// List returns a paginated list of catalog services
func (r *ServiceRepository) List(ctx context.Context, page, pageSize int, search string) ([]domain.Service, int64, error) {
	var services []domain.Service
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Service{})

	if search != "" {
		searchPattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ?", searchPattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).Order("name ASC").Find(&services).Error

	return services, total, err
}

// Search searches catalog services by name for the select widget
func (r *ServiceRepository) Search(ctx context.Context, searchQuery string, limit int) ([]domain.Service, error) {
	var services []domain.Service
	searchPattern := "%" + strings.ToLower(searchQuery) + "%"
	err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ?", searchPattern).
		Order("name ASC").
		Limit(limit).
		Find(&services).Error
	return services, err
}
