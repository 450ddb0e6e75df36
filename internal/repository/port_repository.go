package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/harborline/caseflow-api/internal/domain"
	"gorm.io/gorm"
)

type PortRepository struct {
	db *gorm.DB
}

func NewPortRepository(db *gorm.DB) *PortRepository {
	return &PortRepository{db: db}
}

func (r *PortRepository) Create(ctx context.Context, port *domain.Port) error {
	return r.db.WithContext(ctx).Create(port).Error
}

func (r *PortRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Port, error) {
	var port domain.Port
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&port).Error
	if err != nil {
		return nil, err
	}
	return &port, nil
}

func (r *PortRepository) GetByCode(ctx context.Context, code string) (*domain.Port, error) {
	var port domain.Port
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&port).Error
	if err != nil {
		return nil, err
	}
	return &port, nil
}

func (r *PortRepository) Update(ctx context.Context, port *domain.Port) error {
	return r.db.WithContext(ctx).Save(port).Error
}

func (r *PortRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Port{}, "id = ?", id).Error
}

func (r *PortRepository) List(ctx context.Context, page, pageSize int, search string) ([]domain.Port, int64, error) {
	var ports []domain.Port
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Port{})

	if search != "" {
		searchPattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(code) LIKE ? OR LOWER(country) LIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).Order("name ASC").Find(&ports).Error

	return ports, total, err
}

func (r *PortRepository) Search(ctx context.Context, searchQuery string, limit int) ([]domain.Port, error) {
	var ports []domain.Port
	searchPattern := "%" + strings.ToLower(searchQuery) + "%"
	err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ? OR LOWER(code) LIKE ?", searchPattern, searchPattern).
		Order("name ASC").
		Limit(limit).
		Find(&ports).Error
	return ports, err
}
