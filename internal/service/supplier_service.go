package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/harborline/caseflow-api/internal/domain"
	"github.com/harborline/caseflow-api/internal/mapper"
	"github.com/harborline/caseflow-api/internal/picker"
	"github.com/harborline/caseflow-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SupplierService handles business logic for suppliers
type SupplierService struct {
	repo   *repository.SupplierRepository
	logger *zap.Logger
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(repo *repository.SupplierRepository, logger *zap.Logger) *SupplierService {
	return &SupplierService{repo: repo, logger: logger}
}

// Create creates a new supplier
func (s *SupplierService) Create(ctx context.Context, req *domain.CreateSupplierRequest) (*domain.SupplierDTO, error) {
	supplier := &domain.Supplier{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Country:       req.Country,
	}

	if err := s.repo.Create(ctx, supplier); err != nil {
		s.logger.Error("failed to create supplier",
			zap.String("name", req.Name),
			zap.Error(err))
		return nil, fmt.Errorf("failed to create supplier: %w", err)
	}

	dto := mapper.ToSupplierDTO(supplier)
	return &dto, nil
}

// GetByID retrieves a supplier by ID
func (s *SupplierService) GetByID(ctx context.Context, id uuid.UUID) (*domain.SupplierDTO, error) {
	supplier, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get supplier: %w", err)
	}
	dto := mapper.ToSupplierDTO(supplier)
	return &dto, nil
}

// Update modifies a supplier
func (s *SupplierService) Update(ctx context.Context, id uuid.UUID, req *domain.CreateSupplierRequest) (*domain.SupplierDTO, error) {
	supplier, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get supplier: %w", err)
	}

	supplier.Name = req.Name
	supplier.ContactPerson = req.ContactPerson
	supplier.Email = req.Email
	supplier.Phone = req.Phone
	supplier.Country = req.Country

	if err := s.repo.Update(ctx, supplier); err != nil {
		return nil, fmt.Errorf("failed to update supplier: %w", err)
	}

	dto := mapper.ToSupplierDTO(supplier)
	return &dto, nil
}

// Delete removes a supplier
func (s *SupplierService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get supplier: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete supplier: %w", err)
	}
	return nil
}

// List returns a paginated list of suppliers
func (s *SupplierService) List(ctx context.Context, page, pageSize int, search string) (*domain.PaginatedResponse, error) {
	// Clamp page size
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 200 {
		pageSize = 200
	}
	if page < 1 {
		page = 1
	}

	suppliers, total, err := s.repo.List(ctx, page, pageSize, search)
	if err != nil {
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}

	dtos := make([]domain.SupplierDTO, len(suppliers))
	for i := range suppliers {
		dtos[i] = mapper.ToSupplierDTO(&suppliers[i])
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return &domain.PaginatedResponse{
		Data:       dtos,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// Options returns search-select candidates: supplier name as the label,
// country as the subtitle
func (s *SupplierService) Options(ctx context.Context, search string) ([]picker.Candidate, error) {
	suppliers, err := s.repo.Search(ctx, search, optionSearchLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to search suppliers: %w", err)
	}

	options := make([]picker.Candidate, len(suppliers))
	for i, supplier := range suppliers {
		options[i] = picker.Candidate{
			ID:       supplier.ID,
			Label:    supplier.Name,
			Subtitle: supplier.Country,
		}
	}
	return options, nil
}
