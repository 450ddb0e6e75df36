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

// CatalogService handles the billable service catalog. Default prices on a
// catalog entry prefill new ledger rows that reference it.
type CatalogService struct {
	repo   *repository.ServiceRepository
	logger *zap.Logger
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(repo *repository.ServiceRepository, logger *zap.Logger) *CatalogService {
	return &CatalogService{repo: repo, logger: logger}
}

// Create creates a catalog entry
func (s *CatalogService) Create(ctx context.Context, req *domain.CreateServiceRequest) (*domain.ServiceDTO, error) {
	svc := &domain.Service{
		Name:                 req.Name,
		Description:          req.Description,
		DefaultPurchasePrice: req.DefaultPurchasePrice,
		DefaultSalesPrice:    req.DefaultSalesPrice,
	}

	if err := s.repo.Create(ctx, svc); err != nil {
		s.logger.Error("failed to create service",
			zap.String("name", req.Name),
			zap.Error(err))
		return nil, fmt.Errorf("failed to create service: %w", err)
	}

	dto := mapper.ToServiceDTO(svc)
	return &dto, nil
}

// GetByID retrieves a catalog entry by ID
func (s *CatalogService) GetByID(ctx context.Context, id uuid.UUID) (*domain.ServiceDTO, error) {
	svc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	dto := mapper.ToServiceDTO(svc)
	return &dto, nil
}

// Update modifies a catalog entry
func (s *CatalogService) Update(ctx context.Context, id uuid.UUID, req *domain.CreateServiceRequest) (*domain.ServiceDTO, error) {
	svc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get service: %w", err)
	}

	svc.Name = req.Name
	svc.Description = req.Description
	svc.DefaultPurchasePrice = req.DefaultPurchasePrice
	svc.DefaultSalesPrice = req.DefaultSalesPrice

	if err := s.repo.Update(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to update service: %w", err)
	}

	dto := mapper.ToServiceDTO(svc)
	return &dto, nil
}

// Delete removes a catalog entry
func (s *CatalogService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get service: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}
	return nil
}

// List returns a paginated list of catalog entries
func (s *CatalogService) List(ctx context.Context, page, pageSize int, search string) (*domain.PaginatedResponse, error) {
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

	services, total, err := s.repo.List(ctx, page, pageSize, search)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}

	dtos := make([]domain.ServiceDTO, len(services))
	for i := range services {
		dtos[i] = mapper.ToServiceDTO(&services[i])
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

// Options returns search-select candidates: service name as the label,
// description as the subtitle
func (s *CatalogService) Options(ctx context.Context, search string) ([]picker.Candidate, error) {
	services, err := s.repo.Search(ctx, search, optionSearchLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to search services: %w", err)
	}

	options := make([]picker.Candidate, len(services))
	for i, svc := range services {
		options[i] = picker.Candidate{
			ID:       svc.ID,
			Label:    svc.Name,
			Subtitle: svc.Description,
		}
	}
	return options, nil
}
