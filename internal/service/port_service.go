package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/harborline/caseflow-api/internal/domain"
	"github.com/harborline/caseflow-api/internal/mapper"
	"github.com/harborline/caseflow-api/internal/picker"
	"github.com/harborline/caseflow-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PortService handles business logic for ports
type PortService struct {
	repo   *repository.PortRepository
	logger *zap.Logger
}

// NewPortService creates a new PortService
func NewPortService(repo *repository.PortRepository, logger *zap.Logger) *PortService {
	return &PortService{repo: repo, logger: logger}
}

// Create creates a port with an explicit code
func (s *PortService) Create(ctx context.Context, req *domain.CreatePortRequest) (*domain.PortDTO, error) {
	port := &domain.Port{
		Code:    strings.ToUpper(req.Code),
		Name:    req.Name,
		City:    req.City,
		Country: req.Country,
	}

	if err := s.repo.Create(ctx, port); err != nil {
		s.logger.Error("failed to create port",
			zap.String("code", port.Code),
			zap.Error(err))
		return nil, fmt.Errorf("failed to create port: %w", err)
	}

	dto := mapper.ToPortDTO(port)
	return &dto, nil
}

// CreateAdhoc creates a port from free text typed into the route form.
// The code is derived from the name, the city mirrors the name and the
// country is unknown until someone corrects the record.
func (s *PortService) CreateAdhoc(ctx context.Context, req *domain.AdhocPortRequest) (*domain.PortDTO, error) {
	code := domain.DerivePortCode(req.Name)
	if code == "" {
		return nil, fmt.Errorf("%w: port name yields an empty code", ErrInvalidInput)
	}

	if existing, err := s.repo.GetByCode(ctx, code); err == nil {
		// Same derived code means the same port was already typed in
		dto := mapper.ToPortDTO(existing)
		return &dto, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing port: %w", err)
	}

	port := &domain.Port{
		Code:    code,
		Name:    req.Name,
		City:    req.Name,
		Country: "Unknown",
	}

	if err := s.repo.Create(ctx, port); err != nil {
		s.logger.Error("failed to create ad-hoc port",
			zap.String("name", req.Name),
			zap.String("code", code),
			zap.Error(err))
		return nil, fmt.Errorf("failed to create port: %w", err)
	}

	s.logger.Info("ad-hoc port created",
		zap.String("portID", port.ID.String()),
		zap.String("code", port.Code))

	dto := mapper.ToPortDTO(port)
	return &dto, nil
}

// GetByID retrieves a port by ID
func (s *PortService) GetByID(ctx context.Context, id uuid.UUID) (*domain.PortDTO, error) {
	port, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get port: %w", err)
	}
	dto := mapper.ToPortDTO(port)
	return &dto, nil
}

// Update modifies a port
func (s *PortService) Update(ctx context.Context, id uuid.UUID, req *domain.CreatePortRequest) (*domain.PortDTO, error) {
	port, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get port: %w", err)
	}

	port.Code = strings.ToUpper(req.Code)
	port.Name = req.Name
	port.City = req.City
	port.Country = req.Country

	if err := s.repo.Update(ctx, port); err != nil {
		return nil, fmt.Errorf("failed to update port: %w", err)
	}

	dto := mapper.ToPortDTO(port)
	return &dto, nil
}

// Delete removes a port
func (s *PortService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get port: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete port: %w", err)
	}
	return nil
}

// List returns a paginated list of ports
func (s *PortService) List(ctx context.Context, page, pageSize int, search string) (*domain.PaginatedResponse, error) {
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

	ports, total, err := s.repo.List(ctx, page, pageSize, search)
	if err != nil {
		return nil, fmt.Errorf("failed to list ports: %w", err)
	}

	dtos := make([]domain.PortDTO, len(ports))
	for i := range ports {
		dtos[i] = mapper.ToPortDTO(&ports[i])
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

// Options returns search-select candidates: port name as the label, port
// code as the subtitle
func (s *PortService) Options(ctx context.Context, search string) ([]picker.Candidate, error) {
	ports, err := s.repo.Search(ctx, search, optionSearchLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to search ports: %w", err)
	}

	options := make([]picker.Candidate, len(ports))
	for i, port := range ports {
		options[i] = picker.Candidate{
			ID:       port.ID,
			Label:    port.Name,
			Subtitle: port.Code,
		}
	}
	return options, nil
}
