package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/harborline/caseflow-api/internal/bus"
	"github.com/harborline/caseflow-api/internal/domain"
	"github.com/harborline/caseflow-api/internal/legacy"
	"github.com/harborline/caseflow-api/internal/mapper"
	"github.com/harborline/caseflow-api/internal/picker"
	"github.com/harborline/caseflow-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// optionSearchLimit caps the candidate list returned for search-select
// widgets
const optionSearchLimit = 50

// CustomerService handles business logic for customers
type CustomerService struct {
	repo         *repository.CustomerRepository
	legacyClient *legacy.Client
	bus          *bus.Bus
	logger       *zap.Logger
}

// NewCustomerService creates a new CustomerService. legacyClient may be nil
// when the legacy warehouse is disabled.
func NewCustomerService(
	repo *repository.CustomerRepository,
	legacyClient *legacy.Client,
	eventBus *bus.Bus,
	logger *zap.Logger,
) *CustomerService {
	return &CustomerService{
		repo:         repo,
		legacyClient: legacyClient,
		bus:          eventBus,
		logger:       logger,
	}
}

// Create creates a new customer. The customer code is derived from the
// company name at creation and never changes afterwards.
func (s *CustomerService) Create(ctx context.Context, req *domain.CreateCustomerRequest) (*domain.CustomerDTO, error) {
	code := domain.DeriveCustomerCode(req.CompanyName)
	if code == "" {
		return nil, fmt.Errorf("%w: company name yields an empty customer code", ErrInvalidInput)
	}

	// Codes are unique; two company names can collapse to the same 10
	// characters
	if _, err := s.repo.GetByCode(ctx, code); err == nil {
		return nil, fmt.Errorf("%w: customer code %s already in use", ErrConflict, code)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check customer code: %w", err)
	}

	customer := &domain.Customer{
		CompanyName:   req.CompanyName,
		CustomerCode:  code,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		City:          req.City,
		PostalCode:    req.PostalCode,
		Country:       req.Country,
		VATNumber:     req.VATNumber,
		Notes:         req.Notes,
	}

	if err := s.repo.Create(ctx, customer); err != nil {
		s.logger.Error("failed to create customer",
			zap.String("companyName", req.CompanyName),
			zap.String("customerCode", code),
			zap.Error(err))
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	s.logger.Info("customer created",
		zap.String("customerID", customer.ID.String()),
		zap.String("customerCode", customer.CustomerCode))

	dto := mapper.ToCustomerDTO(customer)
	s.publish(dto)
	return &dto, nil
}

// GetByID retrieves a customer by ID
func (s *CustomerService) GetByID(ctx context.Context, id uuid.UUID) (*domain.CustomerDTO, error) {
	customer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	dto := mapper.ToCustomerDTO(customer)
	return &dto, nil
}

// Update modifies a customer. The customer code is immutable and is never
// regenerated, even when the company name changes.
func (s *CustomerService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateCustomerRequest) (*domain.CustomerDTO, error) {
	customer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	customer.CompanyName = req.CompanyName
	customer.ContactPerson = req.ContactPerson
	customer.Email = req.Email
	customer.Phone = req.Phone
	customer.Address = req.Address
	customer.City = req.City
	customer.PostalCode = req.PostalCode
	customer.Country = req.Country
	customer.VATNumber = req.VATNumber
	customer.Notes = req.Notes

	if err := s.repo.Update(ctx, customer); err != nil {
		s.logger.Error("failed to update customer",
			zap.String("customerID", id.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	dto := mapper.ToCustomerDTO(customer)
	s.publish(dto)
	return &dto, nil
}

// Delete removes a customer
func (s *CustomerService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get customer: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	s.logger.Info("customer deleted", zap.String("customerID", id.String()))
	return nil
}

// List returns a paginated list of customers
func (s *CustomerService) List(ctx context.Context, page, pageSize int, search string) (*domain.PaginatedResponse, error) {
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

	customers, total, err := s.repo.List(ctx, page, pageSize, search)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	dtos := make([]domain.CustomerDTO, len(customers))
	for i := range customers {
		dtos[i] = mapper.ToCustomerDTO(&customers[i])
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

// Options returns search-select candidates: company name as the label,
// customer code as the subtitle
func (s *CustomerService) Options(ctx context.Context, search string) ([]picker.Candidate, error) {
	customers, err := s.repo.Search(ctx, search, optionSearchLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to search customers: %w", err)
	}

	options := make([]picker.Candidate, len(customers))
	for i, customer := range customers {
		options[i] = picker.Candidate{
			ID:       customer.ID,
			Label:    customer.CompanyName,
			Subtitle: customer.CustomerCode,
		}
	}
	return options, nil
}

// ImportFromLegacy pulls customer master data from the legacy TMS and
// creates records for companies not yet present, matched by company name.
// Returns the number of customers imported.
func (s *CustomerService) ImportFromLegacy(ctx context.Context) (int, error) {
	if s.legacyClient == nil {
		return 0, ErrLegacyUnavailable
	}

	legacyCustomers, err := s.legacyClient.FetchCustomers(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch legacy customers: %w", err)
	}

	imported := 0
	for _, lc := range legacyCustomers {
		_, err := s.repo.GetByCompanyName(ctx, lc.CompanyName)
		if err == nil {
			continue // already present
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return imported, fmt.Errorf("failed to check existing customer: %w", err)
		}

		code := domain.DeriveCustomerCode(lc.CompanyName)
		if code == "" {
			s.logger.Warn("skipping legacy customer with unusable name",
				zap.String("companyName", lc.CompanyName))
			continue
		}

		customer := &domain.Customer{
			CompanyName:   lc.CompanyName,
			CustomerCode:  code,
			ContactPerson: lc.ContactPerson,
			Email:         lc.Email,
			Phone:         lc.Phone,
			Country:       lc.Country,
		}
		if err := s.repo.Create(ctx, customer); err != nil {
			s.logger.Warn("failed to import legacy customer",
				zap.String("companyName", lc.CompanyName),
				zap.Error(err))
			continue
		}
		imported++
	}

	s.logger.Info("legacy customer import completed",
		zap.Int("fetched", len(legacyCustomers)),
		zap.Int("imported", imported))

	return imported, nil
}

func (s *CustomerService) publish(dto domain.CustomerDTO) {
	if s.bus != nil {
		s.bus.Publish(bus.CustomerUpdated{Customer: dto})
	}
}
