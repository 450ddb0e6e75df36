package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/harborline/caseflow-api/internal/domain"
	"github.com/harborline/caseflow-api/internal/mapper"
	"github.com/harborline/caseflow-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FinanceService handles the per-case finance ledger. The summary is
// derived from the full row set on every read and never stored.
type FinanceService struct {
	repo        *repository.CaseFinanceRepository
	caseRepo    *repository.CaseRepository
	serviceRepo *repository.ServiceRepository
	logger      *zap.Logger
}

// NewFinanceService creates a new FinanceService
func NewFinanceService(
	repo *repository.CaseFinanceRepository,
	caseRepo *repository.CaseRepository,
	serviceRepo *repository.ServiceRepository,
	logger *zap.Logger,
) *FinanceService {
	return &FinanceService{
		repo:        repo,
		caseRepo:    caseRepo,
		serviceRepo: serviceRepo,
		logger:      logger,
	}
}

// GetLedger returns all finance rows for a case together with the derived
// summary
func (s *FinanceService) GetLedger(ctx context.Context, caseID uuid.UUID) (*domain.FinanceLedgerDTO, error) {
	if _, err := s.caseRepo.GetByID(ctx, caseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get case: %w", err)
	}
	return s.ledger(ctx, caseID)
}

// AddRow adds a finance row to a case. When the row references a catalog
// service and the request omits prices, the service defaults prefill them.
// Returns the full recomputed ledger.
func (s *FinanceService) AddRow(ctx context.Context, caseID uuid.UUID, req *domain.CreateFinanceRowRequest) (*domain.FinanceLedgerDTO, error) {
	if _, err := s.caseRepo.GetByID(ctx, caseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get case: %w", err)
	}

	row := &domain.CaseFinance{
		CaseID:           caseID,
		Quantity:         1,
		Description:      req.Description,
		PurchaseCurrency: domain.CurrencyEUR,
		SalesCurrency:    domain.CurrencyEUR,
		ServiceID:        req.ServiceID,
		SupplierID:       req.SupplierID,
		CustomerID:       req.CustomerID,
	}

	if req.Quantity != nil {
		row.Quantity = *req.Quantity
	}
	if req.PurchaseCurrency != "" {
		if !req.PurchaseCurrency.IsValid() {
			return nil, fmt.Errorf("%w: unknown currency %q", ErrInvalidInput, req.PurchaseCurrency)
		}
		row.PurchaseCurrency = req.PurchaseCurrency
	}
	if req.SalesCurrency != "" {
		if !req.SalesCurrency.IsValid() {
			return nil, fmt.Errorf("%w: unknown currency %q", ErrInvalidInput, req.SalesCurrency)
		}
		row.SalesCurrency = req.SalesCurrency
	}

	if req.PurchasePrice != nil {
		row.PurchasePrice = *req.PurchasePrice
	}
	if req.SalesPrice != nil {
		row.SalesPrice = *req.SalesPrice
	}

	// Prefill from the catalog entry when the caller left prices out
	if req.ServiceID != nil && (req.PurchasePrice == nil || req.SalesPrice == nil) {
		svc, err := s.serviceRepo.GetByID(ctx, *req.ServiceID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: service %s", ErrNotFound, req.ServiceID)
			}
			return nil, fmt.Errorf("failed to get service: %w", err)
		}
		if req.PurchasePrice == nil && svc.DefaultPurchasePrice != nil {
			row.PurchasePrice = *svc.DefaultPurchasePrice
		}
		if req.SalesPrice == nil && svc.DefaultSalesPrice != nil {
			row.SalesPrice = *svc.DefaultSalesPrice
		}
		if row.Description == "" {
			row.Description = svc.Name
		}
	}

	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to create finance row",
			zap.String("caseID", caseID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to create finance row: %w", err)
	}

	return s.ledger(ctx, caseID)
}

// UpdateRow applies a partial update to a finance row. Only non-nil fields
// change. Returns the full recomputed ledger for the owning case.
func (s *FinanceService) UpdateRow(ctx context.Context, caseID, rowID uuid.UUID, req *domain.UpdateFinanceRowRequest) (*domain.FinanceLedgerDTO, error) {
	row, err := s.repo.GetByID(ctx, rowID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get finance row: %w", err)
	}
	if row.CaseID != caseID {
		return nil, ErrNotFound
	}

	if req.Quantity != nil {
		row.Quantity = *req.Quantity
	}
	if req.ServiceID != nil {
		row.ServiceID = req.ServiceID
		row.Service = nil
	}
	if req.Description != nil {
		row.Description = *req.Description
	}
	if req.PurchasePrice != nil {
		row.PurchasePrice = *req.PurchasePrice
	}
	if req.PurchaseCurrency != nil {
		if !req.PurchaseCurrency.IsValid() {
			return nil, fmt.Errorf("%w: unknown currency %q", ErrInvalidInput, *req.PurchaseCurrency)
		}
		row.PurchaseCurrency = *req.PurchaseCurrency
	}
	if req.SupplierID != nil {
		row.SupplierID = req.SupplierID
		row.Supplier = nil
	}
	if req.SalesPrice != nil {
		row.SalesPrice = *req.SalesPrice
	}
	if req.SalesCurrency != nil {
		if !req.SalesCurrency.IsValid() {
			return nil, fmt.Errorf("%w: unknown currency %q", ErrInvalidInput, *req.SalesCurrency)
		}
		row.SalesCurrency = *req.SalesCurrency
	}
	if req.CustomerID != nil {
		row.CustomerID = req.CustomerID
		row.Customer = nil
	}

	if err := s.repo.Update(ctx, row); err != nil {
		s.logger.Error("failed to update finance row",
			zap.String("rowID", rowID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to update finance row: %w", err)
	}

	return s.ledger(ctx, caseID)
}

// DeleteRow removes a finance row and returns the recomputed ledger
func (s *FinanceService) DeleteRow(ctx context.Context, caseID, rowID uuid.UUID) (*domain.FinanceLedgerDTO, error) {
	row, err := s.repo.GetByID(ctx, rowID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get finance row: %w", err)
	}
	if row.CaseID != caseID {
		return nil, ErrNotFound
	}

	if err := s.repo.Delete(ctx, rowID); err != nil {
		return nil, fmt.Errorf("failed to delete finance row: %w", err)
	}

	return s.ledger(ctx, caseID)
}

func (s *FinanceService) ledger(ctx context.Context, caseID uuid.UUID) (*domain.FinanceLedgerDTO, error) {
	rows, err := s.repo.ListByCase(ctx, caseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list finance rows: %w", err)
	}
	ledger := mapper.ToFinanceLedgerDTO(rows)
	return &ledger, nil
}
