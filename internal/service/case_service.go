package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harborline/caseflow-api/internal/auth"
	"github.com/harborline/caseflow-api/internal/bus"
	"github.com/harborline/caseflow-api/internal/domain"
	"github.com/harborline/caseflow-api/internal/mapper"
	"github.com/harborline/caseflow-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CaseService handles business logic for cases (quotations and bookings)
type CaseService struct {
	repo        *repository.CaseRepository
	historyRepo *repository.CaseStatusHistoryRepository
	numbers     *NumberSequenceService
	bus         *bus.Bus
	logger      *zap.Logger
}

// NewCaseService creates a new CaseService
func NewCaseService(
	repo *repository.CaseRepository,
	historyRepo *repository.CaseStatusHistoryRepository,
	numbers *NumberSequenceService,
	eventBus *bus.Bus,
	logger *zap.Logger,
) *CaseService {
	return &CaseService{
		repo:        repo,
		historyRepo: historyRepo,
		numbers:     numbers,
		bus:         eventBus,
		logger:      logger,
	}
}

// Create creates a new case in draft status with a generated case number.
// Omitted classification fields fall back to booking/export.
func (s *CaseService) Create(ctx context.Context, req *domain.CreateCaseRequest) (*domain.CaseDTO, error) {
	caseType := req.CaseType
	if caseType == "" {
		caseType = domain.CaseTypeBooking
	}
	if !caseType.IsValid() {
		return nil, fmt.Errorf("%w: unknown case type %q", ErrInvalidInput, req.CaseType)
	}

	direction := req.Direction
	if direction == "" {
		direction = domain.DirectionExport
	}
	if !direction.IsValid() {
		return nil, fmt.Errorf("%w: unknown direction %q", ErrInvalidInput, req.Direction)
	}

	caseNumber, err := s.numbers.GenerateCaseNumber(ctx)
	if err != nil {
		return nil, err
	}

	c := &domain.Case{
		CaseNumber: caseNumber,
		CaseType:   caseType,
		Direction:  direction,
		Status:     domain.CaseStatusDraft,
		CustomerID: req.CustomerID,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		s.logger.Error("failed to create case",
			zap.String("caseNumber", caseNumber),
			zap.Error(err))
		return nil, fmt.Errorf("failed to create case: %w", err)
	}

	// Initial history entry has no previous status
	if err := s.historyRepo.RecordTransition(ctx, c.ID, nil, c.Status, auth.ActorName(ctx), "Case created"); err != nil {
		s.logger.Warn("failed to record initial status history",
			zap.String("caseID", c.ID.String()),
			zap.Error(err))
	}

	s.logger.Info("case created",
		zap.String("caseID", c.ID.String()),
		zap.String("caseNumber", c.CaseNumber),
		zap.String("caseType", string(c.CaseType)))

	return s.publishAndReturn(ctx, c.ID)
}

// GetByID retrieves a case with customer and ports expanded
func (s *CaseService) GetByID(ctx context.Context, id uuid.UUID) (*domain.CaseDTO, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get case: %w", err)
	}
	dto := mapper.ToCaseDTO(c)
	return &dto, nil
}

// List returns a paginated case list with optional search and filters
func (s *CaseService) List(ctx context.Context, page, pageSize int, filters *repository.CaseFilters, sort repository.SortConfig) (*domain.PaginatedResponse, error) {
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

	cases, total, err := s.repo.List(ctx, page, pageSize, filters, sort)
	if err != nil {
		return nil, fmt.Errorf("failed to list cases: %w", err)
	}

	dtos := make([]domain.CaseDTO, len(cases))
	for i := range cases {
		dtos[i] = mapper.ToCaseDTO(&cases[i])
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

// Update applies a partial update. Only non-nil fields change; case number
// and status are not updatable here. Returns the fresh expanded record so
// the caller always renders server state, not what it happened to send.
func (s *CaseService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateCaseRequest) (*domain.CaseDTO, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get case: %w", err)
	}

	fields, err := s.buildUpdateFields(req)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return s.GetByID(ctx, id)
	}

	if err := s.repo.UpdateFields(ctx, id, fields); err != nil {
		s.logger.Error("failed to update case",
			zap.String("caseID", id.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to update case: %w", err)
	}

	return s.publishAndReturn(ctx, id)
}

// buildUpdateFields translates the request into a column update map
func (s *CaseService) buildUpdateFields(req *domain.UpdateCaseRequest) (map[string]interface{}, error) {
	fields := map[string]interface{}{}

	if req.CaseType != nil {
		if !req.CaseType.IsValid() {
			return nil, fmt.Errorf("%w: unknown case type %q", ErrInvalidInput, *req.CaseType)
		}
		fields["case_type"] = *req.CaseType
	}
	if req.Direction != nil {
		if !req.Direction.IsValid() {
			return nil, fmt.Errorf("%w: unknown direction %q", ErrInvalidInput, *req.Direction)
		}
		fields["direction"] = *req.Direction
	}
	if req.CustomerID != nil {
		fields["customer_id"] = nullableUUID(*req.CustomerID)
	}
	if req.CustomerReference != nil {
		fields["customer_reference"] = *req.CustomerReference
	}

	if req.CargoDescription != nil {
		fields["cargo_description"] = *req.CargoDescription
	}
	if req.ContainerType != nil {
		fields["container_type"] = *req.ContainerType
	}
	if req.ContainerQuantity != nil {
		fields["container_quantity"] = *req.ContainerQuantity
	}
	if req.WeightKg != nil {
		fields["weight_kg"] = *req.WeightKg
	}
	if req.VolumeCbm != nil {
		fields["volume_cbm"] = *req.VolumeCbm
	}

	if req.LoadingPortID != nil {
		fields["loading_port_id"] = nullableUUID(*req.LoadingPortID)
	}
	if req.DischargePortID != nil {
		fields["discharge_port_id"] = nullableUUID(*req.DischargePortID)
	}
	if req.LoadingTerminal != nil {
		fields["loading_terminal"] = *req.LoadingTerminal
	}
	if req.DischargeTerminal != nil {
		fields["discharge_terminal"] = *req.DischargeTerminal
	}
	if req.VesselName != nil {
		fields["vessel_name"] = *req.VesselName
	}
	if req.Carrier != nil {
		fields["carrier"] = *req.Carrier
	}
	if req.VoyageNumber != nil {
		fields["voyage_number"] = *req.VoyageNumber
	}

	dateFields := []struct {
		column string
		value  *string
	}{
		{"pickup_date", req.PickupDate},
		{"delivery_date", req.DeliveryDate},
		{"standard_closing", req.StandardClosing},
		{"vwm_closing", req.VWMClosing},
		{"cy_closing", req.CYClosing},
		{"dock_closing_carrier", req.DockClosingCarrier},
		{"dock_closing_customer", req.DockClosingCustomer},
		{"validity_from", req.ValidityFrom},
		{"validity_to", req.ValidityTo},
	}
	for _, df := range dateFields {
		if df.value == nil {
			continue
		}
		if *df.value == "" {
			fields[df.column] = nil
			continue
		}
		parsed, err := mapper.ParseDate(*df.value)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid date %q for %s", ErrInvalidInput, *df.value, df.column)
		}
		fields[df.column] = parsed
	}

	if req.Incoterms != nil {
		fields["incoterms"] = *req.Incoterms
	}
	if req.PaymentTerms != nil {
		fields["payment_terms"] = *req.PaymentTerms
	}
	if req.Notes != nil {
		fields["notes"] = *req.Notes
	}

	return fields, nil
}

// ChangeStatus moves a case to a new status. The history record and the
// status column are written in one transaction, then the updated case is
// broadcast to open panels.
func (s *CaseService) ChangeStatus(ctx context.Context, id uuid.UUID, req *domain.UpdateCaseStatusRequest) (*domain.CaseDTO, error) {
	if !req.Status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidStatus, req.Status)
	}

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get case: %w", err)
	}

	if c.Status == req.Status {
		dto := mapper.ToCaseDTO(c)
		return &dto, nil
	}

	reason := req.Reason
	if reason == "" {
		reason = "Status updated via settings"
	}

	oldStatus := c.Status
	if err := s.repo.ChangeStatus(ctx, id, &oldStatus, req.Status, auth.ActorName(ctx), reason); err != nil {
		s.logger.Error("failed to change case status",
			zap.String("caseID", id.String()),
			zap.String("newStatus", string(req.Status)),
			zap.Error(err))
		return nil, fmt.Errorf("failed to change case status: %w", err)
	}

	s.logger.Info("case status changed",
		zap.String("caseID", id.String()),
		zap.String("caseNumber", c.CaseNumber),
		zap.String("oldStatus", string(oldStatus)),
		zap.String("newStatus", string(req.Status)))

	return s.publishAndReturn(ctx, id)
}

// Delete removes a case and its dependent rows
func (s *CaseService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get case: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete case: %w", err)
	}

	s.logger.Info("case deleted", zap.String("caseID", id.String()))
	return nil
}

// GetHistory returns the append-only status history for a case, newest first
func (s *CaseService) GetHistory(ctx context.Context, id uuid.UUID) ([]domain.CaseStatusHistoryDTO, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get case: %w", err)
	}

	history, err := s.historyRepo.GetByCaseID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get status history: %w", err)
	}

	dtos := make([]domain.CaseStatusHistoryDTO, len(history))
	for i := range history {
		dtos[i] = mapper.ToCaseStatusHistoryDTO(&history[i])
	}
	return dtos, nil
}

// ExpireQuotations cancels active quotations whose validity window ended
// before now. Used by the scheduled job. Returns the number of cases moved.
func (s *CaseService) ExpireQuotations(ctx context.Context) (int, error) {
	expired, err := s.repo.FindExpiredQuotations(ctx, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to find expired quotations: %w", err)
	}

	count := 0
	for i := range expired {
		c := &expired[i]
		oldStatus := c.Status
		if err := s.repo.ChangeStatus(ctx, c.ID, &oldStatus, domain.CaseStatusCancelled, auth.SystemUser.DisplayName, "Quotation validity expired"); err != nil {
			s.logger.Error("failed to expire quotation",
				zap.String("caseID", c.ID.String()),
				zap.String("caseNumber", c.CaseNumber),
				zap.Error(err))
			continue
		}
		count++

		if _, err := s.publishAndReturn(ctx, c.ID); err != nil {
			s.logger.Warn("failed to broadcast expired quotation",
				zap.String("caseID", c.ID.String()),
				zap.Error(err))
		}
	}

	if count > 0 {
		s.logger.Info("expired quotations", zap.Int("count", count))
	}
	return count, nil
}

// publishAndReturn re-reads the expanded case, broadcasts it on the event
// bus and returns the DTO
func (s *CaseService) publishAndReturn(ctx context.Context, id uuid.UUID) (*domain.CaseDTO, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload case: %w", err)
	}
	dto := mapper.ToCaseDTO(c)
	if s.bus != nil {
		s.bus.Publish(bus.CaseUpdated{Case: dto})
	}
	return &dto, nil
}

// nullableUUID maps the zero UUID to NULL so clients can clear a reference
func nullableUUID(id uuid.UUID) interface{} {
	if id == uuid.Nil {
		return nil
	}
	return id
}
