package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harborline/caseflow-api/internal/bus"
	"github.com/harborline/caseflow-api/internal/domain"
	"github.com/harborline/caseflow-api/internal/repository"
	"github.com/harborline/caseflow-api/internal/service"
	"github.com/harborline/caseflow-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newCaseService(t *testing.T) (*service.CaseService, *gorm.DB, *bus.Bus) {
	db := testutil.SetupTestDB(t)
	eventBus := bus.New(zap.NewNop())

	caseRepo := repository.NewCaseRepository(db)
	historyRepo := repository.NewCaseStatusHistoryRepository(db)
	numbers := service.NewNumberSequenceService(repository.NewNumberSequenceRepository(db), zap.NewNop())

	return service.NewCaseService(caseRepo, historyRepo, numbers, eventBus, zap.NewNop()), db, eventBus
}

func TestCaseService_Create(t *testing.T) {
	svc, _, _ := newCaseService(t)
	ctx := context.Background()

	t.Run("defaults to draft booking export", func(t *testing.T) {
		c, err := svc.Create(ctx, &domain.CreateCaseRequest{})
		require.NoError(t, err)

		assert.Equal(t, domain.CaseStatusDraft, c.Status)
		assert.Equal(t, domain.CaseTypeBooking, c.CaseType)
		assert.Equal(t, domain.DirectionExport, c.Direction)
	})

	t.Run("case number format", func(t *testing.T) {
		c, err := svc.Create(ctx, &domain.CreateCaseRequest{})
		require.NoError(t, err)

		year := time.Now().Year()
		assert.Regexp(t, fmt.Sprintf(`^CASE-%d-\d{5}$`, year), c.CaseNumber)
	})

	t.Run("numbers are sequential", func(t *testing.T) {
		c1, err := svc.Create(ctx, &domain.CreateCaseRequest{})
		require.NoError(t, err)
		c2, err := svc.Create(ctx, &domain.CreateCaseRequest{})
		require.NoError(t, err)

		assert.NotEqual(t, c1.CaseNumber, c2.CaseNumber)
		assert.Greater(t, c2.CaseNumber, c1.CaseNumber)
	})

	t.Run("records initial history entry", func(t *testing.T) {
		c, err := svc.Create(ctx, &domain.CreateCaseRequest{})
		require.NoError(t, err)

		history, err := svc.GetHistory(ctx, c.ID)
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Nil(t, history[0].OldStatus)
		assert.Equal(t, domain.CaseStatusDraft, history[0].NewStatus)
		assert.Equal(t, "Case created", history[0].ChangeReason)
	})

	t.Run("explicit quotation type", func(t *testing.T) {
		c, err := svc.Create(ctx, &domain.CreateCaseRequest{
			CaseType:  domain.CaseTypeQuotation,
			Direction: domain.DirectionImport,
		})
		require.NoError(t, err)

		assert.Equal(t, domain.CaseTypeQuotation, c.CaseType)
		assert.Equal(t, domain.DirectionImport, c.Direction)
	})

	t.Run("invalid type rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, &domain.CreateCaseRequest{CaseType: "shipment"})
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})
}

func TestCaseService_ChangeStatus(t *testing.T) {
	svc, _, _ := newCaseService(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, &domain.CreateCaseRequest{})
	require.NoError(t, err)

	t.Run("applies status and appends history", func(t *testing.T) {
		updated, err := svc.ChangeStatus(ctx, c.ID, &domain.UpdateCaseStatusRequest{
			Status: domain.CaseStatusActive,
			Reason: "Booking confirmed by customer",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.CaseStatusActive, updated.Status)

		history, err := svc.GetHistory(ctx, c.ID)
		require.NoError(t, err)
		require.Len(t, history, 2)

		// Newest first
		require.NotNil(t, history[0].OldStatus)
		assert.Equal(t, domain.CaseStatusDraft, *history[0].OldStatus)
		assert.Equal(t, domain.CaseStatusActive, history[0].NewStatus)
		assert.Equal(t, "Booking confirmed by customer", history[0].ChangeReason)
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		before, err := svc.GetHistory(ctx, c.ID)
		require.NoError(t, err)

		updated, err := svc.ChangeStatus(ctx, c.ID, &domain.UpdateCaseStatusRequest{
			Status: domain.CaseStatusActive,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.CaseStatusActive, updated.Status)

		after, err := svc.GetHistory(ctx, c.ID)
		require.NoError(t, err)
		assert.Len(t, after, len(before))
	})

	t.Run("empty reason gets default", func(t *testing.T) {
		_, err := svc.ChangeStatus(ctx, c.ID, &domain.UpdateCaseStatusRequest{
			Status: domain.CaseStatusOnHold,
		})
		require.NoError(t, err)

		history, err := svc.GetHistory(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, "Status updated via settings", history[0].ChangeReason)
	})

	t.Run("invalid status rejected", func(t *testing.T) {
		_, err := svc.ChangeStatus(ctx, c.ID, &domain.UpdateCaseStatusRequest{
			Status: "open",
		})
		assert.ErrorIs(t, err, service.ErrInvalidStatus)
	})

	t.Run("unknown case", func(t *testing.T) {
		_, err := svc.ChangeStatus(ctx, uuid.New(), &domain.UpdateCaseStatusRequest{
			Status: domain.CaseStatusActive,
		})
		assert.ErrorIs(t, err, service.ErrNotFound)
	})
}

func TestCaseService_Update(t *testing.T) {
	svc, db, _ := newCaseService(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, &domain.CreateCaseRequest{})
	require.NoError(t, err)

	t.Run("applies only provided fields", func(t *testing.T) {
		vessel := "MV Polar Star"
		pickup := "2026-09-15"
		updated, err := svc.Update(ctx, c.ID, &domain.UpdateCaseRequest{
			VesselName: &vessel,
			PickupDate: &pickup,
		})
		require.NoError(t, err)

		assert.Equal(t, "MV Polar Star", updated.VesselName)
		require.NotNil(t, updated.PickupDate)
		assert.Equal(t, "2026-09-15", *updated.PickupDate)
		assert.Equal(t, c.CaseNumber, updated.CaseNumber)
	})

	t.Run("empty date string clears the column", func(t *testing.T) {
		empty := ""
		updated, err := svc.Update(ctx, c.ID, &domain.UpdateCaseRequest{
			PickupDate: &empty,
		})
		require.NoError(t, err)
		assert.Nil(t, updated.PickupDate)
	})

	t.Run("links customer and expands relation", func(t *testing.T) {
		customer := &domain.Customer{CompanyName: "Acme Shipping", CustomerCode: "ACMESHIPPI"}
		require.NoError(t, db.Create(customer).Error)

		updated, err := svc.Update(ctx, c.ID, &domain.UpdateCaseRequest{
			CustomerID: &customer.ID,
		})
		require.NoError(t, err)
		require.NotNil(t, updated.Customer)
		assert.Equal(t, "Acme Shipping", updated.Customer.CompanyName)
	})

	t.Run("nil uuid clears the link", func(t *testing.T) {
		nilID := uuid.Nil
		updated, err := svc.Update(ctx, c.ID, &domain.UpdateCaseRequest{
			CustomerID: &nilID,
		})
		require.NoError(t, err)
		assert.Nil(t, updated.CustomerID)
	})

	t.Run("unknown case", func(t *testing.T) {
		_, err := svc.Update(ctx, uuid.New(), &domain.UpdateCaseRequest{})
		assert.ErrorIs(t, err, service.ErrNotFound)
	})
}

func TestCaseService_UpdateBroadcastsFreshState(t *testing.T) {
	svc, _, eventBus := newCaseService(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, &domain.CreateCaseRequest{})
	require.NoError(t, err)

	var received []domain.CaseDTO
	eventBus.SubscribeCaseUpdated(func(ev bus.CaseUpdated) {
		received = append(received, ev.Case)
	})

	carrier := "Maersk"
	updated, err := svc.Update(ctx, c.ID, &domain.UpdateCaseRequest{Carrier: &carrier})
	require.NoError(t, err)

	require.Len(t, received, 1)
	assert.Equal(t, updated.ID, received[0].ID)
	assert.Equal(t, "Maersk", received[0].Carrier)
}

func TestCaseService_Delete(t *testing.T) {
	svc, _, _ := newCaseService(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, &domain.CreateCaseRequest{})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, c.ID))

	_, err = svc.GetByID(ctx, c.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, c.ID), service.ErrNotFound)
}

func TestCaseService_ExpireQuotations(t *testing.T) {
	svc, db, _ := newCaseService(t)
	ctx := context.Background()

	expired, err := svc.Create(ctx, &domain.CreateCaseRequest{CaseType: domain.CaseTypeQuotation})
	require.NoError(t, err)
	stillValid, err := svc.Create(ctx, &domain.CreateCaseRequest{CaseType: domain.CaseTypeQuotation})
	require.NoError(t, err)
	booking, err := svc.Create(ctx, &domain.CreateCaseRequest{})
	require.NoError(t, err)

	for _, id := range []uuid.UUID{expired.ID, stillValid.ID, booking.ID} {
		_, err := svc.ChangeStatus(ctx, id, &domain.UpdateCaseStatusRequest{Status: domain.CaseStatusActive})
		require.NoError(t, err)
	}

	yesterday := time.Now().AddDate(0, 0, -1)
	tomorrow := time.Now().AddDate(0, 0, 1)
	require.NoError(t, db.Model(&domain.Case{}).Where("id = ?", expired.ID).Update("validity_to", yesterday).Error)
	require.NoError(t, db.Model(&domain.Case{}).Where("id = ?", stillValid.ID).Update("validity_to", tomorrow).Error)
	require.NoError(t, db.Model(&domain.Case{}).Where("id = ?", booking.ID).Update("validity_to", yesterday).Error)

	count, err := svc.ExpireQuotations(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	got, err := svc.GetByID(ctx, expired.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CaseStatusCancelled, got.Status)

	history, err := svc.GetHistory(ctx, expired.ID)
	require.NoError(t, err)
	assert.Equal(t, "Quotation validity expired", history[0].ChangeReason)
	assert.Equal(t, "System User", history[0].ChangedBy)

	got, err = svc.GetByID(ctx, stillValid.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CaseStatusActive, got.Status)

	got, err = svc.GetByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CaseStatusActive, got.Status)
}
