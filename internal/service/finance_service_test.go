package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/harborline/caseflow-api/internal/domain"
	"github.com/harborline/caseflow-api/internal/repository"
	"github.com/harborline/caseflow-api/internal/service"
	"github.com/harborline/caseflow-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newFinanceService(t *testing.T) (*service.FinanceService, *gorm.DB, uuid.UUID) {
	db := testutil.SetupTestDB(t)

	c := &domain.Case{
		CaseNumber: "CASE-2026-00001",
		CaseType:   domain.CaseTypeBooking,
		Direction:  domain.DirectionExport,
		Status:     domain.CaseStatusDraft,
	}
	require.NoError(t, db.Create(c).Error)

	svc := service.NewFinanceService(
		repository.NewCaseFinanceRepository(db),
		repository.NewCaseRepository(db),
		repository.NewServiceRepository(db),
		zap.NewNop(),
	)
	return svc, db, c.ID
}

func floatPtr(v float64) *float64 { return &v }

func TestFinanceService_AddRow(t *testing.T) {
	svc, _, caseID := newFinanceService(t)
	ctx := context.Background()

	t.Run("defaults quantity and currencies", func(t *testing.T) {
		ledger, err := svc.AddRow(ctx, caseID, &domain.CreateFinanceRowRequest{
			Description:   "Ocean freight",
			PurchasePrice: floatPtr(900),
			SalesPrice:    floatPtr(1200),
		})
		require.NoError(t, err)
		require.Len(t, ledger.Rows, 1)

		row := ledger.Rows[0]
		assert.Equal(t, 1.0, row.Quantity)
		assert.Equal(t, domain.CurrencyEUR, row.PurchaseCurrency)
		assert.Equal(t, domain.CurrencyEUR, row.SalesCurrency)
	})

	t.Run("returns recomputed summary", func(t *testing.T) {
		ledger, err := svc.AddRow(ctx, caseID, &domain.CreateFinanceRowRequest{
			Quantity:      floatPtr(2),
			Description:   "THC",
			PurchasePrice: floatPtr(100),
			SalesPrice:    floatPtr(150),
		})
		require.NoError(t, err)
		require.Len(t, ledger.Rows, 2)

		assert.Equal(t, 1100.0, ledger.Summary.TotalPurchase)
		assert.Equal(t, 1500.0, ledger.Summary.TotalSales)
		assert.Equal(t, 400.0, ledger.Summary.Profit)
		assert.Equal(t, 2, ledger.Summary.RowCount)
	})

	t.Run("invalid currency rejected", func(t *testing.T) {
		_, err := svc.AddRow(ctx, caseID, &domain.CreateFinanceRowRequest{
			PurchaseCurrency: "NOK",
		})
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})

	t.Run("unknown case", func(t *testing.T) {
		_, err := svc.AddRow(ctx, uuid.New(), &domain.CreateFinanceRowRequest{})
		assert.ErrorIs(t, err, service.ErrNotFound)
	})
}

func TestFinanceService_AddRowPrefillsFromService(t *testing.T) {
	svc, db, caseID := newFinanceService(t)
	ctx := context.Background()

	catalogEntry := &domain.Service{
		Name:                 "Customs Clearance",
		DefaultPurchasePrice: floatPtr(80),
		DefaultSalesPrice:    floatPtr(120),
	}
	require.NoError(t, db.Create(catalogEntry).Error)

	t.Run("omitted prices come from the catalog", func(t *testing.T) {
		ledger, err := svc.AddRow(ctx, caseID, &domain.CreateFinanceRowRequest{
			ServiceID: &catalogEntry.ID,
		})
		require.NoError(t, err)
		require.Len(t, ledger.Rows, 1)

		row := ledger.Rows[0]
		assert.Equal(t, 80.0, row.PurchasePrice)
		assert.Equal(t, 120.0, row.SalesPrice)
		assert.Equal(t, "Customs Clearance", row.Description)
	})

	t.Run("explicit prices win over defaults", func(t *testing.T) {
		ledger, err := svc.AddRow(ctx, caseID, &domain.CreateFinanceRowRequest{
			ServiceID:     &catalogEntry.ID,
			Description:   "Customs, expedited",
			PurchasePrice: floatPtr(95),
			SalesPrice:    floatPtr(140),
		})
		require.NoError(t, err)

		row := ledger.Rows[len(ledger.Rows)-1]
		assert.Equal(t, 95.0, row.PurchasePrice)
		assert.Equal(t, 140.0, row.SalesPrice)
		assert.Equal(t, "Customs, expedited", row.Description)
	})
}

func TestFinanceService_UpdateRow(t *testing.T) {
	svc, db, caseID := newFinanceService(t)
	ctx := context.Background()

	ledger, err := svc.AddRow(ctx, caseID, &domain.CreateFinanceRowRequest{
		Description:   "Ocean freight",
		PurchasePrice: floatPtr(900),
		SalesPrice:    floatPtr(1200),
	})
	require.NoError(t, err)
	rowID := ledger.Rows[0].ID

	t.Run("applies partial update", func(t *testing.T) {
		updated, err := svc.UpdateRow(ctx, caseID, rowID, &domain.UpdateFinanceRowRequest{
			SalesPrice: floatPtr(1300),
		})
		require.NoError(t, err)

		assert.Equal(t, 1300.0, updated.Rows[0].SalesPrice)
		assert.Equal(t, 900.0, updated.Rows[0].PurchasePrice)
		assert.Equal(t, 400.0, updated.Summary.Profit)
	})

	t.Run("row must belong to the case", func(t *testing.T) {
		other := &domain.Case{
			CaseNumber: "CASE-2026-00002",
			CaseType:   domain.CaseTypeBooking,
			Direction:  domain.DirectionExport,
			Status:     domain.CaseStatusDraft,
		}
		require.NoError(t, db.Create(other).Error)

		_, err := svc.UpdateRow(ctx, other.ID, rowID, &domain.UpdateFinanceRowRequest{
			SalesPrice: floatPtr(1),
		})
		assert.ErrorIs(t, err, service.ErrNotFound)
	})
}

func TestFinanceService_DeleteRow(t *testing.T) {
	svc, _, caseID := newFinanceService(t)
	ctx := context.Background()

	ledger, err := svc.AddRow(ctx, caseID, &domain.CreateFinanceRowRequest{
		PurchasePrice: floatPtr(50),
		SalesPrice:    floatPtr(75),
	})
	require.NoError(t, err)

	after, err := svc.DeleteRow(ctx, caseID, ledger.Rows[0].ID)
	require.NoError(t, err)

	assert.Empty(t, after.Rows)
	assert.Equal(t, 0.0, after.Summary.TotalSales)
	assert.Equal(t, 0.0, after.Summary.MarginPercent)
}

func TestFinanceService_GetLedgerUnknownCase(t *testing.T) {
	svc, _, _ := newFinanceService(t)

	_, err := svc.GetLedger(context.Background(), uuid.New())
	assert.ErrorIs(t, err, service.ErrNotFound)
}
