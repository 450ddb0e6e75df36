package repository_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/harborline/caseflow-api/internal/domain"
	"github.com/harborline/caseflow-api/internal/repository"
	"github.com/harborline/caseflow-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedListCases(t *testing.T, db *gorm.DB) {
	customer := &domain.Customer{CompanyName: "Acme Shipping", CustomerCode: "ACMESHIPPI"}
	require.NoError(t, db.Create(customer).Error)

	cases := []domain.Case{
		{
			CaseNumber:       "CASE-2026-00001",
			CaseType:         domain.CaseTypeBooking,
			Direction:        domain.DirectionExport,
			Status:           domain.CaseStatusActive,
			CustomerID:       &customer.ID,
			CargoDescription: "Frozen salmon",
		},
		{
			CaseNumber:       "CASE-2026-00002",
			CaseType:         domain.CaseTypeQuotation,
			Direction:        domain.DirectionImport,
			Status:           domain.CaseStatusDraft,
			CargoDescription: "Machine parts",
		},
		{
			CaseNumber: "CASE-2026-00003",
			CaseType:   domain.CaseTypeBooking,
			Direction:  domain.DirectionExport,
			Status:     domain.CaseStatusCompleted,
		},
	}
	for i := range cases {
		require.NoError(t, db.Create(&cases[i]).Error)
	}
}

func TestCaseRepository_List(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewCaseRepository(db)
	ctx := context.Background()
	seedListCases(t, db)

	t.Run("returns all without filters", func(t *testing.T) {
		cases, total, err := repo.List(ctx, 1, 20, nil, repository.DefaultSortConfig())
		require.NoError(t, err)
		assert.EqualValues(t, 3, total)
		assert.Len(t, cases, 3)
	})

	t.Run("search matches case number", func(t *testing.T) {
		cases, total, err := repo.List(ctx, 1, 20, &repository.CaseFilters{Search: "00002"}, repository.DefaultSortConfig())
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, cases, 1)
		assert.Equal(t, "CASE-2026-00002", cases[0].CaseNumber)
	})

	t.Run("search matches customer name", func(t *testing.T) {
		cases, _, err := repo.List(ctx, 1, 20, &repository.CaseFilters{Search: "acme"}, repository.DefaultSortConfig())
		require.NoError(t, err)
		require.Len(t, cases, 1)
		assert.Equal(t, "CASE-2026-00001", cases[0].CaseNumber)
	})

	t.Run("search matches cargo description", func(t *testing.T) {
		cases, _, err := repo.List(ctx, 1, 20, &repository.CaseFilters{Search: "machine"}, repository.DefaultSortConfig())
		require.NoError(t, err)
		require.Len(t, cases, 1)
		assert.Equal(t, "CASE-2026-00002", cases[0].CaseNumber)
	})

	t.Run("status filter", func(t *testing.T) {
		status := domain.CaseStatusActive
		_, total, err := repo.List(ctx, 1, 20, &repository.CaseFilters{Status: &status}, repository.DefaultSortConfig())
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
	})

	t.Run("case type filter", func(t *testing.T) {
		caseType := domain.CaseTypeBooking
		_, total, err := repo.List(ctx, 1, 20, &repository.CaseFilters{CaseType: &caseType}, repository.DefaultSortConfig())
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
	})

	t.Run("expands customer relation", func(t *testing.T) {
		cases, _, err := repo.List(ctx, 1, 20, &repository.CaseFilters{Search: "acme"}, repository.DefaultSortConfig())
		require.NoError(t, err)
		require.Len(t, cases, 1)
		require.NotNil(t, cases[0].Customer)
		assert.Equal(t, "Acme Shipping", cases[0].Customer.CompanyName)
	})

	t.Run("sorts by case number", func(t *testing.T) {
		cases, _, err := repo.List(ctx, 1, 20, nil, repository.SortConfig{
			Field: "caseNumber",
			Order: repository.SortOrderAsc,
		})
		require.NoError(t, err)
		require.Len(t, cases, 3)
		assert.Equal(t, "CASE-2026-00001", cases[0].CaseNumber)
		assert.Equal(t, "CASE-2026-00003", cases[2].CaseNumber)
	})
}

func TestCaseRepository_ListPagination(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewCaseRepository(db)
	ctx := context.Background()

	for i := 1; i <= 25; i++ {
		c := domain.Case{
			CaseNumber: fmt.Sprintf("CASE-2026-%05d", i),
			CaseType:   domain.CaseTypeBooking,
			Direction:  domain.DirectionExport,
			Status:     domain.CaseStatusDraft,
		}
		require.NoError(t, db.Create(&c).Error)
	}

	sort := repository.SortConfig{Field: "caseNumber", Order: repository.SortOrderAsc}

	page1, total, err := repo.List(ctx, 1, 10, nil, sort)
	require.NoError(t, err)
	assert.EqualValues(t, 25, total)
	require.Len(t, page1, 10)
	assert.Equal(t, "CASE-2026-00001", page1[0].CaseNumber)

	page3, _, err := repo.List(ctx, 3, 10, nil, sort)
	require.NoError(t, err)
	require.Len(t, page3, 5)
	assert.Equal(t, "CASE-2026-00021", page3[0].CaseNumber)

	// Out-of-range values fall back to sane defaults
	fallback, _, err := repo.List(ctx, 0, 0, nil, sort)
	require.NoError(t, err)
	assert.Len(t, fallback, 20)
}

func TestCaseRepository_ChangeStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewCaseRepository(db)
	ctx := context.Background()

	c := &domain.Case{
		CaseNumber: "CASE-2026-00099",
		CaseType:   domain.CaseTypeBooking,
		Direction:  domain.DirectionExport,
		Status:     domain.CaseStatusDraft,
	}
	require.NoError(t, db.Create(c).Error)

	oldStatus := domain.CaseStatusDraft
	err := repo.ChangeStatus(ctx, c.ID, &oldStatus, domain.CaseStatusActive, "Test User", "Booking confirmed")
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CaseStatusActive, got.Status)

	var entries []domain.CaseStatusHistory
	require.NoError(t, db.Where("case_id = ?", c.ID).Find(&entries).Error)
	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].OldStatus)
	assert.Equal(t, domain.CaseStatusDraft, *entries[0].OldStatus)
	assert.Equal(t, domain.CaseStatusActive, entries[0].NewStatus)
	assert.Equal(t, "Test User", entries[0].ChangedBy)
}

func TestCaseRepository_DeleteCascades(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewCaseRepository(db)
	ctx := context.Background()

	c := &domain.Case{
		CaseNumber: "CASE-2026-00100",
		CaseType:   domain.CaseTypeBooking,
		Direction:  domain.DirectionExport,
		Status:     domain.CaseStatusDraft,
	}
	require.NoError(t, db.Create(c).Error)
	require.NoError(t, db.Create(&domain.CaseFinance{
		CaseID:           c.ID,
		Quantity:         1,
		PurchaseCurrency: domain.CurrencyEUR,
		SalesCurrency:    domain.CurrencyEUR,
	}).Error)

	require.NoError(t, repo.Delete(ctx, c.ID))

	_, err := repo.GetByID(ctx, c.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
