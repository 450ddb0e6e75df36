package domain_test

import (
	"testing"

	"github.com/harborline/caseflow-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestDeriveCustomerCode(t *testing.T) {
	t.Run("strips special characters and truncates", func(t *testing.T) {
		assert.Equal(t, "ACMESHIPPI", domain.DeriveCustomerCode("Acme Shipping & Co."))
	})

	t.Run("uppercases", func(t *testing.T) {
		assert.Equal(t, "NORDICLINE", domain.DeriveCustomerCode("nordic line services"))
	})

	t.Run("keeps digits", func(t *testing.T) {
		assert.Equal(t, "3PLOGISTIC", domain.DeriveCustomerCode("3P Logistics AS"))
	})

	t.Run("short name stays short", func(t *testing.T) {
		assert.Equal(t, "DHL", domain.DeriveCustomerCode("DHL"))
	})

	t.Run("only special characters yields empty code", func(t *testing.T) {
		assert.Equal(t, "", domain.DeriveCustomerCode("&/()!"))
	})
}

func TestDerivePortCode(t *testing.T) {
	t.Run("letters only truncated to five", func(t *testing.T) {
		assert.Equal(t, "ROTTE", domain.DerivePortCode("Rotterdam"))
	})

	t.Run("digits and spaces stripped", func(t *testing.T) {
		assert.Equal(t, "PORTO", domain.DerivePortCode("Port of 2 Oslo"))
	})

	t.Run("short name stays short", func(t *testing.T) {
		assert.Equal(t, "OSLO", domain.DerivePortCode("Oslo"))
	})
}

func TestSummarizeFinance(t *testing.T) {
	t.Run("totals and margin", func(t *testing.T) {
		rows := []domain.CaseFinance{
			{Quantity: 2, PurchasePrice: 10, SalesPrice: 15},
			{Quantity: 1, PurchasePrice: 5, SalesPrice: 5},
		}

		s := domain.SummarizeFinance(rows)
		assert.Equal(t, 25.0, s.TotalPurchase)
		assert.Equal(t, 35.0, s.TotalSales)
		assert.Equal(t, 10.0, s.Profit)
		assert.InDelta(t, 28.57, s.MarginPercent, 0.01)
		assert.Equal(t, 2, s.RowCount)
	})

	t.Run("empty row set", func(t *testing.T) {
		s := domain.SummarizeFinance(nil)
		assert.Equal(t, 0.0, s.TotalPurchase)
		assert.Equal(t, 0.0, s.TotalSales)
		assert.Equal(t, 0.0, s.MarginPercent)
		assert.Equal(t, 0, s.RowCount)
	})

	t.Run("margin is zero when sales are zero", func(t *testing.T) {
		rows := []domain.CaseFinance{
			{Quantity: 1, PurchasePrice: 100, SalesPrice: 0},
		}

		s := domain.SummarizeFinance(rows)
		assert.Equal(t, -100.0, s.Profit)
		assert.Equal(t, 0.0, s.MarginPercent)
	})
}

func TestCaseStatusIsValid(t *testing.T) {
	valid := []domain.CaseStatus{
		domain.CaseStatusDraft,
		domain.CaseStatusActive,
		domain.CaseStatusCompleted,
		domain.CaseStatusCancelled,
		domain.CaseStatusOnHold,
		domain.CaseStatusArchived,
	}
	for _, s := range valid {
		assert.True(t, s.IsValid(), "expected %s to be valid", s)
	}

	assert.False(t, domain.CaseStatus("open").IsValid())
	assert.False(t, domain.CaseStatus("").IsValid())
}

func TestCurrencyIsValid(t *testing.T) {
	assert.True(t, domain.CurrencyEUR.IsValid())
	assert.True(t, domain.CurrencyAED.IsValid())
	assert.False(t, domain.Currency("NOK").IsValid())
}
