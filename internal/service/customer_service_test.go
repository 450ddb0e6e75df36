package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/harborline/caseflow-api/internal/bus"
	"github.com/harborline/caseflow-api/internal/domain"
	"github.com/harborline/caseflow-api/internal/picker"
	"github.com/harborline/caseflow-api/internal/repository"
	"github.com/harborline/caseflow-api/internal/service"
	"github.com/harborline/caseflow-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newCustomerService(t *testing.T) (*service.CustomerService, *bus.Bus) {
	db := testutil.SetupTestDB(t)
	eventBus := bus.New(zap.NewNop())
	repo := repository.NewCustomerRepository(db)
	return service.NewCustomerService(repo, nil, eventBus, zap.NewNop()), eventBus
}

func TestCustomerService_Create(t *testing.T) {
	svc, _ := newCustomerService(t)
	ctx := context.Background()

	t.Run("derives customer code from company name", func(t *testing.T) {
		c, err := svc.Create(ctx, &domain.CreateCustomerRequest{
			CompanyName: "Acme Shipping & Co.",
			Email:       "ops@acme.example",
		})
		require.NoError(t, err)

		assert.Equal(t, "ACMESHIPPI", c.CustomerCode)
		assert.Equal(t, "Acme Shipping & Co.", c.CompanyName)
	})

	t.Run("rejects name that yields no code", func(t *testing.T) {
		_, err := svc.Create(ctx, &domain.CreateCustomerRequest{CompanyName: "&&&"})
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})
}

func TestCustomerService_CreateRejectsDuplicateCode(t *testing.T) {
	svc, _ := newCustomerService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &domain.CreateCustomerRequest{CompanyName: "Acme Shipping & Co."})
	require.NoError(t, err)

	// "Acme Shipping AS" also collapses to ACMESHIPPI
	_, err = svc.Create(ctx, &domain.CreateCustomerRequest{CompanyName: "Acme Shipping AS"})
	assert.ErrorIs(t, err, service.ErrConflict)
}

func TestCustomerService_UpdateKeepsCode(t *testing.T) {
	svc, _ := newCustomerService(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, &domain.CreateCustomerRequest{CompanyName: "Nordic Line AS"})
	require.NoError(t, err)
	originalCode := c.CustomerCode

	updated, err := svc.Update(ctx, c.ID, &domain.UpdateCustomerRequest{
		CompanyName: "Baltic Line AS",
		Country:     "Norway",
	})
	require.NoError(t, err)

	// The code is derived once at creation and never regenerated
	assert.Equal(t, "Baltic Line AS", updated.CompanyName)
	assert.Equal(t, originalCode, updated.CustomerCode)
	assert.Equal(t, "Norway", updated.Country)
}

func TestCustomerService_PublishesOnWrite(t *testing.T) {
	svc, eventBus := newCustomerService(t)
	ctx := context.Background()

	events := 0
	eventBus.SubscribeCustomerUpdated(func(bus.CustomerUpdated) { events++ })

	c, err := svc.Create(ctx, &domain.CreateCustomerRequest{CompanyName: "Acme Shipping"})
	require.NoError(t, err)
	assert.Equal(t, 1, events)

	_, err = svc.Update(ctx, c.ID, &domain.UpdateCustomerRequest{CompanyName: "Acme Shipping"})
	require.NoError(t, err)
	assert.Equal(t, 2, events)
}

func TestCustomerService_Options(t *testing.T) {
	svc, _ := newCustomerService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &domain.CreateCustomerRequest{CompanyName: "Hamburg Freight GmbH"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &domain.CreateCustomerRequest{CompanyName: "Oslo Cargo AS"})
	require.NoError(t, err)

	options, err := svc.Options(ctx, "hamburg")
	require.NoError(t, err)
	require.Len(t, options, 1)
	assert.Equal(t, "Hamburg Freight GmbH", options[0].Label)
	assert.Equal(t, "HAMBURGFRE", options[0].Subtitle)
}

func TestCustomerService_OptionsFeedPicker(t *testing.T) {
	svc, _ := newCustomerService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &domain.CreateCustomerRequest{CompanyName: "Hamburg Freight GmbH"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &domain.CreateCustomerRequest{CompanyName: "Oslo Cargo AS"})
	require.NoError(t, err)

	options, err := svc.Options(ctx, "")
	require.NoError(t, err)

	// Candidates are picker-native: narrowing by subtitle (the customer
	// code) works without any conversion
	p := picker.New(options)
	p.SetQuery("OSLOCARGO")
	filtered := p.Filtered()
	require.Len(t, filtered, 1)
	assert.Equal(t, "Oslo Cargo AS", filtered[0].Label)

	var picked *picker.Candidate
	p.OnSelect(func(sel picker.Selection) { picked = sel.Candidate })
	p.HandleKey(picker.KeyArrowDown)
	p.HandleKey(picker.KeyArrowDown)
	p.HandleKey(picker.KeyEnter)
	require.NotNil(t, picked)
	assert.Equal(t, filtered[0].ID, picked.ID)
}

func TestCustomerService_ImportFromLegacyUnavailable(t *testing.T) {
	svc, _ := newCustomerService(t)

	_, err := svc.ImportFromLegacy(context.Background())
	assert.ErrorIs(t, err, service.ErrLegacyUnavailable)
}

func TestCustomerService_GetByIDNotFound(t *testing.T) {
	svc, _ := newCustomerService(t)

	_, err := svc.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, service.ErrNotFound)
}
