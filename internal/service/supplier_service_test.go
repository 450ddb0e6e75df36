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
)

func newSupplierService(t *testing.T) *service.SupplierService {
	db := testutil.SetupTestDB(t)
	return service.NewSupplierService(repository.NewSupplierRepository(db), zap.NewNop())
}

func TestSupplierService_CRUD(t *testing.T) {
	svc := newSupplierService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &domain.CreateSupplierRequest{
		Name:          "Nordic Chartering",
		ContactPerson: "Kari Olsen",
		Email:         "kari@nordic-chartering.no",
		Country:       "Norway",
	})
	require.NoError(t, err)
	assert.Equal(t, "Nordic Chartering", created.Name)

	updated, err := svc.Update(ctx, created.ID, &domain.CreateSupplierRequest{
		Name:    "Nordic Chartering AS",
		Country: "Norway",
	})
	require.NoError(t, err)
	assert.Equal(t, "Nordic Chartering AS", updated.Name)
	assert.Empty(t, updated.ContactPerson)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestSupplierService_UpdateUnknown(t *testing.T) {
	svc := newSupplierService(t)

	_, err := svc.Update(context.Background(), uuid.New(), &domain.CreateSupplierRequest{Name: "Ghost"})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestSupplierService_Options(t *testing.T) {
	svc := newSupplierService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &domain.CreateSupplierRequest{Name: "Hamburg Port Agency", Country: "Germany"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &domain.CreateSupplierRequest{Name: "Rotterdam Stevedoring", Country: "Netherlands"})
	require.NoError(t, err)

	options, err := svc.Options(ctx, "hamburg")
	require.NoError(t, err)
	require.Len(t, options, 1)
	assert.Equal(t, "Hamburg Port Agency", options[0].Label)
	assert.Equal(t, "Germany", options[0].Subtitle)
}
