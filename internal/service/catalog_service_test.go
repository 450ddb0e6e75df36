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

func newCatalogService(t *testing.T) *service.CatalogService {
	db := testutil.SetupTestDB(t)
	return service.NewCatalogService(repository.NewServiceRepository(db), zap.NewNop())
}

func TestCatalogService_CreateAndUpdate(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	purchase := 80.0
	sales := 120.0
	created, err := svc.Create(ctx, &domain.CreateServiceRequest{
		Name:                 "Ocean Freight",
		Description:          "Port to port ocean leg",
		DefaultPurchasePrice: &purchase,
		DefaultSalesPrice:    &sales,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ocean Freight", created.Name)
	require.NotNil(t, created.DefaultSalesPrice)
	assert.Equal(t, 120.0, *created.DefaultSalesPrice)

	newSales := 135.0
	updated, err := svc.Update(ctx, created.ID, &domain.CreateServiceRequest{
		Name:              "Ocean Freight",
		Description:       "Port to port ocean leg",
		DefaultSalesPrice: &newSales,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.DefaultSalesPrice)
	assert.Equal(t, 135.0, *updated.DefaultSalesPrice)
	assert.Nil(t, updated.DefaultPurchasePrice)
}

func TestCatalogService_Options(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &domain.CreateServiceRequest{Name: "Customs Clearance", Description: "Import declaration"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &domain.CreateServiceRequest{Name: "Trucking", Description: "Door delivery"})
	require.NoError(t, err)

	options, err := svc.Options(ctx, "customs")
	require.NoError(t, err)
	require.Len(t, options, 1)
	assert.Equal(t, "Customs Clearance", options[0].Label)
	assert.Equal(t, "Import declaration", options[0].Subtitle)
}

func TestCatalogService_Delete(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &domain.CreateServiceRequest{Name: "Demurrage"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, uuid.New()), service.ErrNotFound)
}

func TestCatalogService_ListPagination(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	for _, name := range []string{"Ocean Freight", "Trucking", "Customs Clearance"} {
		_, err := svc.Create(ctx, &domain.CreateServiceRequest{Name: name})
		require.NoError(t, err)
	}

	page, err := svc.List(ctx, 1, 2, "")
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 2, page.TotalPages)
}
