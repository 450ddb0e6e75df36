package service_test

import (
	"context"
	"testing"

	"github.com/harborline/caseflow-api/internal/domain"
	"github.com/harborline/caseflow-api/internal/repository"
	"github.com/harborline/caseflow-api/internal/service"
	"github.com/harborline/caseflow-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newPortService(t *testing.T) *service.PortService {
	db := testutil.SetupTestDB(t)
	return service.NewPortService(repository.NewPortRepository(db), zap.NewNop())
}

func TestPortService_Create(t *testing.T) {
	svc := newPortService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, &domain.CreatePortRequest{
		Code:    "nlrtm",
		Name:    "Rotterdam",
		City:    "Rotterdam",
		Country: "Netherlands",
	})
	require.NoError(t, err)

	assert.Equal(t, "NLRTM", p.Code)
	assert.Equal(t, "Rotterdam", p.Name)
}

func TestPortService_CreateAdhoc(t *testing.T) {
	svc := newPortService(t)
	ctx := context.Background()

	t.Run("derives code and fills defaults", func(t *testing.T) {
		p, err := svc.CreateAdhoc(ctx, &domain.AdhocPortRequest{Name: "Zeebrugge"})
		require.NoError(t, err)

		assert.Equal(t, "ZEEBR", p.Code)
		assert.Equal(t, "Zeebrugge", p.Name)
		assert.Equal(t, "Zeebrugge", p.City)
		assert.Equal(t, "Unknown", p.Country)
	})

	t.Run("same derived code returns the existing port", func(t *testing.T) {
		first, err := svc.CreateAdhoc(ctx, &domain.AdhocPortRequest{Name: "Gothenburg"})
		require.NoError(t, err)

		// "Gothe nburg" derives the same five-letter code
		second, err := svc.CreateAdhoc(ctx, &domain.AdhocPortRequest{Name: "Gothe nburg"})
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, "Gothenburg", second.Name)
	})

	t.Run("rejects name without letters", func(t *testing.T) {
		_, err := svc.CreateAdhoc(ctx, &domain.AdhocPortRequest{Name: "1234"})
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})
}

func TestPortService_Options(t *testing.T) {
	svc := newPortService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &domain.CreatePortRequest{Code: "DEHAM", Name: "Hamburg"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &domain.CreatePortRequest{Code: "BEANR", Name: "Antwerp"})
	require.NoError(t, err)

	options, err := svc.Options(ctx, "ham")
	require.NoError(t, err)
	require.Len(t, options, 1)
	assert.Equal(t, "Hamburg", options[0].Label)
	assert.Equal(t, "DEHAM", options[0].Subtitle)
}
