package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/harborline/caseflow-api/internal/auth"
	"github.com/harborline/caseflow-api/internal/bus"
	"github.com/harborline/caseflow-api/internal/domain"
	"github.com/harborline/caseflow-api/internal/http/handler"
	"github.com/harborline/caseflow-api/internal/repository"
	"github.com/harborline/caseflow-api/internal/service"
	"github.com/harborline/caseflow-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newCaseHandler(t *testing.T) (*handler.CaseHandler, *service.CaseService, *gorm.DB) {
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()

	caseService := service.NewCaseService(
		repository.NewCaseRepository(db),
		repository.NewCaseStatusHistoryRepository(db),
		service.NewNumberSequenceService(repository.NewNumberSequenceRepository(db), logger),
		bus.New(logger),
		logger,
	)
	return handler.NewCaseHandler(caseService, logger), caseService, db
}

func authedContext() context.Context {
	user := &auth.UserContext{
		UserID:      uuid.New(),
		DisplayName: "Test User",
		Email:       "test@harborline.io",
	}
	return auth.WithUserContext(context.Background(), user)
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestCaseHandler_Create(t *testing.T) {
	h, _, _ := newCaseHandler(t)

	body, _ := json.Marshal(domain.CreateCaseRequest{CaseType: domain.CaseTypeQuotation})
	req := httptest.NewRequest(http.MethodPost, "/cases", bytes.NewReader(body))
	req = req.WithContext(authedContext())

	rr := httptest.NewRecorder()
	h.Create(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, rr.Header().Get("Location"), "/api/v1/cases/")

	var result domain.CaseDTO
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.Equal(t, domain.CaseTypeQuotation, result.CaseType)
	assert.Equal(t, domain.CaseStatusDraft, result.Status)
	assert.NotEmpty(t, result.CaseNumber)
}

func TestCaseHandler_CreateInvalidType(t *testing.T) {
	h, _, _ := newCaseHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/cases", bytes.NewReader([]byte(`{"caseType":"shipment"}`)))
	req = req.WithContext(authedContext())

	rr := httptest.NewRecorder()
	h.Create(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCaseHandler_List(t *testing.T) {
	h, svc, _ := newCaseHandler(t)
	ctx := authedContext()

	for i := 0; i < 3; i++ {
		_, err := svc.Create(ctx, &domain.CreateCaseRequest{})
		require.NoError(t, err)
	}

	t.Run("default page", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/cases", nil).WithContext(ctx)
		rr := httptest.NewRecorder()
		h.List(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)

		var result domain.PaginatedResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
		assert.EqualValues(t, 3, result.Total)
		assert.Equal(t, 1, result.Page)
		assert.Equal(t, 20, result.PageSize)
	})

	t.Run("invalid status filter rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/cases?status=open", nil).WithContext(ctx)
		rr := httptest.NewRecorder()
		h.List(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestCaseHandler_GetByID(t *testing.T) {
	h, svc, _ := newCaseHandler(t)
	ctx := authedContext()

	c, err := svc.Create(ctx, &domain.CreateCaseRequest{})
	require.NoError(t, err)

	t.Run("found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/cases/"+c.ID.String(), nil).WithContext(ctx)
		req = withURLParam(req, "id", c.ID.String())

		rr := httptest.NewRecorder()
		h.GetByID(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)

		var result domain.CaseDTO
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
		assert.Equal(t, c.CaseNumber, result.CaseNumber)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.New().String()
		req := httptest.NewRequest(http.MethodGet, "/cases/"+id, nil).WithContext(ctx)
		req = withURLParam(req, "id", id)

		rr := httptest.NewRecorder()
		h.GetByID(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/cases/abc", nil).WithContext(ctx)
		req = withURLParam(req, "id", "abc")

		rr := httptest.NewRecorder()
		h.GetByID(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestCaseHandler_Update(t *testing.T) {
	h, svc, _ := newCaseHandler(t)
	ctx := authedContext()

	c, err := svc.Create(ctx, &domain.CreateCaseRequest{})
	require.NoError(t, err)

	body := []byte(`{"vesselName":"MV Polar Star","pickupDate":"2026-09-15"}`)
	req := httptest.NewRequest(http.MethodPatch, "/cases/"+c.ID.String(), bytes.NewReader(body)).WithContext(ctx)
	req = withURLParam(req, "id", c.ID.String())

	rr := httptest.NewRecorder()
	h.Update(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var result domain.CaseDTO
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.Equal(t, "MV Polar Star", result.VesselName)
}

func TestCaseHandler_UpdateRejectsBadDate(t *testing.T) {
	h, svc, _ := newCaseHandler(t)
	ctx := authedContext()

	c, err := svc.Create(ctx, &domain.CreateCaseRequest{})
	require.NoError(t, err)

	body := []byte(`{"pickupDate":"15.09.2026"}`)
	req := httptest.NewRequest(http.MethodPatch, "/cases/"+c.ID.String(), bytes.NewReader(body)).WithContext(ctx)
	req = withURLParam(req, "id", c.ID.String())

	rr := httptest.NewRecorder()
	h.Update(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCaseHandler_ChangeStatusAndHistory(t *testing.T) {
	h, svc, _ := newCaseHandler(t)
	ctx := authedContext()

	c, err := svc.Create(ctx, &domain.CreateCaseRequest{})
	require.NoError(t, err)

	body := []byte(`{"status":"active","reason":"Booking confirmed"}`)
	req := httptest.NewRequest(http.MethodPut, "/cases/"+c.ID.String()+"/status", bytes.NewReader(body)).WithContext(ctx)
	req = withURLParam(req, "id", c.ID.String())

	rr := httptest.NewRecorder()
	h.ChangeStatus(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var updated domain.CaseDTO
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &updated))
	assert.Equal(t, domain.CaseStatusActive, updated.Status)

	histReq := httptest.NewRequest(http.MethodGet, "/cases/"+c.ID.String()+"/history", nil).WithContext(ctx)
	histReq = withURLParam(histReq, "id", c.ID.String())

	histRR := httptest.NewRecorder()
	h.History(histRR, histReq)

	require.Equal(t, http.StatusOK, histRR.Code)

	var history []domain.CaseStatusHistoryDTO
	require.NoError(t, json.Unmarshal(histRR.Body.Bytes(), &history))
	require.Len(t, history, 2)
	assert.Equal(t, domain.CaseStatusActive, history[0].NewStatus)
	assert.Equal(t, "Test User", history[0].ChangedBy)
}

func TestCaseHandler_Delete(t *testing.T) {
	h, svc, _ := newCaseHandler(t)
	ctx := authedContext()

	c, err := svc.Create(ctx, &domain.CreateCaseRequest{})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/cases/"+c.ID.String(), nil).WithContext(ctx)
	req = withURLParam(req, "id", c.ID.String())

	rr := httptest.NewRecorder()
	h.Delete(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)

	_, err = svc.GetByID(ctx, c.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
}
