package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harborline/caseflow-api/internal/auth"
	"github.com/harborline/caseflow-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthMiddleware(enabled bool) *auth.Middleware {
	cfg := &config.Config{}
	cfg.Security.AuthEnabled = enabled
	cfg.Security.JWTSecret = "test-secret"
	cfg.Security.APIKey = "test-api-key"
	return auth.NewMiddleware(cfg, zap.NewNop())
}

func captureUser(t *testing.T) (http.Handler, **auth.UserContext) {
	var captured *auth.UserContext
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user, ok := auth.FromContext(r.Context()); ok {
			captured = user
		}
		w.WriteHeader(http.StatusOK)
	})
	return h, &captured
}

func TestMiddleware_DisabledRunsAsSystemUser(t *testing.T) {
	m := newAuthMiddleware(false)
	next, captured := captureUser(t)

	rec := httptest.NewRecorder()
	m.Authenticate(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/cases", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, *captured)
	assert.Equal(t, auth.SystemUser.DisplayName, (*captured).DisplayName)
}

func TestMiddleware_ValidBearerToken(t *testing.T) {
	m := newAuthMiddleware(true)
	next, captured := captureUser(t)

	user := &auth.UserContext{UserID: uuid.New(), DisplayName: "Kari Nordmann"}
	token, err := m.Validator().IssueToken(user, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cases", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	m.Authenticate(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, *captured)
	assert.Equal(t, user.UserID, (*captured).UserID)
}

func TestMiddleware_MissingHeader(t *testing.T) {
	m := newAuthMiddleware(true)
	next, _ := captureUser(t)

	rec := httptest.NewRecorder()
	m.Authenticate(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/cases", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddleware_InvalidToken(t *testing.T) {
	m := newAuthMiddleware(true)
	next, _ := captureUser(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cases", nil)
	req.Header.Set("Authorization", "Bearer garbage")

	rec := httptest.NewRecorder()
	m.Authenticate(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddleware_APIKey(t *testing.T) {
	m := newAuthMiddleware(true)

	t.Run("valid key maps to system user", func(t *testing.T) {
		next, captured := captureUser(t)
		req := httptest.NewRequest(http.MethodGet, "/api/v1/cases", nil)
		req.Header.Set("x-api-key", "test-api-key")

		rec := httptest.NewRecorder()
		m.Authenticate(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, *captured)
		assert.Equal(t, auth.SystemUser.UserID, (*captured).UserID)
	})

	t.Run("wrong key rejected", func(t *testing.T) {
		next, _ := captureUser(t)
		req := httptest.NewRequest(http.MethodGet, "/api/v1/cases", nil)
		req.Header.Set("x-api-key", "wrong")

		rec := httptest.NewRecorder()
		m.Authenticate(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
