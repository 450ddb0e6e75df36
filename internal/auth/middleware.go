package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/harborline/caseflow-api/internal/config"
	"go.uber.org/zap"
)

// Middleware handles authentication for HTTP requests
type Middleware struct {
	validator *JWTValidator
	apiKey    string
	enabled   bool
	logger    *zap.Logger
}

// NewMiddleware creates a new authentication middleware
func NewMiddleware(cfg *config.Config, logger *zap.Logger) *Middleware {
	return &Middleware{
		validator: NewJWTValidator(cfg.Security.JWTSecret, cfg.Security.JWTIssuer, cfg.Security.JWTAudience),
		apiKey:    cfg.Security.APIKey,
		enabled:   cfg.Security.AuthEnabled,
		logger:    logger,
	}
}

// Validator exposes the token validator, used by the dev login endpoint
func (m *Middleware) Validator() *JWTValidator {
	return m.validator
}

// Authenticate resolves the caller into a UserContext. API keys map to the
// system user; bearer tokens are validated against the signing secret.
// When auth is disabled (local development) every request runs as the
// system user.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.enabled {
			user := SystemUser
			next.ServeHTTP(w, r.WithContext(WithUserContext(r.Context(), &user)))
			return
		}

		if apiKey := r.Header.Get("x-api-key"); apiKey != "" {
			if m.validateAPIKey(apiKey) {
				user := SystemUser
				ctx := WithUserContext(r.Context(), &user)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
			m.logger.Warn("invalid API key attempt",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("remote_addr", r.RemoteAddr),
			)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Unauthorized: missing authorization header", http.StatusUnauthorized)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			http.Error(w, "Unauthorized: invalid authorization header format", http.StatusUnauthorized)
			return
		}

		userCtx, err := m.validator.ValidateToken(parts[1])
		if err != nil {
			m.logger.Warn("token validation failed",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("remote_addr", r.RemoteAddr),
				zap.Error(err),
			)
			http.Error(w, "Unauthorized: invalid token", http.StatusUnauthorized)
			return
		}

		ctx := WithUserContext(r.Context(), userCtx)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Middleware) validateAPIKey(provided string) bool {
	if m.apiKey == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(provided), []byte(m.apiKey)) == 1
}
