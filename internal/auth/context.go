package auth

import (
	"context"

	"github.com/google/uuid"
)

// UserContext holds authenticated user information
type UserContext struct {
	UserID      uuid.UUID
	DisplayName string
	Email       string
}

type contextKey string

const userContextKey contextKey = "userContext"

// SystemUser is the actor recorded for writes performed by background jobs
// and API-key callers
var SystemUser = UserContext{
	UserID:      uuid.MustParse("00000000-0000-0000-0000-000000000000"),
	DisplayName: "System User",
	Email:       "system@harborline.io",
}

// WithUserContext adds user context to the context
func WithUserContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// FromContext extracts user context from the context
func FromContext(ctx context.Context) (*UserContext, bool) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	return user, ok
}

// ActorName returns the display name of the authenticated user, falling
// back to the system user. Status history rows record this value.
func ActorName(ctx context.Context) string {
	if user, ok := FromContext(ctx); ok && user.DisplayName != "" {
		return user.DisplayName
	}
	return SystemUser.DisplayName
}
