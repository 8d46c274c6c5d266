package auth

import (
	"context"

	"github.com/ramhdi/vimana2/internal/model"
)

type contextKey struct{}

// Context carries the authenticated identity resolved by the request
// authenticator. Token is the session token the client presented, kept so
// logout can delete exactly that session.
type Context struct {
	UserID string
	Role   model.Role
	Token  string
}

func WithIdentity(ctx context.Context, ac Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ac)
}

func FromContext(ctx context.Context) (Context, bool) {
	ac, ok := ctx.Value(contextKey{}).(Context)
	return ac, ok
}

// UserID returns the authenticated user id, or "" when unauthenticated.
func UserID(ctx context.Context) string {
	ac, ok := FromContext(ctx)
	if !ok {
		return ""
	}
	return ac.UserID
}
