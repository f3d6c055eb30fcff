package auth

import (
	"context"

	"github.com/hirebuddy/hirebuddy/internal/domain"
)

type contextKey struct{}

// Identity is the authenticated caller attached to the request context.
type Identity struct {
	UserID string
	Phone  string
	Role   domain.Role
}

func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, identity)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(contextKey{}).(Identity)
	return identity, ok
}
