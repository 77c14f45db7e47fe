package shared

import (
	"context"

	"github.com/google/uuid"
)

// Identity describes the authenticated caller for a single request.
type Identity struct {
	UserID   uuid.UUID
	TenantID uuid.UUID
	Email    string
}

type identityContextKey struct{}

// ContextWithIdentity stores the caller identity in context.
func ContextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, id)
}

// IdentityFromContext extracts the caller identity from context.
// The second return is false when no identity has been attached.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityContextKey{}).(Identity)
	return id, ok
}
