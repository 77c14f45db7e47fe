package tenancy

import (
	"context"
	"net/http"

	"github.com/siteline-pm/siteline/internal/platform/httpx"
	"github.com/siteline-pm/siteline/internal/shared"
)

type scopeContextKey struct{}

// WithScope stores the scope in context.
func WithScope(ctx context.Context, s Scope) context.Context {
	return context.WithValue(ctx, scopeContextKey{}, s)
}

// FromContext extracts the scope from context.
func FromContext(ctx context.Context) (Scope, bool) {
	s, ok := ctx.Value(scopeContextKey{}).(Scope)
	return s, ok
}

// Middleware installs the tenant scope derived from the authenticated
// identity. Requests without an identity are rejected before any
// handler can touch tenant-scoped data.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := shared.IdentityFromContext(r.Context())
		if !ok {
			httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "")
			return
		}
		ctx := WithScope(r.Context(), ForTenant(id.TenantID))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
