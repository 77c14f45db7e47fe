package tenancy

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/siteline-pm/siteline/internal/rbac"
	"github.com/siteline-pm/siteline/internal/shared"
)

type ownedResource struct {
	tenant uuid.UUID
}

func (o ownedResource) TenantID() uuid.UUID { return o.tenant }

func TestScopeFor(t *testing.T) {
	tenant := uuid.New()
	scope := ScopeFor(rbac.User{ID: uuid.New(), TenantID: tenant})
	require.Equal(t, tenant, scope.TenantID())
	require.False(t, scope.System())

	require.Panics(t, func() {
		ScopeFor(rbac.User{ID: uuid.New()})
	})
}

func TestForTenantRejectsZeroID(t *testing.T) {
	require.Panics(t, func() {
		ForTenant(uuid.Nil)
	})
}

func TestScopeAllows(t *testing.T) {
	tenant := uuid.New()
	scope := ForTenant(tenant)

	require.True(t, scope.Allows(ownedResource{tenant: tenant}))
	require.False(t, scope.Allows(ownedResource{tenant: uuid.New()}))
}

func TestSystemScope(t *testing.T) {
	scope := SystemScope(nil, "migration backfill")
	require.True(t, scope.System())
	require.True(t, scope.Allows(ownedResource{tenant: uuid.New()}))
	require.Panics(t, func() {
		scope.TenantID()
	})
}

func TestMiddleware(t *testing.T) {
	tenant := uuid.New()
	var got Scope
	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scope, ok := FromContext(r.Context())
		require.True(t, ok)
		got = scope
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := shared.ContextWithIdentity(req.Context(), shared.Identity{
		UserID:   uuid.New(),
		TenantID: tenant,
	})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req.WithContext(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, tenant, got.TenantID())
}

func TestMiddlewareRejectsAnonymous(t *testing.T) {
	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
