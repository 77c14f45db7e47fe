package projects

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/siteline-pm/siteline/internal/platform/httpx"
	"github.com/siteline-pm/siteline/internal/rbac"
	"github.com/siteline-pm/siteline/internal/shared"
	"github.com/siteline-pm/siteline/internal/tenancy"
)

type memoryRepo struct {
	items map[uuid.UUID]Project
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{items: make(map[uuid.UUID]Project)}
}

func (r *memoryRepo) List(ctx context.Context, scope tenancy.Scope) ([]Project, error) {
	var out []Project
	for _, p := range r.items {
		if scope.Allows(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memoryRepo) Get(ctx context.Context, scope tenancy.Scope, id uuid.UUID) (Project, error) {
	p, ok := r.items[id]
	if !ok || !scope.Allows(p) {
		return Project{}, httpx.ErrNotFound
	}
	return p, nil
}

func (r *memoryRepo) Create(ctx context.Context, scope tenancy.Scope, p Project) (Project, error) {
	for _, existing := range r.items {
		if existing.Tenant == scope.TenantID() && existing.Code == p.Code {
			return Project{}, httpx.ErrDuplicate
		}
	}
	p.Tenant = scope.TenantID()
	r.items[p.ID] = p
	return p, nil
}

func (r *memoryRepo) Update(ctx context.Context, scope tenancy.Scope, p Project) (Project, error) {
	existing, ok := r.items[p.ID]
	if !ok || !scope.Allows(existing) {
		return Project{}, httpx.ErrNotFound
	}
	p.Tenant = existing.Tenant
	r.items[p.ID] = p
	return p, nil
}

func (r *memoryRepo) Delete(ctx context.Context, scope tenancy.Scope, id uuid.UUID) error {
	p, ok := r.items[id]
	if !ok || !scope.Allows(p) {
		return httpx.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func userNamed(tenant uuid.UUID, roleName string, codes ...string) rbac.User {
	perms := make([]rbac.Code, 0, len(codes))
	for _, c := range codes {
		perms = append(perms, rbac.Code(c))
	}
	return rbac.User{
		ID:       uuid.New(),
		TenantID: tenant,
		Assignments: []rbac.Assignment{{
			Role: rbac.Role{
				ID:          uuid.New(),
				Name:        roleName,
				Scope:       rbac.ScopeSystem,
				IsActive:    true,
				Permissions: perms,
			},
		}},
	}
}

func TestProjectCreate(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()
	tenant := uuid.New()

	pm := userNamed(tenant, "project_manager", shared.PermProjectCreate, shared.PermProjectView)
	p, err := svc.Create(ctx, pm, "Harbour Bridge Retrofit", "HBR-01")
	require.NoError(t, err)
	require.Equal(t, tenant, p.TenantID())
	require.Equal(t, "active", p.Status)
	require.Equal(t, pm.ID, p.CreatedBy)

	_, err = svc.Create(ctx, pm, "Duplicate", "HBR-01")
	require.ErrorIs(t, err, httpx.ErrDuplicate)

	_, err = svc.Create(ctx, pm, "  ", "HBR-02")
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestProjectCreateRequiresQualifyingRole(t *testing.T) {
	svc := NewService(newMemoryRepo())
	tenant := uuid.New()

	// Holding project.create under a non-qualifying role name denies.
	finance := userNamed(tenant, "finance", shared.PermProjectCreate)
	_, err := svc.Create(context.Background(), finance, "Depot", "DP-01")
	require.ErrorIs(t, err, httpx.ErrForbidden)
}

func TestProjectListScopedToTenant(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	alice := userNamed(uuid.New(), "admin", shared.PermProjectCreate, shared.PermProjectView)
	bob := userNamed(uuid.New(), "admin", shared.PermProjectCreate, shared.PermProjectView)

	_, err := svc.Create(ctx, alice, "Alpha", "A-01")
	require.NoError(t, err)
	_, err = svc.Create(ctx, bob, "Beta", "B-01")
	require.NoError(t, err)

	mine, err := svc.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, "Alpha", mine[0].Name)
}

func TestProjectGetMasksForeignTenant(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	owner := userNamed(uuid.New(), "admin", shared.PermProjectCreate, shared.PermProjectView)
	p, err := svc.Create(ctx, owner, "Alpha", "A-01")
	require.NoError(t, err)

	outsider := userNamed(uuid.New(), "admin", shared.ProjectScopes()...)
	_, err = svc.Get(ctx, outsider, p.ID)
	require.ErrorIs(t, err, httpx.ErrNotFound)
	_, err = svc.Update(ctx, outsider, p.ID, "Renamed", "")
	require.ErrorIs(t, err, httpx.ErrNotFound)
	err = svc.Delete(ctx, outsider, p.ID)
	require.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestProjectUpdateAndDelete(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()
	tenant := uuid.New()

	admin := userNamed(tenant, "admin",
		shared.PermProjectCreate, shared.PermProjectView,
		shared.PermProjectUpdate, shared.PermProjectDelete)
	p, err := svc.Create(ctx, admin, "Alpha", "A-01")
	require.NoError(t, err)

	p, err = svc.Update(ctx, admin, p.ID, "Alpha Phase 2", "on_hold")
	require.NoError(t, err)
	require.Equal(t, "Alpha Phase 2", p.Name)
	require.Equal(t, "on_hold", p.Status)

	viewer := userNamed(tenant, "viewer", shared.PermProjectView)
	_, err = svc.Update(ctx, viewer, p.ID, "Nope", "")
	require.ErrorIs(t, err, httpx.ErrForbidden)
	err = svc.Delete(ctx, viewer, p.ID)
	require.ErrorIs(t, err, httpx.ErrForbidden)

	require.NoError(t, svc.Delete(ctx, admin, p.ID))
	_, err = svc.Get(ctx, admin, p.ID)
	require.ErrorIs(t, err, httpx.ErrNotFound)
}
