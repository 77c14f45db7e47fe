package documents

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
	items map[uuid.UUID]Document
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{items: make(map[uuid.UUID]Document)}
}

func (r *memoryRepo) List(ctx context.Context, scope tenancy.Scope, projectID *uuid.UUID) ([]Document, error) {
	var out []Document
	for _, d := range r.items {
		if !scope.Allows(d) {
			continue
		}
		if projectID != nil && (d.ProjectID == nil || *d.ProjectID != *projectID) {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (r *memoryRepo) Get(ctx context.Context, scope tenancy.Scope, id uuid.UUID) (Document, error) {
	d, ok := r.items[id]
	if !ok || !scope.Allows(d) {
		return Document{}, httpx.ErrNotFound
	}
	return d, nil
}

func (r *memoryRepo) Create(ctx context.Context, scope tenancy.Scope, d Document) (Document, error) {
	d.Tenant = scope.TenantID()
	r.items[d.ID] = d
	return d, nil
}

func (r *memoryRepo) UpdateStatus(ctx context.Context, scope tenancy.Scope, id uuid.UUID, status string) (Document, error) {
	d, ok := r.items[id]
	if !ok || !scope.Allows(d) {
		return Document{}, httpx.ErrNotFound
	}
	d.Status = status
	r.items[id] = d
	return d, nil
}

func (r *memoryRepo) Delete(ctx context.Context, scope tenancy.Scope, id uuid.UUID) error {
	d, ok := r.items[id]
	if !ok || !scope.Allows(d) {
		return httpx.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func userWith(tenant uuid.UUID, codes ...string) rbac.User {
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
				Name:        "document_controller",
				Scope:       rbac.ScopeSystem,
				IsActive:    true,
				Permissions: perms,
			},
		}},
	}
}

func TestDocumentDownload(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()
	tenant := uuid.New()

	uploader := userWith(tenant, shared.PermDocumentCreate, shared.PermDocumentDownload)
	d, err := svc.Create(ctx, uploader, nil, "structural-drawings.pdf", "tenants/x/drawings.pdf")
	require.NoError(t, err)

	key, err := svc.Download(ctx, uploader, d.ID)
	require.NoError(t, err)
	require.Equal(t, "tenants/x/drawings.pdf", key)

	// The legacy plural code never authorizes a download.
	stale := userWith(tenant, "documents.download")
	_, err = svc.Download(ctx, stale, d.ID)
	require.ErrorIs(t, err, httpx.ErrForbidden)

	outsider := userWith(uuid.New(), shared.DocumentScopes()...)
	_, err = svc.Download(ctx, outsider, d.ID)
	require.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestDocumentApprove(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()
	tenant := uuid.New()

	uploader := userWith(tenant, shared.PermDocumentCreate)
	d, err := svc.Create(ctx, uploader, nil, "method-statement.pdf", "tenants/x/ms.pdf")
	require.NoError(t, err)
	require.Equal(t, "pending", d.Status)

	_, err = svc.Approve(ctx, uploader, d.ID)
	require.ErrorIs(t, err, httpx.ErrForbidden)

	approver := userWith(tenant, shared.PermDocumentApprove)
	d, err = svc.Approve(ctx, approver, d.ID)
	require.NoError(t, err)
	require.Equal(t, "approved", d.Status)
}

func TestDocumentListFiltersByProject(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()
	tenant := uuid.New()
	project := uuid.New()

	uploader := userWith(tenant, shared.PermDocumentCreate, shared.PermDocumentView)
	_, err := svc.Create(ctx, uploader, &project, "a.pdf", "k/a.pdf")
	require.NoError(t, err)
	_, err = svc.Create(ctx, uploader, nil, "b.pdf", "k/b.pdf")
	require.NoError(t, err)

	all, err := svc.List(ctx, uploader, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)

	scoped, err := svc.List(ctx, uploader, &project)
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	require.Equal(t, "a.pdf", scoped[0].Name)
}

func TestDocumentForceDelete(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()
	tenant := uuid.New()

	uploader := userWith(tenant, shared.PermDocumentCreate)
	d, err := svc.Create(ctx, uploader, nil, "as-built.pdf", "tenants/x/as-built.pdf")
	require.NoError(t, err)

	approver := userWith(tenant, shared.PermDocumentApprove)
	_, err = svc.Approve(ctx, approver, d.ID)
	require.NoError(t, err)

	// An approved document resists a plain delete even with the grant.
	deleter := userWith(tenant, shared.PermDocumentDelete)
	err = svc.Delete(ctx, deleter, d.ID)
	require.ErrorIs(t, err, httpx.ErrValidation)

	// delete grant does not imply force_delete.
	err = svc.ForceDelete(ctx, deleter, d.ID)
	require.ErrorIs(t, err, httpx.ErrForbidden)

	forcer := userWith(tenant, shared.PermDocumentForceDelete)
	require.NoError(t, svc.ForceDelete(ctx, forcer, d.ID))
	_, err = svc.Get(ctx, userWith(tenant, shared.PermDocumentView), d.ID)
	require.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestDocumentCreateValidation(t *testing.T) {
	svc := NewService(newMemoryRepo())
	uploader := userWith(uuid.New(), shared.PermDocumentCreate)

	_, err := svc.Create(context.Background(), uploader, nil, "  ", "k/a.pdf")
	require.ErrorIs(t, err, httpx.ErrValidation)
	_, err = svc.Create(context.Background(), uploader, nil, "a.pdf", " ")
	require.ErrorIs(t, err, httpx.ErrValidation)
}
