package contracts

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
	contracts map[uuid.UUID]Contract
	payments  map[uuid.UUID]Payment
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		contracts: make(map[uuid.UUID]Contract),
		payments:  make(map[uuid.UUID]Payment),
	}
}

func (r *memoryRepo) ListByProject(ctx context.Context, scope tenancy.Scope, projectID uuid.UUID) ([]Contract, error) {
	var out []Contract
	for _, c := range r.contracts {
		if c.ProjectID == projectID && scope.Allows(c) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memoryRepo) Get(ctx context.Context, scope tenancy.Scope, id uuid.UUID) (Contract, error) {
	c, ok := r.contracts[id]
	if !ok || !scope.Allows(c) {
		return Contract{}, httpx.ErrNotFound
	}
	return c, nil
}

func (r *memoryRepo) Create(ctx context.Context, scope tenancy.Scope, c Contract) (Contract, error) {
	c.Tenant = scope.TenantID()
	r.contracts[c.ID] = c
	return c, nil
}

func (r *memoryRepo) Update(ctx context.Context, scope tenancy.Scope, c Contract) (Contract, error) {
	existing, ok := r.contracts[c.ID]
	if !ok || !scope.Allows(existing) {
		return Contract{}, httpx.ErrNotFound
	}
	c.Tenant = existing.Tenant
	r.contracts[c.ID] = c
	return c, nil
}

func (r *memoryRepo) Delete(ctx context.Context, scope tenancy.Scope, id uuid.UUID) error {
	c, ok := r.contracts[id]
	if !ok || !scope.Allows(c) {
		return httpx.ErrNotFound
	}
	delete(r.contracts, id)
	return nil
}

func (r *memoryRepo) ListPayments(ctx context.Context, scope tenancy.Scope, contractID uuid.UUID) ([]Payment, error) {
	var out []Payment
	for _, p := range r.payments {
		if p.ContractID == contractID && scope.Allows(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memoryRepo) GetPayment(ctx context.Context, scope tenancy.Scope, id uuid.UUID) (Payment, error) {
	p, ok := r.payments[id]
	if !ok || !scope.Allows(p) {
		return Payment{}, httpx.ErrNotFound
	}
	return p, nil
}

func (r *memoryRepo) CreatePayment(ctx context.Context, scope tenancy.Scope, p Payment) (Payment, error) {
	c, ok := r.contracts[p.ContractID]
	if !ok || !scope.Allows(c) {
		return Payment{}, httpx.ErrNotFound
	}
	p.Tenant = scope.TenantID()
	r.payments[p.ID] = p
	return p, nil
}

func (r *memoryRepo) UpdatePaymentStatus(ctx context.Context, scope tenancy.Scope, id uuid.UUID, status string, certifiedBy *uuid.UUID) (Payment, error) {
	p, ok := r.payments[id]
	if !ok || !scope.Allows(p) {
		return Payment{}, httpx.ErrNotFound
	}
	p.Status = status
	if certifiedBy != nil {
		p.CertifiedBy = certifiedBy
	}
	r.payments[id] = p
	return p, nil
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
				Name:        "finance",
				Scope:       rbac.ScopeSystem,
				IsActive:    true,
				Permissions: perms,
			},
		}},
	}
}

func TestContractLifecycle(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()
	tenant := uuid.New()
	projectID := uuid.New()

	creator := userWith(tenant,
		shared.PermContractCreate, shared.PermContractView,
		shared.PermContractApprove, shared.PermContractSend)

	c, err := svc.Create(ctx, creator, CreateInput{
		ProjectID:   projectID,
		Reference:   "C-001",
		Title:       "Foundation works",
		AmountCents: 1_000_00,
	})
	require.NoError(t, err)
	require.Equal(t, StatusDraft, c.Status)
	require.Equal(t, tenant, c.TenantID())

	// Sending a draft is a validation error; approve first.
	_, err = svc.Send(ctx, creator, c.ID)
	require.ErrorIs(t, err, httpx.ErrValidation)

	c, err = svc.Approve(ctx, creator, c.ID)
	require.NoError(t, err)
	require.Equal(t, StatusApproved, c.Status)

	c, err = svc.Send(ctx, creator, c.ID)
	require.NoError(t, err)
	require.Equal(t, StatusSent, c.Status)
}

func TestContractCreateDeniedWithoutGrant(t *testing.T) {
	svc := NewService(newMemoryRepo())
	viewer := userWith(uuid.New(), shared.PermContractView)

	_, err := svc.Create(context.Background(), viewer, CreateInput{
		ProjectID: uuid.New(),
		Reference: "C-001",
		Title:     "Foundation works",
	})
	require.ErrorIs(t, err, httpx.ErrForbidden)
}

func TestContractInvisibleAcrossTenants(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	owner := userWith(uuid.New(), shared.PermContractCreate, shared.PermContractView)
	c, err := svc.Create(ctx, owner, CreateInput{
		ProjectID: uuid.New(),
		Reference: "C-001",
		Title:     "Foundation works",
	})
	require.NoError(t, err)

	// A fully-granted user in another tenant gets not-found, not
	// forbidden: the record does not exist for them.
	outsider := userWith(uuid.New(), shared.ContractScopes()...)
	_, err = svc.Get(ctx, outsider, c.ID)
	require.ErrorIs(t, err, httpx.ErrNotFound)
	_, err = svc.Approve(ctx, outsider, c.ID)
	require.ErrorIs(t, err, httpx.ErrNotFound)
	err = svc.Delete(ctx, outsider, c.ID)
	require.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestPaymentCertification(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()
	tenant := uuid.New()

	creator := userWith(tenant, shared.PermContractCreate, shared.PermContractView)
	c, err := svc.Create(ctx, creator, CreateInput{
		ProjectID: uuid.New(),
		Reference: "C-001",
		Title:     "Foundation works",
	})
	require.NoError(t, err)

	finance := userWith(tenant,
		shared.PermContractPaymentCreate, shared.PermContractPaymentView,
		shared.PermContractPaymentApprove, shared.PermContractPaymentCertify)

	p, err := svc.CreatePayment(ctx, finance, c.ID, 1, 500_00)
	require.NoError(t, err)
	require.Equal(t, StatusDraft, p.Status)

	// Certification requires an approved certificate.
	_, err = svc.CertifyPayment(ctx, finance, p.ID)
	require.ErrorIs(t, err, httpx.ErrValidation)

	p, err = svc.ApprovePayment(ctx, finance, p.ID)
	require.NoError(t, err)
	require.Equal(t, StatusApproved, p.Status)

	p, err = svc.CertifyPayment(ctx, finance, p.ID)
	require.NoError(t, err)
	require.Equal(t, "certified", p.Status)
	require.NotNil(t, p.CertifiedBy)
	require.Equal(t, finance.ID, *p.CertifiedBy)
}

func TestPaymentInputValidation(t *testing.T) {
	svc := NewService(newMemoryRepo())
	finance := userWith(uuid.New(), shared.PermContractPaymentCreate)

	_, err := svc.CreatePayment(context.Background(), finance, uuid.New(), 0, 100)
	require.ErrorIs(t, err, httpx.ErrValidation)
	_, err = svc.CreatePayment(context.Background(), finance, uuid.New(), 1, -1)
	require.ErrorIs(t, err, httpx.ErrValidation)
}
