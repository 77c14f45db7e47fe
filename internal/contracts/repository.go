package contracts

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/siteline-pm/siteline/internal/platform/db"
	"github.com/siteline-pm/siteline/internal/platform/httpx"
	"github.com/siteline-pm/siteline/internal/tenancy"
)

// Repository provides PostgreSQL backed persistence for contracts and
// payment certificates. All statements bind the scope's tenant id;
// the payments listing joins through its contract so the related
// collection inherits the same filter.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const contractColumns = `id, tenant_id, project_id, reference, title, status, amount_cents, created_by, created_at, updated_at`

func scanContract(row pgx.Row) (Contract, error) {
	var c Contract
	err := row.Scan(&c.ID, &c.Tenant, &c.ProjectID, &c.Reference, &c.Title,
		&c.Status, &c.AmountCents, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// ListByProject returns a project's contracts within the tenant scope.
func (r *Repository) ListByProject(ctx context.Context, scope tenancy.Scope, projectID uuid.UUID) ([]Contract, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+contractColumns+` FROM contracts
		 WHERE project_id = $1 AND tenant_id = $2 ORDER BY reference`,
		projectID, scope.TenantID())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Contract
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Get fetches one contract within the tenant scope.
func (r *Repository) Get(ctx context.Context, scope tenancy.Scope, id uuid.UUID) (Contract, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+contractColumns+` FROM contracts WHERE id = $1 AND tenant_id = $2`,
		id, scope.TenantID())
	c, err := scanContract(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Contract{}, httpx.ErrNotFound
		}
		return Contract{}, err
	}
	return c, nil
}

// Create inserts a contract owned by the scope's tenant.
func (r *Repository) Create(ctx context.Context, scope tenancy.Scope, c Contract) (Contract, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO contracts (id, tenant_id, project_id, reference, title, status, amount_cents, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+contractColumns,
		c.ID, scope.TenantID(), c.ProjectID, c.Reference, c.Title, c.Status, c.AmountCents, c.CreatedBy)
	created, err := scanContract(row)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return Contract{}, httpx.ErrDuplicate
		}
		return Contract{}, err
	}
	return created, nil
}

// Update mutates title, status and amount.
func (r *Repository) Update(ctx context.Context, scope tenancy.Scope, c Contract) (Contract, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE contracts SET title = $3, status = $4, amount_cents = $5, updated_at = now()
		WHERE id = $1 AND tenant_id = $2
		RETURNING `+contractColumns,
		c.ID, scope.TenantID(), c.Title, c.Status, c.AmountCents)
	updated, err := scanContract(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Contract{}, httpx.ErrNotFound
		}
		return Contract{}, err
	}
	return updated, nil
}

// Delete removes a contract within the tenant scope.
func (r *Repository) Delete(ctx context.Context, scope tenancy.Scope, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM contracts WHERE id = $1 AND tenant_id = $2`, id, scope.TenantID())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

const paymentColumns = `p.id, p.tenant_id, p.contract_id, p.certificate_no, p.amount_cents, p.status, p.certified_by, p.created_at, p.updated_at`

func scanPayment(row pgx.Row) (Payment, error) {
	var p Payment
	err := row.Scan(&p.ID, &p.Tenant, &p.ContractID, &p.CertificateNo,
		&p.AmountCents, &p.Status, &p.CertifiedBy, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// ListPayments returns a contract's certificates, joined through the
// parent so the tenant filter applies to the traversal as well.
func (r *Repository) ListPayments(ctx context.Context, scope tenancy.Scope, contractID uuid.UUID) ([]Payment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+paymentColumns+` FROM contract_payments p
		JOIN contracts c ON c.id = p.contract_id
		WHERE p.contract_id = $1 AND p.tenant_id = $2 AND c.tenant_id = $2
		ORDER BY p.certificate_no`,
		contractID, scope.TenantID())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetPayment fetches one certificate within the tenant scope.
func (r *Repository) GetPayment(ctx context.Context, scope tenancy.Scope, id uuid.UUID) (Payment, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+paymentColumns+` FROM contract_payments p
		WHERE p.id = $1 AND p.tenant_id = $2`, id, scope.TenantID())
	p, err := scanPayment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Payment{}, httpx.ErrNotFound
		}
		return Payment{}, err
	}
	return p, nil
}

// CreatePayment inserts a certificate under an in-tenant contract.
func (r *Repository) CreatePayment(ctx context.Context, scope tenancy.Scope, p Payment) (Payment, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO contract_payments (id, tenant_id, contract_id, certificate_no, amount_cents, status)
		SELECT $1, $2, c.id, $4, $5, $6 FROM contracts c
		WHERE c.id = $3 AND c.tenant_id = $2
		RETURNING id, tenant_id, contract_id, certificate_no, amount_cents, status, certified_by, created_at, updated_at`,
		p.ID, scope.TenantID(), p.ContractID, p.CertificateNo, p.AmountCents, p.Status)
	created, err := scanPayment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Payment{}, httpx.ErrNotFound
		}
		if db.IsUniqueViolation(err) {
			return Payment{}, httpx.ErrDuplicate
		}
		return Payment{}, err
	}
	return created, nil
}

// UpdatePaymentStatus transitions a certificate, recording who
// certified it when a certifier is given.
func (r *Repository) UpdatePaymentStatus(ctx context.Context, scope tenancy.Scope, id uuid.UUID, status string, certifiedBy *uuid.UUID) (Payment, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE contract_payments SET status = $3,
		       certified_by = COALESCE($4, certified_by), updated_at = now()
		WHERE id = $1 AND tenant_id = $2
		RETURNING id, tenant_id, contract_id, certificate_no, amount_cents, status, certified_by, created_at, updated_at`,
		id, scope.TenantID(), status, certifiedBy)
	p, err := scanPayment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Payment{}, httpx.ErrNotFound
		}
		return Payment{}, err
	}
	return p, nil
}
