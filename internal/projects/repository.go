package projects

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

// Repository provides PostgreSQL backed persistence. Every query binds
// the scope's tenant id; an out-of-tenant id behaves exactly like a
// missing row.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const projectColumns = `id, tenant_id, name, code, status, created_by, created_at, updated_at`

func scanProject(row pgx.Row) (Project, error) {
	var p Project
	err := row.Scan(&p.ID, &p.Tenant, &p.Name, &p.Code, &p.Status,
		&p.CreatedBy, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// List returns the tenant's projects ordered by name.
func (r *Repository) List(ctx context.Context, scope tenancy.Scope) ([]Project, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE tenant_id = $1 ORDER BY name`,
		scope.TenantID())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Get fetches one project within the tenant scope.
func (r *Repository) Get(ctx context.Context, scope tenancy.Scope, id uuid.UUID) (Project, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = $1 AND tenant_id = $2`,
		id, scope.TenantID())
	p, err := scanProject(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Project{}, httpx.ErrNotFound
		}
		return Project{}, err
	}
	return p, nil
}

// Create inserts a project owned by the scope's tenant.
func (r *Repository) Create(ctx context.Context, scope tenancy.Scope, p Project) (Project, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO projects (id, tenant_id, name, code, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+projectColumns,
		p.ID, scope.TenantID(), p.Name, p.Code, p.Status, p.CreatedBy)
	created, err := scanProject(row)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return Project{}, httpx.ErrDuplicate
		}
		return Project{}, err
	}
	return created, nil
}

// Update mutates name and status; the tenant id never changes.
func (r *Repository) Update(ctx context.Context, scope tenancy.Scope, p Project) (Project, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE projects SET name = $3, status = $4, updated_at = now()
		WHERE id = $1 AND tenant_id = $2
		RETURNING `+projectColumns,
		p.ID, scope.TenantID(), p.Name, p.Status)
	updated, err := scanProject(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Project{}, httpx.ErrNotFound
		}
		return Project{}, err
	}
	return updated, nil
}

// Delete removes a project within the tenant scope.
func (r *Repository) Delete(ctx context.Context, scope tenancy.Scope, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM projects WHERE id = $1 AND tenant_id = $2`, id, scope.TenantID())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}
