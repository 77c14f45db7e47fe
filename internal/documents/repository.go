package documents

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/siteline-pm/siteline/internal/platform/httpx"
	"github.com/siteline-pm/siteline/internal/tenancy"
)

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const documentColumns = `id, tenant_id, project_id, name, storage_key, status, uploaded_by, created_at, updated_at`

func scanDocument(row pgx.Row) (Document, error) {
	var d Document
	err := row.Scan(&d.ID, &d.Tenant, &d.ProjectID, &d.Name, &d.StorageKey,
		&d.Status, &d.UploadedBy, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

// List returns the tenant's documents, optionally filtered by project.
func (r *Repository) List(ctx context.Context, scope tenancy.Scope, projectID *uuid.UUID) ([]Document, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+documentColumns+` FROM documents
		WHERE tenant_id = $1 AND ($2::uuid IS NULL OR project_id = $2)
		ORDER BY created_at DESC`,
		scope.TenantID(), projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Get fetches one document within the tenant scope.
func (r *Repository) Get(ctx context.Context, scope tenancy.Scope, id uuid.UUID) (Document, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE id = $1 AND tenant_id = $2`,
		id, scope.TenantID())
	d, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Document{}, httpx.ErrNotFound
		}
		return Document{}, err
	}
	return d, nil
}

// Create inserts a document record.
func (r *Repository) Create(ctx context.Context, scope tenancy.Scope, d Document) (Document, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO documents (id, tenant_id, project_id, name, storage_key, status, uploaded_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+documentColumns,
		d.ID, scope.TenantID(), d.ProjectID, d.Name, d.StorageKey, d.Status, d.UploadedBy)
	return scanDocument(row)
}

// UpdateStatus transitions a document.
func (r *Repository) UpdateStatus(ctx context.Context, scope tenancy.Scope, id uuid.UUID, status string) (Document, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE documents SET status = $3, updated_at = now()
		WHERE id = $1 AND tenant_id = $2
		RETURNING `+documentColumns,
		id, scope.TenantID(), status)
	d, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Document{}, httpx.ErrNotFound
		}
		return Document{}, err
	}
	return d, nil
}

// Delete removes a document within the tenant scope.
func (r *Repository) Delete(ctx context.Context, scope tenancy.Scope, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM documents WHERE id = $1 AND tenant_id = $2`, id, scope.TenantID())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}
