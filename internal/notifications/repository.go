package notifications

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

const notificationColumns = `id, tenant_id, user_id, subject, body, read_at, created_at`

func scanNotification(row pgx.Row) (Notification, error) {
	var n Notification
	err := row.Scan(&n.ID, &n.Tenant, &n.UserID, &n.Subject, &n.Body, &n.ReadAt, &n.CreatedAt)
	return n, err
}

// ListForUser returns a user's notifications within the tenant scope.
func (r *Repository) ListForUser(ctx context.Context, scope tenancy.Scope, userID uuid.UUID) ([]Notification, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+notificationColumns+` FROM notifications
		 WHERE tenant_id = $1 AND user_id = $2 ORDER BY created_at DESC`,
		scope.TenantID(), userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// Get fetches one notification within the tenant scope.
func (r *Repository) Get(ctx context.Context, scope tenancy.Scope, id uuid.UUID) (Notification, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+notificationColumns+` FROM notifications WHERE id = $1 AND tenant_id = $2`,
		id, scope.TenantID())
	n, err := scanNotification(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Notification{}, httpx.ErrNotFound
		}
		return Notification{}, err
	}
	return n, nil
}

// Create inserts a notification.
func (r *Repository) Create(ctx context.Context, scope tenancy.Scope, n Notification) (Notification, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO notifications (id, tenant_id, user_id, subject, body)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+notificationColumns,
		n.ID, scope.TenantID(), n.UserID, n.Subject, n.Body)
	return scanNotification(row)
}

// MarkRead stamps read_at if not already set.
func (r *Repository) MarkRead(ctx context.Context, scope tenancy.Scope, id uuid.UUID) (Notification, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE notifications SET read_at = COALESCE(read_at, now())
		WHERE id = $1 AND tenant_id = $2
		RETURNING `+notificationColumns,
		id, scope.TenantID())
	n, err := scanNotification(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Notification{}, httpx.ErrNotFound
		}
		return Notification{}, err
	}
	return n, nil
}

// Delete removes a notification within the tenant scope.
func (r *Repository) Delete(ctx context.Context, scope tenancy.Scope, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM notifications WHERE id = $1 AND tenant_id = $2`, id, scope.TenantID())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}
