package rbac

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/siteline-pm/siteline/internal/platform/db"
)

// Repository provides PostgreSQL backed persistence for role and grant
// administration.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const roleColumns = `id, name, scope, is_active, allow_override, description, created_at, updated_at`

func scanRole(row pgx.Row) (Role, error) {
	var r Role
	var scope string
	err := row.Scan(&r.ID, &r.Name, &scope, &r.IsActive, &r.AllowOverride,
		&r.Description, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return Role{}, err
	}
	r.Scope = RoleScope(scope)
	return r, nil
}

// ListRoles returns all roles ordered by name.
func (r *Repository) ListRoles(ctx context.Context) ([]Role, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+roleColumns+` FROM roles ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var roles []Role
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

// GetRole fetches a role with its granted permission codes.
func (r *Repository) GetRole(ctx context.Context, id uuid.UUID) (Role, error) {
	role, err := scanRole(r.pool.QueryRow(ctx, `SELECT `+roleColumns+` FROM roles WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Role{}, ErrNotFound
		}
		return Role{}, err
	}
	rows, err := r.pool.Query(ctx, `
		SELECT p.code FROM role_permissions rp
		JOIN permissions p ON p.id = rp.permission_id
		WHERE rp.role_id = $1 ORDER BY p.code`, id)
	if err != nil {
		return Role{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return Role{}, err
		}
		role.Permissions = append(role.Permissions, Code(code))
	}
	return role, rows.Err()
}

// CreateRole inserts a role.
func (r *Repository) CreateRole(ctx context.Context, role Role) (Role, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO roles (id, name, scope, is_active, allow_override, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+roleColumns,
		role.ID, role.Name, string(role.Scope), role.IsActive, role.AllowOverride, role.Description)
	created, err := scanRole(row)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return Role{}, ErrDuplicate
		}
		return Role{}, err
	}
	return created, nil
}

// UpdateRole updates mutable role fields.
func (r *Repository) UpdateRole(ctx context.Context, role Role) (Role, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE roles SET name = $2, is_active = $3, allow_override = $4,
		       description = $5, updated_at = now()
		WHERE id = $1
		RETURNING `+roleColumns,
		role.ID, role.Name, role.IsActive, role.AllowOverride, role.Description)
	updated, err := scanRole(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Role{}, ErrNotFound
		}
		return Role{}, err
	}
	return updated, nil
}

// DeleteRole removes a role; grant and assignment rows cascade.
func (r *Repository) DeleteRole(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetRolePermissions replaces the role's grants in one transaction.
func (r *Repository) SetRolePermissions(ctx context.Context, roleID uuid.UUID, codes []Code) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM role_permissions WHERE role_id = $1`, roleID); err != nil {
			return err
		}
		for _, code := range codes {
			tag, err := tx.Exec(ctx, `
				INSERT INTO role_permissions (role_id, permission_id)
				SELECT $1, id FROM permissions WHERE code = $2`, roleID, string(code))
			if err != nil {
				return err
			}
			if tag.RowsAffected() == 0 {
				return fmt.Errorf("rbac: permission %q not in catalog", code)
			}
		}
		return nil
	})
}

// AssignRole inserts a user-role assignment.
func (r *Repository) AssignRole(ctx context.Context, userID, roleID uuid.UUID, projectID *uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO user_roles (user_id, role_id, project_id)
		VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING`, userID, roleID, projectID)
	return err
}

// RemoveRole deletes a user-role assignment.
func (r *Repository) RemoveRole(ctx context.Context, userID, roleID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM user_roles WHERE user_id = $1 AND role_id = $2`, userID, roleID)
	return err
}

// ListPermissions returns the persisted catalog ordered by code.
func (r *Repository) ListPermissions(ctx context.Context) ([]Permission, error) {
	rows, err := r.pool.Query(ctx, `SELECT code, description FROM permissions ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var perms []Permission
	for rows.Next() {
		var p Permission
		var code string
		if err := rows.Scan(&code, &p.Description); err != nil {
			return nil, err
		}
		p.Code = Code(code)
		perms = append(perms, p)
	}
	return perms, rows.Err()
}

// EnsurePermission upserts a catalog entry keyed by code.
func (r *Repository) EnsurePermission(ctx context.Context, p Permission) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO permissions (id, code, module, action, description)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (code) DO UPDATE SET description = EXCLUDED.description`,
		uuid.New(), string(p.Code), p.Code.Module(), p.Code.Action(), p.Description)
	return err
}

// LegacyGrants returns role IDs still granted each of the given codes.
func (r *Repository) LegacyGrants(ctx context.Context, legacy []Code) (map[Code][]uuid.UUID, error) {
	out := make(map[Code][]uuid.UUID)
	for _, code := range legacy {
		rows, err := r.pool.Query(ctx, `
			SELECT rp.role_id FROM role_permissions rp
			JOIN permissions p ON p.id = rp.permission_id
			WHERE p.code = $1`, string(code))
		if err != nil {
			return nil, err
		}
		for rows.Next() {
			var roleID uuid.UUID
			if err := rows.Scan(&roleID); err != nil {
				rows.Close()
				return nil, err
			}
			out[code] = append(out[code], roleID)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// RevokePermission deletes a permission and cascades its grants.
func (r *Repository) RevokePermission(ctx context.Context, code Code) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM permissions WHERE code = $1`, string(code))
	return err
}
