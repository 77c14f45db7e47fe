package rbac

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SnapshotLoader materializes a User snapshot with role assignments
// and permission codes. Implementations load from current data on
// every call; grants are never cached across requests, so a revoke
// takes effect on the next decision.
type SnapshotLoader interface {
	LoadUser(ctx context.Context, userID uuid.UUID) (User, error)
}

// Store provides PostgreSQL backed snapshot loading.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore constructs a Store.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// LoadUser fetches the user row and its role/permission graph.
func (s *Store) LoadUser(ctx context.Context, userID uuid.UUID) (User, error) {
	var u User
	err := s.pool.QueryRow(ctx,
		`SELECT id, tenant_id, email FROM users WHERE id = $1`, userID,
	).Scan(&u.ID, &u.TenantID, &u.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, fmt.Errorf("rbac: load user: %w", err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT r.id, r.name, r.scope, r.is_active, r.allow_override, r.description,
		       ur.project_id, p.code
		FROM user_roles ur
		JOIN roles r ON r.id = ur.role_id
		LEFT JOIN role_permissions rp ON rp.role_id = r.id
		LEFT JOIN permissions p ON p.id = rp.permission_id
		WHERE ur.user_id = $1
		ORDER BY r.id, ur.project_id`, userID)
	if err != nil {
		return User{}, fmt.Errorf("rbac: load assignments: %w", err)
	}
	defer rows.Close()

	type key struct {
		roleID  uuid.UUID
		project uuid.UUID
	}
	index := make(map[key]int)
	for rows.Next() {
		var (
			role      Role
			projectID *uuid.UUID
			code      *string
		)
		var scope string
		if err := rows.Scan(&role.ID, &role.Name, &scope, &role.IsActive,
			&role.AllowOverride, &role.Description, &projectID, &code); err != nil {
			return User{}, fmt.Errorf("rbac: scan assignment: %w", err)
		}
		role.Scope = RoleScope(scope)

		k := key{roleID: role.ID}
		if projectID != nil {
			k.project = *projectID
		}
		i, ok := index[k]
		if !ok {
			u.Assignments = append(u.Assignments, Assignment{Role: role, ProjectID: projectID})
			i = len(u.Assignments) - 1
			index[k] = i
		}
		if code != nil {
			u.Assignments[i].Role.Permissions = append(u.Assignments[i].Role.Permissions, Code(*code))
		}
	}
	if err := rows.Err(); err != nil {
		return User{}, fmt.Errorf("rbac: read assignments: %w", err)
	}
	return u, nil
}
