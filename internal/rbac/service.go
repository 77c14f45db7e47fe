package rbac

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/siteline-pm/siteline/internal/shared"
)

// ErrDuplicate indicates a uniqueness conflict on a role or grant.
var ErrDuplicate = errors.New("rbac: duplicate")

// ErrInvalidGrant indicates a grant request naming a code that is
// unknown, malformed or deprecated.
var ErrInvalidGrant = errors.New("rbac: invalid grant")

// RepositoryPort defines the administrative persistence surface.
type RepositoryPort interface {
	ListRoles(ctx context.Context) ([]Role, error)
	GetRole(ctx context.Context, id uuid.UUID) (Role, error)
	CreateRole(ctx context.Context, role Role) (Role, error)
	UpdateRole(ctx context.Context, role Role) (Role, error)
	DeleteRole(ctx context.Context, id uuid.UUID) error
	SetRolePermissions(ctx context.Context, roleID uuid.UUID, codes []Code) error
	AssignRole(ctx context.Context, userID, roleID uuid.UUID, projectID *uuid.UUID) error
	RemoveRole(ctx context.Context, userID, roleID uuid.UUID) error
	ListPermissions(ctx context.Context) ([]Permission, error)
	EnsurePermission(ctx context.Context, p Permission) error
	LegacyGrants(ctx context.Context, legacy []Code) (map[Code][]uuid.UUID, error)
	RevokePermission(ctx context.Context, code Code) error
}

// Service orchestrates administrative RBAC operations: role lifecycle,
// grant management and the legacy-code cleanup path. Decision-time
// reads go through the SnapshotLoader, not this service.
type Service struct {
	repo     RepositoryPort
	registry *Registry
	audit    *shared.AuditLogger
}

// NewService constructs a Service.
func NewService(repo RepositoryPort, registry *Registry) *Service {
	return &Service{repo: repo, registry: registry}
}

// WithAudit enables audit logging of administrative mutations.
func (s *Service) WithAudit(audit *shared.AuditLogger) *Service {
	s.audit = audit
	return s
}

func (s *Service) record(ctx context.Context, action, entity, entityID string, meta map[string]any) error {
	if s.audit == nil {
		return nil
	}
	return s.audit.Record(ctx, shared.AuditLog{
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Meta:     meta,
	})
}

// ListRoles returns all roles ordered by name.
func (s *Service) ListRoles(ctx context.Context) ([]Role, error) {
	return s.repo.ListRoles(ctx)
}

// GetRole fetches a role by ID.
func (s *Service) GetRole(ctx context.Context, id uuid.UUID) (Role, error) {
	return s.repo.GetRole(ctx, id)
}

// CreateRole inserts a new role.
func (s *Service) CreateRole(ctx context.Context, name string, scope RoleScope, allowOverride bool, description string) (Role, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Role{}, errors.New("rbac: role name required")
	}
	if !scope.Valid() {
		return Role{}, fmt.Errorf("rbac: invalid role scope %q", scope)
	}
	role, err := s.repo.CreateRole(ctx, Role{
		ID:            uuid.New(),
		Name:          name,
		Scope:         scope,
		IsActive:      true,
		AllowOverride: allowOverride,
		Description:   strings.TrimSpace(description),
	})
	if err != nil {
		return Role{}, err
	}
	if err := s.record(ctx, "role.created", "role", role.ID.String(), map[string]any{"name": role.Name, "scope": role.Scope}); err != nil {
		return Role{}, err
	}
	return role, nil
}

// UpdateRole updates name, description and flags of an existing role.
// Deactivation (is_active=false) is the soft-disable path: the role
// keeps its grants and assignments but contributes nothing to any
// effective permission set.
func (s *Service) UpdateRole(ctx context.Context, id uuid.UUID, name string, isActive, allowOverride bool, description string) (Role, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Role{}, errors.New("rbac: role name required")
	}
	role, err := s.repo.UpdateRole(ctx, Role{
		ID:            id,
		Name:          name,
		IsActive:      isActive,
		AllowOverride: allowOverride,
		Description:   strings.TrimSpace(description),
	})
	if err != nil {
		return Role{}, err
	}
	if err := s.record(ctx, "role.updated", "role", role.ID.String(), map[string]any{"name": role.Name, "is_active": role.IsActive}); err != nil {
		return Role{}, err
	}
	return role, nil
}

// DeleteRole removes a role. Association rows cascade, so the role's
// grants are revoked with it.
func (s *Service) DeleteRole(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteRole(ctx, id); err != nil {
		return err
	}
	return s.record(ctx, "role.deleted", "role", id.String(), nil)
}

// SetRolePermissions replaces a role's grants. Every code must be
// canonical: legacy codes are rejected here so a stale grant cannot be
// reintroduced through the admin surface.
func (s *Service) SetRolePermissions(ctx context.Context, roleID uuid.UUID, codes []string) error {
	granted := make([]Code, 0, len(codes))
	for _, raw := range codes {
		c, err := ParseCode(raw)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidGrant, err)
		}
		if _, ok := s.registry.Lookup(raw); !ok {
			if canonical, deprecated := s.registry.Canonical(raw); deprecated {
				return fmt.Errorf("%w: %q is deprecated, grant %q instead", ErrInvalidGrant, raw, canonical)
			}
			return fmt.Errorf("%w: unknown permission %q", ErrInvalidGrant, raw)
		}
		granted = append(granted, c)
	}
	if err := s.repo.SetRolePermissions(ctx, roleID, granted); err != nil {
		return err
	}
	return s.record(ctx, "role.grants_replaced", "role", roleID.String(), map[string]any{"codes": granted})
}

// AssignRole assigns a role to a user, optionally pinned to a project.
func (s *Service) AssignRole(ctx context.Context, userID, roleID uuid.UUID, projectID *uuid.UUID) error {
	if err := s.repo.AssignRole(ctx, userID, roleID, projectID); err != nil {
		return err
	}
	meta := map[string]any{"role_id": roleID}
	if projectID != nil {
		meta["project_id"] = *projectID
	}
	return s.record(ctx, "role.assigned", "user", userID.String(), meta)
}

// RemoveRole removes a role from a user.
func (s *Service) RemoveRole(ctx context.Context, userID, roleID uuid.UUID) error {
	if err := s.repo.RemoveRole(ctx, userID, roleID); err != nil {
		return err
	}
	return s.record(ctx, "role.removed", "user", userID.String(), map[string]any{"role_id": roleID})
}

// ListPermissions returns the persisted catalog.
func (s *Service) ListPermissions(ctx context.Context) ([]Permission, error) {
	return s.repo.ListPermissions(ctx)
}

// SyncCatalog upserts every registered permission into the catalog
// table. Run at bootstrap and by the seeder.
func (s *Service) SyncCatalog(ctx context.Context) error {
	for _, p := range s.registry.All() {
		if err := s.repo.EnsurePermission(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// LegacyGrantReport lists roles still holding deprecated codes, keyed
// by legacy code. This is the audit half of the cleanup mechanism.
func (s *Service) LegacyGrantReport(ctx context.Context) (map[Code][]uuid.UUID, error) {
	deps := s.registry.Deprecations()
	legacy := make([]Code, 0, len(deps))
	for c := range deps {
		legacy = append(legacy, c)
	}
	return s.repo.LegacyGrants(ctx, legacy)
}

// PruneLegacyGrants revokes every grant held under a deprecated code
// and removes the code from the catalog. Grants are not migrated to
// the canonical code: re-granting must be an explicit administrative
// act under the new scheme.
func (s *Service) PruneLegacyGrants(ctx context.Context) error {
	for legacy := range s.registry.Deprecations() {
		if err := s.repo.RevokePermission(ctx, legacy); err != nil {
			return err
		}
		if err := s.record(ctx, "permission.pruned", "permission", string(legacy), nil); err != nil {
			return err
		}
	}
	return nil
}
