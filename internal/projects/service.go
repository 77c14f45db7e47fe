package projects

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/siteline-pm/siteline/internal/platform/httpx"
	"github.com/siteline-pm/siteline/internal/rbac"
	"github.com/siteline-pm/siteline/internal/tenancy"
)

// RepositoryPort defines data access methods for projects.
type RepositoryPort interface {
	List(ctx context.Context, scope tenancy.Scope) ([]Project, error)
	Get(ctx context.Context, scope tenancy.Scope, id uuid.UUID) (Project, error)
	Create(ctx context.Context, scope tenancy.Scope, p Project) (Project, error)
	Update(ctx context.Context, scope tenancy.Scope, p Project) (Project, error)
	Delete(ctx context.Context, scope tenancy.Scope, id uuid.UUID) error
}

// Service handles project business logic. Every method takes the
// caller snapshot and runs the policy check itself, so the decision
// does not depend on which route or query produced the resource.
type Service struct {
	repo   RepositoryPort
	policy rbac.ProjectPolicy
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// List returns the caller tenant's projects.
func (s *Service) List(ctx context.Context, user rbac.User) ([]Project, error) {
	if !s.policy.ViewAny(user) {
		return nil, httpx.ErrForbidden
	}
	return s.repo.List(ctx, tenancy.ScopeFor(user))
}

// Get fetches one project.
func (s *Service) Get(ctx context.Context, user rbac.User, id uuid.UUID) (Project, error) {
	p, err := s.repo.Get(ctx, tenancy.ScopeFor(user), id)
	if err != nil {
		return Project{}, err
	}
	if !s.policy.View(user, p) {
		return Project{}, httpx.ErrForbidden
	}
	return p, nil
}

// Create inserts a project for the caller's tenant.
func (s *Service) Create(ctx context.Context, user rbac.User, name, code string) (Project, error) {
	if !s.policy.Create(user) {
		return Project{}, httpx.ErrForbidden
	}
	name = strings.TrimSpace(name)
	code = strings.TrimSpace(code)
	if name == "" || code == "" {
		return Project{}, httpx.ErrValidation
	}
	return s.repo.Create(ctx, tenancy.ScopeFor(user), Project{
		ID:        uuid.New(),
		Name:      name,
		Code:      code,
		Status:    "active",
		CreatedBy: user.ID,
	})
}

// Update mutates project name and status.
func (s *Service) Update(ctx context.Context, user rbac.User, id uuid.UUID, name, status string) (Project, error) {
	scope := tenancy.ScopeFor(user)
	p, err := s.repo.Get(ctx, scope, id)
	if err != nil {
		return Project{}, err
	}
	if !s.policy.Update(user, p) {
		return Project{}, httpx.ErrForbidden
	}
	p.Name = strings.TrimSpace(name)
	if p.Name == "" {
		return Project{}, httpx.ErrValidation
	}
	if status != "" {
		p.Status = status
	}
	return s.repo.Update(ctx, scope, p)
}

// Delete removes a project.
func (s *Service) Delete(ctx context.Context, user rbac.User, id uuid.UUID) error {
	scope := tenancy.ScopeFor(user)
	p, err := s.repo.Get(ctx, scope, id)
	if err != nil {
		return err
	}
	if !s.policy.Delete(user, p) {
		return httpx.ErrForbidden
	}
	return s.repo.Delete(ctx, scope, id)
}
