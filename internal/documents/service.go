package documents

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/siteline-pm/siteline/internal/platform/httpx"
	"github.com/siteline-pm/siteline/internal/rbac"
	"github.com/siteline-pm/siteline/internal/tenancy"
)

// RepositoryPort defines data access methods for documents.
type RepositoryPort interface {
	List(ctx context.Context, scope tenancy.Scope, projectID *uuid.UUID) ([]Document, error)
	Get(ctx context.Context, scope tenancy.Scope, id uuid.UUID) (Document, error)
	Create(ctx context.Context, scope tenancy.Scope, d Document) (Document, error)
	UpdateStatus(ctx context.Context, scope tenancy.Scope, id uuid.UUID, status string) (Document, error)
	Delete(ctx context.Context, scope tenancy.Scope, id uuid.UUID) error
}

// Service handles document business logic.
type Service struct {
	repo   RepositoryPort
	policy rbac.DocumentPolicy
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// List returns the tenant's documents.
func (s *Service) List(ctx context.Context, user rbac.User, projectID *uuid.UUID) ([]Document, error) {
	if !s.policy.ViewAny(user) {
		return nil, httpx.ErrForbidden
	}
	return s.repo.List(ctx, tenancy.ScopeFor(user), projectID)
}

// Get fetches one document.
func (s *Service) Get(ctx context.Context, user rbac.User, id uuid.UUID) (Document, error) {
	d, err := s.repo.Get(ctx, tenancy.ScopeFor(user), id)
	if err != nil {
		return Document{}, err
	}
	if !s.policy.View(user, d) {
		return Document{}, httpx.ErrForbidden
	}
	return d, nil
}

// Create registers uploaded file metadata.
func (s *Service) Create(ctx context.Context, user rbac.User, projectID *uuid.UUID, name, storageKey string) (Document, error) {
	if !s.policy.Create(user) {
		return Document{}, httpx.ErrForbidden
	}
	name = strings.TrimSpace(name)
	if name == "" || strings.TrimSpace(storageKey) == "" {
		return Document{}, httpx.ErrValidation
	}
	return s.repo.Create(ctx, tenancy.ScopeFor(user), Document{
		ID:         uuid.New(),
		ProjectID:  projectID,
		Name:       name,
		StorageKey: storageKey,
		Status:     "pending",
		UploadedBy: user.ID,
	})
}

// Download authorizes a download and returns the storage key the
// caller may fetch.
func (s *Service) Download(ctx context.Context, user rbac.User, id uuid.UUID) (string, error) {
	d, err := s.repo.Get(ctx, tenancy.ScopeFor(user), id)
	if err != nil {
		return "", err
	}
	if !s.policy.Download(user, d) {
		return "", httpx.ErrForbidden
	}
	return d.StorageKey, nil
}

// Approve transitions a pending document to approved.
func (s *Service) Approve(ctx context.Context, user rbac.User, id uuid.UUID) (Document, error) {
	scope := tenancy.ScopeFor(user)
	d, err := s.repo.Get(ctx, scope, id)
	if err != nil {
		return Document{}, err
	}
	if !s.policy.Approve(user, d) {
		return Document{}, httpx.ErrForbidden
	}
	return s.repo.UpdateStatus(ctx, scope, id, "approved")
}

// Delete removes a document. Approved documents are part of the
// project record and need ForceDelete.
func (s *Service) Delete(ctx context.Context, user rbac.User, id uuid.UUID) error {
	scope := tenancy.ScopeFor(user)
	d, err := s.repo.Get(ctx, scope, id)
	if err != nil {
		return err
	}
	if !s.policy.Delete(user, d) {
		return httpx.ErrForbidden
	}
	if d.Status == "approved" {
		return fmt.Errorf("%w: approved documents can only be force-deleted", httpx.ErrValidation)
	}
	return s.repo.Delete(ctx, scope, id)
}

// ForceDelete removes a document regardless of its status.
func (s *Service) ForceDelete(ctx context.Context, user rbac.User, id uuid.UUID) error {
	scope := tenancy.ScopeFor(user)
	d, err := s.repo.Get(ctx, scope, id)
	if err != nil {
		return err
	}
	if !s.policy.ForceDelete(user, d) {
		return httpx.ErrForbidden
	}
	return s.repo.Delete(ctx, scope, id)
}
