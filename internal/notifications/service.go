package notifications

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/siteline-pm/siteline/internal/platform/httpx"
	"github.com/siteline-pm/siteline/internal/rbac"
	"github.com/siteline-pm/siteline/internal/tenancy"
	"github.com/siteline-pm/siteline/jobs"
)

// RepositoryPort defines data access methods for notifications.
type RepositoryPort interface {
	ListForUser(ctx context.Context, scope tenancy.Scope, userID uuid.UUID) ([]Notification, error)
	Get(ctx context.Context, scope tenancy.Scope, id uuid.UUID) (Notification, error)
	Create(ctx context.Context, scope tenancy.Scope, n Notification) (Notification, error)
	MarkRead(ctx context.Context, scope tenancy.Scope, id uuid.UUID) (Notification, error)
	Delete(ctx context.Context, scope tenancy.Scope, id uuid.UUID) error
}

// Enqueuer hands delivery work to the background worker.
type Enqueuer interface {
	EnqueueDelivery(ctx context.Context, payload jobs.DeliverNotificationPayload) error
}

// Service handles notification business logic.
type Service struct {
	repo   RepositoryPort
	queue  Enqueuer
	policy rbac.NotificationPolicy
}

// NewService builds Service instance. The enqueuer may be nil when no
// worker transport is configured; delivery is then skipped.
func NewService(repo RepositoryPort, queue Enqueuer) *Service {
	return &Service{repo: repo, queue: queue}
}

// ListMine returns the caller's own notifications.
func (s *Service) ListMine(ctx context.Context, user rbac.User) ([]Notification, error) {
	// A user always sees their own inbox; no permission gate applies.
	return s.repo.ListForUser(ctx, tenancy.ScopeFor(user), user.ID)
}

// Send creates a notification for a user in the caller's tenant and
// enqueues its delivery.
func (s *Service) Send(ctx context.Context, user rbac.User, recipient uuid.UUID, subject, body string) (Notification, error) {
	scope := tenancy.ScopeFor(user)
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return Notification{}, httpx.ErrValidation
	}
	draft := Notification{
		ID:      uuid.New(),
		Tenant:  user.TenantID,
		UserID:  recipient,
		Subject: subject,
		Body:    body,
	}
	if !s.policy.Send(user, draft) {
		return Notification{}, httpx.ErrForbidden
	}
	n, err := s.repo.Create(ctx, scope, draft)
	if err != nil {
		return Notification{}, err
	}
	if s.queue != nil {
		payload := jobs.DeliverNotificationPayload{
			NotificationID: n.ID.String(),
			TenantID:       n.Tenant.String(),
			UserID:         n.UserID.String(),
			Subject:        n.Subject,
		}
		if err := s.queue.EnqueueDelivery(ctx, payload); err != nil {
			return Notification{}, err
		}
	}
	return n, nil
}

// MarkAsRead stamps a notification read. The addressee may always
// mark their own; anyone else needs the manage permission, and the
// tenant boundary holds either way.
func (s *Service) MarkAsRead(ctx context.Context, user rbac.User, id uuid.UUID) (Notification, error) {
	scope := tenancy.ScopeFor(user)
	n, err := s.repo.Get(ctx, scope, id)
	if err != nil {
		return Notification{}, err
	}
	if !s.policy.MarkAsRead(user, n) {
		return Notification{}, httpx.ErrForbidden
	}
	return s.repo.MarkRead(ctx, scope, id)
}

// Delete removes a notification.
func (s *Service) Delete(ctx context.Context, user rbac.User, id uuid.UUID) error {
	scope := tenancy.ScopeFor(user)
	n, err := s.repo.Get(ctx, scope, id)
	if err != nil {
		return err
	}
	if !s.policy.Delete(user, n) {
		return httpx.ErrForbidden
	}
	return s.repo.Delete(ctx, scope, id)
}
