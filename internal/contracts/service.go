package contracts

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/siteline-pm/siteline/internal/platform/httpx"
	"github.com/siteline-pm/siteline/internal/rbac"
	"github.com/siteline-pm/siteline/internal/tenancy"
)

// RepositoryPort defines data access methods for contracts.
type RepositoryPort interface {
	ListByProject(ctx context.Context, scope tenancy.Scope, projectID uuid.UUID) ([]Contract, error)
	Get(ctx context.Context, scope tenancy.Scope, id uuid.UUID) (Contract, error)
	Create(ctx context.Context, scope tenancy.Scope, c Contract) (Contract, error)
	Update(ctx context.Context, scope tenancy.Scope, c Contract) (Contract, error)
	Delete(ctx context.Context, scope tenancy.Scope, id uuid.UUID) error
	ListPayments(ctx context.Context, scope tenancy.Scope, contractID uuid.UUID) ([]Payment, error)
	GetPayment(ctx context.Context, scope tenancy.Scope, id uuid.UUID) (Payment, error)
	CreatePayment(ctx context.Context, scope tenancy.Scope, p Payment) (Payment, error)
	UpdatePaymentStatus(ctx context.Context, scope tenancy.Scope, id uuid.UUID, status string, certifiedBy *uuid.UUID) (Payment, error)
}

// Service handles contract and payment certificate business logic.
type Service struct {
	repo          RepositoryPort
	policy        rbac.ContractPolicy
	paymentPolicy rbac.ContractPaymentPolicy
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// ListByProject returns the project's contracts.
func (s *Service) ListByProject(ctx context.Context, user rbac.User, projectID uuid.UUID) ([]Contract, error) {
	if !s.policy.ViewAny(user) {
		return nil, httpx.ErrForbidden
	}
	return s.repo.ListByProject(ctx, tenancy.ScopeFor(user), projectID)
}

// Get fetches one contract.
func (s *Service) Get(ctx context.Context, user rbac.User, id uuid.UUID) (Contract, error) {
	c, err := s.repo.Get(ctx, tenancy.ScopeFor(user), id)
	if err != nil {
		return Contract{}, err
	}
	if !s.policy.View(user, c) {
		return Contract{}, httpx.ErrForbidden
	}
	return c, nil
}

// CreateInput carries new-contract fields.
type CreateInput struct {
	ProjectID   uuid.UUID
	Reference   string
	Title       string
	AmountCents int64
}

// Create inserts a draft contract.
func (s *Service) Create(ctx context.Context, user rbac.User, in CreateInput) (Contract, error) {
	if !s.policy.Create(user) {
		return Contract{}, httpx.ErrForbidden
	}
	in.Reference = strings.TrimSpace(in.Reference)
	in.Title = strings.TrimSpace(in.Title)
	if in.Reference == "" || in.Title == "" {
		return Contract{}, httpx.ErrValidation
	}
	return s.repo.Create(ctx, tenancy.ScopeFor(user), Contract{
		ID:          uuid.New(),
		ProjectID:   in.ProjectID,
		Reference:   in.Reference,
		Title:       in.Title,
		Status:      StatusDraft,
		AmountCents: in.AmountCents,
		CreatedBy:   user.ID,
	})
}

// Update mutates contract title and amount.
func (s *Service) Update(ctx context.Context, user rbac.User, id uuid.UUID, title string, amountCents int64) (Contract, error) {
	scope := tenancy.ScopeFor(user)
	c, err := s.repo.Get(ctx, scope, id)
	if err != nil {
		return Contract{}, err
	}
	if !s.policy.Update(user, c) {
		return Contract{}, httpx.ErrForbidden
	}
	c.Title = strings.TrimSpace(title)
	if c.Title == "" {
		return Contract{}, httpx.ErrValidation
	}
	c.AmountCents = amountCents
	return s.repo.Update(ctx, scope, c)
}

// Delete removes a contract.
func (s *Service) Delete(ctx context.Context, user rbac.User, id uuid.UUID) error {
	scope := tenancy.ScopeFor(user)
	c, err := s.repo.Get(ctx, scope, id)
	if err != nil {
		return err
	}
	if !s.policy.Delete(user, c) {
		return httpx.ErrForbidden
	}
	return s.repo.Delete(ctx, scope, id)
}

// Approve transitions a draft contract to approved.
func (s *Service) Approve(ctx context.Context, user rbac.User, id uuid.UUID) (Contract, error) {
	scope := tenancy.ScopeFor(user)
	c, err := s.repo.Get(ctx, scope, id)
	if err != nil {
		return Contract{}, err
	}
	if !s.policy.Approve(user, c) {
		return Contract{}, httpx.ErrForbidden
	}
	c.Status = StatusApproved
	return s.repo.Update(ctx, scope, c)
}

// Send marks an approved contract as sent to the client.
func (s *Service) Send(ctx context.Context, user rbac.User, id uuid.UUID) (Contract, error) {
	scope := tenancy.ScopeFor(user)
	c, err := s.repo.Get(ctx, scope, id)
	if err != nil {
		return Contract{}, err
	}
	if !s.policy.Send(user, c) {
		return Contract{}, httpx.ErrForbidden
	}
	if c.Status != StatusApproved {
		return Contract{}, httpx.ErrValidation
	}
	c.Status = StatusSent
	return s.repo.Update(ctx, scope, c)
}

// ListPayments returns a contract's payment certificates.
func (s *Service) ListPayments(ctx context.Context, user rbac.User, contractID uuid.UUID) ([]Payment, error) {
	if !s.paymentPolicy.ViewAny(user) {
		return nil, httpx.ErrForbidden
	}
	return s.repo.ListPayments(ctx, tenancy.ScopeFor(user), contractID)
}

// CreatePayment raises a certificate against an in-tenant contract.
func (s *Service) CreatePayment(ctx context.Context, user rbac.User, contractID uuid.UUID, certificateNo int, amountCents int64) (Payment, error) {
	if !s.paymentPolicy.Create(user) {
		return Payment{}, httpx.ErrForbidden
	}
	if certificateNo <= 0 || amountCents < 0 {
		return Payment{}, httpx.ErrValidation
	}
	return s.repo.CreatePayment(ctx, tenancy.ScopeFor(user), Payment{
		ID:            uuid.New(),
		ContractID:    contractID,
		CertificateNo: certificateNo,
		AmountCents:   amountCents,
		Status:        StatusDraft,
	})
}

// ApprovePayment transitions a certificate to approved.
func (s *Service) ApprovePayment(ctx context.Context, user rbac.User, id uuid.UUID) (Payment, error) {
	scope := tenancy.ScopeFor(user)
	p, err := s.repo.GetPayment(ctx, scope, id)
	if err != nil {
		return Payment{}, err
	}
	if !s.paymentPolicy.Approve(user, p) {
		return Payment{}, httpx.ErrForbidden
	}
	return s.repo.UpdatePaymentStatus(ctx, scope, id, StatusApproved, nil)
}

// CertifyPayment records the certifying engineer on an approved
// certificate.
func (s *Service) CertifyPayment(ctx context.Context, user rbac.User, id uuid.UUID) (Payment, error) {
	scope := tenancy.ScopeFor(user)
	p, err := s.repo.GetPayment(ctx, scope, id)
	if err != nil {
		return Payment{}, err
	}
	if !s.paymentPolicy.Certify(user, p) {
		return Payment{}, httpx.ErrForbidden
	}
	if p.Status != StatusApproved {
		return Payment{}, httpx.ErrValidation
	}
	certifier := user.ID
	return s.repo.UpdatePaymentStatus(ctx, scope, id, "certified", &certifier)
}
