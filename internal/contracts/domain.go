package contracts

import (
	"time"

	"github.com/google/uuid"
)

// Contract statuses.
const (
	StatusDraft    = "draft"
	StatusApproved = "approved"
	StatusSent     = "sent"
)

// Contract is an agreement under a project.
type Contract struct {
	ID          uuid.UUID
	Tenant      uuid.UUID
	ProjectID   uuid.UUID
	Reference   string
	Title       string
	Status      string
	AmountCents int64
	CreatedBy   uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TenantID reports the owning tenant.
func (c Contract) TenantID() uuid.UUID { return c.Tenant }

// Payment is a payment certificate raised against a contract.
type Payment struct {
	ID            uuid.UUID
	Tenant        uuid.UUID
	ContractID    uuid.UUID
	CertificateNo int
	AmountCents   int64
	Status        string
	CertifiedBy   *uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TenantID reports the owning tenant.
func (p Payment) TenantID() uuid.UUID { return p.Tenant }
