package notifications

import (
	"time"

	"github.com/google/uuid"
)

// Notification is a message addressed to one user within a tenant.
type Notification struct {
	ID        uuid.UUID
	Tenant    uuid.UUID
	UserID    uuid.UUID
	Subject   string
	Body      string
	ReadAt    *time.Time
	CreatedAt time.Time
}

// TenantID reports the owning tenant.
func (n Notification) TenantID() uuid.UUID { return n.Tenant }

// AddresseeID reports the user the notification is addressed to. This
// is the identity the markAsRead self-access exception keys on.
func (n Notification) AddresseeID() uuid.UUID { return n.UserID }
