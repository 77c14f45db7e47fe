package documents

import (
	"time"

	"github.com/google/uuid"
)

// Document is file metadata attached to a project. Binary storage is
// external; the storage key points at it.
type Document struct {
	ID         uuid.UUID
	Tenant     uuid.UUID
	ProjectID  *uuid.UUID
	Name       string
	StorageKey string
	Status     string
	UploadedBy uuid.UUID
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TenantID reports the owning tenant.
func (d Document) TenantID() uuid.UUID { return d.Tenant }
