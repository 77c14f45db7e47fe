package projects

import (
	"time"

	"github.com/google/uuid"
)

// Project is a construction project, the top-level tenant-scoped
// grouping for contracts, documents and teams.
type Project struct {
	ID        uuid.UUID
	Tenant    uuid.UUID
	Name      string
	Code      string
	Status    string
	CreatedBy uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TenantID reports the owning tenant, set once at creation.
func (p Project) TenantID() uuid.UUID { return p.Tenant }
