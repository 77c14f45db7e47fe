// Package tenancy enforces the tenant isolation invariant: every read
// and write of tenant-scoped data carries the caller's tenant id, and
// crossing that boundary requires the explicit system scope.
package tenancy

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/siteline-pm/siteline/internal/rbac"
)

// Scope pins data access to one tenant. Repositories take a Scope and
// bind its tenant id into every statement; there is no code path that
// queries tenant-scoped tables without one.
type Scope struct {
	tenantID uuid.UUID
	system   bool
}

// ScopeFor returns the scope of an authenticated user.
func ScopeFor(user rbac.User) Scope {
	if user.TenantID == uuid.Nil {
		panic("tenancy: user snapshot missing tenant")
	}
	return Scope{tenantID: user.TenantID}
}

// ForTenant returns a scope pinned to the given tenant. Used by code
// paths that carry a tenant id but no full user snapshot, such as
// background jobs acting on behalf of a tenant.
func ForTenant(tenantID uuid.UUID) Scope {
	if tenantID == uuid.Nil {
		panic("tenancy: zero tenant id")
	}
	return Scope{tenantID: tenantID}
}

// SystemScope is the audited escape hatch for maintenance code. It is
// never constructed from request handling; the reason is logged so
// every bypass leaves a trace.
func SystemScope(logger *slog.Logger, reason string) Scope {
	if logger != nil {
		logger.Warn("tenancy scope bypassed", slog.String("reason", reason))
	}
	return Scope{system: true}
}

// TenantID returns the pinned tenant. It panics for a system scope:
// callers that bind the id into a query must not hold a bypass.
func (s Scope) TenantID() uuid.UUID {
	if s.system {
		panic("tenancy: system scope has no tenant id")
	}
	return s.tenantID
}

// System reports whether the scope bypasses tenant filtering.
func (s Scope) System() bool { return s.system }

// Allows re-verifies the tenant boundary on an already-fetched
// resource. Policies call this indirectly through rbac; repositories
// use it as a belt check after joins.
func (s Scope) Allows(res rbac.TenantScoped) bool {
	if s.system {
		return true
	}
	return res.TenantID() == s.tenantID
}
