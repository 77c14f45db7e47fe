// Package rbac implements the tenant-scoped authorization core: the
// canonical permission catalog, role and assignment snapshots, the
// per-request permission resolver and the per-resource policy set.
package rbac

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound indicates that the requested record does not exist.
var ErrNotFound = errors.New("rbac: not found")

// Code is a canonical permission identifier shaped "module.action".
// The module prefix may itself be dotted (contract.payment.create); the
// action is always the last segment.
type Code string

var codePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*(\.[a-z][a-z0-9_]*)+$`)

// ParseCode validates and returns a permission code.
func ParseCode(s string) (Code, error) {
	s = strings.TrimSpace(s)
	if !codePattern.MatchString(s) {
		return "", fmt.Errorf("rbac: invalid permission code %q", s)
	}
	return Code(s), nil
}

// Module returns everything before the last dot.
func (c Code) Module() string {
	if i := strings.LastIndex(string(c), "."); i > 0 {
		return string(c)[:i]
	}
	return string(c)
}

// Action returns the last segment of the code.
func (c Code) Action() string {
	if i := strings.LastIndex(string(c), "."); i >= 0 {
		return string(c)[i+1:]
	}
	return string(c)
}

// Permission is a registered catalog entry. The code is the sole
// authorization key; Description is display-only and never consulted
// by a policy decision.
type Permission struct {
	Code        Code
	Description string
}

// RoleScope determines where a role's grants apply.
type RoleScope string

const (
	// ScopeSystem roles apply across the caller's whole tenant.
	ScopeSystem RoleScope = "system"
	// ScopeProject roles apply only within the project named on the
	// user-role assignment.
	ScopeProject RoleScope = "project"
)

// Valid reports whether the scope is a known value.
func (s RoleScope) Valid() bool {
	return s == ScopeSystem || s == ScopeProject
}

// Role is a named bundle of permission grants.
type Role struct {
	ID            uuid.UUID
	Name          string
	Scope         RoleScope
	IsActive      bool
	AllowOverride bool
	Description   string
	Permissions   []Code
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Assignment links a role to a user, optionally pinned to one project
// for project-scoped roles.
type Assignment struct {
	Role      Role
	ProjectID *uuid.UUID
}

// User is a plain per-request snapshot of the caller: identity, owning
// tenant and loaded role assignments. Policies operate on this value
// only; they never reach back into a session or data store.
type User struct {
	ID          uuid.UUID
	TenantID    uuid.UUID
	Email       string
	Assignments []Assignment
}

// HasActiveRole reports whether the user holds an active role with any
// of the given names. Used by policies that layer a qualifying-role
// requirement on top of the canonical permission check.
func (u User) HasActiveRole(names ...string) bool {
	for _, a := range u.Assignments {
		if !a.Role.IsActive {
			continue
		}
		for _, n := range names {
			if a.Role.Name == n {
				return true
			}
		}
	}
	return false
}

// TenantScoped is any resource carrying an owning tenant.
type TenantScoped interface {
	TenantID() uuid.UUID
}

// Addressed is a resource delivered to a specific user, such as a
// notification.
type Addressed interface {
	TenantScoped
	AddresseeID() uuid.UUID
}
