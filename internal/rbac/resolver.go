package rbac

import (
	"sort"

	"github.com/google/uuid"
)

// PermissionSet is the effective permission codes held by a user at
// decision time. It is recomputed per authorization decision from the
// user snapshot and is never cached across requests.
type PermissionSet map[Code]struct{}

// Has reports exact membership of a canonical code. There is no
// aliasing: a legacy or plural variant of a code is simply absent.
func (s PermissionSet) Has(code Code) bool {
	_, ok := s[code]
	return ok
}

// Codes returns the set sorted, for logging and admin listings.
func (s PermissionSet) Codes() []Code {
	out := make([]Code, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Resolve computes the union of permission codes across every active
// role assigned to the user, regardless of scope. An unassigned user
// resolves to the empty set; that is a normal outcome, not an error.
func Resolve(u User) PermissionSet {
	set := make(PermissionSet)
	for _, a := range u.Assignments {
		if !a.Role.IsActive {
			continue
		}
		for _, c := range a.Role.Permissions {
			set[c] = struct{}{}
		}
	}
	return set
}

// ResolveForProject computes the effective set within one project
// context. System-scope roles always contribute. A project-scoped
// assignment contributes only when it is pinned to the given project
// (or to no particular project), and only when the role carries
// AllowOverride: a project grant without the override flag cannot
// widen what the user's system-scope roles allow.
func ResolveForProject(u User, projectID uuid.UUID) PermissionSet {
	set := make(PermissionSet)
	for _, a := range u.Assignments {
		if !a.Role.IsActive || a.Role.Scope != ScopeSystem {
			continue
		}
		for _, c := range a.Role.Permissions {
			set[c] = struct{}{}
		}
	}
	for _, a := range u.Assignments {
		if !a.Role.IsActive || a.Role.Scope != ScopeProject {
			continue
		}
		if a.ProjectID != nil && *a.ProjectID != projectID {
			continue
		}
		if !a.Role.AllowOverride {
			continue
		}
		for _, c := range a.Role.Permissions {
			set[c] = struct{}{}
		}
	}
	return set
}
