package rbac

import "github.com/siteline-pm/siteline/internal/shared"

// RolePolicy authorizes administration of roles and grants.
type RolePolicy struct{}

func (RolePolicy) ViewAny(u User) bool { return allowed(u, shared.PermRoleView) }
func (RolePolicy) Create(u User) bool  { return allowed(u, shared.PermRoleCreate) }
func (RolePolicy) Update(u User) bool  { return allowed(u, shared.PermRoleEdit) }
func (RolePolicy) Delete(u User) bool  { return allowed(u, shared.PermRoleDelete) }
func (RolePolicy) Assign(u User) bool  { return allowed(u, shared.PermRoleAssign) }

// UserPolicy authorizes administration of tenant users.
type UserPolicy struct{}

func (UserPolicy) ViewAny(u User) bool { return allowed(u, shared.PermUserView) }

func (UserPolicy) View(u User, res TenantScoped) bool {
	return allowedOn(u, shared.PermUserView, res)
}

func (UserPolicy) Update(u User, res TenantScoped) bool {
	return allowedOn(u, shared.PermUserEdit, res)
}
