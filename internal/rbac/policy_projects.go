package rbac

import "github.com/siteline-pm/siteline/internal/shared"

// Role names that qualify for creating projects in addition to the
// canonical permission. The permission check remains authoritative;
// the role-name check only narrows further.
var projectCreatorRoles = []string{"admin", "project_manager", "site_engineer"}

// ProjectPolicy authorizes actions on projects.
type ProjectPolicy struct{}

func (ProjectPolicy) ViewAny(u User) bool { return allowed(u, shared.PermProjectView) }

func (ProjectPolicy) Create(u User) bool {
	return allowed(u, shared.PermProjectCreate) && u.HasActiveRole(projectCreatorRoles...)
}

func (ProjectPolicy) View(u User, res TenantScoped) bool {
	return allowedOn(u, shared.PermProjectView, res)
}

func (ProjectPolicy) Update(u User, res TenantScoped) bool {
	return allowedOn(u, shared.PermProjectUpdate, res)
}

func (ProjectPolicy) Delete(u User, res TenantScoped) bool {
	return allowedOn(u, shared.PermProjectDelete, res)
}

// TaskPolicy authorizes actions on project tasks.
type TaskPolicy struct{}

func (TaskPolicy) ViewAny(u User) bool { return allowed(u, shared.PermTaskView) }
func (TaskPolicy) Create(u User) bool  { return allowed(u, shared.PermTaskCreate) }

func (TaskPolicy) View(u User, res TenantScoped) bool {
	return allowedOn(u, shared.PermTaskView, res)
}

func (TaskPolicy) Update(u User, res TenantScoped) bool {
	return allowedOn(u, shared.PermTaskUpdate, res)
}

func (TaskPolicy) Delete(u User, res TenantScoped) bool {
	return allowedOn(u, shared.PermTaskDelete, res)
}

func (TaskPolicy) Comment(u User, res TenantScoped) bool {
	return allowedOn(u, shared.PermTaskComment, res)
}

// ComponentPolicy authorizes actions on project components.
type ComponentPolicy struct{}

func (ComponentPolicy) ViewAny(u User) bool { return allowed(u, shared.PermComponentView) }
func (ComponentPolicy) Create(u User) bool  { return allowed(u, shared.PermComponentCreate) }

func (ComponentPolicy) View(u User, res TenantScoped) bool {
	return allowedOn(u, shared.PermComponentView, res)
}

func (ComponentPolicy) Update(u User, res TenantScoped) bool {
	return allowedOn(u, shared.PermComponentUpdate, res)
}

func (ComponentPolicy) Delete(u User, res TenantScoped) bool {
	return allowedOn(u, shared.PermComponentDelete, res)
}

// TeamPolicy authorizes actions on project teams.
type TeamPolicy struct{}

func (TeamPolicy) ViewAny(u User) bool { return allowed(u, shared.PermTeamView) }

func (TeamPolicy) View(u User, res TenantScoped) bool {
	return allowedOn(u, shared.PermTeamView, res)
}

func (TeamPolicy) Update(u User, res TenantScoped) bool {
	return allowedOn(u, shared.PermTeamUpdate, res)
}

func (TeamPolicy) Delete(u User, res TenantScoped) bool {
	return allowedOn(u, shared.PermTeamDelete, res)
}

func (TeamPolicy) Invite(u User, res TenantScoped) bool {
	return allowedOn(u, shared.PermTeamInvite, res)
}
