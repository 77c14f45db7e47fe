package shared

// Project area permissions declared for RBAC.
const (
	// Project permissions
	PermProjectView   = "project.view"
	PermProjectCreate = "project.create"
	PermProjectUpdate = "project.update"
	PermProjectDelete = "project.delete"

	// Task permissions
	PermTaskView    = "task.view"
	PermTaskCreate  = "task.create"
	PermTaskUpdate  = "task.update"
	PermTaskDelete  = "task.delete"
	PermTaskComment = "task.comment"

	// Component permissions
	PermComponentView   = "component.view"
	PermComponentCreate = "component.create"
	PermComponentUpdate = "component.update"
	PermComponentDelete = "component.delete"

	// Team permissions
	PermTeamView   = "team.view"
	PermTeamInvite = "team.invite"
	PermTeamUpdate = "team.update"
	PermTeamDelete = "team.delete"
)

// ProjectScopes lists all permissions related to the project module.
func ProjectScopes() []string {
	return []string{
		PermProjectView,
		PermProjectCreate,
		PermProjectUpdate,
		PermProjectDelete,
		PermTaskView,
		PermTaskCreate,
		PermTaskUpdate,
		PermTaskDelete,
		PermTaskComment,
		PermComponentView,
		PermComponentCreate,
		PermComponentUpdate,
		PermComponentDelete,
		PermTeamView,
		PermTeamInvite,
		PermTeamUpdate,
		PermTeamDelete,
	}
}
