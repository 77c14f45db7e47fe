package shared

// Core platform permissions.
const (
	PermUserView = "user.view"
	PermUserEdit = "user.edit"

	PermRoleView   = "role.view"
	PermRoleCreate = "role.create"
	PermRoleEdit   = "role.edit"
	PermRoleDelete = "role.delete"
	PermRoleAssign = "role.assign"

	PermPermissionView = "permission.view"
)

// CoreScopes lists all permissions related to the core platform.
func CoreScopes() []string {
	return []string{
		PermUserView,
		PermUserEdit,
		PermRoleView,
		PermRoleCreate,
		PermRoleEdit,
		PermRoleDelete,
		PermRoleAssign,
		PermPermissionView,
	}
}
