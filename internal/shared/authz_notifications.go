package shared

// Notification permissions declared for RBAC.
const (
	PermNotificationView   = "notification.view"
	PermNotificationSend   = "notification.send"
	PermNotificationManage = "notification.manage"
	PermNotificationDelete = "notification.delete"
)

// NotificationScopes lists all permissions related to the notification module.
func NotificationScopes() []string {
	return []string{
		PermNotificationView,
		PermNotificationSend,
		PermNotificationManage,
		PermNotificationDelete,
	}
}

// AllScopes returns the full canonical permission catalog.
func AllScopes() []string {
	scopes := CoreScopes()
	scopes = append(scopes, ProjectScopes()...)
	scopes = append(scopes, ContractScopes()...)
	scopes = append(scopes, DocumentScopes()...)
	scopes = append(scopes, ClientScopes()...)
	scopes = append(scopes, NotificationScopes()...)
	return scopes
}
