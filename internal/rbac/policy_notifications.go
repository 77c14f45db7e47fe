package rbac

import "github.com/siteline-pm/siteline/internal/shared"

// NotificationPolicy authorizes actions on notifications.
type NotificationPolicy struct{}

func (NotificationPolicy) ViewAny(u User) bool {
	return allowed(u, shared.PermNotificationView)
}

func (NotificationPolicy) View(u User, res TenantScoped) bool {
	return allowedOn(u, shared.PermNotificationView, res)
}

func (NotificationPolicy) Send(u User, res TenantScoped) bool {
	return allowedOn(u, shared.PermNotificationSend, res)
}

func (NotificationPolicy) Delete(u User, res TenantScoped) bool {
	return allowedOn(u, shared.PermNotificationDelete, res)
}

// MarkAsRead permits the notification's own addressee without any
// permission grant. The bypass applies only to the addressee; marking
// anyone else's notification still requires notification.manage, and
// the tenant boundary holds in both branches.
func (NotificationPolicy) MarkAsRead(u User, res Addressed) bool {
	mustUser(u)
	tid := mustResource(res)
	if tid != u.TenantID {
		return false
	}
	if res.AddresseeID() == u.ID {
		return true
	}
	return Resolve(u).Has(Code(shared.PermNotificationManage))
}
