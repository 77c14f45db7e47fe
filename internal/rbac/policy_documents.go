package rbac

import "github.com/siteline-pm/siteline/internal/shared"

// DocumentPolicy authorizes actions on project documents.
type DocumentPolicy struct{}

func (DocumentPolicy) ViewAny(u User) bool { return allowed(u, shared.PermDocumentView) }
func (DocumentPolicy) Create(u User) bool  { return allowed(u, shared.PermDocumentCreate) }

func (DocumentPolicy) View(u User, res TenantScoped) bool {
	return allowedOn(u, shared.PermDocumentView, res)
}

func (DocumentPolicy) Update(u User, res TenantScoped) bool {
	return allowedOn(u, shared.PermDocumentUpdate, res)
}

func (DocumentPolicy) Delete(u User, res TenantScoped) bool {
	return allowedOn(u, shared.PermDocumentDelete, res)
}

func (DocumentPolicy) ForceDelete(u User, res TenantScoped) bool {
	return allowedOn(u, shared.PermDocumentForceDelete, res)
}

func (DocumentPolicy) Download(u User, res TenantScoped) bool {
	return allowedOn(u, shared.PermDocumentDownload, res)
}

func (DocumentPolicy) Approve(u User, res TenantScoped) bool {
	return allowedOn(u, shared.PermDocumentApprove, res)
}

func (DocumentPolicy) Comment(u User, res TenantScoped) bool {
	return allowedOn(u, shared.PermDocumentComment, res)
}

// ClientPolicy authorizes actions on client records.
type ClientPolicy struct{}

func (ClientPolicy) ViewAny(u User) bool { return allowed(u, shared.PermClientView) }
func (ClientPolicy) Create(u User) bool  { return allowed(u, shared.PermClientCreate) }

func (ClientPolicy) View(u User, res TenantScoped) bool {
	return allowedOn(u, shared.PermClientView, res)
}

func (ClientPolicy) Update(u User, res TenantScoped) bool {
	return allowedOn(u, shared.PermClientUpdate, res)
}

func (ClientPolicy) Delete(u User, res TenantScoped) bool {
	return allowedOn(u, shared.PermClientDelete, res)
}
