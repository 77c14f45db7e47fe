package shared

// Document area permissions declared for RBAC.
const (
	PermDocumentView        = "document.view"
	PermDocumentCreate      = "document.create"
	PermDocumentUpdate      = "document.update"
	PermDocumentDelete      = "document.delete"
	PermDocumentForceDelete = "document.force_delete"
	PermDocumentDownload    = "document.download"
	PermDocumentApprove     = "document.approve"
	PermDocumentComment     = "document.comment"

	// Client permissions
	PermClientView   = "client.view"
	PermClientCreate = "client.create"
	PermClientUpdate = "client.update"
	PermClientDelete = "client.delete"
)

// DocumentScopes lists all permissions related to the document module.
func DocumentScopes() []string {
	return []string{
		PermDocumentView,
		PermDocumentCreate,
		PermDocumentUpdate,
		PermDocumentDelete,
		PermDocumentForceDelete,
		PermDocumentDownload,
		PermDocumentApprove,
		PermDocumentComment,
	}
}

// ClientScopes lists all permissions related to the client module.
func ClientScopes() []string {
	return []string{
		PermClientView,
		PermClientCreate,
		PermClientUpdate,
		PermClientDelete,
	}
}
