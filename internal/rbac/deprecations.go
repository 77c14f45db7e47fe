package rbac

import "github.com/siteline-pm/siteline/internal/shared"

// legacyCodes maps permission codes from the pre-migration plural
// naming scheme to their canonical replacements. A grant held under a
// legacy code never authorizes; the mapping exists so the seeder and
// the prune tooling can find and revoke stale grants explicitly.
var legacyCodes = map[string]string{
	"projects.view":    shared.PermProjectView,
	"projects.create":  shared.PermProjectCreate,
	"projects.update":  shared.PermProjectUpdate,
	"projects.delete":  shared.PermProjectDelete,
	"tasks.view":       shared.PermTaskView,
	"tasks.create":     shared.PermTaskCreate,
	"tasks.update":     shared.PermTaskUpdate,
	"tasks.delete":     shared.PermTaskDelete,
	"components.view":  shared.PermComponentView,
	"teams.view":       shared.PermTeamView,
	"teams.invite":     shared.PermTeamInvite,
	"contracts.view":   shared.PermContractView,
	"contracts.create": shared.PermContractCreate,
	"contracts.update": shared.PermContractUpdate,
	"contracts.delete": shared.PermContractDelete,

	"contract.payments.view":   shared.PermContractPaymentView,
	"contract.payments.create": shared.PermContractPaymentCreate,
	"contract.payments.update": shared.PermContractPaymentUpdate,
	"contract.payments.delete": shared.PermContractPaymentDelete,

	"documents.view":     shared.PermDocumentView,
	"documents.create":   shared.PermDocumentCreate,
	"documents.download": shared.PermDocumentDownload,
	"documents.approve":  shared.PermDocumentApprove,
	"clients.view":       shared.PermClientView,
	"clients.create":     shared.PermClientCreate,
	"notifications.view": shared.PermNotificationView,
	"notifications.send": shared.PermNotificationSend,
}

// DefaultRegistry builds the registry from the canonical catalog in
// internal/shared plus the recorded legacy deprecations.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, code := range shared.AllScopes() {
		r.MustRegister(code, "")
	}
	for legacy, canonical := range legacyCodes {
		if err := r.Deprecate(legacy, canonical); err != nil {
			panic(err)
		}
	}
	return r
}
