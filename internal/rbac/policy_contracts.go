package rbac

import "github.com/siteline-pm/siteline/internal/shared"

// ContractPolicy authorizes actions on contracts.
type ContractPolicy struct{}

func (ContractPolicy) ViewAny(u User) bool { return allowed(u, shared.PermContractView) }
func (ContractPolicy) Create(u User) bool  { return allowed(u, shared.PermContractCreate) }

func (ContractPolicy) View(u User, res TenantScoped) bool {
	return allowedOn(u, shared.PermContractView, res)
}

func (ContractPolicy) Update(u User, res TenantScoped) bool {
	return allowedOn(u, shared.PermContractUpdate, res)
}

func (ContractPolicy) Delete(u User, res TenantScoped) bool {
	return allowedOn(u, shared.PermContractDelete, res)
}

func (ContractPolicy) Approve(u User, res TenantScoped) bool {
	return allowedOn(u, shared.PermContractApprove, res)
}

func (ContractPolicy) Send(u User, res TenantScoped) bool {
	return allowedOn(u, shared.PermContractSend, res)
}

func (ContractPolicy) Comment(u User, res TenantScoped) bool {
	return allowedOn(u, shared.PermContractComment, res)
}

// ContractPaymentPolicy authorizes actions on payment certificates.
type ContractPaymentPolicy struct{}

func (ContractPaymentPolicy) ViewAny(u User) bool {
	return allowed(u, shared.PermContractPaymentView)
}

func (ContractPaymentPolicy) Create(u User) bool {
	return allowed(u, shared.PermContractPaymentCreate)
}

func (ContractPaymentPolicy) View(u User, res TenantScoped) bool {
	return allowedOn(u, shared.PermContractPaymentView, res)
}

func (ContractPaymentPolicy) Update(u User, res TenantScoped) bool {
	return allowedOn(u, shared.PermContractPaymentUpdate, res)
}

func (ContractPaymentPolicy) Delete(u User, res TenantScoped) bool {
	return allowedOn(u, shared.PermContractPaymentDelete, res)
}

func (ContractPaymentPolicy) Approve(u User, res TenantScoped) bool {
	return allowedOn(u, shared.PermContractPaymentApprove, res)
}

func (ContractPaymentPolicy) Certify(u User, res TenantScoped) bool {
	return allowedOn(u, shared.PermContractPaymentCertify, res)
}

// ChangeRequestPolicy authorizes actions on change requests.
type ChangeRequestPolicy struct{}

func (ChangeRequestPolicy) ViewAny(u User) bool {
	return allowed(u, shared.PermChangeRequestView)
}

func (ChangeRequestPolicy) Create(u User) bool {
	return allowed(u, shared.PermChangeRequestCreate)
}

func (ChangeRequestPolicy) View(u User, res TenantScoped) bool {
	return allowedOn(u, shared.PermChangeRequestView, res)
}

func (ChangeRequestPolicy) Update(u User, res TenantScoped) bool {
	return allowedOn(u, shared.PermChangeRequestUpdate, res)
}

func (ChangeRequestPolicy) Delete(u User, res TenantScoped) bool {
	return allowedOn(u, shared.PermChangeRequestDelete, res)
}

func (ChangeRequestPolicy) Submit(u User, res TenantScoped) bool {
	return allowedOn(u, shared.PermChangeRequestSubmit, res)
}

func (ChangeRequestPolicy) Approve(u User, res TenantScoped) bool {
	return allowedOn(u, shared.PermChangeRequestApprove, res)
}
