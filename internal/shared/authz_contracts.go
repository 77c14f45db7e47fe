package shared

// Contract area permissions declared for RBAC.
const (
	// Contract permissions
	PermContractView    = "contract.view"
	PermContractCreate  = "contract.create"
	PermContractUpdate  = "contract.update"
	PermContractDelete  = "contract.delete"
	PermContractApprove = "contract.approve"
	PermContractSend    = "contract.send"
	PermContractComment = "contract.comment"

	// Payment certificate permissions
	PermContractPaymentView    = "contract.payment.view"
	PermContractPaymentCreate  = "contract.payment.create"
	PermContractPaymentUpdate  = "contract.payment.update"
	PermContractPaymentDelete  = "contract.payment.delete"
	PermContractPaymentApprove = "contract.payment.approve"
	PermContractPaymentCertify = "contract.payment.certify"

	// Change request permissions
	PermChangeRequestView    = "change.request.view"
	PermChangeRequestCreate  = "change.request.create"
	PermChangeRequestUpdate  = "change.request.update"
	PermChangeRequestDelete  = "change.request.delete"
	PermChangeRequestSubmit  = "change.request.submit"
	PermChangeRequestApprove = "change.request.approve"
)

// ContractScopes lists all permissions related to the contract module.
func ContractScopes() []string {
	return []string{
		PermContractView,
		PermContractCreate,
		PermContractUpdate,
		PermContractDelete,
		PermContractApprove,
		PermContractSend,
		PermContractComment,
		PermContractPaymentView,
		PermContractPaymentCreate,
		PermContractPaymentUpdate,
		PermContractPaymentDelete,
		PermContractPaymentApprove,
		PermContractPaymentCertify,
		PermChangeRequestView,
		PermChangeRequestCreate,
		PermChangeRequestUpdate,
		PermChangeRequestDelete,
		PermChangeRequestSubmit,
		PermChangeRequestApprove,
	}
}
