package rbac

import "github.com/google/uuid"

// Policy decisions answer "no" by returning false, never by error. A
// nil-equivalent user snapshot or a resource without a tenant id is a
// caller bug, not an access attempt, and panics with an rbac: message.

func mustUser(u User) {
	if u.ID == uuid.Nil || u.TenantID == uuid.Nil {
		panic("rbac: user snapshot missing id or tenant")
	}
}

func mustResource(res TenantScoped) uuid.UUID {
	if res == nil {
		panic("rbac: nil resource")
	}
	tid := res.TenantID()
	if tid == uuid.Nil {
		panic("rbac: resource missing tenant id")
	}
	return tid
}

// allowed checks the caller's effective set for the exact canonical
// code. No resource is involved, so no tenant check applies.
func allowed(u User, code string) bool {
	mustUser(u)
	return Resolve(u).Has(Code(code))
}

// allowedOn conjoins the canonical-code check with the tenant-boundary
// check. The two halves are never substitutable: a cross-tenant
// resource is denied no matter how broad the caller's grants are, and
// a same-tenant resource is denied without the exact code. The tenant
// comparison runs regardless of how the resource was fetched, so the
// policy stays safe for resources obtained through bypassed queries.
func allowedOn(u User, code string, res TenantScoped) bool {
	mustUser(u)
	tid := mustResource(res)
	if tid != u.TenantID {
		return false
	}
	return Resolve(u).Has(Code(code))
}
