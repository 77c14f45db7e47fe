package rbac

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/siteline-pm/siteline/internal/shared"
)

func TestResolveUnionsActiveRoles(t *testing.T) {
	tenant := uuid.New()
	inactive := activeRole("disabled", shared.PermProjectDelete)
	inactive.IsActive = false
	u := snapshot(tenant,
		activeRole("viewer", shared.PermProjectView, shared.PermTaskView),
		activeRole("finance", shared.PermContractPaymentCertify, shared.PermTaskView),
		inactive,
	)

	set := Resolve(u)
	require.Len(t, set, 3)
	require.True(t, set.Has(Code(shared.PermProjectView)))
	require.True(t, set.Has(Code(shared.PermTaskView)))
	require.True(t, set.Has(Code(shared.PermContractPaymentCertify)))
	require.False(t, set.Has(Code(shared.PermProjectDelete)))
}

func TestResolveEmptyForUnassignedUser(t *testing.T) {
	set := Resolve(snapshot(uuid.New()))
	require.Empty(t, set)
	require.False(t, set.Has(Code(shared.PermProjectView)))
}

func TestCodesSorted(t *testing.T) {
	u := snapshot(uuid.New(), activeRole("viewer",
		shared.PermTaskView, shared.PermProjectView, shared.PermComponentView))
	codes := Resolve(u).Codes()
	require.Equal(t, []Code{
		Code(shared.PermComponentView),
		Code(shared.PermProjectView),
		Code(shared.PermTaskView),
	}, codes)
}

func TestResolveForProject(t *testing.T) {
	tenant := uuid.New()
	projectA := uuid.New()
	projectB := uuid.New()

	system := activeRole("viewer", shared.PermProjectView)

	lead := activeRole("project_lead", shared.PermTaskDelete)
	lead.Scope = ScopeProject
	lead.AllowOverride = true

	noOverride := activeRole("observer", shared.PermTeamInvite)
	noOverride.Scope = ScopeProject

	u := User{
		ID:       uuid.New(),
		TenantID: tenant,
		Assignments: []Assignment{
			{Role: system},
			{Role: lead, ProjectID: &projectA},
			{Role: noOverride, ProjectID: &projectA},
		},
	}

	inA := ResolveForProject(u, projectA)
	require.True(t, inA.Has(Code(shared.PermProjectView)))
	require.True(t, inA.Has(Code(shared.PermTaskDelete)))
	// Without allow_override a project-scoped grant cannot widen the
	// system-scope set, even inside the pinned project.
	require.False(t, inA.Has(Code(shared.PermTeamInvite)))

	inB := ResolveForProject(u, projectB)
	require.True(t, inB.Has(Code(shared.PermProjectView)))
	require.False(t, inB.Has(Code(shared.PermTaskDelete)))
}

func TestResolveForProjectUnpinnedAssignment(t *testing.T) {
	tenant := uuid.New()
	lead := activeRole("project_lead", shared.PermTaskDelete)
	lead.Scope = ScopeProject
	lead.AllowOverride = true

	u := User{
		ID:          uuid.New(),
		TenantID:    tenant,
		Assignments: []Assignment{{Role: lead}},
	}

	// An assignment with no pinned project applies in every project
	// context.
	require.True(t, ResolveForProject(u, uuid.New()).Has(Code(shared.PermTaskDelete)))
}

func TestResolveForProjectIgnoresInactiveProjectRole(t *testing.T) {
	tenant := uuid.New()
	project := uuid.New()
	lead := activeRole("project_lead", shared.PermTaskDelete)
	lead.Scope = ScopeProject
	lead.AllowOverride = true
	lead.IsActive = false

	u := User{
		ID:          uuid.New(),
		TenantID:    tenant,
		Assignments: []Assignment{{Role: lead, ProjectID: &project}},
	}
	require.Empty(t, ResolveForProject(u, project))
}
