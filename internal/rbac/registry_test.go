package rbac

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/siteline-pm/siteline/internal/shared"
)

func TestParseCode(t *testing.T) {
	valid := []string{
		"project.view",
		"contract.payment.certify",
		"change.request.approve",
		"a.b_c.d2",
	}
	for _, s := range valid {
		c, err := ParseCode(s)
		require.NoError(t, err, s)
		require.Equal(t, Code(s), c)
	}

	invalid := []string{
		"",
		"project",
		"Project.View",
		".view",
		"project..view",
		"project.view.",
		"project view",
		"1project.view",
	}
	for _, s := range invalid {
		_, err := ParseCode(s)
		require.Error(t, err, s)
	}
}

func TestCodeModuleAction(t *testing.T) {
	require.Equal(t, "project", Code("project.view").Module())
	require.Equal(t, "view", Code("project.view").Action())
	require.Equal(t, "contract.payment", Code("contract.payment.certify").Module())
	require.Equal(t, "certify", Code("contract.payment.certify").Action())
}

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()

	p, err := r.Register("project.view", "View projects")
	require.NoError(t, err)
	require.Equal(t, Code("project.view"), p.Code)

	_, err = r.Register("project.view", "again")
	require.Error(t, err)

	_, err = r.Register("Not A Code", "")
	require.Error(t, err)

	got, ok := r.Lookup("project.view")
	require.True(t, ok)
	require.Equal(t, "View projects", got.Description)

	_, ok = r.Lookup("project.delete")
	require.False(t, ok)
}

func TestRegistryDeprecate(t *testing.T) {
	r := NewRegistry()
	r.MustRegister("project.view", "")

	require.Error(t, r.Deprecate("projects.view", "project.delete"),
		"canonical code must be registered first")
	require.NoError(t, r.Deprecate("projects.view", "project.view"))

	// A deprecated code never joins the catalog.
	_, ok := r.Lookup("projects.view")
	require.False(t, ok)
	_, err := r.Register("projects.view", "")
	require.Error(t, err)

	canonical, ok := r.Canonical("projects.view")
	require.True(t, ok)
	require.Equal(t, Code("project.view"), canonical)

	_, ok = r.Canonical("project.view")
	require.False(t, ok)

	// A registered canonical code cannot also be marked deprecated.
	require.Error(t, r.Deprecate("project.view", "project.view"))
}

func TestRegistryAllSorted(t *testing.T) {
	r := NewRegistry()
	r.MustRegister("task.view", "")
	r.MustRegister("component.view", "")
	r.MustRegister("project.view", "")

	all := r.All()
	require.Len(t, all, 3)
	require.Equal(t, Code("component.view"), all[0].Code)
	require.Equal(t, Code("project.view"), all[1].Code)
	require.Equal(t, Code("task.view"), all[2].Code)
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()

	for _, code := range shared.AllScopes() {
		_, ok := r.Lookup(code)
		require.True(t, ok, code)
	}

	deps := r.Deprecations()
	require.NotEmpty(t, deps)
	for legacy, canonical := range deps {
		_, ok := r.Lookup(string(legacy))
		require.False(t, ok, "legacy code %q must not be registered", legacy)
		_, ok = r.Lookup(string(canonical))
		require.True(t, ok, "canonical code %q must be registered", canonical)
	}

	canonical, ok := r.Canonical("contract.payments.update")
	require.True(t, ok)
	require.Equal(t, Code(shared.PermContractPaymentUpdate), canonical)
}
