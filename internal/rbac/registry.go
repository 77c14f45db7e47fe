package rbac

import (
	"fmt"
	"sort"
	"sync"
)

// Registry is the canonical permission catalog. Codes are validated at
// registration so that a typo surfaces during bootstrap instead of
// silently denying (or worse, granting) at decision time.
//
// Legacy codes from earlier naming schemes are recorded via Deprecate:
// they are enumerable for migration tooling but never satisfy a check.
type Registry struct {
	mu         sync.RWMutex
	perms      map[Code]Permission
	deprecated map[Code]Code
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		perms:      make(map[Code]Permission),
		deprecated: make(map[Code]Code),
	}
}

// Register adds a permission to the catalog.
func (r *Registry) Register(code, description string) (Permission, error) {
	c, err := ParseCode(code)
	if err != nil {
		return Permission{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.perms[c]; ok {
		return Permission{}, fmt.Errorf("rbac: permission %q already registered", c)
	}
	if _, ok := r.deprecated[c]; ok {
		return Permission{}, fmt.Errorf("rbac: permission %q is deprecated", c)
	}
	p := Permission{Code: c, Description: description}
	r.perms[c] = p
	return p, nil
}

// MustRegister registers a permission and panics on failure. Intended
// for the static catalog built at startup.
func (r *Registry) MustRegister(code, description string) {
	if _, err := r.Register(code, description); err != nil {
		panic(err)
	}
}

// Deprecate records a legacy code and the canonical code that replaced
// it. The canonical code must already be registered.
func (r *Registry) Deprecate(legacy, canonical string) error {
	lc, err := ParseCode(legacy)
	if err != nil {
		return err
	}
	cc, err := ParseCode(canonical)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.perms[cc]; !ok {
		return fmt.Errorf("rbac: canonical permission %q not registered", cc)
	}
	if _, ok := r.perms[lc]; ok {
		return fmt.Errorf("rbac: %q is a registered canonical code", lc)
	}
	r.deprecated[lc] = cc
	return nil
}

// Lookup returns the registered permission for a canonical code.
func (r *Registry) Lookup(code string) (Permission, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.perms[Code(code)]
	return p, ok
}

// Canonical resolves a legacy code to its canonical replacement. It
// exists for migration tooling only; policies never consult it.
func (r *Registry) Canonical(legacy string) (Code, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.deprecated[Code(legacy)]
	return c, ok
}

// All returns the catalog sorted by code.
func (r *Registry) All() []Permission {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Permission, 0, len(r.perms))
	for _, p := range r.perms {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// Deprecations returns a copy of the legacy-to-canonical mapping.
func (r *Registry) Deprecations() map[Code]Code {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[Code]Code, len(r.deprecated))
	for k, v := range r.deprecated {
		out[k] = v
	}
	return out
}
