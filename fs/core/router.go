package core

import (
	"slices"
	"sort"
	"sync"

	perrors "github.com/jmgilman/devaccess/errors"
)

// Factory creates the Access serving one host of a scheme.
type Factory func(host string) (Access, error)

// Resolver selects the Access serving a path.
type Resolver interface {
	Resolve(p Path) (Access, error)
}

// Router is a dispatch table keyed by scheme. Local paths go to the local
// backend; every other scheme goes to its registered factory. The Access
// created for a scheme and host is reused for the lifetime of the Router so
// that per-device capability caches survive between calls.
type Router struct {
	local Access

	mu        sync.Mutex
	factories map[string]Factory
	instances map[string]map[string]Access
	hosts     map[string]map[string]struct{}
}

// NewRouter creates a Router serving local paths with local.
func NewRouter(local Access) *Router {
	return &Router{
		local:     local,
		factories: make(map[string]Factory),
		instances: make(map[string]map[string]Access),
		hosts:     make(map[string]map[string]struct{}),
	}
}

// Register installs the factory for scheme, replacing any previous one.
func (r *Router) Register(scheme string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[scheme] = f
	delete(r.instances, scheme)
}

// AddHost records a known host so it appears in DeviceRoots before it is
// first used.
func (r *Router) AddHost(scheme, host string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.addHostLocked(scheme, host)
}

func (r *Router) addHostLocked(scheme, host string) {
	if r.hosts[scheme] == nil {
		r.hosts[scheme] = make(map[string]struct{})
	}
	r.hosts[scheme][host] = struct{}{}
}

// Resolve returns the Access for p.
func (r *Router) Resolve(p Path) (Access, error) {
	if !p.NeedsDevice() {
		return r.local, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if a, ok := r.instances[p.Scheme][p.Host]; ok {
		return a, nil
	}

	f, ok := r.factories[p.Scheme]
	if !ok {
		return nil, perrors.Newf(perrors.CodeNotFound, "No device registered for scheme %q", p.Scheme)
	}

	a, err := f(p.Host)
	if err != nil {
		return nil, perrors.Wrapf(err, perrors.CodeUnavailable, "Cannot access device %s://%s", p.Scheme, p.Host)
	}

	if r.instances[p.Scheme] == nil {
		r.instances[p.Scheme] = make(map[string]Access)
	}
	r.instances[p.Scheme][p.Host] = a
	r.addHostLocked(p.Scheme, p.Host)
	return a, nil
}

// Schemes returns the registered schemes in sorted order.
func (r *Router) Schemes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, 0, len(r.factories))
	for s := range r.factories {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// HasScheme reports whether scheme has a registered factory.
func (r *Router) HasScheme(scheme string) bool {
	return slices.Contains(r.Schemes(), scheme)
}

// DeviceRoots returns the root path of every known host of scheme.
func (r *Router) DeviceRoots(scheme string) []Path {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Path, 0, len(r.hosts[scheme]))
	for h := range r.hosts[scheme] {
		out = append(out, Path{Scheme: scheme, Host: h, Path: "/"})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Host < out[j].Host })
	return out
}

// Single returns a Resolver that answers every path with a.
func Single(a Access) Resolver {
	return single{a}
}

type single struct{ a Access }

func (s single) Resolve(Path) (Access, error) { return s.a, nil }

