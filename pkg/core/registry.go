// pkg/core/registry.go
package core

import (
	"fmt"
	"sort"
	"strings"
)

// HandlerFunc serves one request. It may return a *Response, a string or
// []byte (wrapped in a 200 response), nil (empty 200), or an error (500).
type HandlerFunc func(req *Request) any

// RouteEntry is one registered route. Handler is usually a method value
// bound to Owner, so controller state is shared across requests.
type RouteEntry struct {
	Path    string
	Methods map[string]struct{}
	Handler HandlerFunc
	Owner   Controller
}

// Allows reports whether method may be used on this route.
func (e *RouteEntry) Allows(method string) bool {
	_, ok := e.Methods[strings.ToUpper(method)]
	return ok
}

// MethodList returns the permitted methods sorted.
func (e *RouteEntry) MethodList() []string {
	out := make([]string, 0, len(e.Methods))
	for m := range e.Methods {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// Registry maps exact paths to routes and remembers insertion order.
// It is written during start-up only; once frozen it is read-only and
// safe for concurrent lookups without locking.
type Registry struct {
	order  []string
	routes map[string]*RouteEntry
	frozen bool
}

func NewRegistry() *Registry {
	return &Registry{routes: make(map[string]*RouteEntry)}
}

// Register adds a route. Paths are never overridden or removed.
func (r *Registry) Register(path string, h HandlerFunc, methods []string, owner Controller) error {
	if r.frozen {
		return fmt.Errorf("%w: cannot register %q", ErrRegistryFrozen, path)
	}
	if h == nil {
		return fmt.Errorf("%w: %q", ErrNilHandler, path)
	}
	set := make(map[string]struct{}, len(methods))
	for _, m := range methods {
		m = strings.ToUpper(strings.TrimSpace(m))
		if m != "" {
			set[m] = struct{}{}
		}
	}
	if len(set) == 0 {
		return fmt.Errorf("%w: %q", ErrNoMethods, path)
	}
	if _, dup := r.routes[path]; dup {
		return fmt.Errorf("%w: %q", ErrDuplicateRoute, path)
	}
	r.routes[path] = &RouteEntry{Path: path, Methods: set, Handler: h, Owner: owner}
	r.order = append(r.order, path)
	return nil
}

// Lookup returns the entry registered under path exactly.
func (r *Registry) Lookup(path string) (*RouteEntry, bool) {
	e, ok := r.routes[path]
	return e, ok
}

// Routes returns entries in registration order.
func (r *Registry) Routes() []*RouteEntry {
	out := make([]*RouteEntry, 0, len(r.order))
	for _, p := range r.order {
		out = append(out, r.routes[p])
	}
	return out
}

func (r *Registry) Len() int { return len(r.order) }

// Freeze stops further registration.
func (r *Registry) Freeze() { r.frozen = true }

func (r *Registry) Frozen() bool { return r.frozen }

// Describe renders the route count and ordered path list for diagnostics.
func (r *Registry) Describe() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d route(s)", len(r.order))
	for _, p := range r.order {
		fmt.Fprintf(&b, "\n  %s [%s]", p, strings.Join(r.routes[p].MethodList(), ","))
	}
	return b.String()
}
