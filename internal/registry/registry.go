// Package registry holds the ordered registration list and the table of
// known interface types.
package registry

import (
	"reflect"
	"sync"
)

// Entry is what the registry needs to know about a registration.
type Entry interface {
	HasService(service reflect.Type) bool
	Services() []reflect.Type
	Name() string
}

// Registry is an ordered collection of entries. The most recently added entry
// takes precedence: every lookup walks entries newest first.
type Registry[E Entry] struct {
	mu sync.RWMutex

	// entries is kept in insertion order and read back to front
	entries []E

	// interfaces lists known interface types in declaration order
	interfaces []reflect.Type
	known      map[reflect.Type]struct{}
}

// New creates an empty registry.
func New[E Entry]() *Registry[E] {
	return &Registry[E]{
		known: make(map[reflect.Type]struct{}),
	}
}

// Add places e ahead of every existing entry.
func (r *Registry[E]) Add(e E) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, e)
}

// First returns the newest entry serving service.
func (r *Registry[E]) First(service reflect.Type) (E, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].HasService(service) {
			return r.entries[i], true
		}
	}

	var zero E
	return zero, false
}

// FirstNamed returns the newest entry whose name equals name exactly.
// Unnamed entries never match.
func (r *Registry[E]) FirstNamed(name string) (E, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if name != "" {
		for i := len(r.entries) - 1; i >= 0; i-- {
			if r.entries[i].Name() == name {
				return r.entries[i], true
			}
		}
	}

	var zero E
	return zero, false
}

// All returns every entry serving service, newest first.
func (r *Registry[E]) All(service reflect.Type) []E {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []E
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].HasService(service) {
			matches = append(matches, r.entries[i])
		}
	}

	return matches
}

// Contains reports whether any entry serves service.
func (r *Registry[E]) Contains(service reflect.Type) bool {
	_, ok := r.First(service)
	return ok
}

// Entries returns a copy of all entries, newest first.
func (r *Registry[E]) Entries() []E {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]E, 0, len(r.entries))
	for i := len(r.entries) - 1; i >= 0; i-- {
		entries = append(entries, r.entries[i])
	}

	return entries
}

// Len returns the number of entries.
func (r *Registry[E]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.entries)
}

// ServiceTypes returns every distinct service type served by some entry.
func (r *Registry[E]) ServiceTypes() []reflect.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[reflect.Type]struct{})
	var types []reflect.Type
	for i := len(r.entries) - 1; i >= 0; i-- {
		for _, t := range r.entries[i].Services() {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			types = append(types, t)
		}
	}

	return types
}

// DeclareInterface records t in the interface table. It reports false when t
// is not an interface or is already known.
func (r *Registry[E]) DeclareInterface(t reflect.Type) bool {
	if t == nil || t.Kind() != reflect.Interface {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.known[t]; ok {
		return false
	}

	r.known[t] = struct{}{}
	r.interfaces = append(r.interfaces, t)
	return true
}

// Interfaces returns the known interface types in declaration order.
func (r *Registry[E]) Interfaces() []reflect.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()

	interfaces := make([]reflect.Type, len(r.interfaces))
	copy(interfaces, r.interfaces)
	return interfaces
}
