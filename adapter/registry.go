// Package adapter implements the kernel's adapter registry: values are
// keyed both by a string name and by their concrete Go type, with
// type-safe Get/GetMut/Register wrappers layered on top via generics, so
// any adapter kind (storage, cache, transport) can be held under a name
// and retrieved, shared or exclusively, as its concrete type.
package adapter

import (
	"fmt"
	"reflect"
	"sync"
)

// Registry holds named adapter values, keyed both by name and by
// concrete Go type: registering a second value under an in-use name, or
// a second value of a type already registered under another name, is an
// error. Get returns a shared reference to the value; GetMut returns an
// exclusive reference via a handle the caller must Release, and is
// mutually exclusive with every other Get or GetMut on the same name
// until that Release happens.
type Registry struct {
	mu    sync.RWMutex
	items map[string]*entry
	types map[reflect.Type]string // concrete type -> owning name
}

type entry struct {
	value any
	typ   reflect.Type
	lock  sync.RWMutex // shared (Get) vs exclusive (GetMut) access to value
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{items: make(map[string]*entry), types: make(map[reflect.Type]string)}
}

// Register stores value under name. It is an error to register a second
// value under a name already in use, or a second value whose concrete
// type is already registered under a different name; call Remove first
// to replace either.
func Register[T any](r *Registry, name string, value T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[name]; exists {
		return fmt.Errorf("adapter: %q already registered", name)
	}
	typ := reflect.TypeOf(value)
	if owner, exists := r.types[typ]; exists {
		return fmt.Errorf("adapter: type %s already registered under name %q", typ, owner)
	}
	r.items[name] = &entry{value: value, typ: typ}
	r.types[typ] = name
	return nil
}

// Get retrieves the value stored under name as type T, as a shared
// reference: concurrent Get calls never block each other. It returns an
// error if name is unknown, was registered under a different type, or
// is currently held exclusively by an outstanding GetMut.
func Get[T any](r *Registry, name string) (T, error) {
	var zero T
	r.mu.RLock()
	e, ok := r.items[name]
	r.mu.RUnlock()

	if !ok {
		return zero, fmt.Errorf("adapter: %q not registered", name)
	}
	if !e.lock.TryRLock() {
		return zero, fmt.Errorf("adapter: %q is exclusively borrowed via GetMut", name)
	}
	defer e.lock.RUnlock()

	typed, ok := e.value.(T)
	if !ok {
		return zero, fmt.Errorf("adapter: %q registered as %s, not %T", name, e.typ, zero)
	}
	return typed, nil
}

// MutHandle is the exclusive reference returned by GetMut. Release must
// be called to end the borrow; until then, every other Get or GetMut on
// the same name fails.
type MutHandle[T any] struct {
	value T
	e     *entry
}

// Value returns the exclusively-borrowed value.
func (h *MutHandle[T]) Value() T { return h.value }

// Release ends the exclusive borrow.
func (h *MutHandle[T]) Release() { h.e.lock.Unlock() }

// GetMut retrieves the value stored under name as type T for exclusive
// use. It fails if name is unknown, was registered under a different
// type, or already has an outstanding Get or GetMut borrow in progress.
func GetMut[T any](r *Registry, name string) (*MutHandle[T], error) {
	var zero T
	r.mu.RLock()
	e, ok := r.items[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("adapter: %q not registered", name)
	}
	if !e.lock.TryLock() {
		return nil, fmt.Errorf("adapter: %q is already borrowed", name)
	}
	typed, ok := e.value.(T)
	if !ok {
		e.lock.Unlock()
		return nil, fmt.Errorf("adapter: %q registered as %s, not %T", name, e.typ, zero)
	}
	return &MutHandle[T]{value: typed, e: e}, nil
}

// Remove deletes the adapter registered under name, returning the value
// removed and whether it existed.
func (r *Registry) Remove(name string) (any, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.items[name]
	if !ok {
		return nil, false
	}
	delete(r.items, name)
	delete(r.types, e.typ)
	return e.value, true
}

// Names returns the currently registered adapter names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.items))
	for n := range r.items {
		names = append(names, n)
	}
	return names
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.items[name]
	return ok
}
