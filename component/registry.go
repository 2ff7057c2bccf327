package component

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	kerrors "github.com/kunihir0/gini-sub002/errors"
)

// Registry holds the kernel's own subsystems in registration order and
// drives their Initialize/Start/Stop lifecycle as a unit. Registration
// order is preserved for Initialize and Start; Stop always runs in the
// exact reverse, regardless of how many components later join.
//
// Registry is keyed by the component's concrete Go type: registering a
// second value of a type already present is an error, and Get looks a
// component up by the type parameter alone, with no name argument.
type Registry struct {
	mu         sync.Mutex
	components []Component
	byType     map[reflect.Type]Component
	started    []Component // recorded Start order, for exact-reverse Stop
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{byType: make(map[reflect.Type]Component)}
}

// Register appends c to the registry, keyed by its concrete type.
// Registration order is the order Initialize and Start will run in. It
// is an error to register a second component of a type already present.
func Register[T Component](r *Registry, c T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.Name() == "" {
		return fmt.Errorf("component: name cannot be empty")
	}
	typ := reflect.TypeOf(c)
	if _, exists := r.byType[typ]; exists {
		return fmt.Errorf("component: type %s already registered", typ)
	}
	r.byType[typ] = c
	r.components = append(r.components, c)
	return nil
}

// Get retrieves the component registered under type T.
func Get[T Component](r *Registry) (T, error) {
	var zero T
	typ := reflect.TypeOf(zero)

	r.mu.Lock()
	c, ok := r.byType[typ]
	r.mu.Unlock()

	if !ok {
		return zero, fmt.Errorf("component: type %s not found", typ)
	}
	typed, ok := c.(T)
	if !ok {
		return zero, fmt.Errorf("component: %s is not the requested type", typ)
	}
	return typed, nil
}

// InitializeAll calls Initialize on every registered component in
// registration order, stopping at the first error.
func (r *Registry) InitializeAll(ctx context.Context) error {
	r.mu.Lock()
	components := append([]Component(nil), r.components...)
	r.mu.Unlock()

	for _, c := range components {
		if err := c.Initialize(ctx); err != nil {
			return newLifecycleError(c.Name(), "initialize", err)
		}
	}
	return nil
}

// StartAll calls Start on every registered component in registration
// order, stopping at the first error. Successfully started components
// are recorded so StopAll can reverse exactly what started, even on a
// partial failure.
func (r *Registry) StartAll(ctx context.Context) error {
	r.mu.Lock()
	components := append([]Component(nil), r.components...)
	r.mu.Unlock()

	for _, c := range components {
		if err := c.Start(ctx); err != nil {
			return newLifecycleError(c.Name(), "start", err)
		}
		r.mu.Lock()
		r.started = append(r.started, c)
		r.mu.Unlock()
	}
	return nil
}

// StopAll calls Stop on every successfully-started component in the
// exact reverse of the order Start succeeded in. Stop order is never
// independently recomputed from registration order: it is always the
// reverse of recorded Start order, so a component that never started
// is never stopped. Errors from individual Stop calls are aggregated,
// not short-circuited, so one failing Stop cannot block the rest.
func (r *Registry) StopAll(ctx context.Context) error {
	r.mu.Lock()
	started := append([]Component(nil), r.started...)
	r.started = nil
	r.mu.Unlock()

	var errs []error
	for i := len(started) - 1; i >= 0; i-- {
		c := started[i]
		if err := c.Stop(ctx); err != nil {
			errs = append(errs, newLifecycleError(c.Name(), "stop", err))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return kerrors.Join(errs...)
}

// Names returns registered component names in registration order.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.components))
	for _, c := range r.components {
		names = append(names, c.Name())
	}
	return names
}
