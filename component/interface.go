// Package component is the kernel's bootstrap registry: a fixed-order
// container for the kernel's own top-level subsystems (event dispatcher,
// stage registry, plugin registry, storage provider), started and
// stopped in a deterministic sequence. It is distinct from plugin.Plugin,
// which is the third-party extension unit the kernel loads dynamically.
package component

import "context"

// Component is a long-lived kernel subsystem with an async lifecycle,
// owned for the kernel's own process lifetime.
type Component interface {
	// Name identifies the component for logging; Registry itself keys
	// registration and lookup by concrete Go type, not by Name.
	Name() string

	// Initialize prepares the component (wiring, config, allocation) but
	// must not start background work. Called once, in registration order.
	Initialize(ctx context.Context) error

	// Start begins background work (listeners, goroutines). Called once,
	// after every component has completed Initialize.
	Start(ctx context.Context) error

	// Stop releases resources and halts background work. Called once,
	// in the exact reverse of Start order.
	Stop(ctx context.Context) error
}
