package plugin

import (
	"context"

	"github.com/kunihir0/gini-sub002/event"
)

// Plugin is the minimal interface every plugin must implement, whether
// loaded as a static in-process factory or wrapped by a VTable around a
// dynamic library. This mirrors the three VTable calls of the stable
// C ABI: preflight, init, shutdown.
type Plugin interface {
	Name() string
	Preflight(ctx context.Context) error
	Init(ctx context.Context, app *AppContext) error
	Shutdown(ctx context.Context) error
}

// --- Optional capability interfaces ---
// Narrow single-method interfaces a plugin opts into independently of
// the others. The registry detects only Configurable (via type
// assertion); neither the registry nor the kernel calls
// SubscribeEvents or HealthCheck.

// EventSubscriber -- subscribe to kernel or plugin events at init time.
type EventSubscriber interface {
	SubscribeEvents(d *event.Dispatcher)
}

// HealthReporter -- provide a liveness/readiness check beyond preflight.
type HealthReporter interface {
	HealthCheck(ctx context.Context) error
}

// Configurable -- declare plugin options (optional flag, description).
type Configurable interface {
	PluginOptions() PluginOptions
}

// PluginOptions holds declarative metadata about a plugin.
type PluginOptions struct {
	Optional    bool   // If true, failure does not abort bootstrap.
	Description string // Human-readable description.
}
