package stage

import (
	"sync"

	"github.com/google/uuid"
	"github.com/kunihir0/gini-sub002/adapter"
	"github.com/kunihir0/gini-sub002/event"
	"github.com/kunihir0/gini-sub002/provider"
)

// ExecutionMode selects whether a Pipeline actually executes stages or
// only asks DryRunnable stages to predict what they would do.
type ExecutionMode int

const (
	Live ExecutionMode = iota
	DryRun
)

// Context is the shared per-run state passed to every stage in a
// Pipeline execution. It is mutated only by the currently executing
// stage and must never be shared across concurrently running
// pipelines -- callers construct a fresh Context per Pipeline.Execute
// call.
type Context struct {
	Mode      ExecutionMode
	ConfigDir string

	// RunID uniquely identifies this Pipeline.Execute invocation for log
	// correlation across stages and plugins.
	RunID string

	Events   *event.Dispatcher
	Adapters *adapter.Registry
	Stages   *Registry
	Storage  provider.StorageProvider

	mu        sync.Mutex
	shared    map[string]any
	dryRun    []DryRunEntry
	preflight map[string]error
}

// NewContext creates a Context wired to the kernel's live subsystems.
func NewContext(mode ExecutionMode, configDir string, dispatcher *event.Dispatcher, adapters *adapter.Registry, stages *Registry, storage provider.StorageProvider) *Context {
	return &Context{
		Mode:      mode,
		ConfigDir: configDir,
		RunID:     uuid.NewString(),
		Events:    dispatcher,
		Adapters:  adapters,
		Stages:    stages,
		Storage:   storage,
		shared:    make(map[string]any),
		preflight: make(map[string]error),
	}
}

// Shared retrieves (and SetShared stores) a named, opaquely-typed piece of data
// passed between stages within one pipeline run (e.g. the
// "stage_registry_arc" key used by kernel/stages.go).
func (c *Context) Shared(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.shared[key]
	return v, ok
}

// SetShared stores value under key for later stages to read via Shared.
func (c *Context) SetShared(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.shared[key] = value
}

// RecordPreflightFailure stores a per-plugin preflight error under the
// well-known key plugin.preflight uses to collect failures without
// failing the stage itself.
func (c *Context) RecordPreflightFailure(pluginID string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.preflight[pluginID] = err
}

// PreflightFailures returns a copy of the failures recorded so far.
func (c *Context) PreflightFailures() map[string]error {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]error, len(c.preflight))
	for k, v := range c.preflight {
		out[k] = v
	}
	return out
}

// RecordDryRun appends e to the context's dry-run log; called by
// Pipeline.Execute after a DryRunnable.DryRunCheck call.
func (c *Context) RecordDryRun(e DryRunEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dryRun = append(c.dryRun, e)
}

func (c *Context) dryRunEntries() []DryRunEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]DryRunEntry(nil), c.dryRun...)
}
