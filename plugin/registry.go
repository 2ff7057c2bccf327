package plugin

import (
	"context"
	"slices"
	"sort"
	"sync"

	kerrors "github.com/kunihir0/gini-sub002/errors"
	"go.uber.org/zap"
)

// registered holds a plugin's handle alongside the manifest that
// produced it and its live lifecycle flags.
type registered struct {
	manifest    *Manifest
	plugin      Plugin
	enabled     bool
	initialized bool
	state       State
}

// Registry holds live plugins, computes init/shutdown order, and drives
// their lifecycle through a preflight/init/shutdown triad.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*registered
	order   []string // recorded order plugins actually initialized in

	conflictManager ConflictManager
	logger          *zap.Logger
}

// NewRegistry creates an empty plugin registry.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{entries: make(map[string]*registered), logger: logger}
}

// Register stores plugin p under its manifest's id. Duplicate ids are
// rejected.
func (r *Registry) Register(m *Manifest, p Plugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[m.ID]; exists {
		return kerrors.New(kerrors.PluginSystem, "register", "duplicate plugin id: "+m.ID)
	}
	r.entries[m.ID] = &registered{manifest: m, plugin: p, enabled: true, state: StateRegistered}
	return nil
}

// StateOf reports the lifecycle state of the plugin registered under id.
func (r *Registry) StateOf(id string) (State, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok {
		return 0, false
	}
	return e.state, true
}

// IDs returns every registered plugin id, in no particular order.
func (r *Registry) IDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]string, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	return ids
}

// PluginByID retrieves the Plugin handle registered under id.
func (r *Registry) PluginByID(id string) (Plugin, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok {
		return nil, false
	}
	return e.plugin, true
}

// InitOrder computes a topological order over the dependency graph via
// Kahn's algorithm, breaking ties in the zero-in-degree frontier by
// (Priority, ID) so the order is fully deterministic.
func (r *Registry) InitOrder() ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	inDegree := make(map[string]int, len(r.entries))
	edges := make(map[string][]string, len(r.entries)) // dep -> dependents
	for id := range r.entries {
		inDegree[id] = 0
	}
	for id, e := range r.entries {
		for _, dep := range e.manifest.Dependencies {
			if _, ok := r.entries[dep.PluginID]; !ok {
				continue // optional or unresolved; loader already validated required ones
			}
			edges[dep.PluginID] = append(edges[dep.PluginID], id)
			inDegree[id]++
		}
	}

	var frontier []string
	for id, deg := range inDegree {
		if deg == 0 {
			frontier = append(frontier, id)
		}
	}

	var order []string
	for len(frontier) > 0 {
		sort.Slice(frontier, func(i, j int) bool {
			pi, pj := r.entries[frontier[i]].manifest.Priority, r.entries[frontier[j]].manifest.Priority
			if pi != pj {
				return pi < pj
			}
			return frontier[i] < frontier[j]
		})
		next := frontier[0]
		frontier = frontier[1:]
		order = append(order, next)

		for _, dependent := range edges[next] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				frontier = append(frontier, dependent)
			}
		}
	}

	if len(order) != len(r.entries) {
		var stuck []string
		for id, deg := range inDegree {
			if deg > 0 {
				stuck = append(stuck, id)
			}
		}
		sort.Strings(stuck)
		return nil, kerrors.NewCycleDetected(stuck)
	}
	return order, nil
}

// ShutdownOrder is the exact reverse of the order plugins actually
// finished initializing in -- never an independent recomputation, so a
// partially-failed bootstrap only tears down what actually came up.
func (r *Registry) ShutdownOrder() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := slices.Clone(r.order)
	slices.Reverse(out)
	return out
}

// InitializeAll runs ConflictManager.Detect, aborts on an unresolved
// critical conflict, then drives preflight -> init across plugins in
// InitOrder. A required plugin's failure aborts remaining init; an
// optional plugin's failure is logged and skipped.
func (r *Registry) InitializeAll(ctx context.Context, app *AppContext) error {
	if err := r.checkConflicts(); err != nil {
		return err
	}

	order, err := r.InitOrder()
	if err != nil {
		return err
	}

	for _, id := range order {
		r.mu.Lock()
		e := r.entries[id]
		r.mu.Unlock()
		if !e.enabled {
			continue
		}

		required := !isOptional(e.plugin)

		if err := e.plugin.Preflight(ctx); err != nil {
			r.logger.Warn("plugin preflight failed", zap.String("plugin", id), zap.Error(err))
			r.mu.Lock()
			e.state = StateFailed
			r.mu.Unlock()
			if required {
				return kerrors.FromError(kerrors.PluginSystem, "preflight:"+id, err)
			}
			continue
		}
		r.mu.Lock()
		e.state = StatePreflighted
		r.mu.Unlock()

		if err := e.plugin.Init(ctx, app); err != nil {
			r.logger.Warn("plugin init failed", zap.String("plugin", id), zap.Error(err))
			r.mu.Lock()
			e.state = StateFailed
			r.mu.Unlock()
			if required {
				return kerrors.FromError(kerrors.PluginSystem, "init:"+id, err)
			}
			continue
		}

		r.mu.Lock()
		e.initialized = true
		e.state = StateInitialized
		r.order = append(r.order, id)
		r.mu.Unlock()
	}
	return nil
}

// ShutdownAll runs Shutdown on every initialized plugin in ShutdownOrder,
// collecting errors rather than stopping at the first one.
func (r *Registry) ShutdownAll(ctx context.Context) error {
	order := r.ShutdownOrder()

	var errs []error
	for _, id := range order {
		r.mu.Lock()
		e := r.entries[id]
		r.mu.Unlock()
		if e == nil || !e.initialized {
			continue
		}
		if err := e.plugin.Shutdown(ctx); err != nil {
			errs = append(errs, kerrors.FromError(kerrors.PluginSystem, "shutdown:"+id, err))
			continue
		}
		r.mu.Lock()
		e.state = StateShutdown
		r.mu.Unlock()
	}
	if len(errs) == 0 {
		return nil
	}
	return kerrors.Join(errs...)
}

func (r *Registry) checkConflicts() error {
	r.mu.Lock()
	versions := make(map[string]string, len(r.entries))
	for id, e := range r.entries {
		versions[id] = e.manifest.Version.String()
	}
	surfaces := make([]PluginSurface, 0, len(r.entries))
	for id, e := range r.entries {
		surfaces = append(surfaces, PluginSurface{ID: id, Manifest: e.manifest, ResolvedVersions: versions})
	}
	r.mu.Unlock()

	conflicts := r.conflictManager.Detect(surfaces)
	for _, c := range conflicts {
		if c.Critical() && !c.Resolved {
			return kerrors.New(kerrors.PluginSystem, "conflict_check", c.Description)
		}
		r.logger.Warn("plugin conflict", zap.String("a", c.A), zap.String("b", c.B), zap.String("kind", c.Kind.String()))
	}
	return nil
}

func isOptional(p Plugin) bool {
	if c, ok := p.(Configurable); ok {
		return c.PluginOptions().Optional
	}
	return false
}
