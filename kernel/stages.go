package kernel

import (
	"context"
	"sort"

	"github.com/kunihir0/gini-sub002/event"
	"github.com/kunihir0/gini-sub002/stage"
)

const (
	stagePreflight      = "plugin.preflight"
	stageInitialize     = "plugin.initialize"
	stagePostInitialize = "plugin.post_initialize"
)

// preflightStage iterates the plugin registry and invokes Preflight on
// each plugin, collecting failures into the context under a well-known
// key. The stage itself always succeeds, regardless of per-plugin
// outcomes -- failures surface later, in plugin.initialize.
type preflightStage struct {
	k *Kernel
}

func (s *preflightStage) ID() string { return stagePreflight }

func (s *preflightStage) Execute(ctx context.Context, sc *stage.Context) error {
	ids := s.k.Plugins.IDs()
	sort.Strings(ids)

	for _, id := range ids {
		p, ok := s.k.Plugins.PluginByID(id)
		if !ok {
			continue
		}
		if err := p.Preflight(ctx); err != nil {
			sc.RecordPreflightFailure(id, err)
		}
	}
	return nil
}

// initializeStage takes the shared stage-registry handle from the
// context (key "stage_registry_arc") and drives the plugin registry's
// topological init. A required plugin's failure hard-fails this stage.
type initializeStage struct {
	k *Kernel
}

func (s *initializeStage) ID() string { return stageInitialize }

func (s *initializeStage) Execute(ctx context.Context, sc *stage.Context) error {
	if _, ok := sc.Shared("stage_registry_arc"); !ok {
		sc.SetShared("stage_registry_arc", s.k.Stages)
	}

	return s.k.Plugins.InitializeAll(ctx, s.k.appContext())
}

// postInitializeStage announces kernel readiness on the event
// dispatcher once every plugin has finished initializing.
type postInitializeStage struct {
	k *Kernel
}

func (s *postInitializeStage) ID() string { return stagePostInitialize }

func (s *postInitializeStage) Execute(ctx context.Context, sc *stage.Context) error {
	ready := readyEvent{BaseEvent: event.NewBaseEvent("kernel.ready")}
	_, err := sc.Events.Dispatch(ctx, &ready)
	return err
}

type readyEvent struct {
	event.BaseEvent
}

func registerCoreStages(k *Kernel) {
	_ = k.Stages.Register(&preflightStage{k: k})
	_ = k.Stages.Register(&initializeStage{k: k})
	_ = k.Stages.Register(&postInitializeStage{k: k})
}

func (k *Kernel) buildInitializationPipeline() (*stage.Pipeline, error) {
	return stage.NewPipelineBuilder(k.Stages).
		AddStage(stagePreflight).
		AddStage(stageInitialize).
		AddStage(stagePostInitialize).
		AddDependency(stagePreflight, stageInitialize).
		AddDependency(stageInitialize, stagePostInitialize).
		Build()
}
