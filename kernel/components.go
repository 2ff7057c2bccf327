package kernel

import (
	"context"

	"github.com/kunihir0/gini-sub002/adapter"
	"github.com/kunihir0/gini-sub002/event"
	"github.com/kunihir0/gini-sub002/plugin"
	"github.com/kunihir0/gini-sub002/provider"
	"github.com/kunihir0/gini-sub002/stage"
	"go.uber.org/zap"
)

// eventComponent wraps *event.Dispatcher as a component.Component so the
// kernel's component.Registry can drive its lifecycle alongside every
// other subsystem.
type eventComponent struct {
	dispatcher *event.Dispatcher
}

func (c *eventComponent) Name() string                         { return "event" }
func (c *eventComponent) Initialize(ctx context.Context) error { return nil }
func (c *eventComponent) Start(ctx context.Context) error      { return nil }
func (c *eventComponent) Stop(ctx context.Context) error {
	c.dispatcher.Close()
	return nil
}

// adapterComponent wraps *adapter.Registry.
type adapterComponent struct {
	registry *adapter.Registry
}

func (c *adapterComponent) Name() string                         { return "adapter" }
func (c *adapterComponent) Initialize(ctx context.Context) error { return nil }
func (c *adapterComponent) Start(ctx context.Context) error      { return nil }
func (c *adapterComponent) Stop(ctx context.Context) error       { return nil }

// stageComponent wraps *stage.Registry.
type stageComponent struct {
	registry *stage.Registry
}

func (c *stageComponent) Name() string                         { return "stage" }
func (c *stageComponent) Initialize(ctx context.Context) error { return nil }
func (c *stageComponent) Start(ctx context.Context) error      { return nil }
func (c *stageComponent) Stop(ctx context.Context) error       { return nil }

// storageComponent wraps the host-supplied provider.StorageProvider so
// it participates in the declared storage->event->stage->plugin
// ordering even though the kernel does not own its implementation.
type storageComponent struct {
	provider provider.StorageProvider
}

func (c *storageComponent) Name() string                         { return "storage" }
func (c *storageComponent) Initialize(ctx context.Context) error { return nil }
func (c *storageComponent) Start(ctx context.Context) error      { return nil }
func (c *storageComponent) Stop(ctx context.Context) error       { return nil }

// pluginComponent wraps *plugin.Registry together with the loader and
// the built-in plugin-initialization pipeline. Its Start hook is where
// the loader scans, resolves, and registers plugins, and the pipeline
// drives their preflight/init, all in one method.
type pluginComponent struct {
	k *Kernel
}

func (c *pluginComponent) Name() string { return "plugin" }

func (c *pluginComponent) Initialize(ctx context.Context) error {
	return nil
}

func (c *pluginComponent) Start(ctx context.Context) error {
	k := c.k
	if err := k.Loader.ScanForManifests(ctx); err != nil {
		return err
	}
	if _, err := k.Loader.RegisterAllPlugins(ctx, k.Plugins, k.APIVersion, ABIVersion); err != nil {
		return err
	}

	pipeline, err := k.buildInitializationPipeline()
	if err != nil {
		return err
	}

	sc := k.newStageContext(stage.Live)
	_, err = pipeline.Execute(ctx, sc)
	return err
}

func (c *pluginComponent) Stop(ctx context.Context) error {
	return c.k.Plugins.ShutdownAll(ctx)
}

func newLogger(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
