// Package kernel glues the other subsystems together into a Kernel
// struct that orchestrates components (storage, event, stage, plugin)
// and, through the plugin component, application plugins.
package kernel

import (
	"context"
	"fmt"

	"github.com/kunihir0/gini-sub002/adapter"
	"github.com/kunihir0/gini-sub002/component"
	"github.com/kunihir0/gini-sub002/config"
	"github.com/kunihir0/gini-sub002/event"
	"github.com/kunihir0/gini-sub002/logging"
	"github.com/kunihir0/gini-sub002/plugin"
	"github.com/kunihir0/gini-sub002/provider"
	"github.com/kunihir0/gini-sub002/stage"
	"github.com/kunihir0/gini-sub002/version"
	"go.uber.org/zap"
)

// ABIVersion is the C ABI version every dynamic plugin's VTable must
// match to be accepted.
const ABIVersion uint32 = 1

// DefaultAPIVersion is the kernel's own semantic version, checked
// against each manifest's api_versions set.
var DefaultAPIVersion = version.MustParse("1.0.0")

// Kernel wires one instance each of the event dispatcher, adapter
// registry, stage registry, and plugin registry/loader, registers them
// as components in the declared storage -> event -> stage -> plugin
// order, and drives their lifecycle as a unit.
type Kernel struct {
	APIVersion version.Version
	Logger     *zap.Logger

	Events   *event.Dispatcher
	Adapters *adapter.Registry
	Stages   *stage.Registry
	Plugins  *plugin.Registry
	Loader   *plugin.Loader
	Storage  provider.StorageProvider

	ConfigDir  string
	components *component.Registry
}

// Option configures a Kernel at construction time.
type Option func(*Kernel)

// WithStorage supplies the host-provided storage backend.
func WithStorage(p provider.StorageProvider) Option {
	return func(k *Kernel) { k.Storage = p }
}

// WithLogger supplies the kernel's zap logger; a nil logger is replaced
// with a no-op one.
func WithLogger(l *zap.Logger) Option {
	return func(k *Kernel) { k.Logger = newLogger(l) }
}

// WithPluginDir adds a plugin search directory.
func WithPluginDir(dir string) Option {
	return func(k *Kernel) { k.Loader.AddPluginDir(dir) }
}

// WithConfigDir sets the directory StageContext exposes to stages.
func WithConfigDir(dir string) Option {
	return func(k *Kernel) { k.ConfigDir = dir }
}

// WithAPIVersion overrides DefaultAPIVersion, e.g. for tests.
func WithAPIVersion(v version.Version) Option {
	return func(k *Kernel) { k.APIVersion = v }
}

// WithBootstrapConfig applies a config.BootstrapConfig loaded via viper:
// plugin directories are added to the Loader, and Logger is replaced by
// one built from the log level. The replacement happens unconditionally,
// so a logger supplied earlier via WithLogger is discarded.
func WithBootstrapConfig(bc *config.BootstrapConfig) Option {
	return func(k *Kernel) {
		for _, dir := range bc.PluginDirs {
			k.Loader.AddPluginDir(dir)
		}
		k.Logger = newLogger(logging.NewFactory(logging.Config{
			Level:         bc.LogLevel,
			LogInTerminal: true,
		}).GetLogger("kernel").Zap())
	}
}

// New constructs a Kernel and its four owned subsystems, then registers
// them as components in the fixed bootstrap order (storage, event,
// stage, plugin).
func New(opts ...Option) *Kernel {
	k := &Kernel{
		APIVersion: DefaultAPIVersion,
		Logger:     zap.NewNop(),
	}
	k.Events = event.New(k.Logger)
	k.Adapters = adapter.New()
	k.Stages = stage.NewRegistry()
	k.Plugins = plugin.NewRegistry(k.Logger)
	k.Loader = plugin.NewLoader(k.Logger)
	k.components = component.New()

	for _, opt := range opts {
		opt(k)
	}

	registerComponents(k)
	registerCoreStages(k)
	return k
}

func registerComponents(k *Kernel) {
	_ = component.Register[*storageComponent](k.components, &storageComponent{provider: k.Storage})
	_ = component.Register[*eventComponent](k.components, &eventComponent{dispatcher: k.Events})
	_ = component.Register[*stageComponent](k.components, &stageComponent{registry: k.Stages})
	_ = component.Register[*pluginComponent](k.components, &pluginComponent{k: k})
}

// Start initializes and starts every component in order; the plugin
// component's Start is where the loader scans, resolves, and
// initializes plugins.
func (k *Kernel) Start(ctx context.Context) error {
	if err := k.components.InitializeAll(ctx); err != nil {
		return fmt.Errorf("kernel: initialize: %w", err)
	}
	if err := k.components.StartAll(ctx); err != nil {
		return fmt.Errorf("kernel: start: %w", err)
	}
	return nil
}

// Stop stops every component in the exact reverse of the order Start
// succeeded in, aggregating errors.
func (k *Kernel) Stop(ctx context.Context) error {
	return k.components.StopAll(ctx)
}

func (k *Kernel) newStageContext(mode stage.ExecutionMode) *stage.Context {
	return stage.NewContext(mode, k.ConfigDir, k.Events, k.Adapters, k.Stages, k.Storage)
}

// appContext builds the AppContext handed to every plugin's Init.
func (k *Kernel) appContext() *plugin.AppContext {
	return &plugin.AppContext{
		Logger:   k.Logger,
		Events:   k.Events,
		Adapters: k.Adapters,
		Stages:   k.Stages,
		Storage:  k.Storage,
		Config:   plugin.EmptyConfig(),
	}
}
