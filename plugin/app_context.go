package plugin

import (
	"github.com/kunihir0/gini-sub002/adapter"
	"github.com/kunihir0/gini-sub002/event"
	"github.com/kunihir0/gini-sub002/provider"
	"github.com/kunihir0/gini-sub002/stage"
	"go.uber.org/zap"
)

// AppContext is the typed dependency-injection context passed to every
// plugin lifecycle method, giving it access to the kernel's own
// subsystems.
type AppContext struct {
	Logger   *zap.Logger
	Events   *event.Dispatcher
	Adapters *adapter.Registry
	Stages   *stage.Registry
	Storage  provider.StorageProvider
	Config   ScopedConfig
}
