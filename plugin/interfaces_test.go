package plugin

import (
	"context"
	"testing"

	"github.com/kunihir0/gini-sub002/event"
)

// testFullPlugin implements the core interface plus every optional
// capability -- verifies compile-time compliance.
type testFullPlugin struct{}

func (p *testFullPlugin) Name() string                           { return "test-full" }
func (p *testFullPlugin) Preflight(context.Context) error        { return nil }
func (p *testFullPlugin) Init(context.Context, *AppContext) error { return nil }
func (p *testFullPlugin) Shutdown(context.Context) error         { return nil }

func (p *testFullPlugin) SubscribeEvents(*event.Dispatcher) {}
func (p *testFullPlugin) HealthCheck(context.Context) error { return nil }
func (p *testFullPlugin) PluginOptions() PluginOptions {
	return PluginOptions{Optional: false, Description: "test"}
}

var (
	_ Plugin          = (*testFullPlugin)(nil)
	_ EventSubscriber = (*testFullPlugin)(nil)
	_ HealthReporter  = (*testFullPlugin)(nil)
	_ Configurable    = (*testFullPlugin)(nil)
)

// testMinimalPlugin implements ONLY the core interface -- proves ISP works.
type testMinimalPlugin struct{}

func (p *testMinimalPlugin) Name() string                            { return "test-minimal" }
func (p *testMinimalPlugin) Preflight(context.Context) error         { return nil }
func (p *testMinimalPlugin) Init(context.Context, *AppContext) error { return nil }
func (p *testMinimalPlugin) Shutdown(context.Context) error          { return nil }

var _ Plugin = (*testMinimalPlugin)(nil)

func TestCapabilityDetection(t *testing.T) {
	full := Plugin(&testFullPlugin{})
	minimal := Plugin(&testMinimalPlugin{})

	if _, ok := full.(EventSubscriber); !ok {
		t.Error("testFullPlugin should implement EventSubscriber")
	}
	if _, ok := full.(Configurable); !ok {
		t.Error("testFullPlugin should implement Configurable")
	}

	if _, ok := minimal.(EventSubscriber); ok {
		t.Error("testMinimalPlugin should NOT implement EventSubscriber")
	}
	if _, ok := minimal.(Configurable); ok {
		t.Error("testMinimalPlugin should NOT implement Configurable")
	}
}
