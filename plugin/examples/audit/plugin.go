// Package audit is a static example plugin demonstrating the Plugin
// interface and the EventSubscriber/HealthReporter/Configurable optional
// capabilities together.
package audit

import (
	"context"
	"fmt"

	"github.com/kunihir0/gini-sub002/event"
	"github.com/kunihir0/gini-sub002/plugin"
	"go.uber.org/zap"
)

// Plugin records security-relevant system events.
//
// Implements: plugin.Plugin, plugin.EventSubscriber, plugin.HealthReporter, plugin.Configurable
type Plugin struct {
	service *Service
	logger  *zap.Logger
}

func (p *Plugin) Name() string { return "audit" }

func (p *Plugin) Preflight(ctx context.Context) error {
	return nil
}

func (p *Plugin) Init(ctx context.Context, app *plugin.AppContext) error {
	p.logger = app.Logger
	p.service = NewService(app.Logger)

	retentionDays := app.Config.GetInt("retention_days", 90)
	p.service.SetRetention(retentionDays)

	return nil
}

func (p *Plugin) Shutdown(ctx context.Context) error {
	if p.logger != nil {
		p.logger.Info("audit plugin: flushing pending logs")
	}
	return nil
}

// --- EventSubscriber ---

func (p *Plugin) SubscribeEvents(d *event.Dispatcher) {
	topics := []string{
		"user.created", "user.updated", "user.deleted",
		"permission.changed", "role.assigned", "role.revoked",
	}
	for _, topic := range topics {
		topic := topic
		d.RegisterByName(topic, func(ctx context.Context, e event.Event) error {
			p.service.Record(topic, e)
			return nil
		})
	}
}

// --- HealthReporter ---

func (p *Plugin) HealthCheck(ctx context.Context) error {
	if p.service == nil {
		return fmt.Errorf("audit service not initialized")
	}
	return nil
}

// --- Configurable ---

func (p *Plugin) PluginOptions() plugin.PluginOptions {
	return plugin.PluginOptions{
		Description: "System audit logging for security events",
	}
}

var (
	_ plugin.Plugin          = (*Plugin)(nil)
	_ plugin.EventSubscriber = (*Plugin)(nil)
	_ plugin.HealthReporter  = (*Plugin)(nil)
	_ plugin.Configurable    = (*Plugin)(nil)
)

// Service handles audit log storage and retrieval.
type Service struct {
	logger    *zap.Logger
	retention int
}

func NewService(logger *zap.Logger) *Service {
	return &Service{logger: logger, retention: 90}
}

func (s *Service) SetRetention(days int) { s.retention = days }

func (s *Service) Record(action string, e event.Event) {
	s.logger.Info("audit record", zap.String("action", action), zap.String("event", e.Name()))
}
