package plugin

import "github.com/kunihir0/gini-sub002/version"

// Dependency names another plugin a manifest requires (or conflicts
// with, when used inside IncompatibleWith).
type Dependency struct {
	PluginID     string         `json:"plugin_id" validate:"required"`
	VersionRange version.Range  `json:"version_range,omitempty"`
	Required     bool           `json:"required"`
}
