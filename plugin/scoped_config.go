package plugin

import "encoding/json"

// ScopedConfig gives a plugin type-safe access to its own configuration
// scope ("plugin:<id>"), as seen from inside Init. Distinct from
// provider.ConfigProvider, which is the kernel-wide, host-supplied
// loader interface; this one is part of the plugin ABI surface itself
// and ships a concrete map-backed implementation.
type ScopedConfig interface {
	Get(key string) (any, bool)
	GetString(key string, defaultVal string) string
	GetInt(key string, defaultVal int) int
	GetBool(key string, defaultVal bool) bool
	Bind(target any) error
	IsEnabled() bool
}

// ConfigEntry is a map-backed ScopedConfig for one plugin.
type ConfigEntry struct {
	name     string
	enabled  bool
	settings map[string]any
}

// NewConfigEntry creates a plugin config entry.
func NewConfigEntry(name string, enabled bool, settings map[string]any) *ConfigEntry {
	if settings == nil {
		settings = make(map[string]any)
	}
	return &ConfigEntry{name: name, enabled: enabled, settings: settings}
}

func (c *ConfigEntry) Get(key string) (any, bool) {
	v, ok := c.settings[key]
	return v, ok
}

func (c *ConfigEntry) GetString(key string, defaultVal string) string {
	v, ok := c.settings[key]
	if !ok {
		return defaultVal
	}
	s, ok := v.(string)
	if !ok {
		return defaultVal
	}
	return s
}

func (c *ConfigEntry) GetInt(key string, defaultVal int) int {
	v, ok := c.settings[key]
	if !ok {
		return defaultVal
	}
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	case int64:
		return int(n)
	default:
		return defaultVal
	}
}

func (c *ConfigEntry) GetBool(key string, defaultVal bool) bool {
	v, ok := c.settings[key]
	if !ok {
		return defaultVal
	}
	b, ok := v.(bool)
	if !ok {
		return defaultVal
	}
	return b
}

func (c *ConfigEntry) Bind(target any) error {
	data, err := json.Marshal(c.settings)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, target)
}

func (c *ConfigEntry) IsEnabled() bool {
	return c.enabled
}

// NewMapConfig creates a ScopedConfig from a settings map (always enabled).
func NewMapConfig(settings map[string]any) *ConfigEntry {
	return NewConfigEntry("", true, settings)
}

// emptyConfig is a ScopedConfig that returns defaults for everything.
type emptyConfig struct{}

func (e *emptyConfig) Get(string) (any, bool)             { return nil, false }
func (e *emptyConfig) GetString(_ string, d string) string { return d }
func (e *emptyConfig) GetInt(_ string, d int) int          { return d }
func (e *emptyConfig) GetBool(_ string, d bool) bool       { return d }
func (e *emptyConfig) Bind(any) error                      { return nil }
func (e *emptyConfig) IsEnabled() bool                     { return false }

// EmptyConfig returns a ScopedConfig that always returns defaults.
func EmptyConfig() ScopedConfig { return &emptyConfig{} }
