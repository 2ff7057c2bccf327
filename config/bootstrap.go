package config

// BootstrapConfig is the kernel's own bootstrap settings -- plugin
// directories to scan, the event dispatcher's queue capacity, the log
// level, and an ABI version override for tests -- as distinct from the
// per-plugin ConfigProvider trait, which stays host-supplied.
type BootstrapConfig struct {
	PluginDirs         []string `mapstructure:"plugin_dirs"`
	EventQueueCapacity int      `mapstructure:"event_queue_capacity" default:"256"`
	LogLevel           string   `mapstructure:"log_level" default:"info"`
	ABIVersionOverride uint32   `mapstructure:"abi_version_override"`
}

// LoadBootstrapConfig reads the kernel's bootstrap settings using the
// same viper-backed Config this package exposes for any other
// application settings, applying BootstrapConfig's defaults tags first.
func LoadBootstrapConfig(optsArr ...ConfigOptions) (*BootstrapConfig, error) {
	cfg, err := NewConfig(optsArr...)
	if err != nil {
		return nil, err
	}

	var bc BootstrapConfig
	if err := cfg.BindWithDefaults(&bc); err != nil {
		return nil, err
	}
	return &bc, nil
}
