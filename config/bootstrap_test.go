package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBootstrapConfig_ReadsFileAndAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	yaml := "plugin_dirs:\n  - ./plugins\nlog_level: debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	bc, err := LoadBootstrapConfig(ConfigOptions{
		BasePath: dir,
		FileName: "config",
		FileType: "yaml",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"./plugins"}, bc.PluginDirs)
	assert.Equal(t, "debug", bc.LogLevel)
	assert.Equal(t, 256, bc.EventQueueCapacity)
}
