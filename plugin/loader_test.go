package plugin

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/kunihir0/gini-sub002/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, dir string, m map[string]any) {
	t.Helper()
	data, err := json.Marshal(m)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "manifest.json"), data, 0o644))
}

func TestLoader_ScanForManifests_FindsNestedManifest(t *testing.T) {
	base := t.TempDir()
	sub := filepath.Join(base, "plugin-a")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	writeManifest(t, sub, map[string]any{
		"id": "a", "name": "A", "version": "1.0.0",
		"api_versions": []string{"^1.0"},
	})

	l := NewLoader(nil)
	l.AddPluginDir(base)
	require.NoError(t, l.ScanForManifests(context.Background()))

	resolved, err := l.ResolveDependencies()
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	assert.Equal(t, "a", resolved[0].ID)
}

func TestLoader_ScanForManifests_ToleratesMissingDir(t *testing.T) {
	l := NewLoader(nil)
	l.AddPluginDir("/nonexistent/path/for/test")
	assert.NoError(t, l.ScanForManifests(context.Background()))
}

func TestLoader_ResolveDependencies_MissingRequiredFails(t *testing.T) {
	l := NewLoader(nil)
	l.manifests["a"] = &Manifest{
		ID: "a", Version: version.MustParse("1.0.0"),
		Dependencies: []Dependency{{PluginID: "missing", Required: true}},
	}

	_, err := l.ResolveDependencies()
	assert.Error(t, err)
}

func TestLoader_ResolveDependencies_VersionMismatchFails(t *testing.T) {
	rng, err := version.ParseRange("^2.0")
	require.NoError(t, err)

	l := NewLoader(nil)
	l.manifests["a"] = &Manifest{
		ID: "a", Version: version.MustParse("1.0.0"),
		Dependencies: []Dependency{{PluginID: "b", Required: true, VersionRange: rng}},
	}
	l.manifests["b"] = &Manifest{ID: "b", Version: version.MustParse("1.0.0")}

	_, err = l.ResolveDependencies()
	assert.Error(t, err)
}

func TestLoader_ResolveDependencies_DetectsCycle(t *testing.T) {
	l := NewLoader(nil)
	l.manifests["a"] = &Manifest{ID: "a", Version: version.MustParse("1.0.0"),
		Dependencies: []Dependency{{PluginID: "b", Required: true}}}
	l.manifests["b"] = &Manifest{ID: "b", Version: version.MustParse("1.0.0"),
		Dependencies: []Dependency{{PluginID: "a", Required: true}}}

	_, err := l.ResolveDependencies()
	assert.Error(t, err)
}

func TestLoader_RegisterAllPlugins_FiltersIncompatibleAPIVersion(t *testing.T) {
	rngOld, _ := version.ParseRange("^0.1")
	l := NewLoader(nil)
	l.manifests["a"] = &Manifest{ID: "a", Version: version.MustParse("1.0.0"), APIVersions: version.RangeSet{rngOld}}
	l.AddStaticPlugin("a", func() Plugin { return &testMinimalPlugin{} })

	reg := NewRegistry(nil)
	count, err := l.RegisterAllPlugins(context.Background(), reg, version.MustParse("1.0.0"), 1)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestLoader_RegisterAllPlugins_RegistersCompatibleStaticPlugin(t *testing.T) {
	rng, _ := version.ParseRange("^1.0")
	l := NewLoader(nil)
	l.manifests["a"] = &Manifest{ID: "a", Version: version.MustParse("1.0.0"), APIVersions: version.RangeSet{rng}}
	l.AddStaticPlugin("a", func() Plugin { return &testMinimalPlugin{} })

	reg := NewRegistry(nil)
	count, err := l.RegisterAllPlugins(context.Background(), reg, version.MustParse("1.0.0"), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestLibraryFilename(t *testing.T) {
	name := LibraryFilename("example")
	assert.NotEmpty(t, name)
	assert.Contains(t, name, "example")
}
