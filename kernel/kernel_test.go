package kernel

import (
	"context"
	"testing"

	"github.com/kunihir0/gini-sub002/plugin"
	"github.com/kunihir0/gini-sub002/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePlugin struct {
	name        string
	initialized bool
	shutdown    bool
}

func (p *fakePlugin) Name() string                             { return p.name }
func (p *fakePlugin) Preflight(ctx context.Context) error      { return nil }
func (p *fakePlugin) Init(ctx context.Context, app *plugin.AppContext) error {
	p.initialized = true
	return nil
}
func (p *fakePlugin) Shutdown(ctx context.Context) error {
	p.shutdown = true
	return nil
}

func testManifest(id string) *plugin.Manifest {
	return &plugin.Manifest{
		ID:          id,
		Name:        id,
		Version:     version.MustParse("1.0.0"),
		APIVersions: version.RangeSet{mustRange(">=1.0.0, <2.0.0")},
		Priority:    plugin.PriorityNormal(71),
	}
}

func mustRange(s string) version.Range {
	r, err := version.ParseRange(s)
	if err != nil {
		panic(err)
	}
	return r
}

func TestKernel_StartRunsBootstrapPipelineAndInitializesPlugins(t *testing.T) {
	k := New(WithAPIVersion(version.MustParse("1.0.0")))

	fp := &fakePlugin{name: "example"}
	require.NoError(t, k.Plugins.Register(testManifest("example"), fp))

	ctx := context.Background()
	require.NoError(t, k.Start(ctx))

	assert.True(t, fp.initialized)
	assert.Contains(t, k.Plugins.ShutdownOrder(), "example")

	require.NoError(t, k.Stop(ctx))
	assert.True(t, fp.shutdown)
}

func TestKernel_StartThenStopWithNoPlugins(t *testing.T) {
	k := New()
	require.NoError(t, k.Start(context.Background()))
	require.NoError(t, k.Stop(context.Background()))
}
