package plugin

import (
	"context"
	"testing"

	"github.com/kunihir0/gini-sub002/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPlugin struct {
	name string
	log  *[]string
}

func (p *recordingPlugin) Name() string { return p.name }
func (p *recordingPlugin) Preflight(ctx context.Context) error {
	return nil
}
func (p *recordingPlugin) Init(ctx context.Context, app *AppContext) error {
	*p.log = append(*p.log, p.name)
	return nil
}
func (p *recordingPlugin) Shutdown(ctx context.Context) error {
	*p.log = append(*p.log, "stop:"+p.name)
	return nil
}

func manifestWithDeps(id string, priority Priority, deps ...string) *Manifest {
	m := &Manifest{ID: id, Name: id, Version: version.MustParse("1.0.0"), Priority: priority}
	for _, d := range deps {
		m.Dependencies = append(m.Dependencies, Dependency{PluginID: d, Required: true})
	}
	return m
}

func TestRegistry_InitOrder_RespectsDependenciesAndPriority(t *testing.T) {
	r := NewRegistry(nil)
	var log []string

	require.NoError(t, r.Register(manifestWithDeps("b", PriorityNormal(80)), &recordingPlugin{name: "b", log: &log}))
	require.NoError(t, r.Register(manifestWithDeps("a", PriorityNormal(80)), &recordingPlugin{name: "a", log: &log}))
	require.NoError(t, r.Register(manifestWithDeps("c", PriorityNormal(80), "a", "b"), &recordingPlugin{name: "c", log: &log}))

	order, err := r.InitOrder()
	require.NoError(t, err)

	// a and b have equal priority and no deps between them: tie-break by id.
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestRegistry_InitOrder_PriorityBreaksTies(t *testing.T) {
	r := NewRegistry(nil)
	var log []string

	require.NoError(t, r.Register(manifestWithDeps("low", PriorityLow(100)), &recordingPlugin{name: "low", log: &log}))
	require.NoError(t, r.Register(manifestWithDeps("kernel", PriorityKernel(0)), &recordingPlugin{name: "kernel", log: &log}))

	order, err := r.InitOrder()
	require.NoError(t, err)
	assert.Equal(t, []string{"kernel", "low"}, order)
}

func TestRegistry_InitOrder_DetectsCycle(t *testing.T) {
	r := NewRegistry(nil)
	var log []string

	require.NoError(t, r.Register(manifestWithDeps("x", PriorityNormal(80), "y"), &recordingPlugin{name: "x", log: &log}))
	require.NoError(t, r.Register(manifestWithDeps("y", PriorityNormal(80), "x"), &recordingPlugin{name: "y", log: &log}))

	_, err := r.InitOrder()
	assert.Error(t, err)
}

func TestRegistry_InitializeAll_RecordsOrderAndShutdownIsExactReverse(t *testing.T) {
	r := NewRegistry(nil)
	var log []string

	require.NoError(t, r.Register(manifestWithDeps("a", PriorityNormal(80)), &recordingPlugin{name: "a", log: &log}))
	require.NoError(t, r.Register(manifestWithDeps("b", PriorityNormal(80), "a"), &recordingPlugin{name: "b", log: &log}))

	require.NoError(t, r.InitializeAll(context.Background(), &AppContext{}))
	assert.Equal(t, []string{"a", "b"}, log)

	log = nil
	require.NoError(t, r.ShutdownAll(context.Background()))
	assert.Equal(t, []string{"stop:b", "stop:a"}, log)
}

func TestRegistry_StateOf_TransitionsThroughLifecycle(t *testing.T) {
	r := NewRegistry(nil)
	var log []string
	require.NoError(t, r.Register(manifestWithDeps("a", PriorityNormal(80)), &recordingPlugin{name: "a", log: &log}))

	st, ok := r.StateOf("a")
	require.True(t, ok)
	assert.Equal(t, StateRegistered, st)

	require.NoError(t, r.InitializeAll(context.Background(), &AppContext{}))
	st, ok = r.StateOf("a")
	require.True(t, ok)
	assert.Equal(t, StateInitialized, st)

	require.NoError(t, r.ShutdownAll(context.Background()))
	st, ok = r.StateOf("a")
	require.True(t, ok)
	assert.Equal(t, StateShutdown, st)

	_, ok = r.StateOf("missing")
	assert.False(t, ok)
}
