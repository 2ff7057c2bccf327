package component

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeComponent is embedded in several distinct wrapper types below,
// since Registry keys registration by concrete Go
// type and these tests need several independently-registerable
// components.
type fakeComponent struct {
	name        string
	log         *[]string
	failStart   bool
	failStop    bool
	initialized bool
}

func (f *fakeComponent) Initialize(ctx context.Context) error {
	f.initialized = true
	*f.log = append(*f.log, f.name+":init")
	return nil
}

func (f *fakeComponent) Start(ctx context.Context) error {
	if f.failStart {
		return errors.New("boom")
	}
	*f.log = append(*f.log, f.name+":start")
	return nil
}

func (f *fakeComponent) Stop(ctx context.Context) error {
	if f.failStop {
		*f.log = append(*f.log, f.name+":stop-failed")
		return errors.New("stop boom")
	}
	*f.log = append(*f.log, f.name+":stop")
	return nil
}

type fakeComponentA struct{ fakeComponent }
type fakeComponentB struct{ fakeComponent }
type fakeComponentC struct{ fakeComponent }

func (f *fakeComponentA) Name() string { return f.name }
func (f *fakeComponentB) Name() string { return f.name }
func (f *fakeComponentC) Name() string { return f.name }

func newA(name string, log *[]string) *fakeComponentA {
	return &fakeComponentA{fakeComponent{name: name, log: log}}
}

func newB(name string, log *[]string) *fakeComponentB {
	return &fakeComponentB{fakeComponent{name: name, log: log}}
}

func newC(name string, log *[]string) *fakeComponentC {
	return &fakeComponentC{fakeComponent{name: name, log: log}}
}

func TestRegistry_InitializeStartStop_FixedOrder(t *testing.T) {
	var log []string
	r := New()

	require.NoError(t, Register[*fakeComponentA](r, newA("storage", &log)))
	require.NoError(t, Register[*fakeComponentB](r, newB("event", &log)))
	require.NoError(t, Register[*fakeComponentC](r, newC("stage", &log)))

	ctx := context.Background()
	require.NoError(t, r.InitializeAll(ctx))
	require.NoError(t, r.StartAll(ctx))
	require.NoError(t, r.StopAll(ctx))

	assert.Equal(t, []string{
		"storage:init", "event:init", "stage:init",
		"storage:start", "event:start", "stage:start",
		"stage:stop", "event:stop", "storage:stop",
	}, log)
}

func TestRegistry_StopOnlyReversesStartedComponents(t *testing.T) {
	var log []string
	r := New()

	a := newA("a", &log)
	b := newB("b", &log)
	b.failStart = true
	c := newC("c", &log)

	require.NoError(t, Register[*fakeComponentA](r, a))
	require.NoError(t, Register[*fakeComponentB](r, b))
	require.NoError(t, Register[*fakeComponentC](r, c))

	ctx := context.Background()
	require.NoError(t, r.InitializeAll(ctx))
	err := r.StartAll(ctx)
	require.Error(t, err)

	// Only "a" started successfully before "b" failed; "c" never ran.
	require.NoError(t, r.StopAll(ctx))
	assert.Equal(t, []string{"a:init", "b:init", "c:init", "a:start", "a:stop"}, log)
}

func TestRegistry_StopAggregatesErrors(t *testing.T) {
	var log []string
	r := New()

	a := newA("a", &log)
	a.failStop = true
	b := newB("b", &log)
	b.failStop = true

	require.NoError(t, Register[*fakeComponentA](r, a))
	require.NoError(t, Register[*fakeComponentB](r, b))

	ctx := context.Background()
	require.NoError(t, r.InitializeAll(ctx))
	require.NoError(t, r.StartAll(ctx))

	err := r.StopAll(ctx)
	require.Error(t, err)
	assert.Equal(t, []string{"a:init", "b:init", "a:start", "b:start", "b:stop-failed", "a:stop-failed"}, log)
}

func TestRegistry_DuplicateTypeRejected(t *testing.T) {
	r := New()
	var log []string
	require.NoError(t, Register[*fakeComponentA](r, newA("dup", &log)))
	err := Register[*fakeComponentA](r, newA("dup-2", &log))
	assert.Error(t, err)
}

func TestRegistry_GetByType(t *testing.T) {
	r := New()
	var log []string
	c := newA("storage", &log)
	require.NoError(t, Register[*fakeComponentA](r, c))

	got, err := Get[*fakeComponentA](r)
	require.NoError(t, err)
	assert.Same(t, c, got)

	_, err = Get[*fakeComponentB](r)
	assert.Error(t, err)
}
