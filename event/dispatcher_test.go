package event

import (
	"context"
	"testing"

	kerrors "github.com/kunihir0/gini-sub002/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type pluginInstalledEvent struct {
	BaseEvent
	PluginID string
}

func newPluginInstalledEvent(id string) *pluginInstalledEvent {
	return &pluginInstalledEvent{BaseEvent: NewBaseEvent("plugin.installed"), PluginID: id}
}

func TestDispatcher_RegisterThenDispatchInvokesHandler(t *testing.T) {
	d := New(zap.NewNop())
	called := false

	d.RegisterByName("test.event", func(ctx context.Context, e Event) error {
		called = true
		return nil
	})

	n, err := d.Dispatch(context.Background(), &pluginInstalledEvent{BaseEvent: NewBaseEvent("test.event")})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.True(t, called)
}

func TestDispatcher_UnregisterThenDispatchDoesNotInvoke(t *testing.T) {
	d := New(zap.NewNop())
	called := false

	id := d.RegisterByName("test.event", func(ctx context.Context, e Event) error {
		called = true
		return nil
	})
	d.Unregister(id)

	n, err := d.Dispatch(context.Background(), &pluginInstalledEvent{BaseEvent: NewBaseEvent("test.event")})
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.False(t, called)
}

func TestDispatcher_HandlersFireInRegistrationOrder(t *testing.T) {
	d := New(zap.NewNop())
	var order []int

	d.RegisterByName("evt", func(ctx context.Context, e Event) error {
		order = append(order, 1)
		return nil
	})
	d.RegisterByName("evt", func(ctx context.Context, e Event) error {
		order = append(order, 2)
		return nil
	})

	_, err := d.Dispatch(context.Background(), &pluginInstalledEvent{BaseEvent: NewBaseEvent("evt")})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, order)
}

func TestDispatcher_NameBucketFiresBeforeTypeBucket(t *testing.T) {
	d := New(zap.NewNop())
	var order []string

	d.RegisterByName("plugin.installed", func(ctx context.Context, e Event) error {
		order = append(order, "name")
		return nil
	})
	RegisterByType[*pluginInstalledEvent](d, func(ctx context.Context, e *pluginInstalledEvent) error {
		order = append(order, "type")
		return nil
	})

	_, err := d.Dispatch(context.Background(), newPluginInstalledEvent("p1"))
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "type"}, order)
}

func TestDispatcher_RegisterByType_OnlyMatchingConcreteType(t *testing.T) {
	d := New(zap.NewNop())
	var got string

	RegisterByType[*pluginInstalledEvent](d, func(ctx context.Context, e *pluginInstalledEvent) error {
		got = e.PluginID
		return nil
	})

	_, err := d.Dispatch(context.Background(), newPluginInstalledEvent("abc"))
	require.NoError(t, err)
	assert.Equal(t, "abc", got)
}

func TestQueue_ProcessQueue_EquivalentToDispatch(t *testing.T) {
	d := New(zap.NewNop())
	var calls int

	d.RegisterByName("evt", func(ctx context.Context, e Event) error {
		calls++
		return nil
	})

	require.NoError(t, d.Queue(context.Background(), &pluginInstalledEvent{BaseEvent: NewBaseEvent("evt")}))
	require.NoError(t, d.Queue(context.Background(), &pluginInstalledEvent{BaseEvent: NewBaseEvent("evt")}))

	n, err := d.ProcessQueue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, calls)
}

func TestDispatcher_ReentrantDispatchDuringProcessQueueIsDetected(t *testing.T) {
	d := New(zap.NewNop())
	var reentrantErr error

	d.RegisterByName("evt", func(ctx context.Context, e Event) error {
		_, reentrantErr = d.Dispatch(ctx, &pluginInstalledEvent{BaseEvent: NewBaseEvent("evt")})
		return nil
	})

	require.NoError(t, d.Queue(context.Background(), &pluginInstalledEvent{BaseEvent: NewBaseEvent("evt")}))
	_, err := d.ProcessQueue(context.Background())
	require.NoError(t, err)
	assert.ErrorIs(t, reentrantErr, kerrors.ErrReentrantDispatch)
}

func TestDispatcher_ClosedDispatcherRejectsDispatch(t *testing.T) {
	d := New(zap.NewNop())
	d.Close()

	_, err := d.Dispatch(context.Background(), &pluginInstalledEvent{BaseEvent: NewBaseEvent("evt")})
	assert.ErrorIs(t, err, kerrors.ErrDispatcherPoisoned)
}

func TestDispatcher_CancelableEventHaltsFurtherDispatch(t *testing.T) {
	d := New(zap.NewNop())
	var secondCalled bool

	d.RegisterByName("evt", func(ctx context.Context, e Event) error {
		e.Cancel()
		return nil
	})
	d.RegisterByName("evt", func(ctx context.Context, e Event) error {
		secondCalled = true
		return nil
	})

	ev := &pluginInstalledEvent{BaseEvent: NewBaseEvent("evt")}
	ev.IsCancelable = true

	n, err := d.Dispatch(context.Background(), ev)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.False(t, secondCalled)
}
