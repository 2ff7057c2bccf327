package adapter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterGet_RoundTrip(t *testing.T) {
	r := New()
	cache := NewTTLCache(0)
	defer cache.Close()

	require.NoError(t, Register[*TTLCache](r, "session-cache", cache))

	got, err := Get[*TTLCache](r, "session-cache")
	require.NoError(t, err)
	assert.Same(t, cache, got)
}

func TestRegister_DuplicateNameErrors(t *testing.T) {
	r := New()
	require.NoError(t, Register[string](r, "dup", "a"))
	err := Register[string](r, "dup", "b")
	assert.Error(t, err)
}

func TestRegister_DuplicateTypeUnderDifferentNameErrors(t *testing.T) {
	r := New()
	require.NoError(t, Register[string](r, "first", "a"))
	err := Register[string](r, "second", "b")
	assert.Error(t, err)
}

func TestGetMut_ExclusiveWithGetAndOtherGetMut(t *testing.T) {
	r := New()
	cache := NewTTLCache(0)
	defer cache.Close()
	require.NoError(t, Register[*TTLCache](r, "session-cache", cache))

	handle, err := GetMut[*TTLCache](r, "session-cache")
	require.NoError(t, err)
	assert.Same(t, cache, handle.Value())

	_, err = Get[*TTLCache](r, "session-cache")
	assert.Error(t, err)

	_, err = GetMut[*TTLCache](r, "session-cache")
	assert.Error(t, err)

	handle.Release()

	got, err := Get[*TTLCache](r, "session-cache")
	require.NoError(t, err)
	assert.Same(t, cache, got)
}

func TestGet_WrongTypeErrors(t *testing.T) {
	r := New()
	require.NoError(t, Register[string](r, "name", "value"))

	_, err := Get[int](r, "name")
	assert.Error(t, err)
}

func TestGet_UnknownNameErrors(t *testing.T) {
	r := New()
	_, err := Get[string](r, "missing")
	assert.Error(t, err)
}

func TestRemove(t *testing.T) {
	r := New()
	require.NoError(t, Register[string](r, "name", "value"))

	val, ok := r.Remove("name")
	assert.True(t, ok)
	assert.Equal(t, "value", val)
	assert.False(t, r.Has("name"))

	_, ok = r.Remove("name")
	assert.False(t, ok)
}

func TestTTLCache_ExpiresEntries(t *testing.T) {
	c := NewTTLCache(0)
	defer c.Close()
	ctx := context.Background()

	c.Set(ctx, "k", "v", 10*time.Millisecond)
	val, ok := c.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, "v", val)

	time.Sleep(20 * time.Millisecond)
	_, ok = c.Get(ctx, "k")
	assert.False(t, ok)
}

func TestTTLCache_Delete(t *testing.T) {
	c := NewTTLCache(0)
	defer c.Close()
	ctx := context.Background()

	c.Set(ctx, "k", "v", time.Minute)
	c.Delete(ctx, "k")

	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
}

func TestTTLCache_BackgroundSweepRemovesExpired(t *testing.T) {
	c := NewTTLCache(10 * time.Millisecond)
	defer c.Close()
	ctx := context.Background()

	c.Set(ctx, "k", "v", 5*time.Millisecond)
	time.Sleep(40 * time.Millisecond)

	assert.Equal(t, 0, c.Len())
}
