package stage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopStage struct{ id string }

func (s *noopStage) ID() string                               { return s.id }
func (s *noopStage) Execute(ctx context.Context, sc *Context) error { return nil }

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()
	s := &noopStage{id: "a"}
	require.NoError(t, r.Register(s))

	got, ok := r.Get("a")
	assert.True(t, ok)
	assert.Same(t, s, got)
}

func TestRegistry_DuplicateIDRejected(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&noopStage{id: "dup"}))
	err := r.Register(&noopStage{id: "dup"})
	assert.Error(t, err)
}

func TestRegistry_GetMissing(t *testing.T) {
	r := NewRegistry()
	_, ok := r.Get("missing")
	assert.False(t, ok)
}
