package stage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContext_SharedRoundTrip(t *testing.T) {
	sc := NewContext(Live, "", nil, nil, NewRegistry(), nil)
	sc.SetShared("key", 42)

	v, ok := sc.Shared("key")
	assert.True(t, ok)
	assert.Equal(t, 42, v)

	_, ok = sc.Shared("missing")
	assert.False(t, ok)
}

func TestContext_PreflightFailures(t *testing.T) {
	sc := NewContext(Live, "", nil, nil, NewRegistry(), nil)
	sc.RecordPreflightFailure("plugin-a", errors.New("boom"))

	failures := sc.PreflightFailures()
	assert.Len(t, failures, 1)
	assert.EqualError(t, failures["plugin-a"], "boom")
}
