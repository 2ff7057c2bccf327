package plugin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseManifest_Minimal(t *testing.T) {
	data := []byte(`{"id":"a","name":"A","version":"1.2.3","api_versions":["^1.0"]}`)

	m, err := ParseManifest(data)
	require.NoError(t, err)
	assert.Equal(t, "a", m.ID)
	assert.Equal(t, "1.2.3", m.Version.String())
	assert.Equal(t, Priority(71), m.Priority) // default band, Normal
}

func TestParseManifest_MissingRequiredFieldFails(t *testing.T) {
	data := []byte(`{"name":"A","version":"1.0.0","api_versions":["^1.0"]}`)
	_, err := ParseManifest(data)
	assert.Error(t, err)
}

func TestParseManifest_UnknownFieldsIgnored(t *testing.T) {
	data := []byte(`{"id":"a","name":"A","version":"1.0.0","api_versions":["^1.0"],"unknown_field":"ignored"}`)
	m, err := ParseManifest(data)
	require.NoError(t, err)
	assert.Equal(t, "a", m.ID)
}

func TestSerializeManifest_RoundTrip(t *testing.T) {
	data := []byte(`{"id":"a","name":"A","version":"1.2.3","api_versions":["^1.0"],"priority":40}`)
	m, err := ParseManifest(data)
	require.NoError(t, err)

	out, err := SerializeManifest(m)
	require.NoError(t, err)

	m2, err := ParseManifest(out)
	require.NoError(t, err)
	assert.Equal(t, m.ID, m2.ID)
	assert.Equal(t, m.Version.String(), m2.Version.String())
	assert.Equal(t, m.Priority, m2.Priority)
}
