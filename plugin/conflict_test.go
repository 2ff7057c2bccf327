package plugin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConflictManager_DetectsExplicitIncompatibility(t *testing.T) {
	var cm ConflictManager
	a := PluginSurface{ID: "a", Manifest: &Manifest{IncompatibleWith: []Dependency{{PluginID: "b", Required: true}}}}
	b := PluginSurface{ID: "b", Manifest: &Manifest{}}

	conflicts := cm.Detect([]PluginSurface{a, b})
	assert.Len(t, conflicts, 1)
	assert.Equal(t, ExplicitlyIncompatible, conflicts[0].Kind)
	assert.True(t, conflicts[0].Critical())
}

func TestConflictManager_DetectsSharedStageID(t *testing.T) {
	var cm ConflictManager
	a := PluginSurface{ID: "a", Manifest: &Manifest{}, ProvidedStageIDs: []string{"shared"}}
	b := PluginSurface{ID: "b", Manifest: &Manifest{}, ProvidedStageIDs: []string{"shared"}}

	conflicts := cm.Detect([]PluginSurface{a, b})
	assert.Len(t, conflicts, 1)
	assert.Equal(t, PartialOverlap, conflicts[0].Kind)
}

func TestConflictManager_DetectsSharedAdapterName(t *testing.T) {
	var cm ConflictManager
	a := PluginSurface{ID: "a", Manifest: &Manifest{}, OwnedAdapterNames: []string{"cache"}}
	b := PluginSurface{ID: "b", Manifest: &Manifest{}, OwnedAdapterNames: []string{"cache"}}

	conflicts := cm.Detect([]PluginSurface{a, b})
	assert.Len(t, conflicts, 1)
	assert.Equal(t, MutuallyExclusive, conflicts[0].Kind)
}

func TestConflictManager_DetectIsIdempotent(t *testing.T) {
	var cm ConflictManager
	a := PluginSurface{ID: "a", Manifest: &Manifest{}, ProvidedStageIDs: []string{"s"}}
	b := PluginSurface{ID: "b", Manifest: &Manifest{}, ProvidedStageIDs: []string{"s"}}

	first := cm.Detect([]PluginSurface{a, b})
	second := cm.Detect([]PluginSurface{a, b})
	assert.Equal(t, first, second)
}

func TestConflictManager_NoFalsePositives(t *testing.T) {
	var cm ConflictManager
	a := PluginSurface{ID: "a", Manifest: &Manifest{}, ProvidedStageIDs: []string{"x"}}
	b := PluginSurface{ID: "b", Manifest: &Manifest{}, ProvidedStageIDs: []string{"y"}}

	conflicts := cm.Detect([]PluginSurface{a, b})
	assert.Empty(t, conflicts)
}
