package plugin

import (
	"fmt"

	validatorpkg "github.com/go-playground/validator/v10"
	kjson "github.com/kunihir0/gini-sub002/json"
)

var validate = validatorpkg.New()

// ParseManifest decodes a manifest.json payload into a Manifest, filling
// defaults (github.com/creasty/defaults, via kjson.Unmarshal) and then
// validating struct tags. Unknown JSON fields are ignored, per spec:
// jsoniter.ConfigCompatibleWithStandardLibrary does that by default.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := kjson.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("plugin: parse manifest: %w", err)
	}
	if err := validate.Struct(&m); err != nil {
		return nil, fmt.Errorf("plugin: validate manifest %q: %w", m.ID, err)
	}
	return &m, nil
}

// SerializeManifest encodes m back to JSON, applying the same default
// fill-in as ParseManifest so parse(serialize(m)) == m holds even when m
// was constructed in code with optional fields left zero.
func SerializeManifest(m *Manifest) ([]byte, error) {
	return kjson.Marshal(m)
}
