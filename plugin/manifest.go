package plugin

import "github.com/kunihir0/gini-sub002/version"

// Manifest is a plugin's identity and metadata, parsed from manifest.json.
// Validation is via go-playground/validator/v10 struct tags, mirroring the
// teacher's http/binding validator usage; default-filling goes through
// github.com/creasty/defaults the way config.Config and json.Marshal do.
type Manifest struct {
	ID          string          `json:"id" validate:"required"`
	Name        string          `json:"name" validate:"required"`
	Version     version.Version `json:"version" validate:"required"`
	Description string          `json:"description,omitempty"`
	Author      string          `json:"author,omitempty"`

	APIVersions version.RangeSet `json:"api_versions" validate:"required,min=1"`

	Dependencies     []Dependency `json:"dependencies,omitempty"`
	IncompatibleWith []Dependency `json:"incompatible_with,omitempty"`

	Priority Priority `json:"priority" default:"71"`

	EntryPoint string   `json:"entry_point,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	IsCore     bool     `json:"is_core,omitempty"`
}

// RequiredDependencies returns only the dependencies with Required=true.
func (m *Manifest) RequiredDependencies() []Dependency {
	var out []Dependency
	for _, d := range m.Dependencies {
		if d.Required {
			out = append(out, d)
		}
	}
	return out
}

// IsDynamic reports whether the manifest names a dynamic-library entry
// point rather than relying on a static in-process factory.
func (m *Manifest) IsDynamic() bool {
	return m.EntryPoint != ""
}
