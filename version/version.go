// Package version wraps github.com/Masterminds/semver/v3 with the two
// types the manifest and dependency model need: a concrete Version and a
// Range requirement expression (plus RangeSet, a list of Ranges).
package version

import (
	"encoding/json"
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// Version is a parsed semver triple.
type Version struct {
	v *semver.Version
}

// Parse parses a semver string such as "1.2.3" or "v1.2.3-rc.1".
func Parse(s string) (Version, error) {
	v, err := semver.NewVersion(s)
	if err != nil {
		return Version{}, fmt.Errorf("parse version %q: %w", s, err)
	}
	return Version{v: v}, nil
}

// MustParse parses s, panicking on error. Intended for constants in tests
// and builtin manifests, never for untrusted input.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

func (v Version) String() string {
	if v.v == nil {
		return ""
	}
	return v.v.String()
}

// Compare returns -1, 0 or 1 per semver precedence rules.
func (v Version) Compare(other Version) int {
	return v.v.Compare(other.v)
}

func (v Version) IsZero() bool { return v.v == nil }

func (v Version) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

func (v *Version) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*v = Version{}
		return nil
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Range is a semver requirement expression, e.g. "^1.2" or ">=1, <2".
type Range struct {
	raw string
	c   *semver.Constraints
}

// ParseRange parses a semver constraint string.
func ParseRange(s string) (Range, error) {
	c, err := semver.NewConstraint(s)
	if err != nil {
		return Range{}, fmt.Errorf("parse version range %q: %w", s, err)
	}
	return Range{raw: s, c: c}, nil
}

// Check reports whether v satisfies the range.
func (r Range) Check(v Version) bool {
	if r.c == nil || v.v == nil {
		return false
	}
	return r.c.Check(v.v)
}

func (r Range) String() string { return r.raw }

func (r Range) IsZero() bool { return r.c == nil }

func (r Range) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.raw)
}

func (r *Range) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*r = Range{}
		return nil
	}
	parsed, err := ParseRange(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// RangeSet is an ordered set of VersionRanges; a Version is accepted if
// any member range includes it (used for PluginManifest.APIVersions).
type RangeSet []Range

// Includes reports whether any range in the set accepts v.
func (rs RangeSet) Includes(v Version) bool {
	for _, r := range rs {
		if r.Check(v) {
			return true
		}
	}
	return false
}
