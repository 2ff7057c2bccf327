package plugin

import "github.com/kunihir0/gini-sub002/version"

func parseVersionSafe(s string) (version.Version, error) {
	return version.Parse(s)
}

// ConflictKind classifies why two plugins conflict.
type ConflictKind int

const (
	DependencyVersion ConflictKind = iota
	MutuallyExclusive
	ResourceContention
	PartialOverlap
	ExplicitlyIncompatible
	Custom
)

func (k ConflictKind) String() string {
	switch k {
	case DependencyVersion:
		return "dependency_version"
	case MutuallyExclusive:
		return "mutually_exclusive"
	case ResourceContention:
		return "resource_contention"
	case PartialOverlap:
		return "partial_overlap"
	case ExplicitlyIncompatible:
		return "explicitly_incompatible"
	case Custom:
		return "custom"
	default:
		return "unknown"
	}
}

// Conflict records a detected incompatibility between two plugins.
type Conflict struct {
	A, B        string
	Kind        ConflictKind
	Description string
	Resolved    bool
	Resolution  string
}

// Critical reports whether this conflict kind blocks initialization when
// left unresolved.
func (c Conflict) Critical() bool {
	switch c.Kind {
	case ExplicitlyIncompatible, DependencyVersion:
		return true
	default:
		return false
	}
}

// ConflictManager runs pairwise conflict checks (explicit incompatibility,
// dependency version mismatch, shared stage ids, shared adapter names)
// over a snapshot of registered manifests and their declared stage and
// adapter names.
type ConflictManager struct {
	conflicts []Conflict
}

// PluginSurface is the information ConflictManager needs about one
// registered plugin to check it against every other registered plugin.
type PluginSurface struct {
	ID                string
	Manifest          *Manifest
	ResolvedVersions   map[string]string // dependency plugin id -> resolved version string
	ProvidedStageIDs   []string
	OwnedAdapterNames []string
}

// Detect is a pure function of the current surfaces: it replaces the
// prior conflict list wholesale rather than mutating it incrementally,
// so calling it twice with the same input yields the same result.
func (cm *ConflictManager) Detect(surfaces []PluginSurface) []Conflict {
	var found []Conflict

	for i := 0; i < len(surfaces); i++ {
		for j := i + 1; j < len(surfaces); j++ {
			a, b := surfaces[i], surfaces[j]
			found = append(found, detectPair(a, b)...)
		}
	}

	cm.conflicts = found
	return found
}

// Conflicts returns the conflicts found by the most recent Detect call.
func (cm *ConflictManager) Conflicts() []Conflict {
	return cm.conflicts
}

func detectPair(a, b PluginSurface) []Conflict {
	var out []Conflict

	// (a) explicit incompatible_with
	for _, inc := range a.Manifest.IncompatibleWith {
		if inc.PluginID == b.ID {
			out = append(out, Conflict{A: a.ID, B: b.ID, Kind: ExplicitlyIncompatible,
				Description: a.ID + " declares incompatible_with " + b.ID})
		}
	}
	for _, inc := range b.Manifest.IncompatibleWith {
		if inc.PluginID == a.ID {
			out = append(out, Conflict{A: b.ID, B: a.ID, Kind: ExplicitlyIncompatible,
				Description: b.ID + " declares incompatible_with " + a.ID})
		}
	}

	// (b) version incompatibility among required deps each already resolved
	for _, dep := range a.Manifest.Dependencies {
		if dep.PluginID != b.ID || !dep.Required {
			continue
		}
		resolved, ok := a.ResolvedVersions[b.ID]
		if ok && !dep.VersionRange.IsZero() {
			v, err := parseVersionSafe(resolved)
			if err == nil && !dep.VersionRange.Check(v) {
				out = append(out, Conflict{A: a.ID, B: b.ID, Kind: DependencyVersion,
					Description: a.ID + " requires " + b.ID + " " + dep.VersionRange.String() + " but resolved " + resolved})
			}
		}
	}

	// (c) same provided stage ids
	for _, sa := range a.ProvidedStageIDs {
		for _, sb := range b.ProvidedStageIDs {
			if sa == sb {
				out = append(out, Conflict{A: a.ID, B: b.ID, Kind: PartialOverlap,
					Description: "both provide stage " + sa})
			}
		}
	}

	// (d) same mutually-exclusive adapter names
	for _, na := range a.OwnedAdapterNames {
		for _, nb := range b.OwnedAdapterNames {
			if na == nb {
				out = append(out, Conflict{A: a.ID, B: b.ID, Kind: MutuallyExclusive,
					Description: "both own adapter " + na})
			}
		}
	}

	return out
}
