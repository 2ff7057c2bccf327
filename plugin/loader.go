package plugin

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	kerrors "github.com/kunihir0/gini-sub002/errors"
	"github.com/kunihir0/gini-sub002/version"
	"go.uber.org/zap"
)

// Factory constructs a static, in-process plugin instance. Dynamic
// plugins are opened via OpenVTable instead and never go through a
// Factory.
type Factory func() Plugin

// ResolvedPlugin pairs a parsed manifest with the constructed Plugin
// instance ready for Registry.Register.
type ResolvedPlugin struct {
	Manifest *Manifest
	Plugin   Plugin
}

// Loader scans directories for manifest.json files, resolves their
// dependency graph, and instantiates plugins (static factories or
// dynamic libraries via OpenVTable).
type Loader struct {
	dirs      []string
	manifests map[string]*Manifest
	factories map[string]Factory // id -> static factory, populated by AddStaticPlugin
	strict    bool
	logger    *zap.Logger
}

// NewLoader creates an empty Loader.
func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		manifests: make(map[string]*Manifest),
		factories: make(map[string]Factory),
		logger:    logger,
	}
}

// Strict opts into rejecting duplicate manifest ids instead of the
// default last-write-wins behavior.
func (l *Loader) Strict(strict bool) { l.strict = strict }

// AddPluginDir appends path to the search list. Nonexistent paths are
// tolerated with a warning at scan time, not here.
func (l *Loader) AddPluginDir(path string) {
	l.dirs = append(l.dirs, path)
}

// AddStaticPlugin registers an in-process factory under id, used by
// RegisterAllPlugins instead of a dynamic library open when the
// manifest has no entry_point.
func (l *Loader) AddStaticPlugin(id string, f Factory) {
	l.factories[id] = f
}

// ScanForManifests walks every added directory looking for
// manifest.json files. Malformed or unreadable files are logged and
// skipped, never fatal. Duplicate ids across files are last-write-wins
// unless Strict(true) was set, in which case they are a hard error.
func (l *Loader) ScanForManifests(ctx context.Context) error {
	for _, dir := range l.dirs {
		if _, err := os.Stat(dir); err != nil {
			l.logger.Warn("plugin dir does not exist", zap.String("dir", dir))
			continue
		}

		err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				l.logger.Warn("walk error", zap.String("path", path), zap.Error(err))
				return nil
			}
			if d.IsDir() || d.Name() != "manifest.json" {
				return nil
			}

			data, readErr := os.ReadFile(path)
			if readErr != nil {
				l.logger.Warn("cannot read manifest", zap.String("path", path), zap.Error(readErr))
				return nil
			}

			m, parseErr := ParseManifest(data)
			if parseErr != nil {
				l.logger.Warn("malformed manifest", zap.String("path", path), zap.Error(parseErr))
				return nil
			}

			if existing, dup := l.manifests[m.ID]; dup {
				if l.strict {
					return kerrors.New(kerrors.PluginSystem, "scan", "duplicate manifest id: "+m.ID)
				}
				l.logger.Warn("duplicate manifest id, last write wins",
					zap.String("id", m.ID), zap.String("path", path), zap.Any("previous", existing.Name))
			}
			l.manifests[m.ID] = m
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// ResolveDependencies checks required-dependency presence, version-range
// satisfaction, and dependency cycles over the scanned manifest set,
// returning resolved manifests in stable (sorted-by-id) order. It does
// not instantiate plugins and does not check API versions; that filter
// is applied by RegisterAllPlugins.
func (l *Loader) ResolveDependencies() ([]*Manifest, error) {
	ids := make([]string, 0, len(l.manifests))
	for id := range l.manifests {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		m := l.manifests[id]
		for _, dep := range m.Dependencies {
			depManifest, ok := l.manifests[dep.PluginID]
			if !ok {
				if dep.Required {
					return nil, kerrors.NewMissingDependency(id, dep.PluginID)
				}
				continue
			}
			if !dep.VersionRange.IsZero() && !dep.VersionRange.Check(depManifest.Version) {
				return nil, kerrors.NewVersionMismatch(id, dep.PluginID, dep.VersionRange.String(), depManifest.Version.String())
			}
		}
	}

	if cycle := l.findCycle(ids); cycle != nil {
		return nil, kerrors.NewCycleDetected(cycle)
	}

	resolved := make([]*Manifest, 0, len(ids))
	for _, id := range ids {
		resolved = append(resolved, l.manifests[id])
	}
	return resolved, nil
}

func (l *Loader) findCycle(ids []string) []string {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int, len(ids))
	var path []string

	var visit func(id string) []string
	visit = func(id string) []string {
		color[id] = gray
		path = append(path, id)

		m, ok := l.manifests[id]
		if ok {
			for _, dep := range m.Dependencies {
				if !dep.Required {
					continue
				}
				switch color[dep.PluginID] {
				case white:
					if cyc := visit(dep.PluginID); cyc != nil {
						return cyc
					}
				case gray:
					cycleStart := indexOf(path, dep.PluginID)
					return append(append([]string(nil), path[cycleStart:]...), dep.PluginID)
				}
			}
		}

		path = path[:len(path)-1]
		color[id] = black
		return nil
	}

	for _, id := range ids {
		if color[id] == white {
			if cyc := visit(id); cyc != nil {
				return cyc
			}
		}
	}
	return nil
}

func indexOf(s []string, v string) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}

// LibraryFilename computes the platform-correct dynamic library
// filename for a manifest's entry_point stem.
func LibraryFilename(stem string) string {
	switch runtime.GOOS {
	case "darwin":
		return "lib" + stem + ".dylib"
	case "windows":
		return stem + ".dll"
	default:
		return "lib" + stem + ".so"
	}
}

// RegisterAllPlugins iterates the resolved manifests in stable order,
// filters by API compatibility, instantiates each plugin (static
// factory or dynamic library), and registers successfully constructed
// ones into reg. Per-plugin failure is logged and skipped; the count of
// successful registrations is returned.
func (l *Loader) RegisterAllPlugins(ctx context.Context, reg *Registry, kernelAPI version.Version, abiVersion uint32) (int, error) {
	resolved, err := l.ResolveDependencies()
	if err != nil {
		return 0, err
	}

	count := 0
	for _, m := range resolved {
		if !m.APIVersions.Includes(kernelAPI) {
			l.logger.Warn("plugin rejected: incompatible api version", zap.String("id", m.ID))
			continue
		}

		p, err := l.instantiate(m, abiVersion)
		if err != nil {
			l.logger.Warn("plugin instantiation failed", zap.String("id", m.ID), zap.Error(err))
			continue
		}

		if err := reg.Register(m, p); err != nil {
			l.logger.Warn("plugin registration failed", zap.String("id", m.ID), zap.Error(err))
			continue
		}
		count++
	}
	return count, nil
}

func (l *Loader) instantiate(m *Manifest, abiVersion uint32) (p Plugin, err error) {
	defer func() {
		if r := recover(); r != nil {
			p = nil
			err = fmt.Errorf("plugin: panic instantiating %s: %v", m.ID, r)
		}
	}()

	if !m.IsDynamic() {
		factory, ok := l.factories[m.ID]
		if !ok {
			return nil, fmt.Errorf("plugin: no static factory registered for %s", m.ID)
		}
		return factory(), nil
	}

	path := LibraryFilename(m.EntryPoint)
	vt, openErr := OpenVTable(path, abiVersion)
	if openErr != nil {
		return nil, openErr
	}
	if createErr := vt.CreateInstance(); createErr != nil {
		_ = vt.Close()
		return nil, createErr
	}
	return &dynamicPlugin{vt: vt}, nil
}
