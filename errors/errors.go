// Package errors implements the kernel's unified error taxonomy: a single
// KernelError type carrying a Kind, surfaced consistently across the
// plugin, stage, event, storage, and bootstrap subsystems.
package errors

import (
	"errors"
	"fmt"
)

// Kind identifies which subsystem an error originated from.
type Kind string

const (
	// PluginSystem covers loading, FFI, manifest parsing, registration,
	// initialization, preflight, dependency resolution, version parsing,
	// conflict detection and shutdown of plugins.
	PluginSystem Kind = "plugin_system"
	// StageSystem covers unknown stages, cycles, duplicate ids, stage
	// execution failures and pipeline validation.
	StageSystem Kind = "stage_system"
	// EventSystem covers handler registration, dispatch, queueing and a
	// poisoned dispatcher.
	EventSystem Kind = "event_system"
	// StorageSystem covers I/O, not-found, access-denied and
	// (de)serialization errors from a storage provider.
	StorageSystem Kind = "storage_system"
	// KernelLifecycle covers component init/start/stop failures and
	// registry misuse.
	KernelLifecycle Kind = "kernel_lifecycle"
)

// KernelError is the single structured error type returned across the
// kernel's subsystems.
type KernelError struct {
	Kind    Kind
	Op      string // operation that failed, e.g. "plugin.resolve_dependencies"
	Message string
	Path    string // set for I/O errors; carries the path involved
	Err     error  // wrapped cause, if any
}

func (e *KernelError) Error() string {
	var s string
	switch {
	case e.Op != "" && e.Path != "":
		s = fmt.Sprintf("%s: %s [%s]: %s", e.Kind, e.Op, e.Path, e.Message)
	case e.Op != "":
		s = fmt.Sprintf("%s: %s: %s", e.Kind, e.Op, e.Message)
	default:
		s = fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *KernelError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a KernelError of the same Kind.
func (e *KernelError) Is(target error) bool {
	var t *KernelError
	if errors.As(target, &t) {
		return e.Kind == t.Kind
	}
	return false
}

// New creates a KernelError for the given kind and operation.
func New(kind Kind, op, message string) *KernelError {
	return &KernelError{Kind: kind, Op: op, Message: message}
}

// WithPath attaches a filesystem or resource path, as required for
// every I/O error (spec: "I/O errors always carry the path and operation").
func (e *KernelError) WithPath(path string) *KernelError {
	e.Path = path
	return e
}

// WithErr attaches the wrapped cause.
func (e *KernelError) WithErr(err error) *KernelError {
	e.Err = err
	return e
}

// FromError wraps a plain error as a KernelError of the given kind,
// preserving its message and unwrap chain. If err is already a
// KernelError it is returned unchanged.
func FromError(kind Kind, op string, err error) *KernelError {
	if err == nil {
		return nil
	}
	if ke, ok := err.(*KernelError); ok {
		return ke
	}
	return &KernelError{Kind: kind, Op: op, Message: err.Error(), Err: err}
}

// Join aggregates multiple errors into one, preserving each via Unwrap
// chains. Used by ComponentRegistry.StopAll and plugin shutdown, both of
// which accumulate rather than short-circuit.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// Plugin system constructors.

func NewMissingDependency(pluginID, depID string) *KernelError {
	return New(PluginSystem, "resolve_dependencies",
		fmt.Sprintf("plugin %q requires missing dependency %q", pluginID, depID))
}

func NewVersionMismatch(pluginID, depID, constraint, got string) *KernelError {
	return New(PluginSystem, "resolve_dependencies",
		fmt.Sprintf("plugin %q requires %q %s, found %s", pluginID, depID, constraint, got))
}

func NewCycleDetected(path []string) *KernelError {
	return New(PluginSystem, "resolve_dependencies",
		fmt.Sprintf("dependency cycle detected: %v", path))
}

// Stage system constructors.

func NewUnknownStage(id string) *KernelError {
	return New(StageSystem, "pipeline.validate", fmt.Sprintf("unknown stage id %q", id))
}

func NewStageCycle(path []string) *KernelError {
	return New(StageSystem, "pipeline.validate", fmt.Sprintf("cycle detected: %v", path))
}

func NewDuplicateStage(id string) *KernelError {
	return New(StageSystem, "registry.register", fmt.Sprintf("stage %q already registered", id))
}

// Event system sentinels.

var ErrReentrantDispatch = New(EventSystem, "dispatch",
	"dispatch called re-entrantly while another dispatch or process_queue is in progress; event not dispatched")

var ErrDispatcherPoisoned = New(EventSystem, "dispatch", "dispatcher is closed")
