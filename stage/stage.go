// Package stage implements the kernel's DAG-scheduled pipeline engine: a
// registry of named stages, a builder that assembles a validated
// execution graph over them, and a serial executor with a dry-run mode.
package stage

import "context"

// Stage is a named unit of work a Pipeline can schedule. Dependency
// edges between stages are declared by the PipelineBuilder, not by the
// stage itself -- a Stage only knows its own id and what it does.
type Stage interface {
	ID() string
	Execute(ctx context.Context, sc *Context) error
}

// DryRunnable is an optional capability: stages that perform
// side-effecting work (file writes, network calls) should implement it
// so DryRun mode can report what *would* happen without doing it.
type DryRunnable interface {
	DryRunCheck(ctx context.Context, sc *Context) (DryRunEntry, error)
}

// DryRunEntry describes one stage's dry-run prediction.
type DryRunEntry struct {
	StageID     string
	Description string
	Kind        DryRunKind
	// EstimatedBytes is summed into DryRunReport.EstimatedDiskUsage for
	// entries tagged FileOperation.
	EstimatedBytes int64
}

// DryRunKind classifies a DryRunEntry for reporting/aggregation.
type DryRunKind int

const (
	Informational DryRunKind = iota
	FileOperation
	NetworkOperation
)
