package stage

import (
	"context"
	"sort"

	kerrors "github.com/kunihir0/gini-sub002/errors"
)

// StageOutcome classifies how one stage's execution ended.
type StageOutcome int

const (
	Success StageOutcome = iota
	Failure
	Skipped
	Cancelled
)

func (o StageOutcome) String() string {
	switch o {
	case Success:
		return "success"
	case Failure:
		return "failure"
	case Skipped:
		return "skipped"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// StageResult records the outcome of one stage within a Pipeline run.
type StageResult struct {
	StageID string
	Outcome StageOutcome
	Err     error
}

// Report is returned by Pipeline.Execute: the per-stage results in
// execution order, plus a populated DryRunReport when the context ran
// in DryRun mode.
type Report struct {
	RunID   string
	Results []StageResult
	DryRun  *DryRunReport
}

// DryRunReport aggregates every DryRunEntry recorded during a DryRun
// mode execution.
type DryRunReport struct {
	Entries            []DryRunEntry
	EstimatedDiskUsage int64
}

// PipelineBuilder assembles a validated Pipeline over stages already
// present in a Registry. Edges are declared by the builder, not by a
// stage's own requirements.
type PipelineBuilder struct {
	registry *Registry
	nodes    []string
	edges    map[string][]string // from -> []to (to depends on from... see AddDependency doc)
}

// NewPipelineBuilder creates a builder bound to registry r. Every stage
// id added via AddStage must already be registered in r.
func NewPipelineBuilder(r *Registry) *PipelineBuilder {
	return &PipelineBuilder{registry: r, edges: make(map[string][]string)}
}

// AddStage includes id (which must be registered) as a pipeline node.
func (b *PipelineBuilder) AddStage(id string) *PipelineBuilder {
	b.nodes = append(b.nodes, id)
	return b
}

// AddDependency declares that "to" must run after "from" completes.
func (b *PipelineBuilder) AddDependency(from, to string) *PipelineBuilder {
	b.edges[from] = append(b.edges[from], to)
	return b
}

// Build validates the declared graph (unknown ids, dependency targets
// present, no cycles) and returns an executable Pipeline.
func (b *PipelineBuilder) Build() (*Pipeline, error) {
	nodeSet := make(map[string]bool, len(b.nodes))
	for _, id := range b.nodes {
		if !b.registry.Has(id) {
			return nil, kerrors.NewUnknownStage(id)
		}
		nodeSet[id] = true
	}
	for from, tos := range b.edges {
		if !nodeSet[from] {
			return nil, kerrors.NewUnknownStage(from)
		}
		for _, to := range tos {
			if !nodeSet[to] {
				return nil, kerrors.NewUnknownStage(to)
			}
		}
	}

	if cycle := detectCycle(b.nodes, b.edges); cycle != nil {
		return nil, kerrors.NewStageCycle(cycle)
	}

	return &Pipeline{registry: b.registry, nodes: append([]string(nil), b.nodes...), edges: b.edges}, nil
}

func detectCycle(nodes []string, edges map[string][]string) []string {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int, len(nodes))
	var path []string

	var visit func(id string) []string
	visit = func(id string) []string {
		color[id] = gray
		path = append(path, id)

		for _, next := range edges[id] {
			switch color[next] {
			case white:
				if cyc := visit(next); cyc != nil {
					return cyc
				}
			case gray:
				start := 0
				for i, p := range path {
					if p == next {
						start = i
						break
					}
				}
				return append(append([]string(nil), path[start:]...), next)
			}
		}

		path = path[:len(path)-1]
		color[id] = black
		return nil
	}

	sorted := append([]string(nil), nodes...)
	sort.Strings(sorted)
	for _, id := range sorted {
		if color[id] == white {
			if cyc := visit(id); cyc != nil {
				return cyc
			}
		}
	}
	return nil
}

// Pipeline is a validated DAG of stage ids ready for execution.
// Pipelines are not internally parallel: stages run one at a time in
// topological order.
type Pipeline struct {
	registry *Registry
	nodes    []string
	edges    map[string][]string
}

// Execute computes one DFS-based topological order over the validated
// graph and runs each stage in turn. A stage's error marks it Failure
// and every stage after it in that order Skipped, whether or not it
// depends on the failed stage; the pipeline then stops. In DryRun mode, a DryRunnable stage's DryRunCheck runs instead
// of Execute, and its entry is folded into the returned DryRunReport.
func (p *Pipeline) Execute(ctx context.Context, sc *Context) (Report, error) {
	order := topoOrder(p.nodes, p.edges)
	sc.SetShared("stage_registry_arc", p.registry)

	var results []StageResult
	aborted := false

	for _, id := range order {
		select {
		case <-ctx.Done():
			results = append(results, StageResult{StageID: id, Outcome: Cancelled})
			continue
		default:
		}

		if aborted {
			results = append(results, StageResult{StageID: id, Outcome: Skipped})
			continue
		}

		s, _ := p.registry.Get(id)

		if sc.Mode == DryRun {
			if dr, ok := s.(DryRunnable); ok {
				entry, err := dr.DryRunCheck(ctx, sc)
				if err != nil {
					results = append(results, StageResult{StageID: id, Outcome: Failure, Err: err})
					aborted = true
					continue
				}
				sc.RecordDryRun(entry)
				results = append(results, StageResult{StageID: id, Outcome: Success})
				continue
			}
			results = append(results, StageResult{StageID: id, Outcome: Success})
			continue
		}

		if err := s.Execute(ctx, sc); err != nil {
			results = append(results, StageResult{StageID: id, Outcome: Failure, Err: err})
			aborted = true
			continue
		}
		results = append(results, StageResult{StageID: id, Outcome: Success})
	}

	report := Report{RunID: sc.RunID, Results: results}
	if sc.Mode == DryRun {
		entries := sc.dryRunEntries()
		var total int64
		for _, e := range entries {
			if e.Kind == FileOperation {
				total += e.EstimatedBytes
			}
		}
		report.DryRun = &DryRunReport{Entries: entries, EstimatedDiskUsage: total}
	}

	var execErr error
	if aborted {
		for _, r := range results {
			if r.Outcome == Failure {
				execErr = r.Err
				break
			}
		}
	}
	return report, execErr
}

// topoOrder assumes the graph already passed Build's cycle check; it is
// a defensive re-derivation, not the authoritative validation.
func topoOrder(nodes []string, edges map[string][]string) []string {
	visited := make(map[string]bool, len(nodes))
	var order []string

	var visit func(id string)
	visit = func(id string) {
		if visited[id] {
			return
		}
		visited[id] = true
		for _, dep := range edges[id] {
			visit(dep)
		}
		order = append(order, id)
	}

	sorted := append([]string(nil), nodes...)
	sort.Strings(sorted)
	for _, id := range sorted {
		visit(id)
	}

	// edges[from] = []to means "to depends on from", so a DFS that
	// visits dependents before appending "from" would invert the order;
	// reverse to get from-before-to (dependency-before-dependent).
	reversed := make([]string, len(order))
	for i, id := range order {
		reversed[len(order)-1-i] = id
	}
	return reversed
}
