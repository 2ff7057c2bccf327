package stage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingStage struct {
	id   string
	log  *[]string
	fail bool
}

func (s *recordingStage) ID() string { return s.id }
func (s *recordingStage) Execute(ctx context.Context, sc *Context) error {
	*s.log = append(*s.log, s.id)
	if s.fail {
		return assertErr
	}
	return nil
}

var assertErr = context.DeadlineExceeded

func newTestContext() *Context {
	return NewContext(Live, "", nil, nil, NewRegistry(), nil)
}

func TestPipeline_ExecutesInDependencyOrder(t *testing.T) {
	reg := NewRegistry()
	var log []string
	require.NoError(t, reg.Register(&recordingStage{id: "a", log: &log}))
	require.NoError(t, reg.Register(&recordingStage{id: "b", log: &log}))
	require.NoError(t, reg.Register(&recordingStage{id: "c", log: &log}))

	p, err := NewPipelineBuilder(reg).
		AddStage("a").AddStage("b").AddStage("c").
		AddDependency("a", "c").
		AddDependency("b", "c").
		Build()
	require.NoError(t, err)

	sc := newTestContext()
	sc.Stages = reg
	report, err := p.Execute(context.Background(), sc)
	require.NoError(t, err)

	// c must run last regardless of a/b ordering.
	assert.Equal(t, "c", log[len(log)-1])
	assert.Len(t, report.Results, 3)
	assert.Equal(t, sc.RunID, report.RunID)
	assert.NotEmpty(t, report.RunID)
}

func TestPipeline_FailureSkipsDownstream(t *testing.T) {
	reg := NewRegistry()
	var log []string
	require.NoError(t, reg.Register(&recordingStage{id: "a", log: &log, fail: true}))
	require.NoError(t, reg.Register(&recordingStage{id: "b", log: &log}))

	p, err := NewPipelineBuilder(reg).
		AddStage("a").AddStage("b").
		AddDependency("a", "b").
		Build()
	require.NoError(t, err)

	sc := newTestContext()
	report, err := p.Execute(context.Background(), sc)
	require.Error(t, err)

	require.Len(t, report.Results, 2)
	assert.Equal(t, Failure, report.Results[0].Outcome)
	assert.Equal(t, Skipped, report.Results[1].Outcome)
}

func TestBuild_RejectsUnknownStageID(t *testing.T) {
	reg := NewRegistry()
	_, err := NewPipelineBuilder(reg).AddStage("missing").Build()
	assert.Error(t, err)
}

func TestBuild_RejectsCycle(t *testing.T) {
	reg := NewRegistry()
	var log []string
	require.NoError(t, reg.Register(&recordingStage{id: "a", log: &log}))
	require.NoError(t, reg.Register(&recordingStage{id: "b", log: &log}))

	_, err := NewPipelineBuilder(reg).
		AddStage("a").AddStage("b").
		AddDependency("a", "b").
		AddDependency("b", "a").
		Build()
	assert.Error(t, err)
}

type dryRunStage struct {
	id    string
	bytes int64
}

func (s *dryRunStage) ID() string                                      { return s.id }
func (s *dryRunStage) Execute(ctx context.Context, sc *Context) error  { return nil }
func (s *dryRunStage) DryRunCheck(ctx context.Context, sc *Context) (DryRunEntry, error) {
	return DryRunEntry{StageID: s.id, Kind: FileOperation, EstimatedBytes: s.bytes}, nil
}

func TestPipeline_DryRunAccumulatesReport(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(&dryRunStage{id: "a", bytes: 100}))
	require.NoError(t, reg.Register(&dryRunStage{id: "b", bytes: 50}))

	p, err := NewPipelineBuilder(reg).AddStage("a").AddStage("b").Build()
	require.NoError(t, err)

	sc := NewContext(DryRun, "", nil, nil, reg, nil)
	report, err := p.Execute(context.Background(), sc)
	require.NoError(t, err)
	require.NotNil(t, report.DryRun)
	assert.Equal(t, int64(150), report.DryRun.EstimatedDiskUsage)
	assert.Len(t, report.DryRun.Entries, 2)
}
