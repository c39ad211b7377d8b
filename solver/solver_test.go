package solver

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub004/anneal"
	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub004/qubo"
	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub004/schedule"
)

// fakeAnnealer satisfies HardwareAnnealer for tests.
type fakeAnnealer struct {
	sample qubo.Sample
	energy float64
	err    error
	calls  int
}

func (f *fakeAnnealer) Submit(_ context.Context, _ *qubo.Matrix, _ int) (qubo.Sample, float64, error) {
	f.calls++
	return f.sample, f.energy, f.err
}

func hardwareCaps() Capabilities {
	return Capabilities{Hardware: true, Endpoint: "https://annealer.test", Token: "secret"}
}

func buildProblem(t *testing.T, residents, blocks int) *qubo.Problem {
	t.Helper()
	rs := make([]schedule.Resident, residents)
	for i := range rs {
		rs[i] = schedule.Resident{ID: string(rune('a' + i))}
	}
	bs := make([]schedule.Block, blocks)
	for i := range bs {
		bs[i] = schedule.Block{ID: i}
	}
	sc, err := schedule.NewContext(rs, bs, []schedule.RoleTemplate{{ID: "shift"}}, nil)
	require.NoError(t, err)

	p, err := qubo.NewFormulation(qubo.DefaultPenalties()).Build(sc)
	require.NoError(t, err)
	return p
}

func TestSolveZeroVariables(t *testing.T) {
	h := New(Capabilities{}, nil)
	p := buildProblem(t, 0, 0)

	sel, err := h.Solve(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, BackendNone, sel.Backend)
	assert.Empty(t, sel.Outcome.Sample)
}

func TestSolveClassical(t *testing.T) {
	h := New(Capabilities{}, nil, WithParams(anneal.Params{Reads: 10, Sweeps: 50, Seed: 1}))
	p := buildProblem(t, 2, 2)

	sel, err := h.Solve(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, BackendClassical, sel.Backend)
	assert.Len(t, sel.Outcome.Sample, p.Index.NumVariables())
	assert.Equal(t, 10, sel.Reads)
	assert.Equal(t, 50, sel.Sweeps)
}

func TestSolveHardwarePath(t *testing.T) {
	p := buildProblem(t, 2, 2)
	hw := &fakeAnnealer{
		sample: make(qubo.Sample, p.Index.NumVariables()),
		energy: -1.5,
	}
	h := New(hardwareCaps(), hw)

	sel, err := h.Solve(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, BackendQuantum, sel.Backend)
	assert.Equal(t, 1, hw.calls)
	assert.InDelta(t, -1.5, sel.Outcome.Energy, 1e-12)
}

func TestSolveHardwareFailureFallsBack(t *testing.T) {
	p := buildProblem(t, 2, 2)
	hw := &fakeAnnealer{err: errors.New("service unavailable")}
	h := New(hardwareCaps(), hw, WithParams(anneal.Params{Reads: 10, Sweeps: 50, Seed: 1}))

	sel, err := h.Solve(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, BackendFallback, sel.Backend)
	assert.Equal(t, 1, hw.calls)
	assert.Len(t, sel.Outcome.Sample, p.Index.NumVariables())
	assert.Positive(t, sel.Outcome.SamplesEvaluated)
}

func TestSolveHardwareMalformedSampleFallsBack(t *testing.T) {
	p := buildProblem(t, 2, 2)
	hw := &fakeAnnealer{sample: qubo.Sample{1}}
	h := New(hardwareCaps(), hw)

	sel, err := h.Solve(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, BackendFallback, sel.Backend)
}

func TestSolveOversizedProblemSkipsHardware(t *testing.T) {
	p := buildProblem(t, 3, 3)
	caps := hardwareCaps()
	caps.MaxHardwareVariables = p.Index.NumVariables() - 1
	hw := &fakeAnnealer{}
	h := New(caps, hw)

	sel, err := h.Solve(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, BackendClassical, sel.Backend)
	assert.Zero(t, hw.calls)
}

func TestNewWithoutAnnealerDisablesHardware(t *testing.T) {
	h := New(hardwareCaps(), nil)
	assert.False(t, h.Capabilities().HardwareEnabled())
}

func TestCapabilitiesNormalize(t *testing.T) {
	c := Capabilities{Hardware: true, Endpoint: "https://annealer.test"}
	n := c.Normalize(nil)
	assert.False(t, n.Hardware)
	assert.Equal(t, DefaultMaxHardwareVariables, n.MaxHardwareVariables)

	full := hardwareCaps().Normalize(nil)
	assert.True(t, full.HardwareEnabled())
}

func TestScaleParams(t *testing.T) {
	small := ScaleParams(10, anneal.Params{})
	assert.Equal(t, MaxReads, small.Reads)
	assert.Equal(t, MinSweeps, small.Sweeps)

	large := ScaleParams(100000, anneal.Params{})
	assert.Equal(t, MinReads, large.Reads)
	assert.Equal(t, MaxSweeps, large.Sweeps)

	mid := ScaleParams(500, anneal.Params{})
	assert.Equal(t, 200, mid.Reads)
	assert.Equal(t, 5000, mid.Sweeps)

	explicit := ScaleParams(500, anneal.Params{Reads: 3, Sweeps: 7})
	assert.Equal(t, 3, explicit.Reads)
	assert.Equal(t, 7, explicit.Sweeps)
}
