package qubo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub004/schedule"
)

func buildProblem(t *testing.T, sc *schedule.Context) *Problem {
	t.Helper()
	p, err := NewFormulation(DefaultPenalties()).Build(sc)
	require.NoError(t, err)
	return p
}

func TestBuildCoverageTerm(t *testing.T) {
	sc := mustContext(t,
		[]schedule.Resident{{ID: "a"}},
		[]schedule.Block{{ID: 0}},
		nil,
		nil,
	)
	p := buildProblem(t, sc)

	require.Equal(t, 1, p.Index.NumVariables())
	assert.InDelta(t, -CoverageWeight, p.Matrix.Get(0, 0), 1e-12)
}

func TestBuildBlockExclusionTerm(t *testing.T) {
	// Two residents, one block, no templates: variables 0 and 1 share the block.
	sc := mustContext(t,
		[]schedule.Resident{{ID: "a"}, {ID: "b"}},
		[]schedule.Block{{ID: 0}},
		nil,
		nil,
	)
	p := buildProblem(t, sc)

	require.Equal(t, 2, p.Index.NumVariables())
	assert.InDelta(t, HardConstraintPenalty, p.Matrix.Get(0, 1), 1e-9)
}

func TestBuildAvailabilityTerm(t *testing.T) {
	sc := mustContext(t,
		[]schedule.Resident{{ID: "a"}},
		[]schedule.Block{{ID: 0}, {ID: 1}},
		nil,
		map[string][]int{"a": {1}},
	)
	p := buildProblem(t, sc)

	// Variable 1 is (a, block 1): coverage reward plus unavailability penalty.
	assert.InDelta(t, -CoverageWeight, p.Matrix.Get(0, 0), 1e-12)
	assert.InDelta(t, HardConstraintPenalty-CoverageWeight, p.Matrix.Get(1, 1), 1e-9)
}

func TestBuildDutyHourTermTriggersAboveWeeklyCap(t *testing.T) {
	// Seven candidate blocks in one week exceed the 80h/12h cap of six.
	blocks := make([]schedule.Block, 7)
	for i := range blocks {
		blocks[i] = schedule.Block{ID: i}
	}
	sc := mustContext(t, []schedule.Resident{{ID: "a"}}, blocks, nil, nil)
	p := buildProblem(t, sc)

	wantDuty := DutyHourPenalty / 7
	wantEquity := EquityPenalty / 7
	assert.InDelta(t, wantDuty+wantEquity, p.Matrix.Get(0, 1), 1e-9)
}

func TestBuildDutyHourTermQuietBelowWeeklyCap(t *testing.T) {
	blocks := make([]schedule.Block, 6)
	for i := range blocks {
		blocks[i] = schedule.Block{ID: i}
	}
	sc := mustContext(t, []schedule.Resident{{ID: "a"}}, blocks, nil, nil)
	p := buildProblem(t, sc)

	// Only the equity term couples in-resident pairs here.
	assert.InDelta(t, EquityPenalty/6, p.Matrix.Get(0, 1), 1e-9)
}

func TestBuildEquityTermScalesWithCandidates(t *testing.T) {
	sc := mustContext(t,
		[]schedule.Resident{{ID: "a"}, {ID: "b"}},
		[]schedule.Block{{ID: 0}, {ID: 1}},
		nil,
		nil,
	)
	p := buildProblem(t, sc)

	// Variables: 0=(a,0) 1=(a,1) 2=(b,0) 3=(b,1).
	assert.InDelta(t, EquityPenalty/2, p.Matrix.Get(0, 1), 1e-9)
	assert.InDelta(t, EquityPenalty/2, p.Matrix.Get(2, 3), 1e-9)
	assert.InDelta(t, HardConstraintPenalty, p.Matrix.Get(0, 2), 1e-9)
	assert.InDelta(t, HardConstraintPenalty, p.Matrix.Get(1, 3), 1e-9)
	assert.Zero(t, p.Matrix.Get(0, 3))
	assert.Zero(t, p.Matrix.Get(1, 2))
}

func TestBuildEmptyContext(t *testing.T) {
	sc := mustContext(t, nil, nil, nil, nil)
	p := buildProblem(t, sc)

	assert.Zero(t, p.Index.NumVariables())
	assert.Zero(t, p.Matrix.Len())
	assert.Zero(t, p.MemoryFootprint())
}

func TestZeroPenaltiesDisableTerms(t *testing.T) {
	sc := mustContext(t,
		[]schedule.Resident{{ID: "a"}, {ID: "b"}},
		[]schedule.Block{{ID: 0}},
		nil,
		nil,
	)
	p, err := NewFormulation(Penalties{Coverage: 1}).Build(sc)
	require.NoError(t, err)

	// Only the coverage reward remains.
	assert.InDelta(t, -1.0, p.Matrix.Get(0, 0), 1e-12)
	assert.Zero(t, p.Matrix.Get(0, 1))
}

// sampleEnergy evaluates the full QUBO energy of a binary vector.
func sampleEnergy(m *Matrix, x Sample) float64 {
	var e float64
	for _, entry := range m.Entries() {
		if entry.I == entry.J {
			if x[entry.I] == 1 {
				e += entry.Value
			}
		} else if x[entry.I] == 1 && x[entry.J] == 1 {
			e += entry.Value
		}
	}
	return e
}

func TestCoverageDominatesEquity(t *testing.T) {
	// Three residents, six weekday blocks. Staffing every block with a
	// balanced load must beat leaving blocks empty: the marginal equity
	// cost of an extra assignment is below the coverage reward.
	blocks := make([]schedule.Block, 6)
	for i := range blocks {
		blocks[i] = schedule.Block{ID: i}
	}
	sc := mustContext(t,
		[]schedule.Resident{{ID: "r1"}, {ID: "r2"}, {ID: "r3"}},
		blocks,
		nil,
		nil,
	)
	p := buildProblem(t, sc)
	require.Equal(t, 18, p.Index.NumVariables())

	// Variables enumerate resident-major over blocks 0..5.
	full := make(Sample, 18)     // r1: blocks 0,1; r2: blocks 2,3; r3: blocks 4,5
	partial := make(Sample, 18)  // one block per resident, three blocks empty
	lopsided := make(Sample, 18) // r1 takes everything
	for _, v := range []int{0, 1, 6 + 2, 6 + 3, 12 + 4, 12 + 5} {
		full[v] = 1
	}
	for _, v := range []int{0, 6 + 1, 12 + 2} {
		partial[v] = 1
	}
	for v := 0; v < 6; v++ {
		lopsided[v] = 1
	}

	assert.Less(t, sampleEnergy(p.Matrix, full), sampleEnergy(p.Matrix, partial))
	assert.Less(t, sampleEnergy(p.Matrix, full), sampleEnergy(p.Matrix, lopsided))
}

func TestMemoryFootprintGrowsWithProblem(t *testing.T) {
	small := buildProblem(t, mustContext(t,
		[]schedule.Resident{{ID: "a"}},
		[]schedule.Block{{ID: 0}},
		nil, nil,
	))

	blocks := make([]schedule.Block, 10)
	for i := range blocks {
		blocks[i] = schedule.Block{ID: i}
	}
	large := buildProblem(t, mustContext(t,
		[]schedule.Resident{{ID: "a"}, {ID: "b"}, {ID: "c"}},
		blocks,
		nil, nil,
	))

	assert.Greater(t, large.MemoryFootprint(), small.MemoryFootprint())
}
