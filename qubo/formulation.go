package qubo

import (
	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub004/schedule"
)

// Penalty weights. The strict ordering hard > duty-hour > coverage > equity
// establishes priority under a single scalar energy: a sample never profits
// from violating a harder constraint to satisfy a softer one.
//
// CoverageWeight must stay above the largest marginal equity cost of one more
// assignment, which is (n-1)/n * EquityPenalty < EquityPenalty for a resident
// with n candidate variables. Otherwise the equity nudge would override the
// coverage objective and leave blocks unstaffed even with zero contention.
const (
	HardConstraintPenalty = 10000.0
	DutyHourPenalty       = 5000.0
	CoverageWeight        = 100.0
	EquityPenalty         = 100.0
)

// Penalties sets the weight of each energy term.
type Penalties struct {
	// Hard penalizes double-booked blocks and assignments on unavailable
	// blocks.
	Hard float64

	// DutyHour penalizes residents whose weekly assignment count exceeds
	// the duty-hour ceiling.
	DutyHour float64

	// Coverage rewards every active assignment; it is the objective the
	// penalty terms constrain.
	Coverage float64

	// Equity nudges work away from concentrating on any one resident. Its
	// per-pair contribution is Equity divided by the resident's candidate
	// count, so the marginal cost of an extra assignment never reaches
	// Equity itself.
	Equity float64
}

// DefaultPenalties returns the standard weights.
func DefaultPenalties() Penalties {
	return Penalties{
		Hard:     HardConstraintPenalty,
		DutyHour: DutyHourPenalty,
		Coverage: CoverageWeight,
		Equity:   EquityPenalty,
	}
}

// Problem is one fully built QUBO instance. Index and Matrix are read-only
// after Build and may be shared across concurrent solver reads.
type Problem struct {
	Index  *VariableIndex
	Matrix *Matrix
}

// MemoryFootprint estimates the resident size of the problem in bytes, for
// admission control when many solves run concurrently.
func (p *Problem) MemoryFootprint() int64 {
	if p == nil {
		return 0
	}
	// Matrix cells dominate: key, value, and map overhead per cell.
	const bytesPerCell = 48
	const bytesPerVariable = 3 * 4
	return int64(p.Matrix.Len())*bytesPerCell + int64(p.Index.NumVariables())*bytesPerVariable
}

// Formulation assembles QUBO problems from scheduling contexts.
type Formulation struct {
	penalties Penalties
}

// NewFormulation returns a formulation using the given penalty weights.
// Zero-valued penalties are kept as given, so individual terms can be
// switched off deliberately.
func NewFormulation(p Penalties) *Formulation {
	return &Formulation{penalties: p}
}

// Build enumerates the variable index and assembles the energy matrix.
//
// A context yielding zero variables produces an empty matrix; callers must
// treat that as a distinct empty outcome, not as a zero-energy success.
func (f *Formulation) Build(sc *schedule.Context) (*Problem, error) {
	ix, err := BuildVariableIndex(sc)
	if err != nil {
		return nil, err
	}

	m := NewMatrix()
	f.addCoverage(ix, m)
	f.addBlockExclusion(ix, m)
	f.addAvailability(ix, m)
	f.addDutyHours(ix, m)
	f.addEquity(ix, m)

	return &Problem{Index: ix, Matrix: m}, nil
}

// addCoverage rewards every active assignment with a negative linear term, so
// minimizing energy maximizes the number of filled slots.
func (f *Formulation) addCoverage(ix *VariableIndex, m *Matrix) {
	for v := 0; v < ix.NumVariables(); v++ {
		m.Add(int32(v), int32(v), -f.penalties.Coverage)
	}
}

// addBlockExclusion penalizes every pair of variables sharing a block, which
// discourages double-assignment without expanding a squared-sum constraint
// over the full variable cross-product.
func (f *Formulation) addBlockExclusion(ix *VariableIndex, m *Matrix) {
	for b := 0; b < ix.numBlocks; b++ {
		vars := ix.VariablesForBlock(b)
		for i := 0; i < len(vars); i++ {
			for j := i + 1; j < len(vars); j++ {
				m.Add(vars[i], vars[j], f.penalties.Hard)
			}
		}
	}
}

// addAvailability adds a large linear penalty to every variable that places a
// resident on a block they are unavailable for, across all role templates.
func (f *Formulation) addAvailability(ix *VariableIndex, m *Matrix) {
	for v := 0; v < ix.NumVariables(); v++ {
		r, b, _ := ix.Triple(v)
		if ix.Unavailable(r, b) {
			m.Add(int32(v), int32(v), f.penalties.Hard)
		}
	}
}

// addDutyHours approximates the weekly duty-hour ceiling. For each resident
// and week whose candidate-variable count exceeds the hour-derived threshold,
// every in-week pair receives a penalty scaled inversely to the group size,
// softly capping assignments per week.
func (f *Formulation) addDutyHours(ix *VariableIndex, m *Matrix) {
	maxPerWeek := MaxWeeklyHours / HoursPerBlock

	weekVars := make([]int32, 0, BlocksPerWeek)
	for r := 0; r < ix.numResidents; r++ {
		vars := ix.VariablesForResident(r)
		for w := 0; w < ix.NumWeeks(); w++ {
			weekVars = weekVars[:0]
			for _, v := range vars {
				if ix.Week(int(ix.blocks[v])) == w {
					weekVars = append(weekVars, v)
				}
			}
			if len(weekVars) <= maxPerWeek {
				continue
			}
			scaled := f.penalties.DutyHour / float64(len(weekVars))
			for i := 0; i < len(weekVars); i++ {
				for j := i + 1; j < len(weekVars); j++ {
					m.Add(weekVars[i], weekVars[j], scaled)
				}
			}
		}
	}
}

// addEquity adds small pairwise penalties between variables of the same
// resident, scaled inversely to that resident's candidate count, so workload
// spreads instead of piling onto whoever has the most eligible slots.
func (f *Formulation) addEquity(ix *VariableIndex, m *Matrix) {
	for r := 0; r < ix.numResidents; r++ {
		vars := ix.VariablesForResident(r)
		if len(vars) < 2 {
			continue
		}
		scaled := f.penalties.Equity / float64(len(vars))
		for i := 0; i < len(vars); i++ {
			for j := i + 1; j < len(vars); j++ {
				m.Add(vars[i], vars[j], scaled)
			}
		}
	}
}
